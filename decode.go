package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Unmarshal decodes the entire merged tree into the target struct or
// map. The target must be a non-nil pointer.
func (c *Config) Unmarshal(target any) error {
	return c.Scan("", target)
}

// Scan decodes the subtree at basePath into the target struct or map.
// Field mapping uses the "toml" struct tag. Input is weakly typed, so
// string values contributed by the environment can populate numeric,
// duration or slice fields.
func (c *Config) Scan(basePath string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("target of Scan must be a non-nil pointer, got %T", target)
	}

	c.mutex.RLock()
	node := c.cache
	found := true
	if basePath != "" {
		expr, err := ParsePath(strings.ToLower(basePath))
		if err != nil {
			c.mutex.RUnlock()
			return err
		}
		node, found = expr.Get(c.cache)
	}
	if found {
		node = node.clone()
	}
	c.mutex.RUnlock()

	if !found {
		return &NotFoundError{Key: basePath}
	}

	sectionMap, ok := node.native().(map[string]any)
	if !ok {
		return withKey(node.typeError("a table"), basePath)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "toml",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(sectionMap); err != nil {
		return fmt.Errorf("failed to decode section %q: %w", basePath, err)
	}
	return nil
}
