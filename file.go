package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// File reads configuration from a TOML, YAML or JSON file. Every value
// it contributes carries the file path as its origin.
type File struct {
	// Path of the file to read.
	Path string

	// Format forces a parser: "toml", "yaml" or "json". Empty or
	// "auto" detects from the file extension, then from the content.
	Format string

	// Optional makes a missing file contribute nothing instead of
	// failing the merge.
	Optional bool
}

func (f File) Describe() string { return f.Path }

// Collect implements Source.
func (f File) Collect() (map[string]Value, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if f.Optional && errors.Is(err, os.ErrNotExist) {
			return map[string]Value{}, nil
		}
		return nil, err
	}

	format := f.Format
	if format == "" || format == "auto" {
		format = detectFileFormat(f.Path)
		if format == "" {
			format = detectFormatFromContent(data)
		}
	}

	raw := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config file '%s': %w", f.Path, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config file '%s': %w", f.Path, err)
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config file '%s': %w", f.Path, err)
		}
	default:
		return nil, fmt.Errorf("unable to determine config format for file '%s'", f.Path)
	}

	tab := make(map[string]Value, len(raw))
	for k, v := range raw {
		tab[k] = NewValue(f.Path, v)
	}
	return tab, nil
}

// detectFileFormat determines format from the file extension
func detectFileFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) string {
	// Try JSON first (strict format)
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	// Try TOML before YAML: YAML accepts almost any plain text
	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	return ""
}
