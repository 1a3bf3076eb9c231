package config

import (
	"strings"
	"sync"
)

// layer is one insertion-ordered mapping from path expressions to values.
// Entries are keyed by the expression's canonical text, so two keys that
// parse to the same expression share one slot and the last write wins.
type layer struct {
	order   []string
	entries map[string]layerEntry
}

type layerEntry struct {
	expr  Expression
	value Value
}

func newLayer() *layer {
	return &layer{entries: make(map[string]layerEntry)}
}

// put inserts or replaces the entry for expr. A replaced expression keeps
// its original position in the insertion order.
func (l *layer) put(expr Expression, v Value) {
	key := expr.String()
	if _, exists := l.entries[key]; !exists {
		l.order = append(l.order, key)
	}
	l.entries[key] = layerEntry{expr: expr, value: v}
}

// apply replays every entry into root, in insertion order. Insertion
// order is the tie-break when two expressions in the same layer
// structurally overlap.
func (l *layer) apply(root *Value) {
	for _, key := range l.order {
		ent := l.entries[key]
		ent.expr.Set(root, ent.value.clone())
	}
}

// Config is a prioritized configuration store. It accumulates typed
// values from three layers, rebuilds one merged tree on every mutation,
// and resolves dotted/indexed keys against that tree. Precedence is
// always overrides > sources (later over earlier) > defaults.
//
// All operations are guarded by one read-write mutex, so a single store
// may be shared across goroutines; mutations themselves are synchronous
// and run to completion.
type Config struct {
	mutex  sync.RWMutex
	frozen bool

	defaults  *layer
	overrides *layer
	sources   []Source

	// cache is the merged tree all reads observe. It is replaced only
	// when a refresh fully succeeds.
	cache Value
}

// New creates an empty mutable store.
func New() *Config {
	return &Config{
		defaults:  newLayer(),
		overrides: newLayer(),
		cache:     emptyTable(),
	}
}

// FromMap builds a store directly from a pre-existing nested mapping,
// bypassing sources. The mapping is flattened to leaf paths into the
// overrides layer, and the unflattened structure becomes the merged tree
// as-is. Unlike Set, original key case is preserved.
func FromMap(m map[string]any) *Config {
	return fromTable(ValueOf(m))
}

func fromTable(root Value) *Config {
	c := New()
	root.flattenInto("", func(path string, v Value) {
		expr, err := ParsePath(path)
		if err != nil {
			// Keys containing path metacharacters cannot be addressed
			// as expressions and stay reachable only through the tree.
			return
		}
		c.overrides.put(expr, v)
	})
	c.cache = root.clone()
	return c
}

// Merge appends a configuration source and recomputes the merged tree.
// Later sources take precedence over earlier ones. If the source fails,
// the previous tree stays in place and the error is returned wrapped in
// a SourceError.
func (c *Config) Merge(src Source) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.frozen {
		return ErrFrozen
	}
	c.sources = append(c.sources, src)
	return c.refresh()
}

// Set stores an explicit override for key and recomputes the merged
// tree. Overrides take precedence over every other layer. The key is
// lower-cased before parsing, making lookups case-insensitive.
func (c *Config) Set(key string, value any) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.frozen {
		return ErrFrozen
	}
	expr, err := ParsePath(strings.ToLower(key))
	if err != nil {
		return err
	}
	c.overrides.put(expr, ValueOf(value))
	return c.refresh()
}

// SetDefault stores a compile-time default for key and recomputes the
// merged tree. Defaults have the lowest precedence.
func (c *Config) SetDefault(key string, value any) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.frozen {
		return ErrFrozen
	}
	expr, err := ParsePath(strings.ToLower(key))
	if err != nil {
		return err
	}
	c.defaults.put(expr, ValueOf(value))
	return c.refresh()
}

// Refresh recomputes the merged tree from all layers. Every mutating
// operation refreshes implicitly; calling Refresh again with no
// intervening mutation leaves the tree unchanged.
func (c *Config) Refresh() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.frozen {
		return ErrFrozen
	}
	return c.refresh()
}

// refresh rebuilds the cache from scratch: defaults, then each source in
// merge order, then overrides. The cache is replaced only when every
// layer applies cleanly, so readers never observe a half-merged tree.
func (c *Config) refresh() error {
	root := emptyTable()

	c.defaults.apply(&root)

	for _, src := range c.sources {
		contrib, err := src.Collect()
		if err != nil {
			return &SourceError{Desc: src.Describe(), Cause: err}
		}
		table := Value{kind: KindTable, tab: contrib}
		table.flattenInto("", func(path string, v Value) {
			expr, perr := ParsePath(strings.ToLower(path))
			if perr != nil {
				if err == nil {
					err = perr
				}
				return
			}
			expr.Set(&root, v)
		})
		if err != nil {
			return &SourceError{Desc: src.Describe(), Cause: err}
		}
	}

	c.overrides.apply(&root)

	c.cache = root
	return nil
}

// Freeze permanently seals the store. Every later mutation fails with
// ErrFrozen while reads keep serving the last computed tree. Freezing is
// irreversible.
func (c *Config) Freeze() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.frozen = true
}

// Get resolves key against the merged tree and returns a deep copy of
// the located value. Absence is a NotFoundError, distinct from the
// TypeError a later coercion may produce.
func (c *Config) Get(key string) (Value, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	expr, err := ParsePath(strings.ToLower(key))
	if err != nil {
		return Value{}, err
	}
	v, ok := expr.Get(c.cache)
	if !ok {
		return Value{}, &NotFoundError{Key: key}
	}
	return v.clone(), nil
}

// GetString retrieves the value at key coerced to a string.
func (c *Config) GetString(key string) (string, error) {
	v, err := c.Get(key)
	if err != nil {
		return "", err
	}
	s, err := v.Str()
	if err != nil {
		return "", withKey(err, key)
	}
	return s, nil
}

// GetInt retrieves the value at key coerced to an int64.
func (c *Config) GetInt(key string) (int64, error) {
	v, err := c.Get(key)
	if err != nil {
		return 0, err
	}
	i, err := v.Int()
	if err != nil {
		return 0, withKey(err, key)
	}
	return i, nil
}

// GetFloat retrieves the value at key coerced to a float64.
func (c *Config) GetFloat(key string) (float64, error) {
	v, err := c.Get(key)
	if err != nil {
		return 0, err
	}
	f, err := v.Float()
	if err != nil {
		return 0, withKey(err, key)
	}
	return f, nil
}

// GetBool retrieves the value at key coerced to a bool.
func (c *Config) GetBool(key string) (bool, error) {
	v, err := c.Get(key)
	if err != nil {
		return false, err
	}
	b, err := v.Bool()
	if err != nil {
		return false, withKey(err, key)
	}
	return b, nil
}

// GetArray retrieves the value at key as an array of values.
func (c *Config) GetArray(key string) ([]Value, error) {
	v, err := c.Get(key)
	if err != nil {
		return nil, err
	}
	arr, err := v.Array()
	if err != nil {
		return nil, withKey(err, key)
	}
	return arr, nil
}

// GetTree retrieves the table at key rewrapped as a new store, letting
// callers resolve further keys relative to that subtree.
func (c *Config) GetTree(key string) (*Config, error) {
	v, err := c.Get(key)
	if err != nil {
		return nil, err
	}
	sub, err := v.Tree()
	if err != nil {
		return nil, withKey(err, key)
	}
	return sub, nil
}

// String renders the merged tree for display and debugging.
func (c *Config) String() string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.cache.String()
}
