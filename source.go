package config

// Source is one contributor of configuration values. A source hands the
// store the full table of values it provides; the store flattens that
// table to leaf paths and merges the result according to layer
// precedence. A source that fails aborts the refresh that asked for it,
// leaving the previously merged tree untouched.
type Source interface {
	// Describe names the source for diagnostics, e.g. a file path or
	// "environment".
	Describe() string

	// Collect returns everything the source contributes as a nested
	// table of values.
	Collect() (map[string]Value, error)
}

// Map is an in-memory source. It is mainly useful in tests and for
// feeding programmatically assembled values through the normal merge
// path instead of the overrides layer.
type Map struct {
	// Name is the Describe result; empty defaults to "map".
	Name string

	// Values is the nested mapping the source contributes.
	Values map[string]any
}

func (m Map) Describe() string {
	if m.Name != "" {
		return m.Name
	}
	return "map"
}

// Collect implements Source.
func (m Map) Collect() (map[string]Value, error) {
	tab := make(map[string]Value, len(m.Values))
	for k, v := range m.Values {
		tab[k] = valueOf(m.Describe(), v)
	}
	return tab, nil
}
