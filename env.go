package config

import (
	"os"
	"strconv"
	"strings"
)

// Env reads configuration from process environment variables. Values
// carry "environment" as their origin.
type Env struct {
	// Prefix limits the scan to variables starting with it; the prefix
	// is stripped before mapping, so with prefix "MYAPP_" the variable
	// MYAPP_SERVER_PORT contributes to server.port.
	Prefix string

	// Transform overrides the default variable-name-to-path mapping.
	// Returning "" skips the variable.
	Transform func(name string) string

	// environ substitutes os.Environ in tests.
	environ func() []string
}

func (e Env) Describe() string { return "environment" }

// Collect implements Source.
func (e Env) Collect() (map[string]Value, error) {
	environ := e.environ
	if environ == nil {
		environ = os.Environ
	}
	transform := e.Transform
	if transform == nil {
		transform = defaultEnvTransform(e.Prefix)
	}

	root := emptyTable()
	for _, pair := range environ() {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		path := transform(name)
		if path == "" {
			continue
		}
		expr, err := ParsePath(strings.ToLower(path))
		if err != nil {
			// Variables whose names do not map to a path are not
			// configuration; skip rather than fail the whole scan.
			continue
		}
		expr.Set(&root, NewValue("environment", parseScalar(raw)))
	}
	return root.tab, nil
}

// defaultEnvTransform strips the prefix and maps underscores to dots:
// MYAPP_SERVER_PORT with prefix "MYAPP_" becomes server.port. Variables
// without the prefix are skipped.
func defaultEnvTransform(prefix string) func(string) string {
	return func(name string) string {
		if prefix != "" {
			if !strings.HasPrefix(name, prefix) {
				return ""
			}
			name = strings.TrimPrefix(name, prefix)
		}
		return strings.ReplaceAll(strings.ToLower(name), "_", ".")
	}
}

// parseScalar turns an environment string into the most specific scalar
// it parses as: bool, then int, then float, else the string itself with
// surrounding quotes stripped.
func parseScalar(s string) any {
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
