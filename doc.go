// Package config provides a layered configuration store for Go
// applications. Typed values accumulate from prioritized layers
// (compile-time defaults, merged sources such as TOML/YAML/JSON files,
// environment variables and in-memory maps, and explicit overrides)
// into one merged tree that dotted/indexed keys resolve against.
//
// Features:
//   - Fixed precedence: overrides > sources (later over earlier) > defaults
//   - Path expressions with array indexing ("servers[0].host")
//   - Auto-vivifying writes that create intermediate tables and arrays
//   - Deterministic cross-type coercions (bool/int/float/string/array/table)
//   - Provenance tracking on every value for error messages
//   - Struct decoding via mapstructure with duration and slice hooks
//   - Thread-safe operations using sync.RWMutex
//
// Quick Start:
//
//	cfg := config.New()
//	cfg.SetDefault("server.port", 8080)
//
//	if err := cfg.Merge(config.File{Path: "config.toml", Optional: true}); err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Merge(config.Env{Prefix: "MYAPP_"}); err != nil {
//	    log.Fatal(err)
//	}
//
//	host, _ := cfg.GetString("server.host")
//	port, _ := cfg.GetInt("server.port")
//
// Every mutation recomputes the merged tree from scratch, so the tree a
// reader observes can never drift from the layer contents, and a failing
// source leaves the previous tree fully intact. A store can be
// permanently sealed with Freeze, after which mutators return ErrFrozen
// while reads keep working.
package config
