package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"config"
)

type ServerConfig struct {
	Host    string        `toml:"host"`
	Port    int           `toml:"port"`
	Timeout time.Duration `toml:"timeout"`
	Tags    []string      `toml:"tags"`
}

func main() {
	dir, err := os.MkdirTemp("", "config-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "settings.toml")
	settings := []byte(`
[server]
host = "example.com"
port = 9090
`)
	if err := os.WriteFile(path, settings, 0644); err != nil {
		log.Fatal(err)
	}

	cfg := config.New()
	cfg.SetDefault("server.host", "localhost")
	cfg.SetDefault("server.port", 8080)
	cfg.SetDefault("server.timeout", "30s")
	cfg.SetDefault("server.tags", []string{"web"})

	// File values override defaults, environment overrides the file.
	if err := cfg.Merge(config.File{Path: path}); err != nil {
		log.Fatal(err)
	}
	if err := cfg.Merge(config.Env{Prefix: "MYAPP_"}); err != nil {
		log.Fatal(err)
	}

	// Explicit overrides beat every source.
	cfg.Set("server.tags", []string{"web", "edge"})

	host, _ := cfg.GetString("server.host")
	port, _ := cfg.GetInt("server.port")
	fmt.Printf("listening on %s:%d\n", host, port)

	var server ServerConfig
	if err := cfg.Scan("server", &server); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("decoded: %+v\n", server)

	fmt.Println("merged tree:", cfg)
}
