// Package config loads the CLI's database configuration: where the
// database lives, which tables exist, and whether mutations are journaled.
//
// Configs are plain YAML, validated against an embedded CUE schema before
// decoding so that a malformed file fails with a schema-level message
// instead of a half-populated struct.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Table declares one registered table.
type Table struct {
	Name       string `yaml:"name"`
	RecordSize int    `yaml:"record_size"`
}

// Config is the CLI's database configuration.
type Config struct {
	// Root is the directory under which the database directory is created.
	Root string `yaml:"root"`

	// Name is the database name; the database path is {root}/{name}.
	Name string `yaml:"name"`

	// Journal is an optional path to the SQLite mutation journal.
	Journal string `yaml:"journal,omitempty"`

	// Tables are registered, in order, at startup.
	Tables []Table `yaml:"tables"`
}

// Load reads and parses a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates raw YAML against the embedded CUE schema and decodes it.
func Parse(data []byte) (*Config, error) {
	schema := cuecontext.New().CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile config schema: %w", err)
	}
	if err := cueyaml.Validate(data, schema); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}
