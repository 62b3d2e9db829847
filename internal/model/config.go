package model

import (
	"fmt"
	"io"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/encoding/yaml"

	_ "embed"
)

const (
	LogStderr  = "stderr"
	LogStdout  = "stdout"
	LogDiscard = "discard"
)

// Config drives the class-lens CLI. The library layer never reads it.
type Config struct {
	Version   int      `json:"version"` // fixed 0 for now
	Classpath []string `json:"classpath"`
	Exclude   []string `json:"exclude"`
	Digest    bool     `json:"digest"`
	Jobs      int      `json:"jobs"`
	Verbose   bool     `json:"verbose"`
	Log       string   `json:"log"` // "stderr" | "stdout" | "discard"
}

//go:embed schema.cue
var schemaBytes []byte

// DefaultConfig returns the configuration used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Version:   0,
		Classpath: []string{},
		Exclude:   []string{},
		Digest:    false,
		Jobs:      4,
		Verbose:   false,
		Log:       LogStderr,
	}
}

// LoadConfigFromFile reads a YAML config from path, "-" meaning stdin,
// validates it against the embedded CUE schema and expands environment
// variable references in classpath and exclude entries.
func LoadConfigFromFile(path string) (Config, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("error opening config file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		r = f
	}
	cfg, err := LoadConfig(r)
	if err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadConfig parses and validates a YAML config read from r.
func LoadConfig(r io.Reader) (Config, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Config{}, err
	}

	schema, err := configSchema()
	if err != nil {
		return Config{}, err
	}

	yamlFile, err := yaml.Extract("config.yaml", b)
	if err != nil {
		return Config{}, err
	}
	yamlValue := schema.Context().BuildFile(yamlFile)

	unified := schema.Unify(yamlValue)
	if err := unified.Validate(
		cue.All(),          // all constraints
		cue.Concrete(true), // no incomplete values
	); err != nil {
		return Config{}, CueError{cuerr: err}
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return Config{}, err
	}

	expandEnv(&cfg)
	return cfg, nil
}

func configSchema() (cue.Value, error) {
	cueCtx := cuecontext.New()
	v := cueCtx.CompileBytes(schemaBytes, cue.Filename("schema.cue"))
	if err := v.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compiling config schema: %w", err)
	}
	schema := v.LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("looking up #Config: %w", err)
	}
	return schema, nil
}

func expandEnv(cfg *Config) {
	for i, s := range cfg.Classpath {
		cfg.Classpath[i] = os.ExpandEnv(s)
	}
	for i, s := range cfg.Exclude {
		cfg.Exclude[i] = os.ExpandEnv(s)
	}
}

// CueError wraps validation errors generated by cuelang, so callers can
// tell a config that does not match the schema from plain I/O failures.
type CueError struct {
	cuerr error
}

// Error implements error interface, returns the string content of the
// underlying cue error
func (e CueError) Error() string {
	return e.cuerr.Error()
}

// Unwrap allows one to get the original error via errors.As
func (e CueError) Unwrap() error {
	return e.cuerr
}
