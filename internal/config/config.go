// Package config loads the xfer command's settings from a YAML file, a
// .env file and XFER_* environment variables, in increasing precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvLogFile     = "XFER_LOG_FILE"
	EnvResponseDir = "XFER_RESPONSE_DIR"
	EnvInsecure    = "XFER_INSECURE"
)

// Config holds the command settings.
type Config struct {
	Insecure    bool          `yaml:"insecure"`
	Headers     []string      `yaml:"headers" validate:"dive,contains=:"`
	LogFile     string        `yaml:"log_file" validate:"omitempty,filepath"`
	ResponseDir string        `yaml:"response_dir" validate:"omitempty,dir"`
	Timeout     time.Duration `yaml:"timeout" validate:"gte=0"`

	// Options are keyed by numeric option id.
	Options map[any]any `yaml:"options"`
	// NamedOptions are keyed by option name, e.g. CURLOPT_MAXREDIRS.
	NamedOptions map[string]any `yaml:"named_options" validate:"dive,keys,startswith=CURL,endkeys"`
}

// Load reads the YAML file at path, when path is not empty, then applies
// the environment. Variables set in the process win over those in ./.env;
// empty variables are ignored.
func Load(path string) (Config, error) {
	return load(path, ".env", os.LookupEnv)
}

func load(path, envFile string, lookup func(string) (string, bool)) (Config, error) {
	var cfg Config

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}

		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("decoding config %s: %w", path, err)
		}
	}

	dotenv := map[string]string{}
	if envFile != "" {
		vals, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			dotenv = vals
		case !errors.Is(err, fs.ErrNotExist):
			return Config{}, fmt.Errorf("reading %s: %w", envFile, err)
		}
	}

	// An empty variable counts as unset.
	get := func(key string) (string, bool) {
		if v, ok := lookup(key); ok && v != "" {
			return v, true
		}
		v := dotenv[key]
		return v, v != ""
	}

	if v, ok := get(EnvLogFile); ok {
		cfg.LogFile = v
	}
	if v, ok := get(EnvResponseDir); ok {
		cfg.ResponseDir = v
	}
	if v, ok := get(EnvInsecure); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", EnvInsecure, err)
		}
		cfg.Insecure = b
	}

	return cfg, nil
}
