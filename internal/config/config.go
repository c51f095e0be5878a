package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "docspreview.yaml"

type Config struct {
	Compiler struct {
		Binary  string        `yaml:"binary"`
		Entry   string        `yaml:"entry"`
		Dir     string        `yaml:"dir"` // working directory for the compiler, defaults to the executable's directory
		Yes     bool          `yaml:"yes"`
		Timeout time.Duration `yaml:"timeout"` // 0 means no timeout
	} `yaml:"compiler"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.Compiler.Binary = "elm"
	cfg.Compiler.Entry = "src/Main.elm"
	cfg.Compiler.Yes = true
	return &cfg
}

func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config, a missing file keeps the defaults
	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse %s", path)
		}
	case os.IsNotExist(err):
	default:
		return nil, errors.Wrapf(err, "read %s", path)
	}

	// 3. Override with Environment Variables if present
	if binary := os.Getenv("DOCSPREVIEW_COMPILER"); binary != "" {
		cfg.Compiler.Binary = binary
	}
	if entry := os.Getenv("DOCSPREVIEW_ENTRY"); entry != "" {
		cfg.Compiler.Entry = entry
	}
	if dir := os.Getenv("DOCSPREVIEW_DIR"); dir != "" {
		cfg.Compiler.Dir = dir
	}
	if timeout := os.Getenv("DOCSPREVIEW_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, errors.Wrap(err, "DOCSPREVIEW_TIMEOUT")
		}
		cfg.Compiler.Timeout = d
	}

	return cfg, nil
}
