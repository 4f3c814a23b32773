// Package config loads the simulator's optional TOML configuration
// file, following the same layered-default pattern the rest of this
// tool's CLI uses: built-in defaults, overridden by a config file,
// overridden by explicit command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds simulator settings that are reasonable to keep out of
// the command line: the instruction cap, the memory-preload base
// address, verbosity, and a trace output file name. The CLI reads
// the first three; it takes the trace path from its -o flag (default
// iss.log) and does not read Trace.OutputFile.
type Config struct {
	// Execution settings
	Execution struct {
		InstructionCap uint64 `toml:"instruction_cap"`
		MemBaseAddr    uint32 `toml:"mem_base_addr"`
		Verbose        bool   `toml:"verbose"`
	} `toml:"execution"`

	// Trace settings
	Trace struct {
		OutputFile string `toml:"output_file"`
	} `toml:"trace"`
}

// DefaultConfig returns a configuration with the simulator's built-in
// defaults.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Execution.InstructionCap = 1_000_000
	cfg.Execution.MemBaseAddr = 0
	cfg.Execution.Verbose = false

	cfg.Trace.OutputFile = "trace.log"

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "riscv-iss")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "riscv-iss")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file, falling
// back to built-in defaults if it doesn't exist.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
