package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".forumscan"

// File is the YAML structure of the .forumscan configuration file.
// It carries the pieces that should not live on the command line,
// primarily the SSO credentials.
//
// Example:
//
//	username: some.user
//	password: "..."
//	delay: 2s
//	output: data
//	maxPages: 25
type File struct {
	// Username and Password for the SSO login handshake.
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`

	// Delay overrides the inter-request delay (Go duration syntax).
	Delay string `yaml:"delay,omitempty"`

	// Output overrides the output directory.
	Output string `yaml:"output,omitempty"`

	// MaxPages overrides the election-roll pagination bound.
	MaxPages int `yaml:"maxPages,omitempty"`

	// DataThreshold overrides the pagination-end content-length bound.
	DataThreshold int `yaml:"dataThreshold,omitempty"`
}

// LoadConfigFile loads a YAML configuration file. If the file does not
// exist it returns ErrConfigNotFound; callers decide whether that is
// fatal based on whether the path was explicitly requested.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in order:
// the explicit path if given, then .forumscan in the current directory,
// then .forumscan in the user's home directory. Returns the empty string
// when nothing is found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		p := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// Apply merges the file's values into cfg. File values only fill fields
// the user did not already set on the command line, except credentials,
// which the file always provides when present.
func (cf *File) Apply(cfg *Config) error {
	if cf.Username != "" && cfg.Username == "" {
		cfg.Username = cf.Username
	}
	if cf.Password != "" && cfg.Password == "" {
		cfg.Password = cf.Password
	}
	if cf.Delay != "" && cfg.Delay == DefaultDelay {
		d, err := time.ParseDuration(cf.Delay)
		if err != nil {
			return fmt.Errorf("invalid delay %q in config file: %w", cf.Delay, err)
		}
		cfg.Delay = d
	}
	if cf.Output != "" && cfg.OutputDir == DefaultOutputDir {
		cfg.OutputDir = cf.Output
	}
	if cf.MaxPages > 0 && cfg.MaxPages == DefaultMaxPages {
		cfg.MaxPages = cf.MaxPages
	}
	if cf.DataThreshold > 0 && cfg.DataThreshold == DefaultDataThreshold {
		cfg.DataThreshold = cf.DataThreshold
	}
	return nil
}
