package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/masmgr/gityear/internal/git"
)

// FileName is the name of the configuration file looked up by default.
const FileName = ".gityear.json"

// Config is the root configuration structure.
type Config struct {
	Lookup  LookupConfig `json:"lookup"`
	Filters FilterConfig `json:"filters"`
}

// LookupConfig holds the options of the year-of-last-change lookup.
type LookupConfig struct {
	DateSource string `json:"dateSource"` // "committer" or "author"
	TimeZone   string `json:"timeZone"`   // IANA zone; must be empty for "author"
	MaxCommits int    `json:"maxCommits"` // Default: 10
	Backend    string `json:"backend"`    // "go-git" or "git"
}

// FilterConfig holds file path filtering options for scans.
type FilterConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Lookup: LookupConfig{
			DateSource: git.DateSourceCommitter.String(),
			TimeZone:   "",
			MaxCommits: git.DefaultMaxCommits,
			Backend:    git.BackendGoGit.String(),
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{".git/**"},
		},
	}
}

// LookupConfig validates the lookup section and converts it into a git.LookupConfig.
func (c *Config) LookupConfig() (git.LookupConfig, error) {
	source, err := git.ParseDateSource(c.Lookup.DateSource)
	if err != nil {
		return git.LookupConfig{}, err
	}
	zone, err := git.ParseTimeZone(c.Lookup.TimeZone)
	if err != nil {
		return git.LookupConfig{}, err
	}
	backend, err := git.ParseBackend(c.Lookup.Backend)
	if err != nil {
		return git.LookupConfig{}, err
	}
	return git.NewLookupConfig(source, zone, c.Lookup.MaxCommits, backend)
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{FileName}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, FileName))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, FileName))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
