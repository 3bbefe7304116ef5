package internal

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is looked up inside the scan root when no --config is given.
const ConfigFileName = ".projectreport.yaml"

// FileConfig holds defaults read from a YAML file. Command-line flags win.
type FileConfig struct {
	Rules    string `yaml:"rules"`
	Format   string `yaml:"format"`
	Font     string `yaml:"font"`
	Title    string `yaml:"title"`
	Encoding string `yaml:"encoding"`
	Depth    int    `yaml:"depth"`
}

// LoadConfig parses a YAML config file.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// FindConfig loads explicit, or the root's ConfigFileName when explicit is
// empty. A missing implicit file is not an error, and archive roots have none.
func FindConfig(explicit, root string) (*FileConfig, error) {
	if explicit != "" {
		return LoadConfig(explicit)
	}
	if st, err := os.Stat(root); err != nil || !st.IsDir() {
		return &FileConfig{}, nil
	}
	cfg, err := LoadConfig(filepath.Join(root, ConfigFileName))
	if errors.Is(err, iofs.ErrNotExist) {
		return &FileConfig{}, nil
	}
	return cfg, err
}

// Apply copies config values into opts for every field set reports false.
func (c *FileConfig) Apply(opts *ReportOptions, set func(flag string) bool) {
	if c == nil {
		return
	}
	pick := func(dst *string, flag, v string) {
		if v != "" && !set(flag) {
			*dst = v
		}
	}
	pick(&opts.Rules, "rules", c.Rules)
	pick(&opts.Format, "format", c.Format)
	pick(&opts.Font, "font", c.Font)
	pick(&opts.Title, "title", c.Title)
	pick(&opts.Encoding, "encoding", c.Encoding)
	if c.Depth > 0 && !set("depth") {
		opts.Depth = c.Depth
	}
}
