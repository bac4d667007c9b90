package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/jeduden/lexlint/internal/rule"
)

// FileNames lists the config file names Discover looks for, in order.
var FileNames = []string{".lexlint.yml", ".lexlint.yaml", ".lexlint.toml"}

// DefaultFiles are the discovery patterns used when a config sets none.
var DefaultFiles = []string{
	"**/*.swift",
	"**/*.go",
	"**/*.c",
	"**/*.h",
	"**/*.cpp",
	"**/*.js",
	"**/*.ts",
	"**/*.rs",
	"**/*.java",
	"**/*.kt",
}

// Load reads and parses a config file at the given path. The format is
// chosen by extension: .yml and .yaml are YAML, .toml is TOML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg *Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		cfg, err = ParseYAML(data)
	case ".toml":
		cfg, err = ParseTOML(data)
	default:
		return nil, fmt.Errorf("unsupported config file extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// ParseYAML decodes a YAML config document.
func ParseYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseTOML decodes a TOML config document. The document is decoded
// generically and then re-read through the YAML node decoder, so that the
// bool-or-settings form of rule entries has a single implementation.
func ParseTOML(data []byte) (*Config, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	var node yaml.Node
	if err := node.Encode(raw); err != nil {
		return nil, err
	}
	var cfg Config
	if err := node.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Discover walks up the directory tree from startDir looking for one of
// FileNames. It stops searching when it encounters a .git directory (the
// repository root) or reaches the filesystem root. Returns the path to the
// config file, or "" if none was found.
func Discover(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}

	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			} else if !errors.Is(err, fs.ErrNotExist) {
				return "", fmt.Errorf("checking %s: %w", candidate, err)
			}
		}

		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Defaults returns a Config with every registered rule set to its default
// enabled state and the default discovery patterns.
func Defaults() *Config {
	all := rule.All()
	rules := make(map[string]RuleCfg, len(all))
	for _, r := range all {
		rules[r.Name()] = RuleCfg{Enabled: rule.EnabledByDefault(r)}
	}
	return &Config{
		Rules: rules,
		Files: append([]string(nil), DefaultFiles...),
	}
}

// DumpDefaults returns a Config listing every registered rule with its
// default settings, for `lexlint init`. Opt-in rules are written as false.
func DumpDefaults() *Config {
	cfg := Defaults()
	for _, r := range rule.All() {
		rc := cfg.Rules[r.Name()]
		if c, ok := r.(rule.Configurable); ok && rc.Enabled {
			rc.Settings = c.DefaultSettings()
		}
		cfg.Rules[r.Name()] = rc
	}
	return cfg
}
