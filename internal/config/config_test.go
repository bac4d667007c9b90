package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	// Register rules so that Defaults and Validate see them.
	_ "github.com/jeduden/lexlint/internal/rules/commentspacing"
)

const validYAML = `rules:
  comment-spacing:
    severity: error
files:
  - "src/**/*.swift"
ignore:
  - "vendor/**"
  - "*.generated.swift"
overrides:
  - files: ["**/Tests/**"]
    rules:
      comment-spacing: false
min-severity: warning
`

const validTOML = `files = ["src/**/*.swift"]
ignore = ["vendor/**", "*.generated.swift"]
min-severity = "warning"

[rules.comment-spacing]
severity = "error"

[[overrides]]
files = ["**/Tests/**"]
[overrides.rules]
comment-spacing = false
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func assertParsed(t *testing.T, cfg *Config) {
	t.Helper()
	rc, ok := cfg.Rules["comment-spacing"]
	require.True(t, ok, "comment-spacing missing")
	assert.True(t, rc.Enabled)
	assert.Equal(t, "error", rc.Settings["severity"])
	assert.Equal(t, []string{"src/**/*.swift"}, cfg.Files)
	assert.Equal(t, []string{"vendor/**", "*.generated.swift"}, cfg.Ignore)
	require.Len(t, cfg.Overrides, 1)
	assert.Equal(t, []string{"**/Tests/**"}, cfg.Overrides[0].Files)
	assert.False(t, cfg.Overrides[0].Rules["comment-spacing"].Enabled)
	assert.Equal(t, "warning", cfg.MinSeverity)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), ".lexlint.yml", validYAML)
	cfg, err := Load(path)
	require.NoError(t, err)
	assertParsed(t, cfg)
	assert.NoError(t, Validate(cfg))
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), ".lexlint.toml", validTOML)
	cfg, err := Load(path)
	require.NoError(t, err)
	assertParsed(t, cfg)
	assert.NoError(t, Validate(cfg))
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, dir, "cfg.json", "{}"))
	assert.ErrorContains(t, err, "unsupported")

	_, err = Load(writeFile(t, dir, "bad.yml", "rules:\n  comment-spacing: [1, 2]\n"))
	assert.ErrorContains(t, err, "bool or a mapping")

	_, err = Load(writeFile(t, dir, "bad.toml", "rules = ["))
	assert.Error(t, err)
}

func TestRuleCfg_UnmarshalBool(t *testing.T) {
	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte("rules:\n  a: true\n  b: false\n"), &cfg))
	assert.True(t, cfg.Rules["a"].Enabled)
	assert.Nil(t, cfg.Rules["a"].Settings)
	assert.False(t, cfg.Rules["b"].Enabled)
}

func TestRuleCfg_MarshalRoundTrip(t *testing.T) {
	in := &Config{Rules: map[string]RuleCfg{
		"off":      {Enabled: false},
		"on":       {Enabled: true},
		"settings": {Enabled: true, Settings: map[string]any{"severity": "error"}},
	}}
	data, err := yaml.Marshal(in)
	require.NoError(t, err)

	out, err := ParseYAML(data)
	require.NoError(t, err)
	assert.Equal(t, in.Rules, out.Rules)
}

func TestDefaults_OptInRuleDisabled(t *testing.T) {
	cfg := Defaults()
	rc, ok := cfg.Rules["comment-spacing"]
	require.True(t, ok)
	assert.False(t, rc.Enabled, "comment-spacing is opt-in")
	assert.Equal(t, DefaultFiles, cfg.Files)
}

func TestDumpDefaults(t *testing.T) {
	cfg := DumpDefaults()
	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "comment-spacing: false")
	assert.NoError(t, Validate(cfg))
}

func TestMerge(t *testing.T) {
	defaults := Defaults()

	merged := Merge(defaults, nil)
	assert.Equal(t, defaults.Rules, merged.Rules)
	assert.Equal(t, DefaultFiles, merged.Files)

	loaded := &Config{
		Rules:       map[string]RuleCfg{"comment-spacing": {Enabled: true}},
		Ignore:      []string{"vendor/**"},
		MinSeverity: "error",
	}
	merged = Merge(defaults, loaded)
	assert.True(t, merged.Rules["comment-spacing"].Enabled)
	assert.Equal(t, []string{"vendor/**"}, merged.Ignore)
	assert.Equal(t, DefaultFiles, merged.Files, "empty files falls back to defaults")
	assert.Equal(t, "error", merged.MinSeverity)
	assert.False(t, defaults.Rules["comment-spacing"].Enabled, "defaults must not be mutated")
}

func TestEffective_OverridesInOrder(t *testing.T) {
	cfg := &Config{
		Rules: map[string]RuleCfg{"comment-spacing": {Enabled: true}},
		Overrides: []Override{
			{Files: []string{"**/Tests/**"}, Rules: map[string]RuleCfg{"comment-spacing": {Enabled: false}}},
			{Files: []string{"**/Tests/Keep*"}, Rules: map[string]RuleCfg{
				"comment-spacing": {Enabled: true, Settings: map[string]any{"severity": "error"}},
			}},
		},
	}

	assert.True(t, Effective(cfg, "src/a.swift")["comment-spacing"].Enabled)
	assert.False(t, Effective(cfg, "pkg/Tests/a.swift")["comment-spacing"].Enabled)

	keep := Effective(cfg, "pkg/Tests/KeepMe.swift")["comment-spacing"]
	assert.True(t, keep.Enabled)
	assert.Equal(t, "error", keep.Settings["severity"])

	assert.True(t, cfg.Rules["comment-spacing"].Enabled, "Effective must not mutate cfg")
}

func TestValidate_Errors(t *testing.T) {
	cfg := &Config{
		Rules: map[string]RuleCfg{
			"no-such-rule":    {Enabled: true},
			"comment-spacing": {Enabled: true, Settings: map[string]any{"severity": "fatal"}},
		},
		Files:       []string{"src/[*.swift"},
		Ignore:      []string{"vendor/[**"},
		MinSeverity: "loud",
		Overrides: []Override{
			{Files: []string{"ok/**"}, Rules: map[string]RuleCfg{
				"comment-spacing": {Enabled: true, Settings: map[string]any{"width": 2}},
			}},
		},
	}

	err := Validate(cfg)
	require.Error(t, err)
	msg := err.Error()
	for _, want := range []string{
		`unknown rule "no-such-rule"`,
		`rules.comment-spacing: invalid severity "fatal"`,
		`overrides[0].rules.comment-spacing: unknown setting(s) width`,
		`files: invalid pattern`,
		`ignore: invalid pattern`,
		`min-severity`,
	} {
		assert.True(t, strings.Contains(msg, want), "missing %q in:\n%s", want, msg)
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	found, err := Discover(sub)
	require.NoError(t, err)
	assert.Equal(t, "", found, "stops at the .git boundary")

	want := writeFile(t, root, ".lexlint.toml", validTOML)
	found, err = Discover(sub)
	require.NoError(t, err)
	assert.Equal(t, want, found)

	want = writeFile(t, filepath.Join(root, "a"), ".lexlint.yml", validYAML)
	found, err = Discover(sub)
	require.NoError(t, err)
	assert.Equal(t, want, found, "nearest config wins")
}
