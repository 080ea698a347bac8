package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"github.com/projecteru2/cachebust/types"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

// --- Load ---

func TestLoad_FlatJSON(t *testing.T) {
	p := writeConfig(t, "cachebust.json", `{
		"patterns": ["public/**/*.js", "public/css"],
		"manifest": "public/manifest.json",
		"assetPath": "public"
	}`)
	conf, err := Load(p, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff([]string{"public/**/*.js", "public/css"}, conf.Patterns); diff != "" {
		t.Errorf("patterns (-want +got):\n%s", diff)
	}
	if conf.Manifest != "public/manifest.json" {
		t.Errorf("unexpected manifest %q", conf.Manifest)
	}
	if conf.AssetPath != "public" {
		t.Errorf("unexpected assetPath %q", conf.AssetPath)
	}
	if conf.Marker != "cached" {
		t.Errorf("expected default marker, got %q", conf.Marker)
	}
	if conf.Algorithm != "sha256" {
		t.Errorf("expected default algorithm, got %q", conf.Algorithm)
	}
	if len(conf.Ignored) != 0 {
		t.Errorf("unexpected ignored keys %v", conf.Ignored)
	}
}

func TestLoad_LegacySectionAndAliases(t *testing.T) {
	p := writeConfig(t, "package.json", `{
		"name": "site",
		"cache_buster": {
			"target_path": "target",
			"patterns": ["examples/*"],
			"dictionary": "dictionary.json",
			"asset_path": "examples",
			"marker": "fp"
		}
	}`)
	conf, err := Load(p, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if conf.Manifest != "dictionary.json" {
		t.Errorf("dictionary alias not applied: %q", conf.Manifest)
	}
	if conf.AssetPath != "examples" {
		t.Errorf("asset_path alias not applied: %q", conf.AssetPath)
	}
	if diff := cmp.Diff([]string{"target_path"}, conf.Ignored); diff != "" {
		t.Errorf("ignored keys (-want +got):\n%s", diff)
	}
	if conf.Marker != "fp" {
		t.Errorf("unexpected marker %q", conf.Marker)
	}
}

func TestLoad_YAML(t *testing.T) {
	p := writeConfig(t, "cachebust.yaml", "patterns:\n  - assets\nmanifest: m.json\nalgorithm: BLAKE3\n")
	conf, err := Load(p, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if conf.Algorithm != "blake3" {
		t.Errorf("expected normalised blake3, got %q", conf.Algorithm)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	p := writeConfig(t, "c.json", `{"patterns": ["a"], "manifest": "m.json"}`)
	t.Setenv("CACHEBUST_MARKER", "v2")
	conf, err := Load(p, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if conf.Marker != "v2" {
		t.Errorf("expected env marker v2, got %q", conf.Marker)
	}
}

func TestLoad_FlagOverride(t *testing.T) {
	p := writeConfig(t, "c.json", `{"patterns": ["a"], "manifest": "m.json", "marker": "fromfile"}`)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("marker", "", "")
	fs.String("algorithm", "", "")
	if err := fs.Parse([]string{"--marker", "fromflag"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	conf, err := Load(p, fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if conf.Marker != "fromflag" {
		t.Errorf("expected flag marker, got %q", conf.Marker)
	}
	// unchanged flag must not clobber the default
	if conf.Algorithm != "sha256" {
		t.Errorf("expected default algorithm, got %q", conf.Algorithm)
	}
}

// --- Errors ---

func TestLoad_Errors(t *testing.T) {
	cases := map[string]string{
		"missing patterns": `{"manifest": "m.json"}`,
		"blank patterns":   `{"patterns": ["  "], "manifest": "m.json"}`,
		"missing manifest": `{"patterns": ["a"]}`,
		"bad marker":       `{"patterns": ["a"], "manifest": "m.json", "marker": "a/b"}`,
		"bad algorithm":    `{"patterns": ["a"], "manifest": "m.json", "algorithm": "crc32"}`,
		"not json":         `{"patterns": [`,
	}
	for name, content := range cases {
		p := writeConfig(t, "c.json", content)
		if _, err := Load(p, nil); !errors.Is(err, types.ErrConfig) {
			t.Errorf("%s: expected ErrConfig, got %v", name, err)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"), nil)
	if !errors.Is(err, types.ErrConfig) {
		t.Errorf("expected ErrConfig, got %v", err)
	}
	if _, err := Load("", nil); !errors.Is(err, types.ErrConfig) {
		t.Errorf("expected ErrConfig for empty path, got %v", err)
	}
}

// --- Derived paths ---

func TestConfig_RunLockAndExcluded(t *testing.T) {
	c := &Config{Manifest: "public/manifest.json"}
	lockPath := c.RunLock()
	if filepath.Dir(lockPath) != filepath.Clean(os.TempDir()) {
		t.Errorf("run lock %q not under the temp directory", lockPath)
	}
	if same := (&Config{Manifest: "public/../public/manifest.json"}).RunLock(); same != lockPath {
		t.Errorf("equivalent manifest paths got different locks: %q vs %q", same, lockPath)
	}
	if other := (&Config{Manifest: "other/manifest.json"}).RunLock(); other == lockPath {
		t.Errorf("distinct manifests share lock %q", other)
	}
	if diff := cmp.Diff([]string{"public/manifest.json"}, c.Excluded()); diff != "" {
		t.Errorf("excluded (-want +got):\n%s", diff)
	}
}
