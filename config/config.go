package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	godigest "github.com/opencontainers/go-digest"
	coretypes "github.com/projecteru2/core/types"

	"github.com/projecteru2/cachebust/digest"
	"github.com/projecteru2/cachebust/naming"
	"github.com/projecteru2/cachebust/types"
)

// Config holds one cachebust run's settings.
type Config struct {
	// Patterns are glob expressions, each resolved independently. Matched
	// directories are walked recursively.
	Patterns []string `json:"patterns" mapstructure:"patterns"`
	// Manifest is where the JSON manifest is written.
	// Alias: dictionary.
	Manifest string `json:"manifest" mapstructure:"manifest"`
	// AssetPath, when set, is the root manifest entries are made relative to.
	// Alias: asset_path.
	AssetPath string `json:"assetPath" mapstructure:"assetPath"`
	// Marker is the infix that flags fingerprinted files.
	// Env: CACHEBUST_MARKER. Default: "cached".
	Marker string `json:"marker" mapstructure:"marker"`
	// Algorithm is the content digest: sha256, sha384, sha512, blake3 or md5.
	// Env: CACHEBUST_ALGORITHM. Default: sha256.
	Algorithm string `json:"algorithm" mapstructure:"algorithm"`
	// Log configuration, uses eru core's ServerLogConfig.
	Log coretypes.ServerLogConfig `json:"log" mapstructure:"log"`

	// Ignored lists legacy keys present in the file that have no effect.
	Ignored []string `json:"-" mapstructure:"-"`
}

// DefaultConfig returns a Config with every optional field defaulted.
func DefaultConfig() *Config {
	return &Config{
		Marker:    naming.DefaultMarker,
		Algorithm: string(digest.Default),
		Log: coretypes.ServerLogConfig{
			Level: "info",
		},
	}
}

// Validate checks required fields and normalises optional ones.
// Errors wrap types.ErrConfig.
func (c *Config) Validate() error {
	var patterns []string
	for _, p := range c.Patterns {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	if len(patterns) == 0 {
		return fmt.Errorf("%w: no patterns configured", types.ErrConfig)
	}
	c.Patterns = patterns

	if strings.TrimSpace(c.Manifest) == "" {
		return fmt.Errorf("%w: manifest path is required", types.ErrConfig)
	}
	if c.Marker == "" {
		c.Marker = naming.DefaultMarker
	}
	if strings.ContainsAny(c.Marker, `/\`) || c.Marker == "." || c.Marker == ".." {
		return fmt.Errorf("%w: invalid marker %q", types.ErrConfig, c.Marker)
	}
	alg, err := digest.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrConfig, err)
	}
	c.Algorithm = string(alg)
	return nil
}

// RunLock is the flock file serialising runs that share a manifest. It lives
// in the OS temp directory, keyed by the manifest's absolute path, so runs
// never add files to the asset tree.
func (c *Config) RunLock() string {
	key := filepath.Clean(c.Manifest)
	if abs, err := filepath.Abs(key); err == nil {
		key = abs
	}
	return filepath.Join(os.TempDir(), "cachebust-"+godigest.FromString(key).Encoded()[:16]+".lock")
}

// Excluded lists files the walkers must never treat as assets.
func (c *Config) Excluded() []string {
	return []string{c.Manifest}
}
