package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/projecteru2/cachebust/types"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. CACHEBUST_MARKER.
	EnvPrefix = "CACHEBUST"
	// legacySection is the top-level key of the legacy cache_buster layout,
	// which lets the settings live inside package.json.
	legacySection = "cache_buster"
)

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"marker":     "marker",
	"algorithm":  "algorithm",
	"asset-path": "assetPath",
	"manifest":   "manifest",
	"log-level":  "log.level",
}

// ignoredKeys are legacy settings that are accepted but have no effect:
// fingerprinted copies always land beside their originals.
var ignoredKeys = []string{"target_path"}

// aliases maps legacy snake-case keys to current keys.
var aliases = map[string]string{
	"asset_path": "assetPath",
	"dictionary": "manifest",
}

// Load reads the config file at path, applies environment and flag overrides
// (flags may be nil), and validates the result. All failures wrap
// types.ErrConfig.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: config file path is required", types.ErrConfig)
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", types.ErrConfig, path, err)
	}
	if v.IsSet(legacySection) {
		sub := v.Sub(legacySection)
		if sub == nil {
			return nil, fmt.Errorf("%w: %s: %q must be an object", types.ErrConfig, path, legacySection)
		}
		v = sub
	}

	for alias, key := range aliases {
		v.RegisterAlias(alias, key)
	}

	conf := DefaultConfig()
	v.SetDefault("patterns", conf.Patterns)
	v.SetDefault("manifest", conf.Manifest)
	v.SetDefault("assetPath", conf.AssetPath)
	v.SetDefault("marker", conf.Marker)
	v.SetDefault("algorithm", conf.Algorithm)
	v.SetDefault("log.level", conf.Log.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("%w: bind flag --%s: %w", types.ErrConfig, name, err)
				}
			}
		}
	}

	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", types.ErrConfig, path, err)
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, key := range ignoredKeys {
		if v.IsSet(key) {
			conf.Ignored = append(conf.Ignored, key)
		}
	}
	return conf, nil
}
