// Package config loads the CLI configuration with koanf, layering
// defaults, the transfield.yaml project file, TRANSFIELD_ environment
// variables, and command-line flags (highest precedence).
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	intconfig "github.com/glossa-labs/transfield/internal/config"
)

// Config file names, probed in order.
const (
	ConfigFileName    = "transfield.yaml"
	ConfigFileNameAlt = "transfield.yml"
)

// envPrefix is the environment variable namespace.
const envPrefix = "TRANSFIELD_"

// Package-level tracking of the loaded config and the file it came from.
var (
	configFileUsed string
	currentConfig  *intconfig.Config
)

// GetConfigFileUsed returns the path of the config file loaded by the
// most recent LoadConfig call, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the config loaded by the most recent
// LoadConfig call, or nil before the first load.
func GetCurrentConfig() *intconfig.Config {
	return currentConfig
}

// findConfigFile finds the config file to use.
// Priority: explicit path > transfield.yaml > transfield.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// LoadConfig loads configuration from file, environment variables, and
// flags. Precedence (highest to lowest): flags > env vars > config file >
// defaults.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*intconfig.Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"models_dir":       intconfig.DefaultModelsDir,
		"state_path":       intconfig.DefaultStateFile,
		"default_language": "",
		"active_language":  "",
		"verbose":          false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load the config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Load environment variables (TRANSFIELD_ prefix)
	// Transform: TRANSFIELD_MODELS_DIR -> models_dir
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			// Transform kebab-case to snake_case for config keys
			key := strings.ReplaceAll(f.Name, "-", "_")

			// The CLI uses --lang for brevity; the config key spells it out
			if key == "lang" {
				return "active_language", posflag.FlagVal(flags, f)
			}
			if key == "state" {
				return "state_path", posflag.FlagVal(flags, f)
			}

			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal and fill remaining gaps with defaults
	var cfg intconfig.Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	intconfig.ApplyDefaults(&cfg)

	currentConfig = &cfg
	return &cfg, nil
}
