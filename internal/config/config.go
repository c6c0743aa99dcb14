// Package config provides shared configuration types for transfield.
// This package is decoupled from CLI concerns; anything that needs the
// project configuration (language set, model locations) can use it.
package config

import (
	"github.com/glossa-labs/transfield/pkg/lang"
)

// LanguageConfig declares one supported language.
type LanguageConfig struct {
	Code  string `koanf:"code"`
	Label string `koanf:"label"`
}

// Config holds the project configuration.
type Config struct {
	// ModelsDir is the directory of model declaration files
	ModelsDir string `koanf:"models_dir"`
	// StatePath is the SQLite database holding records
	StatePath string `koanf:"state_path"`
	// Languages is the ordered list of supported languages
	Languages []LanguageConfig `koanf:"languages"`
	// DefaultLanguage is the process-wide fallback language code
	DefaultLanguage string `koanf:"default_language"`
	// ActiveLanguage is the language of the calling context; empty means
	// the fallback language
	ActiveLanguage string `koanf:"active_language"`
	// Verbose enables debug logging
	Verbose bool `koanf:"verbose"`
}

// Settings converts the configuration into validated language settings.
func (c *Config) Settings() (*lang.Settings, error) {
	s := &lang.Settings{
		Fallback: lang.Code(c.DefaultLanguage),
	}
	for _, l := range c.Languages {
		s.Languages = append(s.Languages, lang.Language{Code: lang.Code(l.Code), Name: l.Label})
	}
	if active := lang.Code(c.ActiveLanguage); active != "" {
		s.Active = func() lang.Code { return active }
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
