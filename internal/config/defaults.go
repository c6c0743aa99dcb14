package config

// Default configuration values.
const (
	DefaultModelsDir       = "models"
	DefaultStateFile       = ".transfield/records.db"
	DefaultLanguage        = "en"
	DefaultLanguageDisplay = "English"
)

// ApplyDefaults applies default values to a Config.
func ApplyDefaults(c *Config) {
	if c == nil {
		return
	}
	if c.ModelsDir == "" {
		c.ModelsDir = DefaultModelsDir
	}
	if c.StatePath == "" {
		c.StatePath = DefaultStateFile
	}
	if len(c.Languages) == 0 {
		c.Languages = []LanguageConfig{{Code: DefaultLanguage, Label: DefaultLanguageDisplay}}
	}
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = c.Languages[0].Code
	}
}
