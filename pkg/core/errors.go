package core

import "fmt"

// ConfigError is returned when a model's translatable-field declaration is
// malformed: the translate marker repeats a name, or the process language
// settings are invalid. It is fatal at declaration time.
type ConfigError struct {
	Model  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("invalid translatable configuration: %s", e.Reason)
	}
	return fmt.Sprintf("model %q: invalid translatable configuration: %s", e.Model, e.Reason)
}

// FieldNotFoundError is returned when the translate marker names a field
// that is not declared on the model. It is fatal at declaration time.
type FieldNotFoundError struct {
	Model string
	Field string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("model %q: no declared field %q, as named in the translate marker", e.Model, e.Field)
}
