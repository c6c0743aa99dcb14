package core

// FieldType is the declared storage type of a field.
type FieldType string

// Field type constants.
const (
	FieldString   FieldType = "string"
	FieldText     FieldType = "text"
	FieldInt      FieldType = "int"
	FieldFloat    FieldType = "float"
	FieldBool     FieldType = "bool"
	FieldDateTime FieldType = "datetime"
)

// Choice is one allowed value for a constrained field.
type Choice struct {
	Value string
	Label string
}

// FieldDecl describes one declared attribute: either a logical field as
// written in the model declaration, or a concrete per-language field
// produced by expansion.
type FieldDecl struct {
	// Name is the attribute name. For concrete fields this is the
	// canonical name suffixed with the normalized language code.
	Name string
	// Type is the storage type
	Type FieldType
	// Nullable allows the stored value to be absent
	Nullable bool
	// Required marks the field as mandatory on input forms
	Required bool
	// HasDefault reports whether Default carries an explicit default value.
	// A nil default is distinguishable from "no default" through this flag.
	HasDefault bool
	// Default is the declared default value (only meaningful with HasDefault)
	Default any
	// MaxLength constrains string/text fields (0 = unconstrained)
	MaxLength int
	// Label is an optional human-readable display label
	Label string
	// Choices restricts the value to a fixed set (empty = unrestricted)
	Choices []Choice
	// Meta carries arbitrary declaration constraints copied verbatim
	Meta map[string]any
	// Canonical is the back-reference to the originating logical field
	// name. It is set by expansion and empty on logical declarations.
	Canonical string
}

// Clone returns a deep copy of the declaration. Mutable sub-structures
// (Choices, Meta) are copied so per-language clones never share them.
func (f *FieldDecl) Clone() *FieldDecl {
	c := *f
	if f.Choices != nil {
		c.Choices = append([]Choice(nil), f.Choices...)
	}
	if f.Meta != nil {
		c.Meta = make(map[string]any, len(f.Meta))
		for k, v := range f.Meta {
			c.Meta[k] = v
		}
	}
	return &c
}

// CanonicalName returns the logical name the field answers to: the
// back-reference for expanded fields, the field's own name otherwise.
func (f *FieldDecl) CanonicalName() string {
	if f.Canonical != "" {
		return f.Canonical
	}
	return f.Name
}
