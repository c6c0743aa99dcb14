package core

// Accessor is the virtual get/set pair installed under a canonical
// translatable field name. Resolve walks the language fallback chain by
// value; Assign walks it by field existence and reports whether a target
// was found.
type Accessor interface {
	Resolve(rec *Record) (any, bool)
	Assign(rec *Record, value any) bool
}

// Schema is the physical shape of a model after expansion: concrete
// fields only, plus the translatable metadata and the accessor table.
type Schema struct {
	// Name is the model name
	Name string
	// Abstract marks schemas that exist only to be inherited from
	Abstract bool
	// Translatable is the set of canonical translatable field names,
	// own declarations merged with all abstract ancestors' (deduplicated)
	Translatable []string
	// DefaultLanguageField names the attribute holding a per-record
	// default-language override, when one is declared and present
	DefaultLanguageField string

	fields    []*FieldDecl
	byName    map[string]*FieldDecl
	accessors map[string]Accessor
}

// NewSchema creates an empty schema for the named model.
func NewSchema(name string) *Schema {
	return &Schema{
		Name:      name,
		byName:    make(map[string]*FieldDecl),
		accessors: make(map[string]Accessor),
	}
}

// AddField appends a field declaration. A field with the same name
// replaces the earlier one in place (child declarations override
// inherited ones).
func (s *Schema) AddField(f *FieldDecl) {
	if _, ok := s.byName[f.Name]; ok {
		for i, existing := range s.fields {
			if existing.Name == f.Name {
				s.fields[i] = f
				break
			}
		}
	} else {
		s.fields = append(s.fields, f)
	}
	s.byName[f.Name] = f
}

// Fields returns the concrete fields in declaration order.
func (s *Schema) Fields() []*FieldDecl {
	out := make([]*FieldDecl, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field returns the declaration for a stored attribute name.
func (s *Schema) Field(name string) (*FieldDecl, bool) {
	f, ok := s.byName[name]
	return f, ok
}

// HasField reports whether a stored attribute with this name exists.
func (s *Schema) HasField(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// BindAccessor installs the virtual accessor for a canonical name.
func (s *Schema) BindAccessor(canonical string, a Accessor) {
	s.accessors[canonical] = a
}

// Accessor returns the virtual accessor bound under a canonical name.
func (s *Schema) Accessor(canonical string) (Accessor, bool) {
	a, ok := s.accessors[canonical]
	return a, ok
}

// IsTranslatable reports whether name is a canonical translatable field
// of this schema (own or inherited).
func (s *Schema) IsTranslatable(name string) bool {
	for _, t := range s.Translatable {
		if t == name {
			return true
		}
	}
	return false
}

// CanonicalName recovers the logical field name from a concrete field
// name via the back-reference stored at expansion time. String parsing is
// deliberately not used: canonical names may themselves contain
// underscores.
func (s *Schema) CanonicalName(concreteName string) (string, bool) {
	f, ok := s.byName[concreteName]
	if !ok {
		return "", false
	}
	return f.CanonicalName(), true
}

// NewRecord creates an empty record bound to this schema.
func (s *Schema) NewRecord() *Record {
	return &Record{
		schema: s,
		attrs:  make(map[string]any),
	}
}
