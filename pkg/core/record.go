package core

// Record is a runtime instance of a schema. Concrete-field values are
// ordinary stored attributes; canonical translatable names are resolved
// through the schema's accessor table.
type Record struct {
	// ID identifies a persisted record (empty until saved)
	ID string

	schema *Schema
	attrs  map[string]any
}

// Schema returns the schema the record is bound to.
func (r *Record) Schema() *Schema {
	return r.schema
}

// Get reads an attribute through the logical name. Canonical translatable
// names resolve through the language fallback chain; any other name is a
// plain attribute read. An unset value is reported as (nil, false), never
// as an error.
func (r *Record) Get(name string) (any, bool) {
	if a, ok := r.schema.Accessor(name); ok {
		return a.Resolve(r)
	}
	return r.Attr(name)
}

// Set writes an attribute through the logical name. Canonical translatable
// names are dispatched to the accessor, which picks the first concrete
// field in the fallback chain that exists on the schema. The return value
// reports whether a target field accepted the write.
func (r *Record) Set(name string, value any) bool {
	if a, ok := r.schema.Accessor(name); ok {
		return a.Assign(r, value)
	}
	if !r.schema.HasField(name) {
		return false
	}
	r.attrs[name] = value
	return true
}

// Attr reads a stored attribute directly, bypassing accessor dispatch.
func (r *Record) Attr(name string) (any, bool) {
	v, ok := r.attrs[name]
	return v, ok
}

// SetAttr writes a stored attribute directly, bypassing accessor dispatch.
func (r *Record) SetAttr(name string, value any) {
	r.attrs[name] = value
}

// Attrs returns a copy of the stored attribute map.
func (r *Record) Attrs() map[string]any {
	out := make(map[string]any, len(r.attrs))
	for k, v := range r.attrs {
		out[k] = v
	}
	return out
}
