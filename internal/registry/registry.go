// Package registry tracks built model schemas and their translatable
// metadata. It answers, per model, which logical names are translatable
// (own declarations plus abstract-ancestor declarations) and recovers
// canonical names from concrete per-language fields.
package registry

import (
	"sync"

	"github.com/glossa-labs/transfield/pkg/core"
)

// SchemaRegistry maps model names to their built schemas.
type SchemaRegistry struct {
	mu sync.RWMutex

	// byName maps model names to schemas: "article" → *core.Schema
	// Note: if two schemas share a name, the last registered wins
	byName map[string]*core.Schema
}

// NewSchemaRegistry creates a new empty registry.
func NewSchemaRegistry() *SchemaRegistry {
	return &SchemaRegistry{
		byName: make(map[string]*core.Schema),
	}
}

// Register adds a built schema to the registry.
func (r *SchemaRegistry) Register(schema *core.Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[schema.Name] = schema
}

// Get returns the schema for a model name.
func (r *SchemaRegistry) Get(name string) (*core.Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	schema, ok := r.byName[name]
	return schema, ok
}

// All returns all registered schemas.
func (r *SchemaRegistry) All() []*core.Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schemas := make([]*core.Schema, 0, len(r.byName))
	for _, schema := range r.byName {
		schemas = append(schemas, schema)
	}
	return schemas
}

// Count returns the number of registered schemas.
func (r *SchemaRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

// TranslatableFields returns the canonical translatable field names of a
// model, inherited names included. The result is a copy.
func (r *SchemaRegistry) TranslatableFields(model string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schema, ok := r.byName[model]
	if !ok {
		return nil
	}
	return append([]string(nil), schema.Translatable...)
}

// IsTranslatable reports whether field is a canonical translatable name
// on the model.
func (r *SchemaRegistry) IsTranslatable(model, field string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schema, ok := r.byName[model]
	return ok && schema.IsTranslatable(field)
}

// CanonicalFieldName recovers the logical name behind a concrete
// per-language field, via the back-reference set at expansion time.
func (r *SchemaRegistry) CanonicalFieldName(model, concreteName string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schema, ok := r.byName[model]
	if !ok {
		return "", false
	}
	return schema.CanonicalName(concreteName)
}
