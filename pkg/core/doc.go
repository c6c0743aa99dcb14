// Package core defines the shared language of the transfield system.
//
// This package contains:
//   - Field declarations (FieldDecl) and their per-language clones
//   - The built model schema (Schema) with its virtual accessor table
//   - Runtime record instances (Record)
//   - Declaration-time error types (ConfigError, FieldNotFoundError)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
