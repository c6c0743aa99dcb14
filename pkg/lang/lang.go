// Package lang defines language codes, the process-wide language
// settings, and the naming rule that maps a logical field name to its
// per-language stored attributes.
package lang

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/glossa-labs/transfield/pkg/core"
)

// Code is a short language identifier such as "en" or "en-us".
type Code string

// Normalize returns the code in attribute-name form: hyphens become
// underscores ("en-us" becomes "en_us").
func (c Code) Normalize() string {
	return strings.ReplaceAll(string(c), "-", "_")
}

// Primary returns the primary subtag: the part before the first hyphen.
// "fr-ca" yields "fr"; codes without a separator are returned unchanged.
func (c Code) Primary() Code {
	if i := strings.IndexByte(string(c), '-'); i >= 0 {
		return c[:i]
	}
	return c
}

// FieldName derives the stored attribute name for a logical field in the
// given language: canonical + "_" + normalized code. The multiplier uses
// it to emit names and the accessors use it to look them up. The reverse
// direction (concrete name back to canonical) goes through the
// back-reference on the field declaration, never through string parsing:
// canonical names may contain underscores themselves.
func FieldName(canonical string, code Code) string {
	return canonical + "_" + code.Normalize()
}

// Language pairs a code with its display label.
type Language struct {
	Code Code
	Name string
}

// Settings is the process-wide language configuration. It is read-only
// after initialization; no locking is needed.
type Settings struct {
	// Languages is the ordered list of supported languages
	Languages []Language
	// Fallback is the language whose concrete field keeps the original
	// constraints and is the last resort during resolution
	Fallback Code
	// Active returns the language of the calling context. When nil, the
	// fallback language is used.
	Active func() Code
}

// ActiveCode returns the currently active language code, falling back to
// Fallback when no Active function is configured or it returns nothing.
func (s *Settings) ActiveCode() Code {
	if s.Active != nil {
		if c := s.Active(); c != "" {
			return c
		}
	}
	return s.Fallback
}

// Codes returns the configured language codes in order.
func (s *Settings) Codes() []Code {
	out := make([]Code, len(s.Languages))
	for i, l := range s.Languages {
		out[i] = l.Code
	}
	return out
}

// FieldNames returns the concrete attribute names of a logical field in
// every configured language, in order.
func (s *Settings) FieldNames(canonical string) []string {
	out := make([]string, len(s.Languages))
	for i, l := range s.Languages {
		out[i] = FieldName(canonical, l.Code)
	}
	return out
}

// FallbackFieldName returns the concrete attribute name of a logical
// field in the fallback language.
func (s *Settings) FallbackFieldName(canonical string) string {
	return FieldName(canonical, s.Fallback)
}

// Supports reports whether the code is in the configured language list.
func (s *Settings) Supports(code Code) bool {
	for _, l := range s.Languages {
		if l.Code == code {
			return true
		}
	}
	return false
}

// Validate checks the settings: at least one language, unique well-formed
// codes, and a fallback that is one of the configured languages.
func (s *Settings) Validate() error {
	if len(s.Languages) == 0 {
		return &core.ConfigError{Reason: "no languages configured"}
	}
	seen := make(map[Code]struct{}, len(s.Languages))
	for _, l := range s.Languages {
		if l.Code == "" {
			return &core.ConfigError{Reason: "language with empty code"}
		}
		if _, err := language.Parse(string(l.Code)); err != nil {
			return &core.ConfigError{Reason: fmt.Sprintf("malformed language code %q: %v", l.Code, err)}
		}
		if _, dup := seen[l.Code]; dup {
			return &core.ConfigError{Reason: fmt.Sprintf("duplicate language code %q", l.Code)}
		}
		seen[l.Code] = struct{}{}
	}
	if s.Fallback == "" {
		return &core.ConfigError{Reason: "no fallback language configured"}
	}
	if _, ok := seen[s.Fallback]; !ok {
		return &core.ConfigError{Reason: fmt.Sprintf("fallback language %q is not in the configured list", s.Fallback)}
	}
	return nil
}
