package trans

import (
	"github.com/glossa-labs/transfield/pkg/core"
	"github.com/glossa-labs/transfield/pkg/lang"
)

// Accessor resolves reads and writes of one canonical field name against
// its per-language concrete fields. It is closed over the canonical name
// and the process language settings; the set of concrete fields is read
// from the record's schema at call time.
type Accessor struct {
	canonical string
	settings  *lang.Settings
}

// NewAccessor builds the accessor for a canonical translatable name.
func NewAccessor(canonical string, settings *lang.Settings) *Accessor {
	return &Accessor{canonical: canonical, settings: settings}
}

// Canonical returns the logical field name the accessor serves.
func (a *Accessor) Canonical() string {
	return a.canonical
}

// Resolve reads the logical value using the currently active language.
func (a *Accessor) Resolve(rec *core.Record) (any, bool) {
	return a.ResolveIn(rec, a.settings.ActiveCode())
}

// ResolveIn reads the logical value for an explicit active language.
// Resolution order: the active language's concrete field, its primary
// subtag's, then the record's default language (the designated
// default-language attribute when set, the process fallback otherwise)
// and that language's primary subtag. The first non-empty value wins.
// When the whole chain is empty the result is (nil, false); resolution
// never fails with an error, so an unsupported active code simply falls
// through to the default branch.
func (a *Accessor) ResolveIn(rec *core.Record, active lang.Code) (any, bool) {
	for _, code := range a.chain(rec, active) {
		v, ok := rec.Attr(lang.FieldName(a.canonical, code))
		if ok && !isEmpty(v) {
			return v, true
		}
	}
	return nil, false
}

// Assign writes the logical value using the currently active language.
func (a *Accessor) Assign(rec *core.Record, value any) bool {
	return a.AssignIn(rec, a.settings.ActiveCode(), value)
}

// AssignIn writes value to the first concrete field in the resolution
// chain that exists on the record's schema. Unlike reads, existence of
// the field decides the target, not emptiness of its value. The return
// value reports whether any chain member accepted the write; a false
// return means the value was discarded.
func (a *Accessor) AssignIn(rec *core.Record, active lang.Code, value any) bool {
	schema := rec.Schema()
	for _, code := range a.chain(rec, active) {
		name := lang.FieldName(a.canonical, code)
		if schema.HasField(name) {
			rec.SetAttr(name, value)
			return true
		}
	}
	return false
}

// chain returns the candidate languages in resolution order: active,
// active's primary subtag, the record default, and its primary subtag.
// Duplicates are harmless and not filtered; re-probing a field is cheaper
// than deduplicating.
func (a *Accessor) chain(rec *core.Record, active lang.Code) []lang.Code {
	chain := make([]lang.Code, 0, 4)
	if active != "" {
		chain = append(chain, active)
		if p := active.Primary(); p != active {
			chain = append(chain, p)
		}
	}
	def := a.defaultLanguage(rec)
	if def != "" {
		chain = append(chain, def)
		if p := def.Primary(); p != def {
			chain = append(chain, p)
		}
	}
	return chain
}

// defaultLanguage resolves the record-level default: the designated
// default-language attribute when the schema declares one and it holds a
// value, the process fallback otherwise.
func (a *Accessor) defaultLanguage(rec *core.Record) lang.Code {
	if name := rec.Schema().DefaultLanguageField; name != "" {
		if v, ok := rec.Attr(name); ok {
			if s, isString := v.(string); isString && s != "" {
				return lang.Code(s)
			}
		}
	}
	return a.settings.Fallback
}

// isEmpty treats nil and the empty string as absent values.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	return false
}
