package trans

import (
	"fmt"

	"github.com/glossa-labs/transfield/pkg/core"
	"github.com/glossa-labs/transfield/pkg/lang"
)

// Expand clones one logical field declaration into a concrete field per
// configured language, in configuration order.
//
// Every clone is tagged with the canonical name for reverse lookup and
// renamed per lang.FieldName. Clones for languages other than the
// fallback are relaxed: nullable unless an explicit default is declared,
// and never required. Only the fallback language's value is guaranteed to
// exist; the others are best-effort. Labels get a parenthesized language
// tag when translateLabels is set.
func Expand(field *core.FieldDecl, canonical string, settings *lang.Settings, translateLabels bool) []*core.FieldDecl {
	out := make([]*core.FieldDecl, 0, len(settings.Languages))
	for _, l := range settings.Languages {
		clone := field.Clone()
		clone.Canonical = canonical
		clone.Name = lang.FieldName(canonical, l.Code)
		if l.Code != settings.Fallback {
			if !clone.Nullable && !clone.HasDefault {
				clone.Nullable = true
			}
			clone.Required = false
		}
		if clone.Label != "" && translateLabels {
			clone.Label = fmt.Sprintf("%s (%s)", clone.Label, l.Code)
		}
		out = append(out, clone)
	}
	return out
}
