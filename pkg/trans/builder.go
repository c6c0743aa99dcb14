package trans

import (
	"fmt"
	"sort"

	"github.com/glossa-labs/transfield/pkg/core"
	"github.com/glossa-labs/transfield/pkg/lang"
)

// TypeDecl is the declaration-time description of a model type: the
// abstract schema before expansion.
type TypeDecl struct {
	// Name is the model name
	Name string
	// Abstract marks types that exist only to be inherited from
	Abstract bool
	// Fields are the logical field declarations in declaration order
	Fields []*core.FieldDecl
	// Translate lists the logical fields stored once per language. An
	// empty marker means the type declares none of its own; translatable
	// names are then inherited from abstract ancestors.
	Translate []string
	// TranslateLabels controls appending the language tag to each
	// concrete field's label. Nil means enabled.
	TranslateLabels *bool
	// DefaultLanguageField names the attribute holding the record-level
	// default-language override, if any
	DefaultLanguageField string
	// Parents are the abstract ancestor declarations
	Parents []*TypeDecl
}

// Build turns a type declaration into its physical schema: inherited
// fields first, then own fields, with every marked logical field replaced
// by its per-language clones and a virtual accessor bound under the
// canonical name.
//
// Declaration failures (ConfigError, FieldNotFoundError) abort the build;
// no partial schema is returned.
func Build(decl *TypeDecl, settings *lang.Settings) (*core.Schema, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return build(decl, settings)
}

func build(decl *TypeDecl, settings *lang.Settings) (*core.Schema, error) {
	marked, err := validateMarker(decl)
	if err != nil {
		return nil, err
	}

	schema := core.NewSchema(decl.Name)
	schema.Abstract = decl.Abstract

	// Inherited concrete fields and translatable names come from abstract
	// ancestors, which are built recursively. Non-abstract parents do not
	// contribute; only abstract ancestors participate in inheritance.
	translatable := make(map[string]struct{})
	for _, parent := range decl.Parents {
		if !parent.Abstract {
			continue
		}
		ps, err := build(parent, settings)
		if err != nil {
			return nil, err
		}
		for _, f := range ps.Fields() {
			schema.AddField(f.Clone())
		}
		for _, name := range ps.Translatable {
			translatable[name] = struct{}{}
		}
	}

	translateLabels := decl.TranslateLabels == nil || *decl.TranslateLabels
	for _, f := range decl.Fields {
		if _, ok := marked[f.Name]; !ok {
			schema.AddField(f.Clone())
			continue
		}
		// The canonical name is erased from the physical schema and
		// replaced by its per-language clones.
		for _, clone := range Expand(f, f.Name, settings, translateLabels) {
			schema.AddField(clone)
		}
		translatable[f.Name] = struct{}{}
	}

	// The set is order-irrelevant; sorted for stable output.
	schema.Translatable = make([]string, 0, len(translatable))
	for name := range translatable {
		schema.Translatable = append(schema.Translatable, name)
	}
	sort.Strings(schema.Translatable)

	for name := range translatable {
		schema.BindAccessor(name, NewAccessor(name, settings))
	}

	// The default-language designation is kept only when it names an
	// attribute that actually exists on the physical schema.
	if decl.DefaultLanguageField != "" && schema.HasField(decl.DefaultLanguageField) {
		schema.DefaultLanguageField = decl.DefaultLanguageField
	}

	return schema, nil
}

// validateMarker checks the translate marker: every name unique and
// present among the type's own declared fields. It returns the marked
// names as a set.
func validateMarker(decl *TypeDecl) (map[string]struct{}, error) {
	marked := make(map[string]struct{}, len(decl.Translate))
	if len(decl.Translate) == 0 {
		return marked, nil
	}

	own := make(map[string]*core.FieldDecl, len(decl.Fields))
	for _, f := range decl.Fields {
		own[f.Name] = f
	}

	for _, name := range decl.Translate {
		if _, dup := marked[name]; dup {
			return nil, &core.ConfigError{
				Model:  decl.Name,
				Reason: fmt.Sprintf("translate marker repeats field %q; it must be a unique-name sequence", name),
			}
		}
		if f, ok := own[name]; !ok || f == nil {
			return nil, &core.FieldNotFoundError{Model: decl.Name, Field: name}
		}
		marked[name] = struct{}{}
	}
	return marked, nil
}
