// Package loader reads model declarations from YAML files and resolves
// their inheritance into builder-ready type declarations.
package loader

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/glossa-labs/transfield/pkg/core"
	"github.com/glossa-labs/transfield/pkg/trans"
)

// identifierPattern constrains model and field names to plain attribute
// names; concrete column names are derived from them verbatim.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ParseError reports a malformed model declaration file.
type ParseError struct {
	File    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

// fieldYAML is an internal type for YAML unmarshaling.
type fieldYAML struct {
	Name      string         `yaml:"name"`
	Type      string         `yaml:"type"`
	Nullable  bool           `yaml:"nullable"`
	Required  bool           `yaml:"required"`
	Default   any            `yaml:"default"`
	MaxLength int            `yaml:"max_length"`
	Label     string         `yaml:"label"`
	Choices   []choiceYAML   `yaml:"choices"`
	Meta      map[string]any `yaml:"meta"`
}

// choiceYAML is an internal type for YAML unmarshaling.
type choiceYAML struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// modelYAML is an internal type for YAML unmarshaling.
type modelYAML struct {
	Name                 string      `yaml:"name"`
	Abstract             bool        `yaml:"abstract"`
	Extends              []string    `yaml:"extends"`
	Fields               []fieldYAML `yaml:"fields"`
	Translate            []string    `yaml:"translate"`
	TranslateLabels      *bool       `yaml:"translate_labels"`
	DefaultLanguageField string      `yaml:"default_language_field"`
}

// validFieldTypes lists the accepted field type names.
var validFieldTypes = map[string]core.FieldType{
	"":         core.FieldString, // unspecified means string
	"string":   core.FieldString,
	"text":     core.FieldText,
	"int":      core.FieldInt,
	"float":    core.FieldFloat,
	"bool":     core.FieldBool,
	"datetime": core.FieldDateTime,
}

// Loader reads model declaration files.
type Loader struct {
	logger *slog.Logger
}

// New creates a loader. A nil logger discards log output.
func New(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{logger: logger}
}

// LoadDir reads every .yaml/.yml file under dir (one model declaration
// per file), resolves extends references, and returns the declarations
// sorted by model name. Abstract declarations are included; callers
// decide whether to build them standalone.
func (l *Loader) LoadDir(dir string) ([]*trans.TypeDecl, error) {
	byName := make(map[string]*modelYAML)
	files := make(map[string]string) // model name → source file, for error context

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isModelFile(d.Name()) {
			return nil
		}

		model, err := l.loadFile(path)
		if err != nil {
			return err
		}
		if prev, dup := files[model.Name]; dup {
			return &ParseError{File: path, Message: fmt.Sprintf("model %q already declared in %s", model.Name, prev)}
		}
		byName[model.Name] = model
		files[model.Name] = path
		return nil
	})
	if err != nil {
		return nil, err
	}

	decls := make([]*trans.TypeDecl, 0, len(byName))
	resolved := make(map[string]*trans.TypeDecl)
	for name := range byName {
		decl, err := resolve(name, byName, files, resolved, nil)
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}

	sort.Slice(decls, func(i, j int) bool { return decls[i].Name < decls[j].Name })
	l.logger.Debug("loaded model declarations", "dir", dir, "count", len(decls))
	return decls, nil
}

// loadFile parses one model declaration file.
func (l *Loader) loadFile(path string) (*modelYAML, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	// Strict decoding: unknown keys are declaration mistakes, not
	// extension points.
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	var model modelYAML
	if err := dec.Decode(&model); err != nil {
		return nil, &ParseError{File: path, Message: fmt.Sprintf("invalid YAML: %v", err)}
	}

	if model.Name == "" {
		return nil, &ParseError{File: path, Message: "model declaration needs a name"}
	}
	if !identifierPattern.MatchString(model.Name) {
		return nil, &ParseError{File: path, Message: fmt.Sprintf("model name %q is not a valid identifier", model.Name)}
	}
	for _, f := range model.Fields {
		if !identifierPattern.MatchString(f.Name) {
			return nil, &ParseError{File: path, Message: fmt.Sprintf("field name %q is not a valid identifier", f.Name)}
		}
		if _, ok := validFieldTypes[strings.ToLower(f.Type)]; !ok {
			return nil, &ParseError{File: path, Message: fmt.Sprintf("field %q: unknown type %q", f.Name, f.Type)}
		}
	}

	l.logger.Debug("parsed model declaration", "file", path, "model", model.Name)
	return &model, nil
}

// resolve converts a parsed model into a TypeDecl, recursively resolving
// extends references and rejecting cycles.
func resolve(name string, byName map[string]*modelYAML, files map[string]string, resolved map[string]*trans.TypeDecl, stack []string) (*trans.TypeDecl, error) {
	if decl, ok := resolved[name]; ok {
		return decl, nil
	}
	for _, s := range stack {
		if s == name {
			return nil, &ParseError{
				File:    files[name],
				Message: fmt.Sprintf("inheritance cycle: %s -> %s", strings.Join(stack, " -> "), name),
			}
		}
	}

	model, ok := byName[name]
	if !ok {
		parent := ""
		if len(stack) > 0 {
			parent = files[stack[len(stack)-1]]
		}
		return nil, &ParseError{File: parent, Message: fmt.Sprintf("extends unknown model %q", name)}
	}

	decl := &trans.TypeDecl{
		Name:                 model.Name,
		Abstract:             model.Abstract,
		Translate:            model.Translate,
		TranslateLabels:      model.TranslateLabels,
		DefaultLanguageField: model.DefaultLanguageField,
	}
	for _, f := range model.Fields {
		decl.Fields = append(decl.Fields, toFieldDecl(f))
	}
	for _, parentName := range model.Extends {
		parent, err := resolve(parentName, byName, files, resolved, append(stack, name))
		if err != nil {
			return nil, err
		}
		decl.Parents = append(decl.Parents, parent)
	}

	resolved[name] = decl
	return decl, nil
}

// toFieldDecl maps a parsed field to its declaration. A YAML null default
// counts as no default at all.
func toFieldDecl(f fieldYAML) *core.FieldDecl {
	decl := &core.FieldDecl{
		Name:      f.Name,
		Type:      validFieldTypes[strings.ToLower(f.Type)],
		Nullable:  f.Nullable,
		Required:  f.Required,
		MaxLength: f.MaxLength,
		Label:     f.Label,
		Meta:      f.Meta,
	}
	if f.Default != nil {
		decl.HasDefault = true
		decl.Default = f.Default
	}
	for _, c := range f.Choices {
		decl.Choices = append(decl.Choices, core.Choice{Value: c.Value, Label: c.Label})
	}
	return decl
}

func isModelFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
