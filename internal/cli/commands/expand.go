package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glossa-labs/transfield/pkg/core"
	"github.com/glossa-labs/transfield/pkg/lang"
)

// NewExpandCommand creates the expand command.
func NewExpandCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expand [model...]",
		Short: "Show the expanded per-language field layout",
		Long: `Build the declared models and print their physical schemas: every
translatable field replaced by one concrete field per configured
language, with the constraint adjustments applied.`,
		Example: `  # Expand all models
  transfield expand

  # Expand a single model
  transfield expand article`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(cmd, args)
		},
	}
	return cmd
}

func runExpand(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	schemas := cmdCtx.Registry.All()
	if len(args) > 0 {
		schemas = schemas[:0]
		for _, name := range args {
			schema, ok := cmdCtx.Registry.Get(name)
			if !ok {
				return fmt.Errorf("unknown model %q", name)
			}
			schemas = append(schemas, schema)
		}
	}
	sort.Slice(schemas, func(i, j int) bool { return schemas[i].Name < schemas[j].Name })

	out := cmd.OutOrStdout()
	for _, schema := range schemas {
		fmt.Fprintf(out, "model %s\n", schema.Name)
		for _, name := range schema.Translatable {
			fmt.Fprintf(out, "  translatable: %s -> %s\n", name, strings.Join(cmdCtx.Settings.FieldNames(name), ", "))
		}
		if schema.DefaultLanguageField != "" {
			fmt.Fprintf(out, "  default language field: %s\n", schema.DefaultLanguageField)
		}
		for _, f := range schema.Fields() {
			fmt.Fprintf(out, "  %-32s %-9s %s\n", f.Name, f.Type, fieldNotes(cmdCtx.Settings, f))
		}
		fmt.Fprintln(out)
	}
	return nil
}

// fieldNotes summarizes the constraints of one concrete field.
func fieldNotes(settings *lang.Settings, f *core.FieldDecl) string {
	var notes []string
	if f.Canonical != "" {
		notes = append(notes, "from "+f.Canonical)
		if f.Name == settings.FallbackFieldName(f.Canonical) {
			notes = append(notes, "fallback")
		}
	}
	if f.Nullable {
		notes = append(notes, "null")
	}
	if f.Required {
		notes = append(notes, "required")
	}
	if f.HasDefault {
		notes = append(notes, fmt.Sprintf("default=%v", f.Default))
	}
	if f.MaxLength > 0 {
		notes = append(notes, fmt.Sprintf("max=%d", f.MaxLength))
	}
	if f.Label != "" {
		notes = append(notes, fmt.Sprintf("label=%q", f.Label))
	}
	return strings.Join(notes, " ")
}
