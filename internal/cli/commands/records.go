package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glossa-labs/transfield/pkg/core"
)

// NewRecordsCommand creates the records command group.
func NewRecordsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Store and read records through the logical field names",
		Long: `Work with records persisted in the local SQLite database. Writes and
reads go through the virtual accessors, so values land in (and resolve
from) the per-language concrete fields of the active language.`,
	}
	cmd.AddCommand(newRecordsPutCommand())
	cmd.AddCommand(newRecordsGetCommand())
	cmd.AddCommand(newRecordsListCommand())
	return cmd
}

func newRecordsPutCommand() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "put <model> <field>=<value> [<field>=<value>...]",
		Short: "Create a record, writing fields in the active language",
		Example: `  # Write the English title (en active by default)
  transfield records put article title="Hello world"

  # Write the French title into the same record
  transfield records put article --id <id> --lang fr title="Bonjour le monde"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			schema, ok := cmdCtx.Registry.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown model %q", args[0])
			}

			store, cleanup, err := cmdCtx.OpenStore()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := cmd.Context()
			if err := store.InitSchema(ctx, schema); err != nil {
				return err
			}

			rec := schema.NewRecord()
			if id != "" {
				rec, err = store.GetRecord(ctx, schema, id)
				if err != nil {
					return err
				}
			}

			for _, pair := range args[1:] {
				field, value, err := splitAssignment(pair)
				if err != nil {
					return err
				}
				if !rec.Set(field, value) {
					// The accessor found no concrete target, or the name is
					// not declared: surface it instead of dropping the value.
					return fmt.Errorf("model %q: no writable field for %q", schema.Name, field)
				}
			}

			// Updates rewrite the stored row in place; a failed assignment
			// or constraint violation never touches it.
			if id != "" {
				if err := store.UpdateRecord(ctx, rec); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
				return nil
			}

			savedID, err := store.SaveRecord(ctx, rec)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), savedID)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Update an existing record instead of creating one")
	return cmd
}

func newRecordsGetCommand() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "get <model> <field>",
		Short: "Read a field through the language fallback chain",
		Example: `  # Read the title as resolved for the active language
  transfield records get article title --id <id> --lang fr-ca`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			schema, ok := cmdCtx.Registry.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown model %q", args[0])
			}

			store, cleanup, err := cmdCtx.OpenStore()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := cmd.Context()
			if err := store.InitSchema(ctx, schema); err != nil {
				return err
			}
			rec, err := store.GetRecord(ctx, schema, id)
			if err != nil {
				return err
			}

			value, ok := rec.Get(args[1])
			if !ok {
				// Resolution came back empty: nothing set in the whole chain.
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Record ID")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newRecordsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <model>",
		Short: "List records with their resolved translatable fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			schema, ok := cmdCtx.Registry.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown model %q", args[0])
			}

			store, cleanup, err := cmdCtx.OpenStore()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := cmd.Context()
			if err := store.InitSchema(ctx, schema); err != nil {
				return err
			}
			records, err := store.ListRecords(ctx, schema)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, rec := range records {
				fmt.Fprintf(out, "%s%s\n", rec.ID, resolvedFields(schema, rec))
			}
			fmt.Fprintf(out, "%d records\n", len(records))
			return nil
		},
	}
}

// resolvedFields renders the translatable fields of one record as
// resolved for the active language.
func resolvedFields(schema *core.Schema, rec *core.Record) string {
	s := ""
	for _, name := range schema.Translatable {
		if v, ok := rec.Get(name); ok {
			s += fmt.Sprintf("  %s=%v", name, v)
		}
	}
	return s
}

// splitAssignment parses one field=value argument.
func splitAssignment(pair string) (string, string, error) {
	for i := 0; i < len(pair); i++ {
		if pair[i] == '=' {
			if i == 0 {
				break
			}
			return pair[:i], pair[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("expected <field>=<value>, got %q", pair)
}
