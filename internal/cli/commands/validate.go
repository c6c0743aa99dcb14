package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate model declarations and language settings",
		Long: `Load the language settings and every model declaration, run the schema
builder over all of them, and report the first declaration error found.
A clean exit means every model expands successfully.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			codes := make([]string, 0, len(cmdCtx.Settings.Languages))
			for _, c := range cmdCtx.Settings.Codes() {
				codes = append(codes, string(c))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d models valid (languages %s, fallback %s)\n",
				cmdCtx.Registry.Count(), strings.Join(codes, " "), cmdCtx.Settings.Fallback)
			return nil
		},
	}
}
