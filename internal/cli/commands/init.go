package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const defaultConfigYAML = `# transfield project configuration
models_dir: models
state_path: .transfield/records.db

default_language: en
languages:
  - code: en
    label: English
  - code: fr
    label: French
`

const exampleModelYAML = `name: article
default_language_field: default_lang
translate: [title, body]
fields:
  - name: title
    type: string
    max_length: 200
    required: true
    label: Title
  - name: body
    type: text
    nullable: true
    label: Body
  - name: default_lang
    type: string
    max_length: 8
    nullable: true
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new transfield project",
		Long: `Initialize a new transfield project.

This creates:
  - transfield.yaml with an en/fr language set
  - models/ with an example article declaration`,
		Example: `  # Initialize in the current directory
  transfield init

  # Initialize in a new directory
  transfield init my-project`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	if err := os.MkdirAll(filepath.Join(dir, "models"), 0o750); err != nil {
		return err
	}

	files := map[string]string{
		filepath.Join(dir, "transfield.yaml"):        defaultConfigYAML,
		filepath.Join(dir, "models", "article.yaml"): exampleModelYAML,
	}
	for path, content := range files {
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nNext: transfield expand")
	return nil
}
