package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/glossa-labs/transfield/internal/cli/config"
	intconfig "github.com/glossa-labs/transfield/internal/config"
	"github.com/glossa-labs/transfield/internal/loader"
	"github.com/glossa-labs/transfield/internal/registry"
	"github.com/glossa-labs/transfield/internal/state"
	"github.com/glossa-labs/transfield/pkg/lang"
	"github.com/glossa-labs/transfield/pkg/trans"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *intconfig.Config
	Logger   *slog.Logger
	Settings *lang.Settings
	Registry *registry.SchemaRegistry
}

// NewCommandContext loads the model declarations, builds their schemas,
// and registers them. Declaration errors surface here, before any
// command logic runs.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	settings, err := cfg.Settings()
	if err != nil {
		return nil, err
	}

	decls, err := loader.New(logger).LoadDir(cfg.ModelsDir)
	if err != nil {
		return nil, err
	}

	reg := registry.NewSchemaRegistry()
	for _, decl := range decls {
		if decl.Abstract {
			// Abstract declarations only contribute to their children.
			continue
		}
		schema, err := trans.Build(decl, settings)
		if err != nil {
			return nil, err
		}
		reg.Register(schema)
	}
	logger.Debug("built model schemas", "count", reg.Count())

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Settings: settings,
		Registry: reg,
	}, nil
}

// OpenStore opens the record database, creating its directory if needed.
// The returned cleanup must be called (typically via defer).
func (c *CommandContext) OpenStore() (state.Store, func(), error) {
	if dir := filepath.Dir(c.Cfg.StatePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, nil, err
		}
	}

	store := state.NewSQLiteStore(c.Logger)
	if err := store.Open(c.Cfg.StatePath); err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

// getConfig returns the current configuration, falling back to defaults
// when no load has happened (help paths, tests).
func getConfig() *intconfig.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	cfg := &intconfig.Config{}
	intconfig.ApplyDefaults(cfg)
	return cfg
}
