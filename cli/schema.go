package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"jurisnote/app"
	"jurisnote/logging"
	"jurisnote/models"
	"jurisnote/repository"
)

func newInitSchemaCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init-schema",
		Short: "Create the notes table or header row",
		Long: `init-schema prepares the configured store for the active revision: it
creates the SQL table, or writes the header row into an empty sheet. Running
it again is harmless.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			layout, err := models.LayoutFor(cfg.Revision)
			if err != nil {
				return err
			}
			logger := logging.New(cfg.LogLevel, "text", cmd.ErrOrStderr())
			ctx := commandContext(cmd)

			store, err := app.OpenStore(ctx, cfg, layout)
			if err != nil {
				return fmt.Errorf("open %s store: %w", cfg.StoreBackend, err)
			}
			defer store.Close()

			if s, ok := store.(repository.SchemaInitializer); ok {
				if err := s.EnsureSchema(ctx); err != nil {
					return err
				}
			}
			logger.Info("schema ready", "backend", cfg.StoreBackend, "revision", layout.Revision, "columns", len(layout.Columns))
			fmt.Fprintf(cmd.OutOrStdout(), "%s store ready for revision %s\n", cfg.StoreBackend, layout.Revision)
			return nil
		},
	}
}
