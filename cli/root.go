// Package cli implements the jurisnote command line.
package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"jurisnote/app"
	"jurisnote/config"
	"jurisnote/logging"
)

type rootOptions struct {
	cfgFile string
	verbose bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "jurisnote",
		Short: "JurisNote - case-note notebook for Korean court decisions",
		Long: `JurisNote extracts classification, facts, issues, laws and holdings from
the text of a court decision with a hosted LLM and appends the reviewed note
to a spreadsheet or SQL table.

Configuration is read from environment variables (and .env), optionally
overlaid by a YAML file given with --config.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadDotEnv(slog.Default())
		},
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "YAML config file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")

	root.AddCommand(
		newAnalyzeCmd(opts),
		newBrowseCmd(opts),
		newExportCmd(opts),
		newInitSchemaCmd(opts),
		newConfigCmd(opts),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	return config.Load(o.cfgFile)
}

// buildApp loads configuration and wires the services. Logs go to stderr
// as text so stdout stays parseable.
func (o *rootOptions) buildApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if o.verbose {
		level = "debug"
	} else if level == "info" {
		level = "warn"
	}
	logger := logging.New(level, "text", cmd.ErrOrStderr())
	return app.Build(commandContext(cmd), cfg, logger)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
