package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect JurisNote configuration",
		Long: `Inspect JurisNote configuration.

Configuration hierarchy (highest to lowest priority):
1. Environment variables (and .env)
2. Config file (--config)
3. Defaults`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		Long:  `Display the resolved configuration as YAML. Secrets are reported as set or unset, never printed.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			if f := cfg.ConfigFileUsed(); f != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Configuration file: %s\n\n", f)
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "No configuration file (environment and defaults)\n\n")
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, string(data))

			secrets := cfg.Secrets()
			names := make([]string, 0, len(secrets))
			for name := range secrets {
				names = append(names, name)
			}
			sort.Strings(names)

			fmt.Fprintln(out, "secrets:")
			for _, name := range names {
				state := "unset"
				if secrets[name] {
					state = "set"
				}
				fmt.Fprintf(out, "  %s: %s\n", name, state)
			}
			return nil
		},
	})
	return cmd
}
