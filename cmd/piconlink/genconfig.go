package main

import (
	"fmt"

	"github.com/arthur-debert/piconlink/pkg/config"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// newGenConfigCmd prints the effective configuration as TOML, ready to
// be saved as a piconlink.toml and edited.
func newGenConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gen-config",
		Short: "Print the effective configuration as TOML",
		Long: `Print the configuration piconlink would run with, after layering the
built-in defaults, any piconlink.toml or piconlink.yaml found, and
PICONLINK_* environment variables. Redirect the output to a file to use
it as a starting point for your own configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			data, err := toml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
