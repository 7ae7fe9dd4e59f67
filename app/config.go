package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-settings-admin/go-settings-admin/internal/config"
)

func init() { //nolint: gochecknoinits
	configCmd.Flags().StringVar(&configPath, "config", "", "Path to the configuration directory")
	configCmd.Flags().BoolVar(&asJSON, "json", false, "Dump the configuration as JSON")

	rootCmd.AddCommand(configCmd)
}

var (
	asJSON bool

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration after overlay merging",
		RunE: func(_ *cobra.Command, _ []string) error {
			c, err := config.ReadConfig(configPath)
			if err != nil {
				return err
			}

			var out string

			if asJSON {
				out, err = config.DumpConfigJSON(c)
			} else {
				out, err = config.DumpConfig(c)
			}

			if err != nil {
				return err
			}

			fmt.Print(out)

			return nil
		},
	}
)
