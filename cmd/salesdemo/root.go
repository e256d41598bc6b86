package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acme/salescrm/internal/buildinfo"
	"github.com/acme/salescrm/pkg/config"
)

func newRootCmd() *cobra.Command {
	opts := scenarioOptions{}
	var cfg *config.Config

	cmd := &cobra.Command{
		Use:          "salesdemo",
		Short:        "Walk a customer and a sales order through the crm and sales contexts",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			if err := config.ValidateForProduction(loaded); err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, cfg, opts)
		},
	}
	bindScenarioFlags(cmd, &opts)

	run := &cobra.Command{
		Use:   "run",
		Short: "Run the demo scenario (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, cfg, opts)
		},
	}
	bindScenarioFlags(run, &opts)

	version := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		// Skip config loading.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}

	cmd.AddCommand(run, version)
	return cmd
}

func bindScenarioFlags(cmd *cobra.Command, opts *scenarioOptions) {
	cmd.Flags().StringVar(&opts.Name, "name", "Juan Perez", "Customer name")
	cmd.Flags().StringVar(&opts.Email, "email", "u20221a333@upc.edu.pe", "Customer email")
	cmd.Flags().StringVar(&opts.Price, "price", "29.99", "Unit price of the ordered product")
	cmd.Flags().IntVar(&opts.Quantity, "quantity", 2, "Ordered quantity")
	cmd.Flags().StringVar(&opts.Currency, "currency", "", "ISO 4217 currency of the price (default DEFAULT_CURRENCY)")
}
