package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// app is filled in by the root command before any subcommand runs.
type app struct {
	envFile string
	cfg     Config
	logger  *slog.Logger
}

// NewRootCommand builds the shipment CLI.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "shipment",
		Short:         "Traceable shipping orders on an append-only ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v, err := NewViper(a.envFile)
			if err != nil {
				return err
			}
			for key, flag := range map[string]string{
				"LEDGER_DRIVER":        "ledger-driver",
				"LEDGER_CONFIRMATIONS": "confirmations",
				"LEDGER_TIMEOUT":       "timeout",
			} {
				if err = v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
					return err
				}
			}
			if f := cmd.Flags().Lookup("port"); f != nil {
				if err = v.BindPFlag("HTTP_PORT", f); err != nil {
					return err
				}
			}

			a.cfg, err = LoadConfig(v)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			a.logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: a.cfg.SlogLevel()}))
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", ".env", "file to load environment variables from")
	flags.String("ledger-driver", DriverPebble, "ledger to use: pebble, postgres or ethereum")
	flags.Uint64("confirmations", 0, "blocks to await on top of the inclusion block")
	flags.Duration("timeout", 0, "how long an operation waits for its confirmations")

	root.AddCommand(
		newServeCommand(a),
		newMigrateCommand(a),
		newOrderCommand(a),
	)
	return root
}
