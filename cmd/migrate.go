package cmd

import (
	"fmt"

	"shipment/internal/adapters/out/postgres"
	"shipment/internal/adapters/out/postgres/migrations"

	"github.com/spf13/cobra"
)

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Manage the schema of the postgres ledger",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.LedgerDriver != DriverPostgres {
				return fmt.Errorf("migrations only apply to the %s ledger, LEDGER_DRIVER is %s",
					DriverPostgres, a.cfg.LedgerDriver)
			}

			_, db, err := postgres.Open(a.cfg.Postgres().DSN())
			if err != nil {
				return err
			}
			defer db.Close()

			action := "up"
			if len(args) > 0 {
				action = args[0]
			}

			switch action {
			case "down":
				err = migrations.Down(db)
			case "status":
				err = migrations.Status(db)
			default:
				err = migrations.Up(db)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: done\n", action)
			return nil
		},
	}
}
