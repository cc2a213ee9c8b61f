package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"shipment/internal/core/application/usecases/commands"
	"shipment/internal/core/application/usecases/queries"

	"github.com/spf13/cobra"
)

// newOrderCommand groups one-shot ledger operations. A pebble ledger is locked by
// its process, so these cannot share a data directory with a running server.
func newOrderCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Create, change and read shipping orders",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "create <code> <distributorId> <receptorId>",
			Short: "Create a pending shipping order",
			Args:  cobra.ExactArgs(3),
			RunE: withRoot(a, func(ctx context.Context, out io.Writer, root *CompositionRoot, args []string) error {
				command, err := commands.NewCreateOrderCommand(map[string]string{
					commands.FieldCode:          args[0],
					commands.FieldDistributorID: args[1],
					commands.FieldReceptorID:    args[2],
				})
				if err != nil {
					return err
				}
				receipt, err := root.CreateCreateOrderCommandHandler().Handle(ctx, command)
				if err != nil {
					return err
				}
				printReceipt(out, receipt)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "deliver <code>",
			Short: "Mark a pending order delivered",
			Args:  cobra.ExactArgs(1),
			RunE: withRoot(a, func(ctx context.Context, out io.Writer, root *CompositionRoot, args []string) error {
				receipt, err := root.CreateDeliverOrderCommandHandler().Handle(ctx, commands.NewDeliverOrderCommand(args[0]))
				if err != nil {
					return err
				}
				printReceipt(out, receipt)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "cancel <code>",
			Short: "Cancel a pending order",
			Args:  cobra.ExactArgs(1),
			RunE: withRoot(a, func(ctx context.Context, out io.Writer, root *CompositionRoot, args []string) error {
				receipt, err := root.CreateCancelOrderCommandHandler().Handle(ctx, commands.NewCancelOrderCommand(args[0]))
				if err != nil {
					return err
				}
				printReceipt(out, receipt)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "get <code>",
			Short: "Show one order",
			Args:  cobra.ExactArgs(1),
			RunE: withRoot(a, func(ctx context.Context, out io.Writer, root *CompositionRoot, args []string) error {
				query, err := queries.NewGetOrderQuery(args[0])
				if err != nil {
					return err
				}
				o, err := root.CreateGetOrderQueryHandler().Handle(ctx, query)
				if err != nil {
					return err
				}
				printOrders(out, []queries.OrderResponse{o})
				return nil
			}),
		},
		&cobra.Command{
			Use:   "list",
			Short: "List every order in creation order",
			Args:  cobra.NoArgs,
			RunE: withRoot(a, func(ctx context.Context, out io.Writer, root *CompositionRoot, _ []string) error {
				orders, err := root.CreateGetAllOrdersQueryHandler().Handle(ctx, queries.NewGetAllOrdersQuery())
				if err != nil {
					return err
				}
				printOrders(out, orders)
				return nil
			}),
		},
	)
	return cmd
}

type rootFunc func(ctx context.Context, out io.Writer, root *CompositionRoot, args []string) error

// withRoot opens the ledger for the duration of one command. Background jobs run
// too, so confirmations can accrue on a local ledger.
func withRoot(a *app, fn rootFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		root, err := NewCompositionRoot(ctx, a.cfg, a.logger)
		defer func() {
			if cerr := root.Close(); cerr != nil {
				a.logger.Error("Failed to release resources", "error", cerr)
			}
		}()
		if err != nil {
			return err
		}

		jobManager := root.CreateJobManager()
		if err = jobManager.StartAll(); err != nil {
			return err
		}
		defer jobManager.StopAll()

		return fn(ctx, cmd.OutOrStdout(), root, args)
	}
}

func printReceipt(out io.Writer, r *commands.Receipt) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "Transaction\t%s\n", r.TransactionHash)
	fmt.Fprintf(w, "Block\t%d\n", r.BlockNumber)
	fmt.Fprintf(w, "Created\t%s\n", r.CreatedAt.Format("2006-01-02T15:04:05.000Z07:00"))
	if r.Order != nil {
		fmt.Fprintf(w, "Code\t%s\n", r.Order.Code)
		fmt.Fprintf(w, "Distributor\t%s\n", r.Order.DistributorID)
		fmt.Fprintf(w, "Receptor\t%s\n", r.Order.ReceptorID)
	}
	w.Flush()
}

func printOrders(out io.Writer, orders []queries.OrderResponse) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "Code\tDistributor\tReceptor\tStatus\tCreator")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", o.Code, o.DistributorID, o.ReceptorID, o.Status, o.Creator)
	}
	w.Flush()
}
