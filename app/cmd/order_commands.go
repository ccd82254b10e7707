package cmd

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-petshop/app/models"
	"github.com/Rakhulsr/go-petshop/app/services"
	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v3"
)

func ordersCommand(open OpenFunc) *cli.Command {
	return &cli.Command{
		Name:  "orders",
		Usage: "Order history and status",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List your orders, most recent first",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "status", Usage: "list every order with this status instead"},
				},
				Action: action(open, func(ctx context.Context, app *App, c *cli.Command) error {
					if raw := c.String("status"); raw != "" {
						status, err := models.ParseOrderStatus(raw)
						if err != nil {
							return fmt.Errorf("%w: %v", services.ErrInvalidStatus, err)
						}
						orders, err := app.Orders.OrdersByStatus(ctx, status)
						if err != nil {
							return err
						}
						printOrders(app, orders)
						return nil
					}

					customerID, err := app.RequireCustomer()
					if err != nil {
						return err
					}
					orders, err := app.Orders.CustomerOrdersWithItems(ctx, customerID)
					if err != nil {
						return err
					}
					printOrders(app, orders)
					return nil
				}),
			},
			{
				Name:      "show",
				Usage:     "Show one order by id or code",
				ArgsUsage: "<order-id|order-code>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "debug", Usage: "dump the raw record"},
				},
				Action: action(open, func(ctx context.Context, app *App, c *cli.Command) error {
					customerID, err := app.RequireCustomer()
					if err != nil {
						return err
					}
					order, err := ownOrder(ctx, app, c.Args().First(), customerID)
					if err != nil {
						return err
					}
					if c.Bool("debug") {
						spew.Fdump(app.Out, order)
						return nil
					}
					printOrder(app, order)
					return nil
				}),
			},
			{
				Name:      "status",
				Usage:     "Move an order to its next status, or overwrite it with --force",
				ArgsUsage: "<order-id> <status>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "force", Usage: "skip the transition check"},
				},
				Action: action(open, func(ctx context.Context, app *App, c *cli.Command) error {
					orderID, err := argUint(c, 0, "order id")
					if err != nil {
						return err
					}
					status, err := models.ParseOrderStatus(c.Args().Get(1))
					if err != nil {
						return fmt.Errorf("%w: %v", services.ErrInvalidStatus, err)
					}
					update := app.Orders.AdvanceOrderStatus
					if c.Bool("force") {
						update = app.Orders.UpdateOrderStatus
					}
					if err := update(ctx, orderID, status); err != nil {
						return err
					}
					fmt.Fprintf(app.Out, "Order %d is now %s.\n", orderID, status)
					return nil
				}),
			},
			{
				Name:      "cancel",
				Usage:     "Cancel one of your orders",
				ArgsUsage: "<order-id|order-code>",
				Action: action(open, func(ctx context.Context, app *App, c *cli.Command) error {
					customerID, err := app.RequireCustomer()
					if err != nil {
						return err
					}
					order, err := ownOrder(ctx, app, c.Args().First(), customerID)
					if err != nil {
						return err
					}
					if err := app.Orders.CancelOrder(ctx, order.ID); err != nil {
						return err
					}
					fmt.Fprintf(app.Out, "Order %s cancelled.\n", order.OrderCode)
					return nil
				}),
			},
		},
	}
}

// ownOrder resolves ref as an id or an order code and hides other customers'
// orders.
func ownOrder(ctx context.Context, app *App, ref string, customerID uint) (*models.Order, error) {
	if ref == "" {
		return nil, fmt.Errorf("missing order id or code")
	}

	var (
		order *models.Order
		err   error
	)
	if id, parseErr := parseUint(ref); parseErr == nil {
		order, err = app.Orders.OrderWithItems(ctx, id)
	} else {
		order, err = app.Orders.OrderByCode(ctx, ref)
	}
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, services.ErrOrderNotFound
	}
	return order, nil
}
