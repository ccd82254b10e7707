package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rakhulsr/go-petshop/app/helpers"
	"github.com/urfave/cli/v3"
)

func cartCommand(open OpenFunc) *cli.Command {
	return &cli.Command{
		Name:  "cart",
		Usage: "Manage the shopping cart",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a product to the cart",
				ArgsUsage: "<product-id>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "qty", Value: 1},
				},
				Action: action(open, func(ctx context.Context, app *App, c *cli.Command) error {
					customerID, err := app.RequireCustomer()
					if err != nil {
						return err
					}
					productID, err := argUint(c, 0, "product id")
					if err != nil {
						return err
					}
					if _, err := app.Cart.AddToCart(ctx, customerID, productID, int(c.Int("qty"))); err != nil {
						return err
					}
					return printCart(ctx, app, customerID)
				}),
			},
			{
				Name:  "list",
				Usage: "Show the cart",
				Action: action(open, func(ctx context.Context, app *App, c *cli.Command) error {
					customerID, err := app.RequireCustomer()
					if err != nil {
						return err
					}
					return printCart(ctx, app, customerID)
				}),
			},
			{
				Name:      "set",
				Usage:     "Set the quantity of a cart line",
				ArgsUsage: "<cart-item-id> <quantity>",
				Action: action(open, func(ctx context.Context, app *App, c *cli.Command) error {
					customerID, err := app.RequireCustomer()
					if err != nil {
						return err
					}
					itemID, err := ownCartItem(ctx, app, c, customerID)
					if err != nil {
						return err
					}
					qty, err := argInt(c, 1, "quantity")
					if err != nil {
						return err
					}
					if err := app.Cart.UpdateQuantity(ctx, itemID, qty); err != nil {
						return err
					}
					return printCart(ctx, app, customerID)
				}),
			},
			{
				Name:      "rm",
				Usage:     "Remove a cart line, or every line of --product",
				ArgsUsage: "[cart-item-id]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "product", Usage: "product id"},
				},
				Action: action(open, func(ctx context.Context, app *App, c *cli.Command) error {
					customerID, err := app.RequireCustomer()
					if err != nil {
						return err
					}
					if raw := c.String("product"); raw != "" {
						productID, err := parseUint(raw)
						if err != nil {
							return fmt.Errorf("invalid product id %q", raw)
						}
						if err := app.Cart.RemoveProduct(ctx, customerID, productID); err != nil {
							return err
						}
						return printCart(ctx, app, customerID)
					}
					itemID, err := ownCartItem(ctx, app, c, customerID)
					if err != nil {
						return err
					}
					if err := app.Cart.RemoveFromCart(ctx, itemID); err != nil {
						return err
					}
					return printCart(ctx, app, customerID)
				}),
			},
			{
				Name:  "clear",
				Usage: "Empty the cart",
				Action: action(open, func(ctx context.Context, app *App, c *cli.Command) error {
					customerID, err := app.RequireCustomer()
					if err != nil {
						return err
					}
					if err := app.Cart.ClearCart(ctx, customerID); err != nil {
						return err
					}
					fmt.Fprintln(app.Out, "Cart cleared.")
					return nil
				}),
			},
			{
				Name:  "watch",
				Usage: "Print the cart every time it changes, until interrupted",
				Action: action(open, func(ctx context.Context, app *App, c *cli.Command) error {
					customerID, err := app.RequireCustomer()
					if err != nil {
						return err
					}
					ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
					defer stop()
					return watchCart(ctx, app, customerID)
				}),
			},
		},
	}
}

// ownCartItem reads the cart item id argument and checks it belongs to the
// customer.
func ownCartItem(ctx context.Context, app *App, c *cli.Command, customerID uint) (uint, error) {
	itemID, err := argUint(c, 0, "cart item id")
	if err != nil {
		return 0, err
	}
	item, err := app.Cart.CartItem(ctx, itemID)
	if err != nil {
		return 0, err
	}
	if item == nil || item.CustomerID != customerID {
		return 0, fmt.Errorf("cart item %d not found", itemID)
	}
	return itemID, nil
}

func watchCart(ctx context.Context, app *App, customerID uint) error {
	sub := app.Cart.WatchCart(ctx, customerID)
	defer sub.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-sub.Errors():
			return err
		case lines, ok := <-sub.Updates():
			if !ok {
				return nil
			}
			fmt.Fprintln(app.Out, "---")
			printLines(app, lines)
		}
	}
}

func checkoutCommand(open OpenFunc) *cli.Command {
	return &cli.Command{
		Name:  "checkout",
		Usage: "Turn the cart into an order",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "address", Usage: "shipping address, defaults to the profile address"},
			&cli.StringFlag{Name: "payment", Value: "Cash on Delivery"},
			&cli.StringFlag{Name: "notes"},
		},
		Action: action(open, func(ctx context.Context, app *App, c *cli.Command) error {
			customerID, err := app.RequireCustomer()
			if err != nil {
				return err
			}

			address := c.String("address")
			if !c.IsSet("address") {
				customer, err := app.Auth.CurrentUser(ctx)
				if err != nil {
					return err
				}
				if customer != nil {
					address = customer.Address
				}
			}

			form := helpers.CheckoutForm{
				ShippingAddress: address,
				PaymentMethod:   c.String("payment"),
				Notes:           c.String("notes"),
			}
			errs, err := helpers.ValidateForm(app.Validate, form)
			if err != nil {
				return err
			}
			if errs != nil {
				return formError(app.Out, errs)
			}

			lines, err := app.Cart.CartWithProducts(ctx, customerID)
			if err != nil {
				return err
			}
			orderID, err := app.Orders.CreateOrderFromCart(ctx, form.Input(customerID), lines)
			if err != nil {
				return err
			}

			order, err := app.Orders.OrderWithItems(ctx, orderID)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Order placed: %s, total %s\n", order.OrderCode, app.Money.Format(order.TotalAmount))
			return nil
		}),
	}
}
