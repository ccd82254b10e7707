package cmd

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-petshop/app/db/seeders"
	"github.com/Rakhulsr/go-petshop/app/helpers"
	"github.com/urfave/cli/v3"
)

func seedCommand(open OpenFunc) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Write the initial catalog if the database has none",
		Action: action(open, func(ctx context.Context, app *App, c *cli.Command) error {
			catalog, err := seeders.DefaultCatalog()
			if err != nil {
				return err
			}
			seeded, err := seeders.SeedCatalogIfEmpty(ctx, app.Store, catalog, app.CategoryRepo, app.ProductRepo)
			if err != nil {
				return err
			}
			if !seeded {
				fmt.Fprintln(app.Out, "Catalog already present, nothing to do.")
			}
			return nil
		}),
	}
}

func seedDemoCommand(open OpenFunc) *cli.Command {
	return &cli.Command{
		Name:  "seed-demo",
		Usage: "Create fake customers for local testing",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "count", Value: 5},
			&cli.StringFlag{Name: "password", Value: "Password1"},
		},
		Action: action(open, func(ctx context.Context, app *App, c *cli.Command) error {
			hash, err := app.Hasher.Hash(c.String("password"))
			if err != nil {
				return err
			}
			customers, err := seeders.SeedDemoCustomers(ctx, app.Store, app.CustomerRepo, hash, int(c.Int("count")))
			if err != nil {
				return err
			}
			for _, customer := range customers {
				fmt.Fprintf(app.Out, "%d\t%s\t%s\n", customer.ID, customer.Email, customer.Name)
			}
			return nil
		}),
	}
}

func registerCommand(open OpenFunc) *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Create an account and log in",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Required: true},
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "phone", Required: true},
			&cli.StringFlag{Name: "address", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
			&cli.StringFlag{Name: "confirm", Required: true},
		},
		Action: action(open, func(ctx context.Context, app *App, c *cli.Command) error {
			if err := app.RequireSession(); err != nil {
				return err
			}
			form := helpers.RegistrationForm{
				Name:            c.String("name"),
				Email:           c.String("email"),
				Phone:           c.String("phone"),
				Address:         c.String("address"),
				Password:        c.String("password"),
				ConfirmPassword: c.String("confirm"),
			}
			errs, err := helpers.ValidateForm(app.Validate, form)
			if err != nil {
				return err
			}
			if errs != nil {
				return formError(app.Out, errs)
			}

			id, err := app.Auth.Register(ctx, form.Input())
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Registered and logged in as customer %d.\n", id)
			return nil
		}),
	}
}

func loginCommand(open OpenFunc) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Log in with email and password",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
		},
		Action: action(open, func(ctx context.Context, app *App, c *cli.Command) error {
			if err := app.RequireSession(); err != nil {
				return err
			}
			customer, err := app.Auth.Login(ctx, c.String("email"), c.String("password"))
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Welcome back, %s.\n", customer.Name)
			return nil
		}),
	}
}

func logoutCommand(open OpenFunc) *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Forget the logged-in customer on this device",
		Action: action(open, func(ctx context.Context, app *App, c *cli.Command) error {
			if err := app.Auth.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(app.Out, "Logged out.")
			return nil
		}),
	}
}

func whoamiCommand(open OpenFunc) *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the logged-in customer",
		Action: action(open, func(ctx context.Context, app *App, c *cli.Command) error {
			if _, err := app.RequireCustomer(); err != nil {
				return err
			}
			customer, err := app.Auth.CurrentUser(ctx)
			if err != nil {
				return err
			}
			if customer == nil {
				fmt.Fprintln(app.Out, "Session refers to a deleted account.")
				return nil
			}
			orders, err := app.Orders.CustomerOrderCount(ctx, customer.ID)
			if err != nil {
				return err
			}
			printCustomer(app.Out, customer, orders)
			return nil
		}),
	}
}

func passwdCommand(open OpenFunc) *cli.Command {
	return &cli.Command{
		Name:  "passwd",
		Usage: "Change the account password",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "current", Required: true},
			&cli.StringFlag{Name: "new", Required: true},
			&cli.StringFlag{Name: "confirm", Required: true},
		},
		Action: action(open, func(ctx context.Context, app *App, c *cli.Command) error {
			if err := app.RequireSession(); err != nil {
				return err
			}
			form := helpers.ChangePasswordForm{
				CurrentPassword: c.String("current"),
				NewPassword:     c.String("new"),
				ConfirmPassword: c.String("confirm"),
			}
			errs, err := helpers.ValidateForm(app.Validate, form)
			if err != nil {
				return err
			}
			if errs != nil {
				return formError(app.Out, errs)
			}
			if err := app.Auth.ChangePassword(ctx, form.CurrentPassword, form.NewPassword); err != nil {
				return err
			}
			fmt.Fprintln(app.Out, "Password changed.")
			return nil
		}),
	}
}

func deleteAccountCommand(open OpenFunc) *cli.Command {
	return &cli.Command{
		Name:  "delete-account",
		Usage: "Delete the account with its cart and orders",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "password", Required: true},
		},
		Action: action(open, func(ctx context.Context, app *App, c *cli.Command) error {
			if err := app.RequireSession(); err != nil {
				return err
			}
			if err := app.Auth.DeleteAccount(ctx, c.String("password")); err != nil {
				return err
			}
			fmt.Fprintln(app.Out, "Account deleted.")
			return nil
		}),
	}
}

func profileCommand(open OpenFunc) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Edit the account profile",
		Commands: []*cli.Command{
			{
				Name:  "update",
				Usage: "Change name, email, phone or address",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{Name: "phone"},
					&cli.StringFlag{Name: "address"},
				},
				Action: action(open, func(ctx context.Context, app *App, c *cli.Command) error {
					if _, err := app.RequireCustomer(); err != nil {
						return err
					}
					current, err := app.Auth.CurrentUser(ctx)
					if err != nil {
						return err
					}
					if current == nil {
						return fmt.Errorf("session refers to a deleted account")
					}

					form := helpers.ProfileForm{
						Name:    flagOr(c, "name", current.Name),
						Email:   flagOr(c, "email", current.Email),
						Phone:   flagOr(c, "phone", current.Phone),
						Address: flagOr(c, "address", current.Address),
					}
					errs, err := helpers.ValidateForm(app.Validate, form)
					if err != nil {
						return err
					}
					if errs != nil {
						return formError(app.Out, errs)
					}

					updated, err := app.Profile.UpdateProfile(ctx, form.Input())
					if err != nil {
						return err
					}
					printCustomer(app.Out, updated, -1)
					return nil
				}),
			},
			{
				Name:      "image",
				Usage:     "Copy an image file in as the profile picture",
				ArgsUsage: "<path>",
				Action: action(open, func(ctx context.Context, app *App, c *cli.Command) error {
					if _, err := app.RequireCustomer(); err != nil {
						return err
					}
					path := c.Args().First()
					if path == "" {
						return fmt.Errorf("missing image path")
					}
					updated, err := app.Profile.SetProfileImage(ctx, path)
					if err != nil {
						return err
					}
					fmt.Fprintf(app.Out, "Profile image stored at %s\n", *updated.ProfileImagePath)
					return nil
				}),
			},
		},
	}
}

func flagOr(c *cli.Command, name, fallback string) string {
	if c.IsSet(name) {
		return c.String(name)
	}
	return fallback
}
