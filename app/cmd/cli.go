package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/Rakhulsr/go-petshop/app/configs"
	"github.com/urfave/cli/v3"
)

// OpenFunc returns the process App, building it on first use.
type OpenFunc func(ctx context.Context) (*App, error)

func RunCli(env configs.ENV) {
	var app *App
	open := func(ctx context.Context) (*App, error) {
		if app != nil {
			return app, nil
		}
		a, err := NewApp(ctx, env, os.Stdout)
		if err != nil {
			return nil, err
		}
		app = a
		return app, nil
	}

	err := NewRootCommand(open).Run(context.Background(), os.Args)
	if app != nil {
		if closeErr := app.Close(); closeErr != nil {
			log.Printf("RunCli: failed to close store: %v", closeErr)
		}
	}
	if err != nil {
		log.Fatal(err)
	}
}

// Static returns an OpenFunc for an App that is already built.
func Static(app *App) OpenFunc {
	return func(context.Context) (*App, error) { return app, nil }
}

func NewRootCommand(open OpenFunc) *cli.Command {
	return &cli.Command{
		Name:  "petshop",
		Usage: "Pet shop storefront",
		Commands: []*cli.Command{
			migrateCommand(open),
			seedCommand(open),
			seedDemoCommand(open),
			generateKeysCommand(),
			registerCommand(open),
			loginCommand(open),
			logoutCommand(open),
			whoamiCommand(open),
			passwdCommand(open),
			deleteAccountCommand(open),
			profileCommand(open),
			categoriesCommand(open),
			productsCommand(open),
			productCommand(open),
			searchCommand(open),
			cartCommand(open),
			checkoutCommand(open),
			ordersCommand(open),
		},
	}
}

// action adapts a handler that needs the App to a cli action.
func action(open OpenFunc, fn func(ctx context.Context, app *App, c *cli.Command) error) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		app, err := open(ctx)
		if err != nil {
			return err
		}
		return fn(ctx, app, c)
	}
}

func migrateCommand(open OpenFunc) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Run database migration",
		Action: action(open, func(ctx context.Context, app *App, c *cli.Command) error {
			if err := app.Bootstrap(ctx); err != nil {
				return err
			}
			log.Println("✅ Migration complete")
			return nil
		}),
	}
}

func generateKeysCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate-keys",
		Usage: "Generate new session authentication and encryption keys",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Value: "session_keys.env", Usage: "file the keys are written to"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := configs.GenerateAndPrintSessionKeys(c.String("out")); err != nil {
				return err
			}
			log.Println("✅ Key generation complete. Please copy the keys to your .env file.")
			return nil
		},
	}
}

func argUint(c *cli.Command, index int, name string) (uint, error) {
	raw := c.Args().Get(index)
	if raw == "" {
		return 0, fmt.Errorf("missing %s", name)
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return uint(n), nil
}

func argInt(c *cli.Command, index int, name string) (int, error) {
	raw := c.Args().Get(index)
	if raw == "" {
		return 0, fmt.Errorf("missing %s", name)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return n, nil
}

// formError prints field messages and returns a summary error.
func formError(out io.Writer, errs map[string]string) error {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, "  - "+errs[k])
	}
	fmt.Fprintln(out, strings.Join(lines, "\n"))
	return fmt.Errorf("invalid input")
}
