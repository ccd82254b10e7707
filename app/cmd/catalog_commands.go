package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rakhulsr/go-petshop/app/models"
	"github.com/Rakhulsr/go-petshop/app/services"
	"github.com/urfave/cli/v3"
)

func categoriesCommand(open OpenFunc) *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "List product categories",
		Action: action(open, func(ctx context.Context, app *App, c *cli.Command) error {
			categories, err := app.Catalog.AllCategories(ctx)
			if err != nil {
				return err
			}
			w := newTable(app.Out)
			fmt.Fprintln(w, "ID\tNAME\tSLUG")
			for _, category := range categories {
				fmt.Fprintf(w, "%d\t%s\t%s\n", category.ID, category.Name, category.Slug)
			}
			return w.Flush()
		}),
	}
}

func productsCommand(open OpenFunc) *cli.Command {
	return &cli.Command{
		Name:  "products",
		Usage: "List products, optionally of one category",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Usage: "category id, slug or name"},
		},
		Action: action(open, func(ctx context.Context, app *App, c *cli.Command) error {
			products, err := productsFor(ctx, app, strings.TrimSpace(c.String("category")))
			if err != nil {
				return err
			}
			printProducts(app, products)
			return nil
		}),
	}
}

func productsFor(ctx context.Context, app *App, category string) ([]models.Product, error) {
	if category == "" {
		return app.Catalog.AllProducts(ctx)
	}
	if id, err := parseUint(category); err == nil {
		return app.Catalog.ProductsByCategory(ctx, id)
	}
	found, err := app.Catalog.CategoryBySlug(ctx, strings.ToLower(category))
	if err == nil {
		return app.Catalog.ProductsByCategory(ctx, found.ID)
	}
	if !errors.Is(err, services.ErrCategoryNotFound) {
		return nil, err
	}
	return app.Catalog.ProductsByCategoryName(ctx, category)
}

func productCommand(open OpenFunc) *cli.Command {
	return &cli.Command{
		Name:      "product",
		Usage:     "Show one product",
		ArgsUsage: "<product-id>",
		Action: action(open, func(ctx context.Context, app *App, c *cli.Command) error {
			id, err := argUint(c, 0, "product id")
			if err != nil {
				return err
			}
			product, err := app.Catalog.ProductByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "%s (#%d)\n", product.Name, product.ID)
			if product.Category != nil {
				fmt.Fprintf(app.Out, "Category: %s\n", product.Category.Name)
			}
			fmt.Fprintf(app.Out, "Price:    %s\n", app.Money.Format(product.Price))
			if product.Description != "" {
				fmt.Fprintf(app.Out, "\n%s\n", product.Description)
			}
			return nil
		}),
	}
}

func searchCommand(open OpenFunc) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search products by name or description",
		ArgsUsage: "<keyword>",
		Action: action(open, func(ctx context.Context, app *App, c *cli.Command) error {
			products, err := app.Catalog.SearchProducts(ctx, strings.Join(c.Args().Slice(), " "))
			if err != nil {
				return err
			}
			printProducts(app, products)
			return nil
		}),
	}
}
