package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/Rakhulsr/go-petshop/app/models"
	"github.com/Rakhulsr/go-petshop/app/utils/calc"
)

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

func parseUint(raw string) (uint, error) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(n), nil
}

func printCustomer(out io.Writer, customer *models.Customer, orders int64) {
	fmt.Fprintf(out, "ID:      %d\n", customer.ID)
	fmt.Fprintf(out, "Name:    %s\n", customer.Name)
	fmt.Fprintf(out, "Email:   %s\n", customer.Email)
	fmt.Fprintf(out, "Phone:   %s\n", customer.Phone)
	fmt.Fprintf(out, "Address: %s\n", customer.Address)
	if customer.ProfileImagePath != nil {
		fmt.Fprintf(out, "Image:   %s\n", *customer.ProfileImagePath)
	}
	if orders >= 0 {
		fmt.Fprintf(out, "Orders:  %d\n", orders)
	}
}

func printProducts(app *App, products []models.Product) {
	w := newTable(app.Out)
	fmt.Fprintln(w, "ID\tNAME\tPRICE")
	for _, product := range products {
		fmt.Fprintf(w, "%d\t%s\t%s\n", product.ID, product.Name, app.Money.Format(product.Price))
	}
	w.Flush()
}

func printCart(ctx context.Context, app *App, customerID uint) error {
	lines, err := app.Cart.CartWithProducts(ctx, customerID)
	if err != nil {
		return err
	}
	printLines(app, lines)
	return nil
}

func printLines(app *App, lines []models.CartLine) {
	if len(lines) == 0 {
		fmt.Fprintln(app.Out, "Your cart is empty.")
		return
	}
	w := newTable(app.Out)
	fmt.Fprintln(w, "LINE\tPRODUCT\tQTY\tPRICE\tSUBTOTAL")
	for _, line := range lines {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n",
			line.CartItem.ID,
			line.Product.Name,
			line.CartItem.Quantity,
			app.Money.Format(line.Product.Price),
			app.Money.Format(line.Subtotal()),
		)
	}
	w.Flush()
	fmt.Fprintf(app.Out, "%d item(s), total %s\n", len(lines), app.Money.Format(calc.CartTotal(lines)))
}

func printOrders(app *App, orders []models.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(app.Out, "No orders.")
		return
	}
	w := newTable(app.Out)
	fmt.Fprintln(w, "ID\tCODE\tDATE\tSTATUS\tTOTAL")
	for _, order := range orders {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			order.ID,
			order.OrderCode,
			order.OrderDate.Format("2006-01-02 15:04"),
			order.Status,
			app.Money.Format(order.TotalAmount),
		)
	}
	w.Flush()
}

func printOrder(app *App, order *models.Order) {
	fmt.Fprintf(app.Out, "Order %s (#%d)\n", order.OrderCode, order.ID)
	fmt.Fprintf(app.Out, "Date:     %s\n", order.OrderDate.Format("2006-01-02 15:04"))
	fmt.Fprintf(app.Out, "Status:   %s\n", order.Status)
	fmt.Fprintf(app.Out, "Ship to:  %s\n", order.ShippingAddress)
	fmt.Fprintf(app.Out, "Payment:  %s\n", order.PaymentMethod)
	if order.Notes != nil {
		fmt.Fprintf(app.Out, "Notes:    %s\n", *order.Notes)
	}

	w := newTable(app.Out)
	fmt.Fprintln(w, "PRODUCT\tQTY\tUNIT\tTOTAL")
	for _, item := range order.Items {
		name := fmt.Sprintf("#%d", item.ProductID)
		if item.Product != nil {
			name = item.Product.Name
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", name, item.Quantity, app.Money.Format(item.UnitPrice), app.Money.Format(item.TotalPrice))
	}
	w.Flush()
	fmt.Fprintf(app.Out, "Total:    %s\n", app.Money.Format(order.TotalAmount))
}
