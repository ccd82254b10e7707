package calc

import (
	"github.com/Rakhulsr/go-petshop/app/models"
	"github.com/shopspring/decimal"
)

func LineTotal(unitPrice decimal.Decimal, qty int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(qty)))
}

func CartTotal(lines []models.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(LineTotal(line.Product.Price, line.CartItem.Quantity))
	}
	return total
}

func OrderItemsTotal(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalPrice)
	}
	return total
}
