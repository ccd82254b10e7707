package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null;uniqueIndex:idx_cart_customer_product" json:"customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
	ProductID  uint      `gorm:"not null;uniqueIndex:idx_cart_customer_product;index" json:"product_id"`
	Product    *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`
	Quantity   int       `gorm:"not null;check:chk_cart_items_quantity,quantity > 0" json:"quantity"`
	DateAdded  time.Time `gorm:"not null" json:"date_added"`
}

func (CartItem) TableName() string { return TableCartItems }

// CartLine is one cart item joined with its product, the shape checkout consumes.
type CartLine struct {
	CartItem CartItem
	Product  Product
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.CartItem.Quantity)))
}
