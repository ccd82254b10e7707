package models

import (
	"github.com/shopspring/decimal"
)

type OrderItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	OrderID    uint            `gorm:"not null;index" json:"order_id"`
	ProductID  uint            `gorm:"not null;index" json:"product_id"`
	Product    *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total_price"`
}

func (OrderItem) TableName() string { return TableOrderItems }
