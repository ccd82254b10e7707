package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

var orderStatusFlow = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  nil,
	OrderStatusCancelled:  nil,
}

func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}

func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", fmt.Errorf("unknown order status %q", raw)
	}
	return status, nil
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatusFlow[s]
	return ok
}

// Terminal statuses accept no further transition.
func (s OrderStatus) Terminal() bool {
	return s.Valid() && len(orderStatusFlow[s]) == 0
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderStatusFlow[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) String() string { return string(s) }

type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	CustomerID      uint            `gorm:"not null;index" json:"customer_id"`
	Customer        *Customer       `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
	OrderCode       string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"order_code"`
	OrderDate       time.Time       `gorm:"not null;index" json:"order_date"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total_amount"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	ShippingAddress string          `gorm:"type:text;not null" json:"shipping_address"`
	PaymentMethod   string          `gorm:"size:50;not null" json:"payment_method"`
	Notes           *string         `gorm:"type:text" json:"notes,omitempty"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (Order) TableName() string { return TableOrders }
