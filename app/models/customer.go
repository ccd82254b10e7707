package models

import "time"

const (
	TableCustomers  = "customers"
	TableCategories = "categories"
	TableProducts   = "products"
	TableCartItems  = "cart_items"
	TableOrders     = "orders"
	TableOrderItems = "order_items"
)

type Customer struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	Name             string  `gorm:"size:100;not null" json:"name"`
	Email            string  `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Phone            string  `gorm:"size:20" json:"phone"`
	Address          string  `gorm:"type:text" json:"address"`
	Password         string  `gorm:"size:255;not null" json:"-"`
	ProfileImagePath *string `gorm:"size:512" json:"profile_image_path,omitempty"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Customer) TableName() string { return TableCustomers }
