package migrations

import (
	"github.com/Rakhulsr/go-petshop/app/models"
	"gorm.io/gorm"
)

// Parents are listed before children so foreign keys resolve on create.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Customer{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
}
