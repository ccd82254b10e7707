package repositories

import (
	"context"

	"github.com/Rakhulsr/go-petshop/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderItemRepository interface {
	BulkCreate(ctx context.Context, tx *gorm.DB, items []models.OrderItem) error
	GetByOrderID(ctx context.Context, orderID uint) ([]models.OrderItem, error)
}

type OrderItemRepositoryImpl struct {
	DB *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &OrderItemRepositoryImpl{DB: db}
}

func (r *OrderItemRepositoryImpl) BulkCreate(ctx context.Context, tx *gorm.DB, items []models.OrderItem) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(&items).Error
}

func (r *OrderItemRepositoryImpl) GetByOrderID(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}
