package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rakhulsr/go-petshop/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	LockByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Order, error)
	GetOrderByIDWithRelations(ctx context.Context, orderID uint) (*models.Order, error)
	FindByCodeWithDetails(ctx context.Context, orderCode string) (*models.Order, error)
	FindByCustomerID(ctx context.Context, customerID uint) ([]models.Order, error)
	FindByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error)
	CountByCustomerID(ctx context.Context, customerID uint) (int64, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, orderID uint, status models.OrderStatus) error
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(order).Error
}

func (r *gormOrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order

	err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) LockByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order

	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) GetOrderByIDWithRelations(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order with relations: %w", err)
	}
	return &order, nil
}

func (r *gormOrderRepository) FindByCodeWithDetails(ctx context.Context, orderCode string) (*models.Order, error) {
	var order models.Order

	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		Where("order_code = ?", orderCode).
		First(&order).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// FindByCustomerID returns the customer's orders, most recent first.
func (r *gormOrderRepository) FindByCustomerID(ctx context.Context, customerID uint) ([]models.Order, error) {
	var orders []models.Order

	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		Where("customer_id = ?", customerID).
		Order("order_date DESC").
		Order("id DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *gormOrderRepository) FindByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order

	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("order_date DESC").
		Order("id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *gormOrderRepository) CountByCustomerID(ctx context.Context, customerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Where("customer_id = ?", customerID).Count(&count).Error
	return count, err
}

func (r *gormOrderRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, orderID uint, status models.OrderStatus) error {
	return tx.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}).Error
}
