package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-petshop/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemRepository struct {
	DB *gorm.DB
}

type CartItemRepositoryImpl interface {
	Add(ctx context.Context, tx *gorm.DB, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, tx *gorm.DB, id uint, quantity int) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) (int64, error)
	DeleteByCustomerAndProduct(ctx context.Context, tx *gorm.DB, customerID, productID uint) (int64, error)
	GetByID(ctx context.Context, id uint) (*models.CartItem, error)
	LockCustomerAndProduct(ctx context.Context, tx *gorm.DB, customerID, productID uint) (*models.CartItem, error)
	GetCartWithProducts(ctx context.Context, customerID uint) ([]models.CartItem, error)
	GetCartItemCount(ctx context.Context, customerID uint) (int, error)
	ClearCartItems(ctx context.Context, tx *gorm.DB, customerID uint) error
}

func NewCartItemRepository(db *gorm.DB) CartItemRepositoryImpl {
	return &CartItemRepository{db}
}

func (r *CartItemRepository) Add(ctx context.Context, tx *gorm.DB, item *models.CartItem) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

func (r *CartItemRepository) UpdateQuantity(ctx context.Context, tx *gorm.DB, id uint, quantity int) (int64, error) {
	result := tx.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	return result.RowsAffected, result.Error
}

func (r *CartItemRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) (int64, error) {
	result := tx.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

func (r *CartItemRepository) DeleteByCustomerAndProduct(ctx context.Context, tx *gorm.DB, customerID, productID uint) (int64, error) {
	result := tx.WithContext(ctx).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

func (r *CartItemRepository) GetByID(ctx context.Context, id uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// LockCustomerAndProduct reads the line for update. SQLite has no row locks;
// its single connection serialises the surrounding transaction instead.
func (r *CartItemRepository) LockCustomerAndProduct(ctx context.Context, tx *gorm.DB, customerID, productID uint) (*models.CartItem, error) {
	var item models.CartItem

	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &item, nil
}

func (r *CartItemRepository) GetCartWithProducts(ctx context.Context, customerID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("customer_id = ?", customerID).
		Order("date_added ASC").
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CartItemRepository) GetCartItemCount(ctx context.Context, customerID uint) (int, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error

	return int(count), err
}

func (r *CartItemRepository) ClearCartItems(ctx context.Context, tx *gorm.DB, customerID uint) error {
	return tx.WithContext(ctx).Where("customer_id = ?", customerID).Delete(&models.CartItem{}).Error
}
