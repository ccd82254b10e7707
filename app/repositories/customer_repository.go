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

type CustomerRepositoryImpl interface {
	Create(ctx context.Context, tx *gorm.DB, customer *models.Customer) error
	FindByID(ctx context.Context, id uint) (*models.Customer, error)
	FindByEmail(ctx context.Context, email string) (*models.Customer, error)
	EmailTaken(ctx context.Context, tx *gorm.DB, email string, exceptID uint) (bool, error)
	UpdateProfile(ctx context.Context, tx *gorm.DB, customer *models.Customer) error
	UpdatePassword(ctx context.Context, tx *gorm.DB, customerID uint, newPasswordHash string) error
	UpdateProfileImage(ctx context.Context, tx *gorm.DB, customerID uint, path *string) error
	Delete(ctx context.Context, tx *gorm.DB, customerID uint) error
	Count(ctx context.Context) (int64, error)
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepositoryImpl {
	return &customerRepository{db}
}

func (r *customerRepository) Create(ctx context.Context, tx *gorm.DB, customer *models.Customer) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(customer).Error
}

func (r *customerRepository) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) EmailTaken(ctx context.Context, tx *gorm.DB, email string, exceptID uint) (bool, error) {
	var count int64
	query := tx.WithContext(ctx).Model(&models.Customer{}).Where("email = ?", email)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *customerRepository) UpdateProfile(ctx context.Context, tx *gorm.DB, customer *models.Customer) error {
	updates := map[string]interface{}{
		"name":       customer.Name,
		"email":      customer.Email,
		"phone":      customer.Phone,
		"address":    customer.Address,
		"updated_at": time.Now(),
	}
	result := tx.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", customer.ID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update profile for customer %d: %w", customer.ID, result.Error)
	}
	return nil
}

func (r *customerRepository) UpdatePassword(ctx context.Context, tx *gorm.DB, customerID uint, newPasswordHash string) error {
	updates := map[string]interface{}{
		"password":   newPasswordHash,
		"updated_at": time.Now(),
	}
	result := tx.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", customerID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update password for customer %d: %w", customerID, result.Error)
	}
	return nil
}

func (r *customerRepository) UpdateProfileImage(ctx context.Context, tx *gorm.DB, customerID uint, path *string) error {
	updates := map[string]interface{}{
		"profile_image_path": path,
		"updated_at":         time.Now(),
	}
	result := tx.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", customerID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update profile image for customer %d: %w", customerID, result.Error)
	}
	return nil
}

// Delete removes the customer row; cart items and orders go with it through
// ON DELETE CASCADE.
func (r *customerRepository) Delete(ctx context.Context, tx *gorm.DB, customerID uint) error {
	return tx.WithContext(ctx).Delete(&models.Customer{}, "id = ?", customerID).Error
}

func (r *customerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Customer{}).Count(&count).Error
	return count, err
}
