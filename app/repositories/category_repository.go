package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-petshop/app/models"
	"gorm.io/gorm"
)

type CategoryRepositoryImpl interface {
	CreateMany(ctx context.Context, tx *gorm.DB, categories []models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	GetAll(ctx context.Context) ([]models.Category, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepositoryImpl {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) CreateMany(ctx context.Context, tx *gorm.DB, categories []models.Category) error {
	if len(categories) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&categories).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// GetAll returns categories in display order.
func (r *categoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("sort_order ASC").Order("id ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&models.Category{}).Count(&count).Error
	return count, err
}
