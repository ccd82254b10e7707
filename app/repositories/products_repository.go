package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/Rakhulsr/go-petshop/app/models"
	"gorm.io/gorm"
)

type ProductRepositoryImpl interface {
	CreateMany(ctx context.Context, tx *gorm.DB, products []models.Product) error
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	GetByCategoryID(ctx context.Context, categoryID uint) ([]models.Product, error)
	GetByCategoryName(ctx context.Context, name string) ([]models.Product, error)
	SearchProducts(ctx context.Context, keyword string) ([]models.Product, error)
	Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) CreateMany(ctx context.Context, tx *gorm.DB, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Omit("Category").Create(&products).Error
}

func (p *productRepository) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := p.db.WithContext(ctx).Model(&models.Product{}).Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (p *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Preload("Category").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetByCategoryID(ctx context.Context, categoryID uint) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("id ASC").
		Find(&products).Error
	return products, err
}

func (p *productRepository) GetByCategoryName(ctx context.Context, name string) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Joins("JOIN categories c ON c.id = products.category_id").
		Where("c.name = ?", name).
		Order("products.id ASC").
		Find(&products).Error
	return products, err
}

func (p *productRepository) SearchProducts(ctx context.Context, keyword string) ([]models.Product, error) {
	var products []models.Product
	searchKeyword := "%" + strings.ToLower(keyword) + "%"

	err := p.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchKeyword, searchKeyword).
		Order("name ASC").
		Find(&products).Error

	return products, err
}

func (p *productRepository) Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
