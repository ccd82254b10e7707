package services

import (
	"context"
	"strings"

	"github.com/Rakhulsr/go-petshop/app/models"
	"github.com/Rakhulsr/go-petshop/app/repositories"
)

type CatalogService struct {
	categoryRepo repositories.CategoryRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
}

func NewCatalogService(categoryRepo repositories.CategoryRepositoryImpl, productRepo repositories.ProductRepositoryImpl) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// AllCategories returns categories in display order.
func (s *CatalogService) AllCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, storageErr("list categories", err)
	}
	return categories, nil
}

func (s *CatalogService) CategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return nil, storageErr("get category", err)
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

func (s *CatalogService) ProductsByCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	products, err := s.productRepo.GetByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, storageErr("list products by category", err)
	}
	return products, nil
}

func (s *CatalogService) ProductsByCategoryName(ctx context.Context, name string) ([]models.Product, error) {
	products, err := s.productRepo.GetByCategoryName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, storageErr("list products by category name", err)
	}
	return products, nil
}

func (s *CatalogService) ProductByID(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr("get product", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *CatalogService) AllProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.productRepo.GetProducts(ctx)
	if err != nil {
		return nil, storageErr("list products", err)
	}
	return products, nil
}

// SearchProducts matches keyword against name and description, ignoring case.
// A blank keyword returns every product.
func (s *CatalogService) SearchProducts(ctx context.Context, keyword string) ([]models.Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.AllProducts(ctx)
	}
	products, err := s.productRepo.SearchProducts(ctx, keyword)
	if err != nil {
		return nil, storageErr("search products", err)
	}
	return products, nil
}
