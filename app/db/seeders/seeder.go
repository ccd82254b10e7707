package seeders

import (
	"context"
	_ "embed"
	"fmt"
	"log"

	"github.com/Rakhulsr/go-petshop/app/models"
	"github.com/Rakhulsr/go-petshop/app/repositories"
	"github.com/Rakhulsr/go-petshop/app/store"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Catalog struct {
	Categories []CategorySeed `yaml:"categories"`
}

type CategorySeed struct {
	ID       uint          `yaml:"id"`
	Name     string        `yaml:"name"`
	Image    string        `yaml:"image"`
	Products []ProductSeed `yaml:"products"`
}

type ProductSeed struct {
	Name        string `yaml:"name"`
	Image       string `yaml:"image"`
	Price       string `yaml:"price"`
	Description string `yaml:"description"`
}

func LoadCatalog(raw []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(catalog.Categories) == 0 {
		return nil, fmt.Errorf("catalog has no categories")
	}
	return &catalog, nil
}

func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(defaultCatalog)
}

type Seeder struct {
	Name string
	Seed func(ctx context.Context, tx *gorm.DB) error
}

func SeedersRegister(catalog *Catalog, categoryRepo repositories.CategoryRepositoryImpl, productRepo repositories.ProductRepositoryImpl) []Seeder {
	return []Seeder{
		{
			Name: "categories",
			Seed: func(ctx context.Context, tx *gorm.DB) error {
				return categoryRepo.CreateMany(ctx, tx, catalog.categoryRows())
			},
		},
		{
			Name: "products",
			Seed: func(ctx context.Context, tx *gorm.DB) error {
				products, err := catalog.productRows()
				if err != nil {
					return err
				}
				return productRepo.CreateMany(ctx, tx, products)
			},
		},
	}
}

// SeedCatalogIfEmpty writes catalog in one transaction unless categories
// already exist. It reports whether anything was written.
func SeedCatalogIfEmpty(
	ctx context.Context,
	st *store.Store,
	catalog *Catalog,
	categoryRepo repositories.CategoryRepositoryImpl,
	productRepo repositories.ProductRepositoryImpl,
) (bool, error) {
	seeded := false
	err := st.Transaction(ctx, func(tx *gorm.DB) error {
		count, err := categoryRepo.Count(ctx, tx)
		if err != nil {
			return fmt.Errorf("failed to count categories: %w", err)
		}
		if count > 0 {
			return nil
		}
		for _, seeder := range SeedersRegister(catalog, categoryRepo, productRepo) {
			if err := seeder.Seed(ctx, tx); err != nil {
				return fmt.Errorf("failed to seed %s: %w", seeder.Name, err)
			}
		}
		seeded = true
		return nil
	}, models.TableCategories, models.TableProducts)
	if err != nil {
		return false, err
	}
	if seeded {
		log.Printf("✅ Seeded %d categories", len(catalog.Categories))
	}
	return seeded, nil
}

func (c *Catalog) categoryRows() []models.Category {
	categories := make([]models.Category, 0, len(c.Categories))
	for i, cat := range c.Categories {
		categories = append(categories, models.Category{
			ID:            cat.ID,
			Name:          cat.Name,
			Slug:          slug.Make(cat.Name),
			ImageResource: cat.Image,
			SortOrder:     i + 1,
		})
	}
	return categories
}

func (c *Catalog) productRows() ([]models.Product, error) {
	var products []models.Product
	for _, cat := range c.Categories {
		for _, p := range cat.Products {
			price, err := decimal.NewFromString(p.Price)
			if err != nil {
				return nil, fmt.Errorf("invalid price %q for %s: %w", p.Price, p.Name, err)
			}
			products = append(products, models.Product{
				CategoryID:    cat.ID,
				Name:          p.Name,
				Slug:          slug.Make(p.Name),
				Description:   p.Description,
				ImageResource: p.Image,
				Price:         price.Round(2),
			})
		}
	}
	return products, nil
}
