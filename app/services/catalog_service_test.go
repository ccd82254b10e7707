package services_test

import (
	"testing"

	"github.com/Rakhulsr/go-petshop/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	f := newFixture(t)
	bird := f.addCategory(t, 3, "Bird")
	cat := f.addCategory(t, 2, "Cat")

	kibble := f.addProductIn(t, f.category, "Puppy Kibble", "45.99", "Chicken recipe for puppies")
	f.addProductIn(t, cat, "Tuna Bites", "12.00", "Crunchy cat treats")
	seeds := f.addProductIn(t, bird, "Budgie Seeds", "9.95", "Millet mix with CHICKEN-free protein")

	t.Run("categories in display order", func(t *testing.T) {
		categories, err := f.catalog.AllCategories(f.ctx)
		require.NoError(t, err)
		require.Len(t, categories, 3)
		assert.Equal(t, []string{"Dog", "Cat", "Bird"}, []string{categories[0].Name, categories[1].Name, categories[2].Name})
	})

	t.Run("products by category", func(t *testing.T) {
		products, err := f.catalog.ProductsByCategory(f.ctx, bird.ID)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, seeds.ID, products[0].ID)

		products, err = f.catalog.ProductsByCategoryName(f.ctx, "Cat")
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Tuna Bites", products[0].Name)

		products, err = f.catalog.ProductsByCategory(f.ctx, 999)
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("product by id", func(t *testing.T) {
		product, err := f.catalog.ProductByID(f.ctx, kibble.ID)
		require.NoError(t, err)
		assert.Equal(t, "45.99", product.Price.StringFixed(2))
		require.NotNil(t, product.Category)
		assert.Equal(t, "Dog", product.Category.Name)

		_, err = f.catalog.ProductByID(f.ctx, 999)
		require.ErrorIs(t, err, services.ErrProductNotFound)
	})

	t.Run("category by slug", func(t *testing.T) {
		category, err := f.catalog.CategoryBySlug(f.ctx, "cat")
		require.NoError(t, err)
		assert.Equal(t, cat.ID, category.ID)

		_, err = f.catalog.CategoryBySlug(f.ctx, "dragon")
		require.ErrorIs(t, err, services.ErrCategoryNotFound)
	})

	t.Run("search ignores case", func(t *testing.T) {
		products, err := f.catalog.SearchProducts(f.ctx, "chicken")
		require.NoError(t, err)
		assert.Len(t, products, 2)

		products, err = f.catalog.SearchProducts(f.ctx, "TUNA")
		require.NoError(t, err)
		require.Len(t, products, 1)

		products, err = f.catalog.SearchProducts(f.ctx, "  ")
		require.NoError(t, err)
		assert.Len(t, products, 3)
	})
}
