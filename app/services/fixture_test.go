package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/Rakhulsr/go-petshop/app/models"
	"github.com/Rakhulsr/go-petshop/app/repositories"
	"github.com/Rakhulsr/go-petshop/app/services"
	"github.com/Rakhulsr/go-petshop/app/store"
	"github.com/Rakhulsr/go-petshop/app/store/storetest"
	"github.com/Rakhulsr/go-petshop/app/utils/media"
	"github.com/Rakhulsr/go-petshop/app/utils/pubsub"
	"github.com/Rakhulsr/go-petshop/app/utils/sessions"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testPassword = "Secret123"

type fixture struct {
	ctx     context.Context
	st      *store.Store
	session *sessions.MemorySessionStore
	media   *media.LocalStore

	customerRepo repositories.CustomerRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl

	auth    *services.AuthService
	profile *services.ProfileService
	catalog *services.CatalogService
	cart    *services.CartService
	orders  *services.OrderService

	category models.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := storetest.New(t)
	db := st.DB()
	f := &fixture{
		ctx:          context.Background(),
		st:           st,
		session:      sessions.NewMemorySessionStore(),
		media:        media.NewLocalStore(t.TempDir()),
		customerRepo: repositories.NewCustomerRepository(db),
		categoryRepo: repositories.NewCategoryRepository(db),
		productRepo:  repositories.NewProductRepository(db),
	}
	cartItemRepo := repositories.NewCartItemRepository(db)

	f.auth = services.NewAuthService(st, f.customerRepo, services.SHA256Hasher{}, f.session, f.media)
	f.profile = services.NewProfileService(st, f.customerRepo, f.session, f.media)
	f.catalog = services.NewCatalogService(f.categoryRepo, f.productRepo)
	f.cart = services.NewCartService(st, cartItemRepo, f.productRepo)
	f.orders = services.NewOrderService(st, repositories.NewOrderRepository(db), repositories.NewOrderItemRepository(db), cartItemRepo)

	f.category = f.addCategory(t, 1, "Dog")
	return f
}

func (f *fixture) addCategory(t *testing.T, sortOrder int, name string) models.Category {
	t.Helper()
	categories := []models.Category{{Name: name, Slug: slug.Make(name), SortOrder: sortOrder}}
	require.NoError(t, f.st.Transaction(f.ctx, func(tx *gorm.DB) error {
		return f.categoryRepo.CreateMany(f.ctx, tx, categories)
	}, models.TableCategories))
	return categories[0]
}

func (f *fixture) addProduct(t *testing.T, name, price string) models.Product {
	t.Helper()
	return f.addProductIn(t, f.category, name, price, "")
}

func (f *fixture) addProductIn(t *testing.T, category models.Category, name, price, description string) models.Product {
	t.Helper()
	products := []models.Product{{
		CategoryID:  category.ID,
		Name:        name,
		Slug:        slug.Make(name),
		Description: description,
		Price:       decimal.RequireFromString(price),
	}}
	require.NoError(t, f.st.Transaction(f.ctx, func(tx *gorm.DB) error {
		return f.productRepo.CreateMany(f.ctx, tx, products)
	}, models.TableProducts))
	return products[0]
}

func (f *fixture) register(t *testing.T, email string) uint {
	t.Helper()
	id, err := f.auth.Register(f.ctx, services.RegisterInput{
		Name:     "Jane Customer",
		Email:    email,
		Phone:    "0123456789",
		Address:  "12 Kennel Road",
		Password: testPassword,
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.st.DB().Model(model).Count(&n).Error)
	return n
}

func next[T any](t *testing.T, sub *pubsub.Subscription[T]) T {
	t.Helper()
	select {
	case v, ok := <-sub.Updates():
		require.True(t, ok, "subscription closed")
		return v
	case err := <-sub.Errors():
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for subscription update")
	}
	var zero T
	return zero
}
