package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/Rakhulsr/go-petshop/app/configs"
	"github.com/Rakhulsr/go-petshop/app/db/seeders"
	"github.com/Rakhulsr/go-petshop/app/helpers"
	"github.com/Rakhulsr/go-petshop/app/models/migrations"
	"github.com/Rakhulsr/go-petshop/app/repositories"
	"github.com/Rakhulsr/go-petshop/app/services"
	"github.com/Rakhulsr/go-petshop/app/store"
	"github.com/Rakhulsr/go-petshop/app/utils/format"
	"github.com/Rakhulsr/go-petshop/app/utils/media"
	"github.com/Rakhulsr/go-petshop/app/utils/pubsub"
	"github.com/Rakhulsr/go-petshop/app/utils/sessions"
	"github.com/go-playground/validator/v10"
)

// App holds everything a command needs. It is built once per process.
type App struct {
	Store *store.Store

	CustomerRepo  repositories.CustomerRepositoryImpl
	CategoryRepo  repositories.CategoryRepositoryImpl
	ProductRepo   repositories.ProductRepositoryImpl
	CartItemRepo  repositories.CartItemRepositoryImpl
	OrderRepo     repositories.OrderRepository
	OrderItemRepo repositories.OrderItemRepository

	Hasher   services.PasswordHasher
	Session  sessions.SessionStore
	Media    *media.LocalStore
	Validate *validator.Validate
	Money    *format.Money

	Auth    *services.AuthService
	Profile *services.ProfileService
	Catalog *services.CatalogService
	Cart    *services.CartService
	Orders  *services.OrderService

	Out io.Writer

	sessionErr error
}

// NewApp opens the configured database and session file.
func NewApp(ctx context.Context, env configs.ENV, out io.Writer) (*App, error) {
	db, err := configs.OpenConnection(env)
	if err != nil {
		return nil, err
	}
	st := store.New(db, pubsub.NewHub())

	session, sessionErr := openSession(env)
	if sessionErr != nil && !errors.Is(sessionErr, configs.ErrSessionKeysMissing) {
		st.Close()
		return nil, sessionErr
	}

	hasher, err := services.NewPasswordHasher(env.PasswordHasher, env.BcryptCost)
	if err != nil {
		st.Close()
		return nil, err
	}

	app := Wire(st, session, hasher, media.NewLocalStore(env.MediaDir), format.NewMoney(env.CurrencySymbol), out)
	app.sessionErr = sessionErr

	if err := app.Bootstrap(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return app, nil
}

// Wire builds repositories and services on top of an open store.
func Wire(st *store.Store, session sessions.SessionStore, hasher services.PasswordHasher, mediaStore *media.LocalStore, money *format.Money, out io.Writer) *App {
	db := st.DB()

	app := &App{
		Store:         st,
		CustomerRepo:  repositories.NewCustomerRepository(db),
		CategoryRepo:  repositories.NewCategoryRepository(db),
		ProductRepo:   repositories.NewProductRepository(db),
		CartItemRepo:  repositories.NewCartItemRepository(db),
		OrderRepo:     repositories.NewOrderRepository(db),
		OrderItemRepo: repositories.NewOrderItemRepository(db),
		Hasher:        hasher,
		Session:       session,
		Media:         mediaStore,
		Validate:      helpers.NewValidator(),
		Money:         money,
		Out:           out,
	}

	app.Auth = services.NewAuthService(st, app.CustomerRepo, hasher, session, mediaStore)
	app.Profile = services.NewProfileService(st, app.CustomerRepo, session, mediaStore)
	app.Catalog = services.NewCatalogService(app.CategoryRepo, app.ProductRepo)
	app.Cart = services.NewCartService(st, app.CartItemRepo, app.ProductRepo)
	app.Orders = services.NewOrderService(st, app.OrderRepo, app.OrderItemRepo, app.CartItemRepo)
	return app
}

// Bootstrap migrates the schema and writes the initial catalog on first run.
func (a *App) Bootstrap(ctx context.Context) error {
	if err := migrations.AutoMigrate(a.Store.DB()); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	catalog, err := seeders.DefaultCatalog()
	if err != nil {
		return err
	}
	if _, err := seeders.SeedCatalogIfEmpty(ctx, a.Store, catalog, a.CategoryRepo, a.ProductRepo); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	return nil
}

// RequireSession fails when the session file cannot be used.
func (a *App) RequireSession() error {
	return a.sessionErr
}

// RequireCustomer returns the logged-in customer id.
func (a *App) RequireCustomer() (uint, error) {
	if err := a.RequireSession(); err != nil {
		return 0, err
	}
	id, ok := a.Auth.CurrentUserID()
	if !ok {
		return 0, services.ErrNotLoggedIn
	}
	return id, nil
}

func (a *App) Close() error {
	return a.Store.Close()
}

func openSession(env configs.ENV) (sessions.SessionStore, error) {
	keys, err := configs.LoadSessionKeys(env)
	if err != nil {
		if errors.Is(err, configs.ErrSessionKeysMissing) {
			log.Printf("Warning: %v", err)
			return sessions.NewMemorySessionStore(), err
		}
		return nil, err
	}
	maxAge := time.Duration(env.SessionMaxAgeDays) * 24 * time.Hour
	return sessions.NewFileSessionStore(env.SessionFile, keys.AuthKey, keys.EncKey, maxAge)
}
