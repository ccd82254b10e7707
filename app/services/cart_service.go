package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Rakhulsr/go-petshop/app/models"
	"github.com/Rakhulsr/go-petshop/app/repositories"
	"github.com/Rakhulsr/go-petshop/app/store"
	"github.com/Rakhulsr/go-petshop/app/utils/calc"
	"github.com/Rakhulsr/go-petshop/app/utils/pubsub"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartService struct {
	store        *store.Store
	cartItemRepo repositories.CartItemRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
}

func NewCartService(st *store.Store, cartItemRepo repositories.CartItemRepositoryImpl, productRepo repositories.ProductRepositoryImpl) *CartService {
	return &CartService{
		store:        st,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

// AddToCart adds quantity to the customer's line for productID, creating the
// line if needed, and returns the line id.
func (s *CartService) AddToCart(ctx context.Context, customerID, productID uint, quantity int) (uint, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}

	itemID, err := s.addOnce(ctx, customerID, productID, quantity)
	if repositories.IsDuplicateKey(err) {
		// Another writer inserted the line after our lock read found none.
		itemID, err = s.addOnce(ctx, customerID, productID, quantity)
	}
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return 0, err
		}
		log.Printf("AddToCart: failed for customer %d product %d: %v", customerID, productID, err)
		return 0, storageErr("add to cart", err)
	}
	return itemID, nil
}

func (s *CartService) addOnce(ctx context.Context, customerID, productID uint, quantity int) (uint, error) {
	var itemID uint
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		exists, err := s.productRepo.Exists(ctx, tx, productID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrProductNotFound
		}

		existing, err := s.cartItemRepo.LockCustomerAndProduct(ctx, tx, customerID, productID)
		if err != nil {
			return err
		}

		if existing != nil {
			if _, err := s.cartItemRepo.UpdateQuantity(ctx, tx, existing.ID, existing.Quantity+quantity); err != nil {
				return err
			}
			itemID = existing.ID
			return nil
		}

		item := &models.CartItem{
			CustomerID: customerID,
			ProductID:  productID,
			Quantity:   quantity,
			DateAdded:  time.Now(),
		}
		if err := s.cartItemRepo.Add(ctx, tx, item); err != nil {
			return err
		}
		itemID = item.ID
		return nil
	}, models.TableCartItems)
	return itemID, err
}

// UpdateQuantity sets the quantity of a line. Missing lines and quantities
// below one are ignored.
func (s *CartService) UpdateQuantity(ctx context.Context, cartItemID uint, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		_, err := s.cartItemRepo.UpdateQuantity(ctx, tx, cartItemID, quantity)
		return err
	}, models.TableCartItems)
	return storageErr("update cart quantity", err)
}

func (s *CartService) RemoveFromCart(ctx context.Context, cartItemID uint) error {
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		_, err := s.cartItemRepo.Delete(ctx, tx, cartItemID)
		return err
	}, models.TableCartItems)
	return storageErr("remove cart item", err)
}

func (s *CartService) RemoveProduct(ctx context.Context, customerID, productID uint) error {
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		_, err := s.cartItemRepo.DeleteByCustomerAndProduct(ctx, tx, customerID, productID)
		return err
	}, models.TableCartItems)
	return storageErr("remove product from cart", err)
}

func (s *CartService) ClearCart(ctx context.Context, customerID uint) error {
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		return s.cartItemRepo.ClearCartItems(ctx, tx, customerID)
	}, models.TableCartItems)
	return storageErr("clear cart", err)
}

// CartItem returns one line or nil.
func (s *CartService) CartItem(ctx context.Context, cartItemID uint) (*models.CartItem, error) {
	item, err := s.cartItemRepo.GetByID(ctx, cartItemID)
	if err != nil {
		return nil, storageErr("get cart item", err)
	}
	return item, nil
}

// CartWithProducts returns the customer's lines in the order they were added.
func (s *CartService) CartWithProducts(ctx context.Context, customerID uint) ([]models.CartLine, error) {
	items, err := s.cartItemRepo.GetCartWithProducts(ctx, customerID)
	if err != nil {
		return nil, storageErr("load cart", err)
	}

	lines := make([]models.CartLine, 0, len(items))
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		product := *item.Product
		item.Product = nil
		lines = append(lines, models.CartLine{CartItem: item, Product: product})
	}
	return lines, nil
}

// CartTotal is invalid (no total) when the cart is empty.
func (s *CartService) CartTotal(ctx context.Context, customerID uint) (decimal.NullDecimal, error) {
	lines, err := s.CartWithProducts(ctx, customerID)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return totalOf(lines), nil
}

// CartItemCount is the number of lines, not the sum of quantities.
func (s *CartService) CartItemCount(ctx context.Context, customerID uint) (int, error) {
	count, err := s.cartItemRepo.GetCartItemCount(ctx, customerID)
	if err != nil {
		return 0, storageErr("count cart items", err)
	}
	return count, nil
}

func (s *CartService) WatchCart(ctx context.Context, customerID uint) *pubsub.Subscription[[]models.CartLine] {
	return pubsub.Watch[[]models.CartLine](ctx, s.store.Hub(), func(ctx context.Context) ([]models.CartLine, error) {
		return s.CartWithProducts(ctx, customerID)
	}, models.TableCartItems, models.TableProducts)
}

func (s *CartService) WatchCartTotal(ctx context.Context, customerID uint) *pubsub.Subscription[decimal.NullDecimal] {
	return pubsub.Watch[decimal.NullDecimal](ctx, s.store.Hub(), func(ctx context.Context) (decimal.NullDecimal, error) {
		return s.CartTotal(ctx, customerID)
	}, models.TableCartItems, models.TableProducts)
}

func (s *CartService) WatchCartItemCount(ctx context.Context, customerID uint) *pubsub.Subscription[int] {
	return pubsub.Watch[int](ctx, s.store.Hub(), func(ctx context.Context) (int, error) {
		return s.CartItemCount(ctx, customerID)
	}, models.TableCartItems)
}

func totalOf(lines []models.CartLine) decimal.NullDecimal {
	if len(lines) == 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(calc.CartTotal(lines))
}
