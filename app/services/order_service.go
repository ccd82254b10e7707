package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Rakhulsr/go-petshop/app/models"
	"github.com/Rakhulsr/go-petshop/app/repositories"
	"github.com/Rakhulsr/go-petshop/app/store"
	"github.com/Rakhulsr/go-petshop/app/utils/calc"
	"github.com/Rakhulsr/go-petshop/app/utils/pubsub"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentCreditCard     = "Credit Card"
	PaymentCashOnDelivery = "Cash on Delivery"
	PaymentBankTransfer   = "Bank Transfer"
)

func PaymentMethods() []string {
	return []string{PaymentCreditCard, PaymentCashOnDelivery, PaymentBankTransfer}
}

type CheckoutInput struct {
	CustomerID      uint
	ShippingAddress string
	PaymentMethod   string
	Notes           *string
}

type OrderService struct {
	store         *store.Store
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
	cartItemRepo  repositories.CartItemRepositoryImpl
}

func NewOrderService(
	st *store.Store,
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
	cartItemRepo repositories.CartItemRepositoryImpl,
) *OrderService {
	return &OrderService{
		store:         st,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		cartItemRepo:  cartItemRepo,
	}
}

// CreateOrderFromCart snapshots lines into a PENDING order and clears the
// customer's cart in the same transaction. Nothing is written on error.
func (s *OrderService) CreateOrderFromCart(ctx context.Context, input CheckoutInput, lines []models.CartLine) (uint, error) {
	if len(lines) == 0 {
		return 0, ErrEmptyCart
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ProductID:  line.Product.ID,
			Quantity:   line.CartItem.Quantity,
			UnitPrice:  line.Product.Price,
			TotalPrice: calc.LineTotal(line.Product.Price, line.CartItem.Quantity),
		})
	}

	now := time.Now()
	order := &models.Order{
		CustomerID:      input.CustomerID,
		OrderCode:       newOrderCode(now),
		OrderDate:       now,
		TotalAmount:     calc.OrderItemsTotal(items),
		Status:          models.OrderStatusPending,
		ShippingAddress: strings.TrimSpace(input.ShippingAddress),
		PaymentMethod:   input.PaymentMethod,
		Notes:           normalizeNotes(input.Notes),
	}

	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := s.orderItemRepo.BulkCreate(ctx, tx, items); err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		if err := s.cartItemRepo.ClearCartItems(ctx, tx, input.CustomerID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return nil
	}, models.TableOrders, models.TableOrderItems, models.TableCartItems)
	if err != nil {
		log.Printf("CreateOrderFromCart: rolled back for customer %d: %v", input.CustomerID, err)
		return 0, storageErr("create order", err)
	}

	log.Printf("✅ Order %s created for customer %d, total %s", order.OrderCode, order.CustomerID, order.TotalAmount.StringFixed(2))
	return order.ID, nil
}

func (s *OrderService) OrderWithItems(ctx context.Context, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByIDWithRelations(ctx, orderID)
	if err != nil {
		return nil, storageErr("get order", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) OrderByCode(ctx context.Context, code string) (*models.Order, error) {
	order, err := s.orderRepo.FindByCodeWithDetails(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, storageErr("get order by code", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// CustomerOrdersWithItems returns the customer's orders, most recent first.
func (s *OrderService) CustomerOrdersWithItems(ctx context.Context, customerID uint) ([]models.Order, error) {
	orders, err := s.orderRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, storageErr("list customer orders", err)
	}
	return orders, nil
}

func (s *OrderService) OrdersByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	orders, err := s.orderRepo.FindByStatus(ctx, status)
	if err != nil {
		return nil, storageErr("list orders by status", err)
	}
	return orders, nil
}

func (s *OrderService) CustomerOrderCount(ctx context.Context, customerID uint) (int64, error) {
	count, err := s.orderRepo.CountByCustomerID(ctx, customerID)
	if err != nil {
		return 0, storageErr("count orders", err)
	}
	return count, nil
}

func (s *OrderService) WatchCustomerOrders(ctx context.Context, customerID uint) *pubsub.Subscription[[]models.Order] {
	return pubsub.Watch[[]models.Order](ctx, s.store.Hub(), func(ctx context.Context) ([]models.Order, error) {
		return s.CustomerOrdersWithItems(ctx, customerID)
	}, models.TableOrders, models.TableOrderItems)
}

// UpdateOrderStatus overwrites the status of an order with any known status.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID uint, status models.OrderStatus) error {
	return s.setStatus(ctx, orderID, status, false)
}

// AdvanceOrderStatus moves an order along PENDING, PROCESSING, SHIPPED,
// DELIVERED, or to CANCELLED from any non-terminal status.
func (s *OrderService) AdvanceOrderStatus(ctx context.Context, orderID uint, status models.OrderStatus) error {
	return s.setStatus(ctx, orderID, status, true)
}

func (s *OrderService) CancelOrder(ctx context.Context, orderID uint) error {
	return s.AdvanceOrderStatus(ctx, orderID, models.OrderStatusCancelled)
}

func (s *OrderService) setStatus(ctx context.Context, orderID uint, status models.OrderStatus, checkTransition bool) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		order, err := s.orderRepo.LockByID(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if checkTransition && !order.Status.CanTransitionTo(status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, order.Status, status)
		}
		return s.orderRepo.UpdateStatus(ctx, tx, orderID, status)
	}, models.TableOrders)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) || errors.Is(err, ErrInvalidStatusTransition) {
			return err
		}
		return storageErr("update order status", err)
	}
	return nil
}

// newOrderCode builds the human reference ORD-YYYYMMDD-xxxxxxxx.
func newOrderCode(at time.Time) string {
	return fmt.Sprintf("ORD-%s-%s", at.Format("20060102"), strings.ToUpper(uuid.NewString()[:8]))
}

func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
