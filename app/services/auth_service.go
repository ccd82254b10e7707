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
	"github.com/Rakhulsr/go-petshop/app/utils/sessions"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	Password string
}

// MediaStore keeps copies of files the customer selected.
type MediaStore interface {
	Save(src, prefix string) (string, error)
	Remove(path string) error
}

type AuthService struct {
	store        *store.Store
	customerRepo repositories.CustomerRepositoryImpl
	hasher       PasswordHasher
	session      sessions.SessionStore
	media        MediaStore
}

func NewAuthService(
	st *store.Store,
	customerRepo repositories.CustomerRepositoryImpl,
	hasher PasswordHasher,
	session sessions.SessionStore,
	media MediaStore,
) *AuthService {
	if hasher == nil {
		hasher = SHA256Hasher{}
	}
	return &AuthService{
		store:        st,
		customerRepo: customerRepo,
		hasher:       hasher,
		session:      session,
		media:        media,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (uint, error) {
	email := strings.TrimSpace(input.Email)

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	customer := &models.Customer{
		Name:      strings.TrimSpace(input.Name),
		Email:     email,
		Phone:     strings.TrimSpace(input.Phone),
		Address:   strings.TrimSpace(input.Address),
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.store.Transaction(ctx, func(tx *gorm.DB) error {
		taken, err := s.customerRepo.EmailTaken(ctx, tx, email, 0)
		if err != nil {
			return storageErr("check email", err)
		}
		if taken {
			return ErrDuplicateEmail
		}
		if err := s.customerRepo.Create(ctx, tx, customer); err != nil {
			if repositories.IsDuplicateKey(err) {
				return ErrDuplicateEmail
			}
			return storageErr("create customer", err)
		}
		return nil
	}, models.TableCustomers)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return 0, err
		}
		log.Printf("Register: failed to create customer %s: %v", email, err)
		return 0, storageErr("register", err)
	}

	if err := s.session.SetCustomerID(customer.ID); err != nil {
		return customer.ID, fmt.Errorf("customer created but session not saved: %w", err)
	}

	log.Printf("✅ Registered customer %d (%s)", customer.ID, email)
	return customer.ID, nil
}

// Login leaves the session untouched unless the credentials match.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Customer, error) {
	customer, err := s.customerRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, storageErr("find customer by email", err)
	}
	if customer == nil {
		return nil, ErrEmailNotFound
	}

	if !s.hasher.Verify(customer.Password, password) {
		return nil, ErrInvalidPassword
	}

	if err := s.session.SetCustomerID(customer.ID); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return customer, nil
}

func (s *AuthService) Logout() error {
	if err := s.session.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *AuthService) IsLoggedIn() bool {
	_, ok := s.session.GetCustomerID()
	return ok
}

func (s *AuthService) CurrentUserID() (uint, bool) {
	return s.session.GetCustomerID()
}

// CurrentUser returns nil when nobody is logged in or the session points at
// a customer that no longer exists.
func (s *AuthService) CurrentUser(ctx context.Context) (*models.Customer, error) {
	id, ok := s.session.GetCustomerID()
	if !ok {
		return nil, nil
	}
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storageErr("find current customer", err)
	}
	return customer, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	customer, err := s.verifiedCustomer(ctx, currentPassword)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.store.Transaction(ctx, func(tx *gorm.DB) error {
		return s.customerRepo.UpdatePassword(ctx, tx, customer.ID, hash)
	}, models.TableCustomers)
	if err != nil {
		return storageErr("change password", err)
	}
	return nil
}

// DeleteAccount removes the customer together with its cart and orders, then
// logs out.
func (s *AuthService) DeleteAccount(ctx context.Context, password string) error {
	customer, err := s.verifiedCustomer(ctx, password)
	if err != nil {
		return err
	}

	err = s.store.Transaction(ctx, func(tx *gorm.DB) error {
		return s.customerRepo.Delete(ctx, tx, customer.ID)
	}, models.TableCustomers, models.TableCartItems, models.TableOrders, models.TableOrderItems)
	if err != nil {
		return storageErr("delete account", err)
	}

	if customer.ProfileImagePath != nil && s.media != nil {
		if err := s.media.Remove(*customer.ProfileImagePath); err != nil {
			log.Printf("DeleteAccount: failed to remove profile image of customer %d: %v", customer.ID, err)
		}
	}

	if err := s.session.Clear(); err != nil {
		return fmt.Errorf("account deleted but session not cleared: %w", err)
	}
	log.Printf("✅ Deleted customer %d", customer.ID)
	return nil
}

func (s *AuthService) verifiedCustomer(ctx context.Context, password string) (*models.Customer, error) {
	customer, err := sessionCustomer(ctx, s.session, s.customerRepo)
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(customer.Password, password) {
		return nil, ErrInvalidPassword
	}
	return customer, nil
}

func sessionCustomer(ctx context.Context, session sessions.SessionStore, repo repositories.CustomerRepositoryImpl) (*models.Customer, error) {
	id, ok := session.GetCustomerID()
	if !ok {
		return nil, ErrNotLoggedIn
	}
	customer, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, storageErr("find customer", err)
	}
	if customer == nil {
		return nil, ErrUserNotFound
	}
	return customer, nil
}
