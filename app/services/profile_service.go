package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Rakhulsr/go-petshop/app/models"
	"github.com/Rakhulsr/go-petshop/app/repositories"
	"github.com/Rakhulsr/go-petshop/app/store"
	"github.com/Rakhulsr/go-petshop/app/utils/sessions"
	"gorm.io/gorm"
)

type ProfileInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type ProfileService struct {
	store        *store.Store
	customerRepo repositories.CustomerRepositoryImpl
	session      sessions.SessionStore
	media        MediaStore
}

func NewProfileService(
	st *store.Store,
	customerRepo repositories.CustomerRepositoryImpl,
	session sessions.SessionStore,
	media MediaStore,
) *ProfileService {
	return &ProfileService{
		store:        st,
		customerRepo: customerRepo,
		session:      session,
		media:        media,
	}
}

func (s *ProfileService) UpdateProfile(ctx context.Context, input ProfileInput) (*models.Customer, error) {
	customer, err := sessionCustomer(ctx, s.session, s.customerRepo)
	if err != nil {
		return nil, err
	}

	customer.Name = strings.TrimSpace(input.Name)
	customer.Email = strings.TrimSpace(input.Email)
	customer.Phone = strings.TrimSpace(input.Phone)
	customer.Address = strings.TrimSpace(input.Address)

	err = s.store.Transaction(ctx, func(tx *gorm.DB) error {
		taken, err := s.customerRepo.EmailTaken(ctx, tx, customer.Email, customer.ID)
		if err != nil {
			return storageErr("check email", err)
		}
		if taken {
			return ErrDuplicateEmail
		}
		if err := s.customerRepo.UpdateProfile(ctx, tx, customer); err != nil {
			if repositories.IsDuplicateKey(err) {
				return ErrDuplicateEmail
			}
			return err
		}
		return nil
	}, models.TableCustomers)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, err
		}
		return nil, storageErr("update profile", err)
	}

	return s.reload(ctx, customer.ID)
}

// SetProfileImage copies sourcePath into the media store and points the
// customer at the copy. The previous copy is removed once the row is updated.
func (s *ProfileService) SetProfileImage(ctx context.Context, sourcePath string) (*models.Customer, error) {
	customer, err := sessionCustomer(ctx, s.session, s.customerRepo)
	if err != nil {
		return nil, err
	}
	if s.media == nil {
		return nil, errors.New("no media store configured")
	}

	saved, err := s.media.Save(sourcePath, fmt.Sprintf("profile_%d", customer.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to store profile image: %w", err)
	}

	err = s.store.Transaction(ctx, func(tx *gorm.DB) error {
		return s.customerRepo.UpdateProfileImage(ctx, tx, customer.ID, &saved)
	}, models.TableCustomers)
	if err != nil {
		if rmErr := s.media.Remove(saved); rmErr != nil {
			log.Printf("SetProfileImage: failed to remove orphaned copy %s: %v", saved, rmErr)
		}
		return nil, storageErr("set profile image", err)
	}

	if previous := customer.ProfileImagePath; previous != nil && *previous != saved {
		if err := s.media.Remove(*previous); err != nil {
			log.Printf("SetProfileImage: failed to remove previous image %s: %v", *previous, err)
		}
	}

	return s.reload(ctx, customer.ID)
}

func (s *ProfileService) reload(ctx context.Context, id uint) (*models.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storageErr("reload customer", err)
	}
	if customer == nil {
		return nil, ErrUserNotFound
	}
	return customer, nil
}
