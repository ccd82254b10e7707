package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/Rakhulsr/go-petshop/app/db/fakers"
	"github.com/Rakhulsr/go-petshop/app/models"
	"github.com/Rakhulsr/go-petshop/app/repositories"
	"github.com/Rakhulsr/go-petshop/app/store"
	"gorm.io/gorm"
)

// SeedDemoCustomers inserts n fake customers sharing passwordHash.
func SeedDemoCustomers(
	ctx context.Context,
	st *store.Store,
	customerRepo repositories.CustomerRepositoryImpl,
	passwordHash string,
	n int,
) ([]models.Customer, error) {
	if n <= 0 {
		return nil, nil
	}

	customers := make([]models.Customer, 0, n)
	err := st.Transaction(ctx, func(tx *gorm.DB) error {
		for i := 0; i < n; i++ {
			customer := fakers.CustomerFaker(passwordHash)
			if err := customerRepo.Create(ctx, tx, customer); err != nil {
				return fmt.Errorf("failed to create demo customer %s: %w", customer.Email, err)
			}
			customers = append(customers, *customer)
		}
		return nil
	}, models.TableCustomers)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Seeded %d demo customers", len(customers))
	return customers, nil
}
