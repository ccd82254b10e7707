package fakers

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rakhulsr/go-petshop/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
)

// CustomerFaker builds an unsaved demo customer whose password hash is
// passwordHash. Emails carry a short random tag so repeated runs do not
// collide.
func CustomerFaker(passwordHash string) *models.Customer {
	address := faker.GetRealAddress()

	localPart := strings.ToLower(strings.ReplaceAll(faker.FirstName(), " ", ""))
	email := fmt.Sprintf("%s.%s@example.com", localPart, uuid.NewString()[:6])

	return &models.Customer{
		Name:      fmt.Sprintf("%s %s", faker.FirstName(), faker.LastName()),
		Email:     email,
		Phone:     faker.Phonenumber(),
		Address:   fmt.Sprintf("%s, %s, %s %s", address.Address, address.City, address.State, address.PostalCode),
		Password:  passwordHash,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}
