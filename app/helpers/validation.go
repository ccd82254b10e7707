package helpers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/Rakhulsr/go-petshop/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

type RegistrationForm struct {
	Name            string `form:"name" validate:"required,notblank,min=10"`
	Email           string `form:"email" validate:"required,email"`
	Phone           string `form:"phone" validate:"required,min=10"`
	Address         string `form:"address" validate:"required,notblank,min=5"`
	Password        string `form:"password" validate:"required,min=5,upperlower"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

func (f RegistrationForm) Input() services.RegisterInput {
	return services.RegisterInput{
		Name:     f.Name,
		Email:    f.Email,
		Phone:    f.Phone,
		Address:  f.Address,
		Password: f.Password,
	}
}

type ChangePasswordForm struct {
	CurrentPassword string `form:"current_password" validate:"required"`
	NewPassword     string `form:"new_password" validate:"required,min=5,upperlower"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=NewPassword"`
}

type ProfileForm struct {
	Name    string `form:"name" validate:"required,notblank,min=10"`
	Email   string `form:"email" validate:"required,email"`
	Phone   string `form:"phone" validate:"required,min=10"`
	Address string `form:"address" validate:"required,notblank,min=5"`
}

func (f ProfileForm) Input() services.ProfileInput {
	return services.ProfileInput{
		Name:    f.Name,
		Email:   f.Email,
		Phone:   f.Phone,
		Address: f.Address,
	}
}

type CheckoutForm struct {
	ShippingAddress string `form:"shipping_address" validate:"required,notblank"`
	PaymentMethod   string `form:"payment_method" validate:"required,payment_method"`
	Notes           string `form:"notes"`
}

func (f CheckoutForm) Input(customerID uint) services.CheckoutInput {
	input := services.CheckoutInput{
		CustomerID:      customerID,
		ShippingAddress: strings.TrimSpace(f.ShippingAddress),
		PaymentMethod:   f.PaymentMethod,
	}
	if notes := strings.TrimSpace(f.Notes); notes != "" {
		input.Notes = &notes
	}
	return input
}

// NewValidator returns a validator with the storefront rules registered and
// field names reported by their form tag.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "notblank", validators.NotBlank)
	mustRegister(v, "upperlower", hasUpperAndLower)
	mustRegister(v, "payment_method", isPaymentMethod)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

func hasUpperAndLower(fl validator.FieldLevel) bool {
	var upper, lower bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		}
	}
	return upper && lower
}

func isPaymentMethod(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, method := range services.PaymentMethods() {
		if value == method {
			return true
		}
	}
	return false
}

// ValidateForm returns nil when form passes, otherwise one message per
// failing field keyed by its form name.
func ValidateForm(v *validator.Validate, form interface{}) (map[string]string, error) {
	err := v.Struct(form)
	if err == nil {
		return nil, nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, err
	}
	return FormatValidationErrors(validationErrors), nil
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := err.Field()
		label := capitalizeFirstLetter(field)
		switch err.Tag() {
		case "required", "notblank":
			errorMessages[field] = fmt.Sprintf("%s is required.", label)
		case "email":
			errorMessages[field] = fmt.Sprintf("%s must be a valid email address.", label)
		case "min":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s characters.", label, err.Param())
		case "max":
			errorMessages[field] = fmt.Sprintf("%s must be at most %s characters.", label, err.Param())
		case "eqfield":
			errorMessages[field] = "Passwords do not match."
		case "upperlower":
			errorMessages[field] = fmt.Sprintf("%s must contain an uppercase and a lowercase letter.", label)
		case "payment_method":
			errorMessages[field] = fmt.Sprintf("%s must be one of: %s.", label, strings.Join(services.PaymentMethods(), ", "))
		default:
			errorMessages[field] = fmt.Sprintf("%s failed the %s check.", label, err.Tag())
		}
	}
	return errorMessages
}

func capitalizeFirstLetter(s string) string {
	if len(s) == 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "_", " ")
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}
	return strings.Join(words, " ")
}
