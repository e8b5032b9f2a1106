// Package forms validates user input before any network call is made.
// Validation failures are reported to the user directly and never reach
// the backend.
package forms

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Credentials checks a login/register form.
func Credentials(email, password string) error {
	if email == "" {
		return errors.New("email is required")
	}
	if err := validate.Var(email, "email"); err != nil {
		return errors.New("email address is not valid")
	}
	if password == "" {
		return errors.New("password is required")
	}
	return nil
}

// PasswordConfirmation checks the register form's confirmation field.
func PasswordConfirmation(password, confirmation string) error {
	if password != confirmation {
		return errors.New("passwords do not match")
	}
	return nil
}

// CustomLeadForm checks a custom-lead request form.
func CustomLeadForm(industry, location string, quantity int) error {
	if industry == "" {
		return errors.New("industry is required")
	}
	if location == "" {
		return errors.New("location is required")
	}
	if quantity <= 0 {
		return errors.New("quantity must be greater than zero")
	}
	return nil
}

// RefundForm checks a refund request form.
func RefundForm(purchaseID int, reason string) error {
	if purchaseID <= 0 {
		return errors.New("purchase id is required")
	}
	if reason == "" {
		return errors.New("reason is required")
	}
	return nil
}
