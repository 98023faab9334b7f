package user

import (
	"net/mail"
	"strings"

	"github.com/ganot/committee/internal/apperror"
)

const minPasswordLength = 8

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegister(req RegisterRequest) error {
	var fields apperror.Fields
	fields.Require("email", req.Email, "email is required")
	fields.Require("first_name", req.FirstName, "first name is required")
	fields.Require("last_name", req.LastName, "last name is required")
	if strings.TrimSpace(req.Email) != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			fields.Add("email", "email is not valid")
		}
	}
	if len(req.Password) < minPasswordLength {
		fields.Add("password", "password must be at least 8 characters")
	}
	return fields.Err()
}
