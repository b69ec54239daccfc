package auth

import (
	"direct-chat/errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateClaims rejects a well signed token that names no user.
func validateClaims(claims *CustomClaims) error {
	if err := validate.Struct(claims); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrUnauthenticated, err)
	}
	return nil
}
