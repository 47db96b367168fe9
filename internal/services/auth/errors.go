package auth

import (
	"fmt"
	"yamdb/proj/internal/domain/errs"
)

var (
	ErrUserNotFound            = fmt.Errorf("user %w", errs.ErrNotFound)
	ErrInvalidConfirmationCode = fmt.Errorf("%w: invalid confirmation code", errs.ErrValidation)
	ErrDeliveryFailed          = fmt.Errorf("%w: confirmation code could not be delivered", errs.ErrUnavailable)
	ErrUsernameTaken           = errs.Conflict("username", "A user with that username already exists")
	ErrEmailTaken              = errs.Conflict("email", "A user with that email already exists")
)
