// errors/account_errors.go
package errors

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountConflict    = errors.New("account already exists")
	ErrInvalidAccountData = errors.New("invalid account data")
	ErrDatabaseOperation  = errors.New("database operation failed")
)
