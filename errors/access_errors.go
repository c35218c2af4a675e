// errors/access_errors.go
package errors

import "errors"

var (
	ErrUnsupportedResource = errors.New("unsupported resource type")
	ErrInvalidCheckRequest = errors.New("invalid access check request")
	ErrUnrewritableURL     = errors.New("url cannot be rewritten")
	ErrCacheStorage        = errors.New("verdict cache storage failed")
	ErrInternalServer      = errors.New("internal server error")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidPagination   = errors.New("invalid pagination parameters")
)
