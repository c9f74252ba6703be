package usecase

import (
	"errors"

	"listings-console/internal/domain/listing"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
	ErrUpstream          = errors.New("error fetching data")
	ErrInvalidTransition = listing.ErrInvalidTransition
	ErrReadOnly          = errors.New("read only")
	ErrConflict          = errors.New("already exists")
)

// backendError is implemented by errors carrying a backend HTTP answer.
type backendError interface {
	HTTPStatus() int
	BackendMessage() string
}

func asBackendError(err error) (backendError, bool) {
	var be backendError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
