package services

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrorKind classifies a ServiceError for the HTTP layer.
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindProvider    ErrorKind = "provider"
	KindPersistence ErrorKind = "persistence"
	KindNotFound    ErrorKind = "not_found"
)

// ServiceError is returned by every service method that fails.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e == nil {
		return "service_error"
	}
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// Is matches any ServiceError of the same kind, so errors.Is(err,
// ErrNotFound) works for every not-found failure.
func (e *ServiceError) Is(target error) bool {
	t, ok := target.(*ServiceError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrValidation  = &ServiceError{Kind: KindValidation}
	ErrProvider    = &ServiceError{Kind: KindProvider}
	ErrPersistence = &ServiceError{Kind: KindPersistence}
	ErrNotFound    = &ServiceError{Kind: KindNotFound}
)

func validationError(msg string) *ServiceError {
	return &ServiceError{Kind: KindValidation, Message: msg}
}

func notFoundError(msg string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: msg}
}

// providerError keeps the upstream message visible to the caller.
func providerError(prefix string, cause error) *ServiceError {
	return &ServiceError{Kind: KindProvider, Message: prefix + ": " + cause.Error(), Cause: cause}
}

// persistenceError hides the driver message behind msg.
func persistenceError(msg string, cause error) *ServiceError {
	return &ServiceError{Kind: KindPersistence, Message: msg, Cause: cause}
}

// storeError maps a repository error: no documents becomes not-found,
// anything else is a persistence failure.
func storeError(notFoundMsg, failMsg string, err error) *ServiceError {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &ServiceError{Kind: KindNotFound, Message: notFoundMsg, Cause: err}
	}
	return persistenceError(failMsg, err)
}

// HTTPStatus maps err to the status code the API answers with.
func HTTPStatus(err error) int {
	var se *ServiceError
	if !errors.As(err, &se) {
		return http.StatusInternalServerError
	}
	switch se.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindProvider:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
