package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrDuplicateUser   = errors.New("user already exists")
	ErrInvalidInput    = errors.New("invalid input")
)
