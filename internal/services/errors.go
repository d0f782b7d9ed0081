package services

import "errors"

var (
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("not authorized")
	ErrInvalidStatus      = errors.New("invalid task status")
	ErrTitleRequired      = errors.New("title is required")
)
