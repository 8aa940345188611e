package app

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUsernameExists    = errors.New("username already exists")
	ErrEmailExists       = errors.New("email already exists")
	ErrAlreadyExists     = errors.New("username or email already exists")
	ErrInvalidCredential = errors.New("invalid username or password")
	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrTodoNotFound      = errors.New("todo not found")
)
