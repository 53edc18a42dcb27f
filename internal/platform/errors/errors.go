package apperrors

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrNoActiveRun   = errors.New("no active run")
	ErrRunInProgress = errors.New("run already in progress")
)
