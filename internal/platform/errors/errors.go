package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrTrainingDisabled = errors.New("training is disabled in settings")
	ErrUnauthorized     = errors.New("unauthorized")
)
