package workflow

import "errors"

var (
	ErrNotFound        = errors.New("workflow: not found")
	ErrValidation      = errors.New("workflow: invalid input")
	ErrAlreadyReviewed = errors.New("workflow: transaction already reviewed")
)
