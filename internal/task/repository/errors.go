package repository

import "errors"

var (
	ErrStatusNotFound = errors.New("task status not found")
	ErrNoRecipients   = errors.New("no recipients given")
)
