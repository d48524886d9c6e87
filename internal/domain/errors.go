package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrStoreNotConnected is returned by every write path when the hosted
	// store is unconfigured. Reads degrade to empty collections instead.
	ErrStoreNotConnected = errors.New("DB_NOT_CONNECTED")

	ErrEmptyCart  = errors.New("cart is empty")
	ErrValidation = errors.New("missing required fields")
)
