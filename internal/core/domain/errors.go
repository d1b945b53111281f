package domain

import "errors"

// Registration / login failures.
var ErrIncompleteInput = errors.New("username and password are required")
var ErrWeakPassword = errors.New("password must be at least 4 characters")
var ErrPasswordMismatch = errors.New("passwords do not match")
var ErrUsernameTaken = errors.New("username already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")

// Order building failures.
var ErrNoItemsSelected = errors.New("no items selected")
var ErrPaymentMethodRequired = errors.New("payment method is required")
var ErrItemNotFound = errors.New("item not in catalog")
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrStorageUnavailable signals that the durable store could not be reached
// or initialised. Fatal at startup, 503 afterwards.
var ErrStorageUnavailable = errors.New("storage unavailable")

var ErrInvalidTransition = errors.New("invalid screen transition")
