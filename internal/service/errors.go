package service

import "errors"

// Common sentinel errors for the service layer.
var (
	// ErrNoUsers indicates that an operation needing an arbitrary existing
	// user (quick-add) found the user store empty.
	ErrNoUsers = errors.New("no users exist")

	// ErrEmptyPassword indicates that a user creation request carried no
	// password to hash.
	ErrEmptyPassword = errors.New("password cannot be empty")
)
