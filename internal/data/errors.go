package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// ErrCredentialNotFound is returned when a vault entry does not exist or
	// belongs to a different account.
	ErrCredentialNotFound = errors.New("credential not found")
	// ErrCredentialNameExists is returned when an account already has an
	// entry with the same name.
	ErrCredentialNameExists = errors.New("credential name already exists")
)
