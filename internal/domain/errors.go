package domain

import "errors"

// Sentinel errors surfaced by repositories so callers can react to storage
// constraints (uniqueness in particular) without parsing driver errors.
var (
	ErrNotFound                = errors.New("record not found")
	ErrDuplicateUserID         = errors.New("user id already taken")
	ErrDuplicateEmail          = errors.New("email already registered")
	ErrDuplicateEmployerNumber = errors.New("employer number already allocated")
)
