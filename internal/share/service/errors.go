package service

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthFailure is the parent of every "who are you" failure. Callers
	// outside the service see one generic message for all of them.
	ErrAuthFailure = errors.New("authentication failed")

	ErrUnknownIdentifier = fmt.Errorf("%w: unknown identifier", ErrAuthFailure)
	ErrBadSecret         = fmt.Errorf("%w: wrong password", ErrAuthFailure)
	ErrUnauthenticated   = fmt.Errorf("%w: no session", ErrAuthFailure)
	ErrSessionRevoked    = fmt.Errorf("%w: session revoked", ErrAuthFailure)

	// ErrForbidden is an authenticated caller reaching outside their department.
	ErrForbidden = errors.New("access denied")

	ErrEmailTaken          = errors.New("email already registered")
	ErrIdentifierExhausted = errors.New("could not allocate a unique identifier")

	ErrNoFile              = errors.New("no file provided")
	ErrUnsupportedFileType = errors.New("invalid file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrFileNotFound        = errors.New("file not found")
)
