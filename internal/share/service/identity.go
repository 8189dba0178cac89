package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aussiebroadwan/deptshare/internal/share/domain"
	"github.com/aussiebroadwan/deptshare/pkg/cryptox"
)

const (
	// IdentifierAlphabet leaves out 0, 1, I, L and O, which read alike.
	IdentifierAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

	IdentifierSuffixLen = 6

	DefaultMaxAttempts = 8
)

// ExistsFunc reports whether an identifier is already registered.
type ExistsFunc func(ctx context.Context, identifier string) (bool, error)

// IdentityAllocator mints login identifiers of the form "<CODE>-<suffix>",
// e.g. "FIN-7KQ2MX".
type IdentityAllocator struct {
	// Entropy defaults to crypto/rand.
	Entropy io.Reader

	// MaxAttempts bounds AllocateUnique. Defaults to DefaultMaxAttempts.
	MaxAttempts int
}

// Allocate returns a candidate identifier for dept. It does not check
// whether the candidate is taken.
func (a *IdentityAllocator) Allocate(dept domain.Department) (string, error) {
	code := dept.Code()
	if code == "" {
		return "", domain.ErrUnknownDepartment
	}

	suffix, err := cryptox.RandomString(a.Entropy, IdentifierAlphabet, IdentifierSuffixLen)
	if err != nil {
		return "", fmt.Errorf("allocate identifier: %w", err)
	}
	return code + "-" + suffix, nil
}

// AllocateUnique draws candidates until exists reports one as free. It gives
// up with ErrIdentifierExhausted after MaxAttempts collisions.
func (a *IdentityAllocator) AllocateUnique(ctx context.Context, dept domain.Department, exists ExistsFunc) (string, error) {
	attempts := a.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	for range attempts {
		candidate, err := a.Allocate(dept)
		if err != nil {
			return "", err
		}

		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check identifier: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		identifierCollisionsTotal.Inc()
	}

	return "", ErrIdentifierExhausted
}

// DepartmentOf reads the department back out of an identifier's prefix.
func DepartmentOf(identifier string) (domain.Department, bool) {
	code, suffix, ok := strings.Cut(identifier, "-")
	if !ok || len(suffix) != IdentifierSuffixLen {
		return "", false
	}
	for _, c := range suffix {
		if !strings.ContainsRune(IdentifierAlphabet, c) {
			return "", false
		}
	}

	dept, err := domain.DepartmentFromCode(code)
	if err != nil {
		return "", false
	}
	return dept, true
}
