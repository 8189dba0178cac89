package service

import "github.com/aussiebroadwan/deptshare/internal/share/domain"

// AccessPolicy is the department boundary. The department it works with
// always comes from the principal, never from request input.
type AccessPolicy struct{}

// IsAuthenticated reports whether p is a signed-in account.
func (AccessPolicy) IsAuthenticated(p domain.Principal) bool {
	return !p.IsZero() && p.Department.Valid()
}

// RequireAuthenticated returns ErrUnauthenticated for anonymous callers.
func (ap AccessPolicy) RequireAuthenticated(p domain.Principal) error {
	if !ap.IsAuthenticated(p) {
		return ErrUnauthenticated
	}
	return nil
}

// CanList reports whether p may see the files of dept.
func (ap AccessPolicy) CanList(p domain.Principal, dept domain.Department) bool {
	return ap.IsAuthenticated(p) && p.Department == dept
}

// ListScope is the department a listing for p is restricted to.
func (ap AccessPolicy) ListScope(p domain.Principal) (domain.Department, error) {
	if err := ap.RequireAuthenticated(p); err != nil {
		return "", err
	}
	return p.Department, nil
}

// AuthorizeUpload returns the department a new file from p is stamped with.
func (ap AccessPolicy) AuthorizeUpload(p domain.Principal) (domain.Department, error) {
	return ap.ListScope(p)
}

// AuthorizeRead allows p to see r only inside p's own department.
func (ap AccessPolicy) AuthorizeRead(p domain.Principal, r domain.Resource) error {
	if err := ap.RequireAuthenticated(p); err != nil {
		return err
	}
	if !ap.CanList(p, r.Department) {
		return ErrForbidden
	}
	return nil
}
