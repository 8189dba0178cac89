package sharesdk

import (
	"time"

	"github.com/aussiebroadwan/deptshare/pkg/jwtx"
)

// ============================================================================
// Internal Response Types (used for JSON unmarshaling)
// ============================================================================

// ErrorResponse is the body of every non-validation error.
// Client code should use the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is the machine readable code (e.g., "invalid_grant", "access_denied")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse is returned when a request body fails validation.
type ValidationErrorResponse struct {
	// Code is always "validation_error"
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Details maps request field names to their error message
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Account Types
// ============================================================================

// RegisterRequest creates a new account. The identifier used to log in is
// allocated by the server and returned in the response.
type RegisterRequest struct {
	// FullName is the display name (at least 2 characters)
	FullName string `json:"full_name" validate:"required,min=2"`

	// Email must be unique across all accounts (case-insensitive)
	Email string `json:"email" validate:"required,email"`

	// Department is one of the names returned by GET /v1/departments
	Department string `json:"department" validate:"required,department"`

	// Password is 6 to 72 characters; bcrypt reads at most 72 bytes
	Password string `json:"password" validate:"required,min=6,max=72"`

	// ConfirmPassword must equal Password
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// RegisterResponse is returned from POST /v1/register.
type RegisterResponse struct {
	Message string `json:"message"`

	// User is the created account
	User Account `json:"user"`

	// Identifier is repeated at the top level because it is the one value
	// the user must keep to sign in.
	Identifier string `json:"identifier"`
}

// LoginRequest signs in with the allocated identifier.
type LoginRequest struct {
	// Identifier is the "<CODE>-XXXXXX" handle, e.g. "FIN-7KQ2MX"
	Identifier string `json:"identifier" validate:"required"`

	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned from POST /v1/login.
type LoginResponse struct {
	// AccessToken is the bearer token for authenticated endpoints
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int `json:"expires_in"`

	Account Account `json:"account"`
}

// Account is the public projection of an account. It never carries the
// password hash.
type Account struct {
	ID         string    `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Identifier string    `json:"identifier"`
	CreatedAt  time.Time `json:"created_at"`
}

// Department is one entry of the fixed department list.
type Department struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// DepartmentsResponse is returned from GET /v1/departments.
type DepartmentsResponse struct {
	Departments []Department `json:"departments"`
}

// ============================================================================
// File Types
// ============================================================================

// File is the metadata of an uploaded file.
type File struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"original_name"`
	StoredName   string    `json:"stored_name"`
	Path         string    `json:"path"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	Checksum     string    `json:"checksum"`
	Department   string    `json:"department"`
	Owner        FileOwner `json:"owner"`
	CreatedAt    time.Time `json:"created_at"`
}

// FileOwner is the uploader as shown next to a file.
type FileOwner struct {
	FullName   string `json:"full_name"`
	Identifier string `json:"identifier"`
}

// FilesResponse is returned from GET /v1/files, newest first.
type FilesResponse struct {
	Files []File `json:"files"`
}

// UploadResponse is returned from POST /v1/files.
type UploadResponse struct {
	Message string `json:"message"`
	File    File   `json:"file"`
}

// ============================================================================
// Health & JWKS Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the individual readiness checks.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
	Storage  string `json:"storage"`
}

// JWKSResponse is the set of public keys that verify session tokens.
type JWKSResponse jwtx.JWKS
