package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/deptshare/internal/share/domain"
	"github.com/aussiebroadwan/deptshare/internal/share/service"
	"github.com/aussiebroadwan/deptshare/pkg/httpx"
	"github.com/aussiebroadwan/deptshare/pkg/sharesdk"
	"github.com/aussiebroadwan/deptshare/pkg/slogx"
)

const validationMessage = "validation failed for some fields"

// writeError maps a service error to its wire form. Anything unrecognised is
// logged and reported as a generic server error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var fields domain.FieldErrors
	switch {
	case errors.As(err, &fields):
		writeValidation(w, fields)
	case errors.Is(err, service.ErrEmailTaken):
		sharesdk.ErrEmailTaken.WriteError(w)
	case errors.Is(err, service.ErrUnknownIdentifier), errors.Is(err, service.ErrBadSecret):
		sharesdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrAuthFailure):
		w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
		sharesdk.ErrInvalidToken.WriteError(w)
	case errors.Is(err, service.ErrForbidden):
		sharesdk.ErrAccessDenied.WriteError(w)
	case errors.Is(err, service.ErrFileNotFound):
		sharesdk.ErrFileNotFound.WriteError(w)
	case errors.Is(err, service.ErrNoFile):
		sharesdk.ErrNoFile.WriteError(w)
	case errors.Is(err, service.ErrUnsupportedFileType):
		sharesdk.ErrInvalidFileType.WriteError(w)
	case errors.Is(err, service.ErrFileTooLarge):
		sharesdk.ErrFileTooLarge.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
		sharesdk.ErrServerError.WriteError(w)
	}
}

func writeValidation(w http.ResponseWriter, details map[string]string) {
	httpx.WriteJSON(w, http.StatusBadRequest, sharesdk.ValidationErrorResponse{
		Code:    sharesdk.ErrorCodeValidation,
		Message: validationMessage,
		Details: details,
	})
}

func writeInvalidJSON(w http.ResponseWriter) {
	sharesdk.NewAPIError(http.StatusBadRequest, sharesdk.ErrorCodeInvalidRequest,
		"Request body must be valid JSON").WriteError(w)
}

// principal returns the caller as established by the authn middleware.
func principal(r *http.Request) (domain.Principal, error) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		return domain.Principal{}, service.ErrUnauthenticated
	}
	return service.PrincipalFromClaims(claims)
}
