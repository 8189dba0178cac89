package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/deptshare/internal/share/domain"
	"github.com/aussiebroadwan/deptshare/internal/share/service"
	"github.com/aussiebroadwan/deptshare/internal/share/store"
	"github.com/aussiebroadwan/deptshare/pkg/httpx"
	"github.com/aussiebroadwan/deptshare/pkg/sharesdk"
)

// maxJSONBody bounds register and login bodies.
const maxJSONBody = 64 << 10

type RegisterHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP registers a new account.
//
//	@Summary		Register an account
//	@Description	Creates an account in one department and allocates the identifier used to log in.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		sharesdk.RegisterRequest			true	"Account details"
//	@Success		201		{object}	sharesdk.RegisterResponse			"Account created, identifier allocated"
//	@Failure		400		{object}	sharesdk.ValidationErrorResponse	"Validation failed"
//	@Failure		400		{object}	sharesdk.ErrorResponse				"Email already registered"
//	@Failure		500		{object}	sharesdk.ErrorResponse				"Registration failed"
//	@Router			/v1/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req sharesdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, maxJSONBody, &req); err != nil {
		writeInvalidJSON(w)
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidation(w, errs)
		return
	}

	account, err := h.AccountService.Register(r.Context(), service.Registration{
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
		Password:   req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, sharesdk.RegisterResponse{
		Message:    "User registered successfully",
		User:       toAccount(account),
		Identifier: account.Identifier,
	})
}

type LoginHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP exchanges an identifier and password for a session token.
//
//	@Summary		Log in
//	@Description	Verifies the identifier and password and issues an EdDSA signed session token.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		sharesdk.LoginRequest				true	"Credentials"
//	@Success		200		{object}	sharesdk.LoginResponse				"Session issued"
//	@Failure		400		{object}	sharesdk.ValidationErrorResponse	"Validation failed"
//	@Failure		401		{object}	sharesdk.ErrorResponse				"Invalid credentials"
//	@Router			/v1/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req sharesdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, maxJSONBody, &req); err != nil {
		writeInvalidJSON(w)
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidation(w, errs)
		return
	}

	sess, err := h.SessionService.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, sharesdk.LoginResponse{
		AccessToken: sess.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(time.Until(sess.ExpiresAt).Seconds()),
		Account:     toAccount(sess.Account),
	})
}

type LogoutHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP revokes the presented session token.
//
//	@Summary		Log out
//	@Description	Revokes the session token used for this request. Later requests with it are rejected.
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Success		204	"Session revoked"
//	@Failure		401	{object}	sharesdk.ErrorResponse	"Missing or invalid token"
//	@Router			/v1/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err == nil {
		err = h.SessionService.Logout(r.Context(), p)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

type MeHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP returns the caller's account.
//
//	@Summary		Current account
//	@Tags			Accounts
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	sharesdk.Account		"The caller's account"
//	@Failure		401	{object}	sharesdk.ErrorResponse	"Missing or invalid token"
//	@Router			/v1/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.AccountService.Get(r.Context(), p.AccountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			err = service.ErrUnauthenticated
		}
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAccount(account))
}

// DepartmentsHandler lists the fixed departments.
//
//	@Summary		List departments
//	@Description	Returns every department in display order together with its identifier code.
//	@Tags			Accounts
//	@Produce		json
//	@Success		200	{object}	sharesdk.DepartmentsResponse	"Departments"
//	@Router			/v1/departments [get].
func DepartmentsHandler() http.HandlerFunc {
	all := domain.Departments()
	resp := sharesdk.DepartmentsResponse{Departments: make([]sharesdk.Department, len(all))}
	for i, d := range all {
		resp.Departments[i] = sharesdk.Department{Name: d.String(), Code: d.Code()}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, resp)
	}
}
