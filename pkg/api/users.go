package api

import (
	"errors"
	"net/http"
	"time"

	"vendorflow/pkg/auth"
	"vendorflow/pkg/otel"
	"vendorflow/pkg/validate"
)

type loginResponse struct {
	Token string `json:"token"`
}

type userResponse struct {
	Username string `json:"username"`
}

// registerHandler creates a user account.
// @Summary Register user
// @Accept json
// @Produce json
// @Param creds body auth.Credentials true "Credentials"
// @Success 201 {object} userResponse
// @Failure 400 {object} validationResponse
// @Router /users/ [post]
func (a *API) registerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "registerHandler")
	defer span.End()

	var c auth.Credentials
	if err := decode(r, &c); err != nil {
		a.fail(w, r, "register", err)
		return
	}
	err := a.sessions.Register(ctx, c)
	if errors.Is(err, auth.ErrUserExists) {
		err = validate.Field("username", "unique")
	}
	if err != nil {
		a.fail(w, r.WithContext(ctx), "register", err)
		return
	}
	writeJSON(w, http.StatusCreated, userResponse{Username: c.Username})
}

// loginHandler handles user login and session creation.
// @Summary Login
// @Description Authenticates user, returns a token and sets the session cookie
// @Accept json
// @Produce json
// @Param creds body auth.Credentials true "Credentials"
// @Success 200 {object} loginResponse
// @Failure 400 {object} errorResponse
// @Router /login [post]
func (a *API) loginHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "loginHandler")
	defer span.End()

	var c auth.Credentials
	if err := decode(r, &c); err != nil || c.Username == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid credentials"})
		return
	}
	token, err := a.sessions.Login(ctx, c)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid credentials"})
		return
	}
	if err != nil {
		a.log.Error(ctx, "login", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "session error"})
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(a.sessions.TTL()),
		HttpOnly: true,
	})
	a.log.Info(ctx, "user logged in", "user", c.Username)
	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

// logoutHandler ends the caller's session and clears the session cookie.
// @Summary Logout
// @Success 204
// @Failure 401 {object} errorResponse
// @Security ApiKeyAuth
// @Router /logout [post]
func (a *API) logoutHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "logoutHandler")
	defer span.End()

	if err := a.sessions.Logout(ctx, auth.Token(r)); err != nil {
		a.log.Error(ctx, "logout", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "session error"})
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	a.log.Info(ctx, "user logged out", "user", auth.User(ctx))
	w.WriteHeader(http.StatusNoContent)
}
