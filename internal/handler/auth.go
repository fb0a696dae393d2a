package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/lotes-map/internal/domain"
	"github.com/msomdec/lotes-map/internal/service"
)

const (
	msgMissingCredentials = "email y contraseña requeridos"
	msgEmailTaken         = "correo ya registrado"
	msgBadCredentials     = "credenciales inválidas"
	msgUnexpected         = "error inesperado"
)

// AuthHandler handles registration, login and the session endpoints.
type AuthHandler struct {
	auth         *service.AuthService
	sessions     *service.SessionService
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, sessions *service.SessionService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, cookieSecure: cookieSecure}
}

// HandleRegister creates an account and signs the new user in.
// POST /auth/register
// Request:  {"email":"...","password":"...","name":"..."}
// Response: {"ok":true,"user":{...}} or 400 {"ok":false,"error":"..."}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[credentialsRequest](w, r)
	if !ok {
		return
	}

	id, err := h.auth.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, msgMissingCredentials)
		case errors.Is(err, domain.ErrDuplicateEmail):
			writeError(w, http.StatusBadRequest, msgEmailTaken)
		default:
			slog.Error("register user", "error", err)
			writeError(w, http.StatusInternalServerError, msgUnexpected)
		}
		return
	}

	if err := h.establishSession(w, *id); err != nil {
		slog.Error("establish session after register", "error", err)
		writeError(w, http.StatusInternalServerError, msgUnexpected)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{OK: true, User: id})
}

// HandleLogin checks credentials and signs the user in.
// POST /auth/login
// Request:  {"email":"...","password":"..."}
// Response: {"ok":true,"user":{...}} or 401 {"ok":false,"error":"..."}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[credentialsRequest](w, r)
	if !ok {
		return
	}

	id, err := h.auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, msgBadCredentials)
			return
		}
		slog.Error("login user", "error", err)
		writeError(w, http.StatusInternalServerError, msgUnexpected)
		return
	}

	if err := h.establishSession(w, *id); err != nil {
		slog.Error("establish session after login", "error", err)
		writeError(w, http.StatusInternalServerError, msgUnexpected)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{OK: true, User: id})
}

// HandleLogout clears the session cookie.
// POST /auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.clearSession(w)
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// HandleMe returns the signed-in user, or null.
// GET /auth/me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userResponse{OK: true, User: IdentityFromContext(r.Context())})
}

func (h *AuthHandler) establishSession(w http.ResponseWriter, id domain.Identity) error {
	token, err := h.sessions.Issue(id)
	if err != nil {
		return err
	}

	// No MaxAge: the cookie lives for the browser session.
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (h *AuthHandler) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
