package handlers

import (
	"net/http"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"snapquest/internal/session"
)

type AuthHandler struct {
	sessions  *session.Manager
	jwtSecret []byte
}

func NewAuthHandler(sessions *session.Manager, jwtSecret []byte) *AuthHandler {
	return &AuthHandler{sessions: sessions, jwtSecret: jwtSecret}
}

// Login runs the simulated identity-provider flow and returns the new user
// together with a bearer token for the protected routes.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	user, err := h.sessions.Login(r.Context())
	if err != nil {
		http.Error(w, "could not login", http.StatusInternalServerError)
		return
	}
	token, err := h.issueJWT(user.ID)
	if err != nil {
		http.Error(w, "could not issue token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"token": token, "user": user})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(); err != nil {
		http.Error(w, "could not logout", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetMe returns the current session user.
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessions.CurrentUser()
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}
	writeJSON(w, user)
}

func (h *AuthHandler) issueJWT(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.jwtSecret)
}
