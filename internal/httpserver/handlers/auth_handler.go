package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"complianceai/internal/auth"
	"complianceai/internal/store"
)

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func Register(users *store.Users, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Username == "" || req.Email == "" || req.Password == "" || req.Role == "" {
			respondMessage(w, http.StatusBadRequest, "missing required fields")
			return
		}
		u, err := users.Register(r.Context(), req.Username, req.Email, req.Password, req.Role)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrDuplicateUsername), errors.Is(err, store.ErrDuplicateEmail):
				respondMessage(w, http.StatusConflict, err.Error())
			case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrInvalidEmail), errors.Is(err, store.ErrInvalidRole):
				respondMessage(w, http.StatusBadRequest, err.Error())
			default:
				lg.Errorw("registration failed", "error", err)
				respondMessage(w, http.StatusInternalServerError, "an error occurred while registering the user")
			}
			return
		}
		lg.Infow("new user registered", "username", u.Username)
		respondJSON(w, http.StatusCreated, map[string]any{"message": "New user created!", "id": u.ID})
	}
}

// Login verifies HTTP Basic credentials and returns a bearer token plus
// the user's role. Last login is stamped on success.
func Login(users *store.Users, tokens *auth.TokenService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok || username == "" || password == "" {
			respondMessage(w, http.StatusUnauthorized, "could not verify")
			return
		}
		u, err := users.VerifyCredentials(r.Context(), username, password)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) || errors.Is(err, store.ErrBadCredential) {
				respondMessage(w, http.StatusUnauthorized, "could not verify")
				return
			}
			lg.Errorw("login failed", "error", err)
			respondMessage(w, http.StatusInternalServerError, "an error occurred while logging in")
			return
		}
		tok, err := tokens.Issue(u.ID)
		if err != nil {
			lg.Errorw("token issue failed", "error", err)
			respondMessage(w, http.StatusInternalServerError, "an error occurred while logging in")
			return
		}
		if err := users.TouchLastLogin(r.Context(), u.ID); err != nil {
			lg.Warnw("last login stamp failed", "user_id", u.ID, "error", err)
		}
		lg.Infow("user logged in", "username", u.Username)
		respondJSON(w, http.StatusOK, map[string]any{"token": tok, "role": u.Role})
	}
}
