// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"newsdesk/internal/apperr"
	"newsdesk/internal/middleware"
	"newsdesk/internal/session"
	"newsdesk/internal/store"
)

// Auth bundles the dependencies for the authentication endpoints.
type Auth struct {
	users    *store.UserStore
	sessions *session.Store
}

// NewAuth creates the auth handler set.
func NewAuth(users *store.UserStore, sessions *session.Store) *Auth {
	return &Auth{users: users, sessions: sessions}
}

// loginRequest is the JSON body of the login endpoint.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues a bearer token. Invalid email and
// invalid password produce the same response to avoid account probing.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.KindBadRequest, "invalid request body"))
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, apperr.New(apperr.KindBadRequest, "email and password are required"))
		return
	}

	user, err := a.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	if user == nil || !a.users.CheckPassword(user, req.Password) {
		writeError(w, apperr.New(apperr.KindUnauthorized, "invalid credentials"))
		return
	}

	token, err := a.sessions.Create(r.Context(), &session.Data{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("user logged in", "user_id", user.ID, "role", user.Role)
	respondJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

// Logout destroys the presented token. Safe to call without one.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), r); err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the authenticated user's identity.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())
	respondJSON(w, http.StatusOK, user)
}
