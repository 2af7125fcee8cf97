// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"linguablog/internal/apperr"
	"linguablog/internal/auth"
	"linguablog/internal/middleware"
	"linguablog/internal/models"
)

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	DisplayName string   `json:"display_name"`
	IsSuperuser bool     `json:"is_superuser"`
	Roles       []string `json:"roles"`
}

func toUserResponse(u *models.User) userResponse {
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, string(r))
	}
	return userResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		IsSuperuser: u.IsSuperuser,
		Roles:       roles,
	}
}

// Register creates an account with the reader role and returns a token so
// the client is signed in immediately.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if msg := validateCredentials(req.Email, req.Password, req.DisplayName); msg != "" {
		writeError(w, apperr.Validationf("%s", msg))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.Users.Create(req.Email, hash, strings.TrimSpace(req.DisplayName),
		[]models.Role{models.RoleReader})
	if err != nil {
		writeError(w, err)
		return
	}
	slog.Info("user registered", "email", user.Email, "id", user.ID)

	token, err := auth.GenerateToken(h.AuthConfig, user)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, tokenResponse{Token: token, User: toUserResponse(user)})
}

// Login verifies credentials and returns a fresh token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.Users.FindByEmail(req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	// Same error for unknown email and wrong password.
	if user == nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		writeError(w, apperr.Unauthenticatedf("invalid credentials"))
		return
	}

	token, err := auth.GenerateToken(h.AuthConfig, user)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tokenResponse{Token: token, User: toUserResponse(user)})
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFromCtx(r.Context())
	user, err := h.Users.FindByID(id.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	if user == nil {
		writeError(w, apperr.NotFoundf("user not found"))
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(user))
}
