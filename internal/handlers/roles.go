// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"linguablog/internal/apperr"
	"linguablog/internal/models"
	"linguablog/internal/rbac"
)

// ListUsers serves GET /api/users (admin only).
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List()
	if err != nil {
		writeError(w, err)
		return
	}
	results := make([]userResponse, 0, len(users))
	for i := range users {
		results = append(results, toUserResponse(&users[i]))
	}
	respondJSON(w, http.StatusOK, listEnvelope{Count: len(results), Results: results})
}

type assignRolesRequest struct {
	Roles []string `json:"roles"`
}

// AssignRoles serves PUT /api/users/{id}/roles (admin only). The request
// replaces the user's whole role set; unknown role names fail the call
// and are reported back by name.
func (h *Handler) AssignRoles(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperr.Validationf("invalid user id"))
		return
	}

	user, err := h.Users.FindByID(userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if user == nil {
		writeError(w, apperr.NotFoundf("user not found"))
		return
	}

	var req assignRolesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	roles, invalid := rbac.ParseRoles(req.Roles)
	if len(invalid) > 0 {
		writeError(w, apperr.Validationf("unknown roles: %s", strings.Join(invalid, ", ")))
		return
	}
	if len(roles) == 0 {
		writeError(w, apperr.Validationf("at least one role is required"))
		return
	}

	if err := h.Users.AssignRoles(user.ID, roles); err != nil {
		writeError(w, err)
		return
	}
	slog.Info("roles assigned", "user", user.Email, "roles", req.Roles)

	updated, err := h.Users.FindByID(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(updated))
}

// ListRoles serves GET /api/roles: each role with its permission set, for
// admin UIs that render the matrix.
func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	type roleBody struct {
		Name        string   `json:"name"`
		Permissions []string `json:"permissions"`
	}
	var results []roleBody
	for _, role := range models.Roles {
		perms := rbac.Permissions(role)
		names := make([]string, 0, len(perms))
		for _, p := range perms {
			names = append(names, string(p))
		}
		results = append(results, roleBody{Name: string(role), Permissions: names})
	}
	respondJSON(w, http.StatusOK, listEnvelope{Count: len(results), Results: results})
}
