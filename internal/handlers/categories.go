// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"linguablog/internal/apperr"
	"linguablog/internal/middleware"
	"linguablog/internal/models"
	"linguablog/internal/rbac"
	"linguablog/internal/store"
)

type categoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	IsActive    bool      `json:"is_active"`
	PostCount   int       `json:"post_count,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toCategoryResponse(c *models.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID.String(),
		Name:        c.Translation.Name,
		Slug:        c.Translation.Slug,
		Description: c.Translation.Description,
		Language:    c.ServedLanguage,
		IsActive:    c.IsActive,
		PostCount:   c.PostCount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// boolFilter parses a tri-state boolean query value. Anything outside
// the recognised spellings means "no filter".
func boolFilter(raw string) *bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		v := true
		return &v
	case "false", "0", "no":
		v := false
		return &v
	}
	return nil
}

// ListCategories serves GET /api/categories with ?q, ?is_active and
// ?with_counts filters.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	language := h.Languages.Resolve(r)
	query := r.URL.Query()

	categories, err := h.Categories.List(store.CategoryQuery{
		Language:        language,
		DefaultLanguage: h.Languages.Default,
		Search:          query.Get("q"),
		Active:          boolFilter(query.Get("is_active")),
		WithCounts:      query.Get("with_counts") == "true",
	})
	if err != nil {
		writeError(w, err)
		return
	}

	results := make([]categoryResponse, 0, len(categories))
	for i := range categories {
		results = append(results, toCategoryResponse(&categories[i]))
	}
	w.Header().Set("Content-Language", language)
	respondJSON(w, http.StatusOK, listEnvelope{Count: len(results), Results: results})
}

// GetCategory serves GET /api/categories/{slug}.
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	language := h.Languages.Resolve(r)

	category, err := h.Categories.FindBySlug(chi.URLParam(r, "slug"), language, h.Languages.Default)
	if err != nil {
		writeError(w, err)
		return
	}
	if category == nil {
		writeError(w, apperr.NotFoundf("category not found"))
		return
	}
	w.Header().Set("Content-Language", category.ServedLanguage)
	respondJSON(w, http.StatusOK, toCategoryResponse(category))
}

type categoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// CreateCategory serves POST /api/categories. Editors and admins hold
// add_category.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromCtx(r.Context())
	if !identity.Authenticated {
		writeError(w, apperr.Unauthenticatedf("authentication required"))
		return
	}
	if !identity.HasPermission(rbac.PermAddCategory) {
		writeError(w, apperr.Forbiddenf("you may not create categories"))
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, apperr.Validationf("name is required"))
		return
	}

	language := h.Languages.Resolve(r)
	category, err := h.Categories.Create(store.CategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		IsActive:    req.IsActive,
	}, language, h.Languages.Default)
	if err != nil {
		writeError(w, err)
		return
	}
	h.invalidatePostCache(r)
	respondJSON(w, http.StatusCreated, toCategoryResponse(category))
}

// UpdateCategory serves PATCH /api/categories/{slug}. Sending a language
// the category has no translation for creates one.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromCtx(r.Context())
	if !identity.Authenticated {
		writeError(w, apperr.Unauthenticatedf("authentication required"))
		return
	}
	if !identity.HasPermission(rbac.PermChangeCategory) {
		writeError(w, apperr.Forbiddenf("you may not edit categories"))
		return
	}

	language := h.Languages.Resolve(r)

	category, err := h.Categories.FindBySlug(chi.URLParam(r, "slug"), language, h.Languages.Default)
	if err != nil {
		writeError(w, err)
		return
	}
	if category == nil {
		writeError(w, apperr.NotFoundf("category not found"))
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.Categories.Update(category, store.CategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		IsActive:    req.IsActive,
	}, language, h.Languages.Default)
	if err != nil {
		writeError(w, err)
		return
	}
	h.invalidatePostCache(r)
	respondJSON(w, http.StatusOK, toCategoryResponse(updated))
}

// DeleteCategory serves DELETE /api/categories/{slug}. Deletion is the
// one category write editors do not get.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromCtx(r.Context())
	if !identity.Authenticated {
		writeError(w, apperr.Unauthenticatedf("authentication required"))
		return
	}
	if !identity.HasPermission(rbac.PermDeleteCategory) {
		writeError(w, apperr.Forbiddenf("you may not delete categories"))
		return
	}

	language := h.Languages.Resolve(r)

	category, err := h.Categories.FindBySlug(chi.URLParam(r, "slug"), language, h.Languages.Default)
	if err != nil {
		writeError(w, err)
		return
	}
	if category == nil {
		writeError(w, apperr.NotFoundf("category not found"))
		return
	}

	if err := h.Categories.Delete(category.ID); err != nil {
		writeError(w, err)
		return
	}
	h.invalidatePostCache(r)
	w.WriteHeader(http.StatusNoContent)
}
