// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"linguablog/internal/apperr"
	"linguablog/internal/middleware"
	"linguablog/internal/models"
	"linguablog/internal/rbac"
	"linguablog/internal/store"
)

type tagResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Language  string    `json:"language"`
	PostCount int       `json:"post_count,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toTagResponse(t *models.Tag) tagResponse {
	return tagResponse{
		ID:        t.ID.String(),
		Name:      t.Translation.Name,
		Slug:      t.Translation.Slug,
		Language:  t.ServedLanguage,
		PostCount: t.PostCount,
		CreatedAt: t.CreatedAt,
	}
}

// ListTags serves GET /api/tags with ?q and ?with_counts filters. Tags
// are created implicitly while tagging posts, so there is no POST.
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	language := h.Languages.Resolve(r)
	query := r.URL.Query()

	tags, err := h.Tags.List(store.TagQuery{
		Language:        language,
		DefaultLanguage: h.Languages.Default,
		Search:          query.Get("q"),
		WithCounts:      query.Get("with_counts") == "true",
	})
	if err != nil {
		writeError(w, err)
		return
	}

	results := make([]tagResponse, 0, len(tags))
	for i := range tags {
		results = append(results, toTagResponse(&tags[i]))
	}
	w.Header().Set("Content-Language", language)
	respondJSON(w, http.StatusOK, listEnvelope{Count: len(results), Results: results})
}

// GetTag serves GET /api/tags/{slug}.
func (h *Handler) GetTag(w http.ResponseWriter, r *http.Request) {
	language := h.Languages.Resolve(r)

	tag, err := h.Tags.FindBySlug(chi.URLParam(r, "slug"), language, h.Languages.Default)
	if err != nil {
		writeError(w, err)
		return
	}
	if tag == nil {
		writeError(w, apperr.NotFoundf("tag not found"))
		return
	}
	w.Header().Set("Content-Language", tag.ServedLanguage)
	respondJSON(w, http.StatusOK, toTagResponse(tag))
}

// DeleteTag serves DELETE /api/tags/{slug}. Requires delete_tag, which
// only admins hold.
func (h *Handler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromCtx(r.Context())
	if !identity.Authenticated {
		writeError(w, apperr.Unauthenticatedf("authentication required"))
		return
	}
	if !identity.HasPermission(rbac.PermDeleteTag) {
		writeError(w, apperr.Forbiddenf("you may not delete tags"))
		return
	}

	language := h.Languages.Resolve(r)

	tag, err := h.Tags.FindBySlug(chi.URLParam(r, "slug"), language, h.Languages.Default)
	if err != nil {
		writeError(w, err)
		return
	}
	if tag == nil {
		writeError(w, apperr.NotFoundf("tag not found"))
		return
	}

	if err := h.Tags.Delete(tag.ID); err != nil {
		writeError(w, err)
		return
	}
	h.invalidatePostCache(r)
	w.WriteHeader(http.StatusNoContent)
}
