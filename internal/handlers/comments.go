// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"linguablog/internal/apperr"
	"linguablog/internal/middleware"
	"linguablog/internal/models"
	"linguablog/internal/rbac"
)

type commentResponse struct {
	ID         string    `json:"id"`
	PostID     string    `json:"post_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

func toCommentResponse(c *models.Comment) commentResponse {
	return commentResponse{
		ID:         c.ID.String(),
		PostID:     c.PostID.String(),
		AuthorName: c.AuthorName,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt,
	}
}

// ListComments serves GET /api/posts/{slug}/comments. Comments are only
// reachable through a post the caller can see.
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromCtx(r.Context())
	language := h.Languages.Resolve(r)

	post, err := h.findVisiblePost(chi.URLParam(r, "slug"), language, identity)
	if err != nil {
		writeError(w, err)
		return
	}

	comments, err := h.Comments.ListForPost(post.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	results := make([]commentResponse, 0, len(comments))
	for i := range comments {
		results = append(results, toCommentResponse(&comments[i]))
	}
	respondJSON(w, http.StatusOK, listEnvelope{Count: len(results), Results: results})
}

type commentRequest struct {
	AuthorName string `json:"author_name"`
	Content    string `json:"content"`
}

// CreateComment serves POST /api/posts/{slug}/comments. Requires a signed
// in caller with the add_comment permission; every role grants it, so in
// practice this just keeps drive-by bots out.
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromCtx(r.Context())
	if !identity.Authenticated {
		writeError(w, apperr.Unauthenticatedf("authentication required to comment"))
		return
	}
	if !identity.HasPermission(rbac.PermAddComment) {
		writeError(w, apperr.Forbiddenf("you may not comment"))
		return
	}

	language := h.Languages.Resolve(r)
	post, err := h.findVisiblePost(chi.URLParam(r, "slug"), language, identity)
	if err != nil {
		writeError(w, err)
		return
	}

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if msg := validateComment(req.AuthorName, req.Content); msg != "" {
		writeError(w, apperr.Validationf("%s", msg))
		return
	}

	comment, err := h.Comments.Create(post.ID, req.AuthorName, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toCommentResponse(comment))
}

// DeleteComment serves DELETE /api/comments/{id}. Moderation only:
// requires can_moderate_comment (editors and admins).
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromCtx(r.Context())
	if !identity.Authenticated {
		writeError(w, apperr.Unauthenticatedf("authentication required"))
		return
	}
	if !identity.HasPermission(rbac.PermModerateComment) {
		writeError(w, apperr.Forbiddenf("you may not moderate comments"))
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperr.Validationf("invalid comment id"))
		return
	}

	comment, err := h.Comments.FindByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if comment == nil {
		writeError(w, apperr.NotFoundf("comment not found"))
		return
	}

	if err := h.Comments.Delete(comment.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
