// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"linguablog/internal/apperr"
	"linguablog/internal/middleware"
	"linguablog/internal/models"
	"linguablog/internal/rbac"
)

// GetPostReactions serves GET /api/posts/{slug}/reactions: per-type
// counts plus the caller's own reaction when signed in.
func (h *Handler) GetPostReactions(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromCtx(r.Context())
	language := h.Languages.Resolve(r)

	post, err := h.findVisiblePost(chi.URLParam(r, "slug"), language, identity)
	if err != nil {
		writeError(w, err)
		return
	}
	h.summarizeReactions(w, models.PostTarget(post.ID), identity)
}

// ReactToPost serves POST /api/posts/{slug}/react with {"type": ...}.
func (h *Handler) ReactToPost(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromCtx(r.Context())
	language := h.Languages.Resolve(r)

	post, err := h.findVisiblePost(chi.URLParam(r, "slug"), language, identity)
	if err != nil {
		writeError(w, err)
		return
	}
	h.toggleReaction(w, r, models.PostTarget(post.ID), identity)
}

// GetCommentReactions serves GET /api/comments/{id}/reactions.
func (h *Handler) GetCommentReactions(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromCtx(r.Context())

	comment, err := h.findComment(r, identity)
	if err != nil {
		writeError(w, err)
		return
	}
	h.summarizeReactions(w, models.CommentTarget(comment.ID), identity)
}

// ReactToComment serves POST /api/comments/{id}/react.
func (h *Handler) ReactToComment(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromCtx(r.Context())

	comment, err := h.findComment(r, identity)
	if err != nil {
		writeError(w, err)
		return
	}
	h.toggleReaction(w, r, models.CommentTarget(comment.ID), identity)
}

type reactRequest struct {
	Type string `json:"type"`
}

// toggleReaction applies the toggle rules and responds with what changed
// plus the fresh summary.
func (h *Handler) toggleReaction(w http.ResponseWriter, r *http.Request, target models.Target, identity rbac.Identity) {
	if !identity.Authenticated {
		writeError(w, apperr.Unauthenticatedf("authentication required to react"))
		return
	}

	var req reactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	reaction := models.ReactionType(req.Type)
	if !reaction.Valid() {
		writeError(w, apperr.Validationf("unknown reaction type %q", req.Type))
		return
	}

	result, err := h.Reactions.Toggle(identity.UserID, target, reaction)
	if err != nil {
		writeError(w, err)
		return
	}

	summary, err := h.Reactions.Summarize(target, &identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"action":   result.Action,
		"reaction": result.Reaction,
		"summary":  summary,
	})
}

// summarizeReactions responds with the reaction summary for a target.
func (h *Handler) summarizeReactions(w http.ResponseWriter, target models.Target, identity rbac.Identity) {
	var viewer *uuid.UUID
	if identity.Authenticated {
		uid := identity.UserID
		viewer = &uid
	}
	summary, err := h.Reactions.Summarize(target, viewer)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// findComment resolves the {id} route parameter to a comment, applying
// the caller's visibility on the parent post. Comments on posts the
// caller cannot see are reported as missing, like the posts themselves.
func (h *Handler) findComment(r *http.Request, identity rbac.Identity) (*models.Comment, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return nil, apperr.Validationf("invalid comment id")
	}
	comment, err := h.Comments.FindByID(id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, apperr.NotFoundf("comment not found")
	}

	language := h.Languages.Resolve(r)
	post, err := h.Posts.FindByID(comment.PostID, language, h.Languages.Default)
	if err != nil {
		return nil, err
	}
	if post == nil || !rbac.VisibleTo(identity).Allows(post) {
		return nil, apperr.NotFoundf("comment not found")
	}
	return comment, nil
}
