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
	"linguablog/internal/cache"
	"linguablog/internal/middleware"
	"linguablog/internal/models"
	"linguablog/internal/rbac"
	"linguablog/internal/store"
)

type termResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type postTranslationBody struct {
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Excerpt    string `json:"excerpt"`
	Content    string `json:"content"`
	Fallback   bool   `json:"fallback"`
}

type postResponse struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Slug       string            `json:"slug"`
	Excerpt    string            `json:"excerpt"`
	Content    string            `json:"content,omitempty"`
	Language   string            `json:"language"`
	Status     models.PostStatus `json:"status"`
	Date       time.Time         `json:"date"`
	Image      string            `json:"image,omitempty"`
	Thumb      string            `json:"thumb,omitempty"`
	ImageAlt   string            `json:"image_alt,omitempty"`
	AuthorName string            `json:"author_name"`
	Tags       []termResponse    `json:"tags"`
	Categories []termResponse    `json:"categories"`
	CreatedBy  *string           `json:"created_by,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`

	// Translations holds every stored language variant; only populated
	// for ?expand=translations on the detail endpoint.
	Translations map[string]postTranslationBody `json:"translations,omitempty"`
}

// toPostResponse flattens the language-resolved translation into the
// response body. withContent controls whether the full content is
// included (list responses carry only the excerpt).
func toPostResponse(p *models.Post, withContent bool) postResponse {
	resp := postResponse{
		ID:         p.ID.String(),
		Title:      p.Translation.Title,
		Slug:       p.Translation.Slug,
		Excerpt:    p.Translation.Excerpt,
		Language:   p.ServedLanguage,
		Status:     p.Status,
		Date:       p.Date,
		Image:      p.Image,
		Thumb:      p.Thumb,
		ImageAlt:   p.ImageAlt,
		AuthorName: p.AuthorName,
		Tags:       make([]termResponse, 0, len(p.Tags)),
		Categories: make([]termResponse, 0, len(p.Categories)),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if withContent {
		resp.Content = p.Translation.Content
	}
	if p.CreatedBy != nil {
		s := p.CreatedBy.String()
		resp.CreatedBy = &s
	}
	for _, t := range p.Tags {
		resp.Tags = append(resp.Tags, termResponse{Name: t.Translation.Name, Slug: t.Translation.Slug})
	}
	for _, c := range p.Categories {
		resp.Categories = append(resp.Categories, termResponse{Name: c.Translation.Name, Slug: c.Translation.Slug})
	}
	return resp
}

// ListPosts serves GET /api/posts with language, category, tag, search,
// ordering and pagination parameters. The visibility filter derived from
// the caller's roles is applied inside the query.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromCtx(r.Context())
	language := h.Languages.Resolve(r)
	limit, offset := pagination(r)

	q := store.PostQuery{
		Language:        language,
		DefaultLanguage: h.Languages.Default,
		Visibility:      rbac.VisibleTo(identity),
		Category:        r.URL.Query().Get("category"),
		Tag:             r.URL.Query().Get("tag"),
		Search:          r.URL.Query().Get("search"),
		Ordering:        r.URL.Query().Get("ordering"),
		Limit:           limit,
		Offset:          offset,
	}

	posts, total, err := h.Posts.List(q)
	if err != nil {
		writeError(w, err)
		return
	}

	results := make([]postResponse, 0, len(posts))
	for i := range posts {
		results = append(results, toPostResponse(&posts[i], false))
	}

	w.Header().Set("Content-Language", language)
	respondJSON(w, http.StatusOK, listEnvelope{Count: total, Results: results})
}

// GetPost serves GET /api/posts/{slug}. Posts outside the caller's
// visibility return 404 rather than 403 so drafts stay unguessable.
// Anonymous responses without expansion are served from the Valkey cache.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromCtx(r.Context())
	language := h.Languages.Resolve(r)
	slugText := chi.URLParam(r, "slug")
	expand := r.URL.Query().Get("expand") == "translations"

	cacheable := !identity.Authenticated && !expand
	cacheKey := cache.PostKey(language, slugText)
	if cacheable && h.cacheGet(w, r, cacheKey) {
		return
	}

	post, err := h.findVisiblePost(slugText, language, identity)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := toPostResponse(post, true)
	if expand {
		translations, err := h.Posts.Translations(post.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		resp.Translations = h.expandTranslations(translations)
	}

	w.Header().Set("Content-Language", post.ServedLanguage)
	if cacheable {
		h.cacheSet(r, cacheKey, post.ServedLanguage, resp)
	}
	respondJSON(w, http.StatusOK, resp)
}

// expandTranslations returns a body per configured language, marking
// languages without a stored row as fallbacks of the default variant.
func (h *Handler) expandTranslations(stored []models.PostTranslation) map[string]postTranslationBody {
	byLang := make(map[string]models.PostTranslation, len(stored))
	for _, t := range stored {
		byLang[t.LanguageCode] = t
	}
	def, hasDefault := byLang[h.Languages.Default]

	out := make(map[string]postTranslationBody, len(h.Languages.Supported))
	for _, code := range h.Languages.Supported {
		t, ok := byLang[code]
		if !ok {
			if !hasDefault {
				continue
			}
			t = def
		}
		out[code] = postTranslationBody{
			Title:    t.Title,
			Slug:     t.Slug,
			Excerpt:  t.Excerpt,
			Content:  t.Content,
			Fallback: !ok,
		}
	}
	return out
}

type postRequest struct {
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	Excerpt    string     `json:"excerpt"`
	Content    string     `json:"content"`
	Date       *time.Time `json:"date"`
	Image      string     `json:"image"`
	Thumb      string     `json:"thumb"`
	ImageAlt   string     `json:"image_alt"`
	AuthorName string     `json:"author_name"`
	Tags       []string   `json:"tags"`
	Categories []string   `json:"categories"`
}

// CreatePost serves POST /api/posts. New posts always start as drafts;
// publication goes through the status transition on update.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromCtx(r.Context())
	if !rbac.CanCreatePost(identity) {
		writeError(w, apperr.Forbiddenf("you may not create posts"))
		return
	}

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if msg := validatePostContent(req.Title, req.Slug, req.Content, req.Excerpt); msg != "" {
		writeError(w, apperr.Validationf("%s", msg))
		return
	}

	language := h.Languages.Resolve(r)
	post, err := h.Posts.Create(store.PostInput{
		Title:      req.Title,
		Slug:       req.Slug,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		Date:       req.Date,
		Image:      req.Image,
		Thumb:      req.Thumb,
		ImageAlt:   req.ImageAlt,
		AuthorName: req.AuthorName,
		Tags:       req.Tags,
		Categories: req.Categories,
	}, language, h.Languages.Default, identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.invalidatePostCache(r)
	w.Header().Set("Content-Language", post.ServedLanguage)
	respondJSON(w, http.StatusCreated, toPostResponse(post, true))
}

type postUpdateRequest struct {
	Title      *string    `json:"title"`
	Slug       *string    `json:"slug"`
	Excerpt    *string    `json:"excerpt"`
	Content    *string    `json:"content"`
	Date       *time.Time `json:"date"`
	Image      *string    `json:"image"`
	Thumb      *string    `json:"thumb"`
	ImageAlt   *string    `json:"image_alt"`
	AuthorName *string    `json:"author_name"`
	Status     *string    `json:"status"`
	Tags       *[]string  `json:"tags"`
	Categories *[]string  `json:"categories"`
}

// UpdatePost serves PATCH /api/posts/{slug}. Field edits require edit
// rights on the post; a status change additionally passes the transition
// guard. Nil request fields leave the stored values untouched.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromCtx(r.Context())
	language := h.Languages.Resolve(r)

	post, err := h.findVisiblePost(chi.URLParam(r, "slug"), language, identity)
	if err != nil {
		writeError(w, err)
		return
	}

	var req postUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if !rbac.CanEditPost(identity, post) {
		writeError(w, apperr.Forbiddenf("you may not edit this post"))
		return
	}

	var status *models.PostStatus
	if req.Status != nil {
		target := models.PostStatus(*req.Status)
		if !target.Valid() {
			writeError(w, apperr.Validationf("unknown status %q", *req.Status))
			return
		}
		if !rbac.CanTransition(identity, post, target) {
			writeError(w, apperr.Forbiddenf("you may not move this post to %s", target))
			return
		}
		status = &target
	}

	if req.Title != nil || req.Slug != nil || req.Content != nil || req.Excerpt != nil {
		title := post.Translation.Title
		if req.Title != nil {
			title = *req.Title
		}
		msg := validatePostContent(title,
			stringOrEmpty(req.Slug), stringOrEmpty(req.Content), stringOrEmpty(req.Excerpt))
		if msg != "" {
			writeError(w, apperr.Validationf("%s", msg))
			return
		}
	}

	updated, err := h.Posts.Update(post, store.PostUpdate{
		Title:      req.Title,
		Slug:       req.Slug,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		Date:       req.Date,
		Image:      req.Image,
		Thumb:      req.Thumb,
		ImageAlt:   req.ImageAlt,
		AuthorName: req.AuthorName,
		Status:     status,
		Tags:       req.Tags,
		Categories: req.Categories,
	}, language, h.Languages.Default, identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.invalidatePostCache(r)
	w.Header().Set("Content-Language", updated.ServedLanguage)
	respondJSON(w, http.StatusOK, toPostResponse(updated, true))
}

// DeletePost serves DELETE /api/posts/{slug}.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromCtx(r.Context())
	language := h.Languages.Resolve(r)

	post, err := h.findVisiblePost(chi.URLParam(r, "slug"), language, identity)
	if err != nil {
		writeError(w, err)
		return
	}
	if !rbac.CanDeletePost(identity, post) {
		writeError(w, apperr.Forbiddenf("you may not delete this post"))
		return
	}

	if err := h.Posts.Delete(post.ID); err != nil {
		writeError(w, err)
		return
	}
	h.invalidatePostCache(r)
	w.WriteHeader(http.StatusNoContent)
}

// findVisiblePost resolves a post by slug or UUID and enforces the
// caller's visibility, returning NotFound either way so hidden posts are
// indistinguishable from missing ones.
func (h *Handler) findVisiblePost(ref, language string, identity rbac.Identity) (*models.Post, error) {
	var post *models.Post
	var err error
	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		post, err = h.Posts.FindByID(id, language, h.Languages.Default)
	} else {
		post, err = h.Posts.FindBySlug(ref, language, h.Languages.Default)
	}
	if err != nil {
		return nil, err
	}
	if post == nil || !rbac.VisibleTo(identity).Allows(post) {
		return nil, apperr.NotFoundf("post not found")
	}
	return post, nil
}

func stringOrEmpty(v *string) string {
	if v != nil {
		return *v
	}
	return ""
}
