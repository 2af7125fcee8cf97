// Package handlers implements the JSON API endpoints: posts, categories,
// tags, comments, reactions, authentication, role administration and the
// translation proxy. Every handler resolves the request language through
// i18n.Languages and the caller identity through the auth middleware.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"linguablog/internal/apperr"
	"linguablog/internal/auth"
	"linguablog/internal/cache"
	"linguablog/internal/i18n"
	"linguablog/internal/store"
	"linguablog/internal/translator"
)

// Handler bundles the stores and services the endpoints need.
type Handler struct {
	Users      *store.UserStore
	Posts      *store.PostStore
	Categories *store.CategoryStore
	Tags       *store.TagStore
	Comments   *store.CommentStore
	Reactions  *store.ReactionStore

	Cache      *cache.ResponseCache
	Translator *translator.Client
	Languages  i18n.Languages
	AuthConfig auth.Config
}

// Stores groups the per-aggregate stores for wiring.
type Stores struct {
	Users      *store.UserStore
	Posts      *store.PostStore
	Categories *store.CategoryStore
	Tags       *store.TagStore
	Comments   *store.CommentStore
	Reactions  *store.ReactionStore
}

// New creates the handler set.
func New(db Stores, responseCache *cache.ResponseCache, tr *translator.Client, langs i18n.Languages, authCfg auth.Config) *Handler {
	return &Handler{
		Users:      db.Users,
		Posts:      db.Posts,
		Categories: db.Categories,
		Tags:       db.Tags,
		Comments:   db.Comments,
		Reactions:  db.Reactions,
		Cache:      responseCache,
		Translator: tr,
		Languages:  langs,
		AuthConfig: authCfg,
	}
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// decodeJSON parses the request body into v, limited to 1 MiB.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperr.Validationf("invalid request body: %v", err)
	}
	return nil
}

// writeError maps an error to its HTTP status and emits the API error
// shape. Unexpected errors are logged and hidden behind a generic 500.
func writeError(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	detail := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		detail = "internal server error"
	}
	respondJSON(w, status, map[string]string{"detail": detail})
}

// listEnvelope is the paginated list response shape.
type listEnvelope struct {
	Count   int `json:"count"`
	Results any `json:"results"`
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pagination parses ?limit and ?offset with sane bounds.
func pagination(r *http.Request) (limit, offset int) {
	limit = defaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = min(n, maxPageSize)
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			offset = n
		}
	}
	return limit, offset
}

// cacheGet serves a cached response body if present, restoring the
// Content-Language the original response carried. The cache is optional
// (nil in tests) and only ever used for anonymous requests.
func (h *Handler) cacheGet(w http.ResponseWriter, r *http.Request, key string) bool {
	if h.Cache == nil {
		return false
	}
	body, language, ok := h.Cache.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	if language != "" {
		w.Header().Set("Content-Language", language)
	}
	w.Header().Set("X-Cache", "hit")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
	return true
}

// cacheSet stores a response body and its language, ignoring marshal
// failures.
func (h *Handler) cacheSet(r *http.Request, key, language string, v any) {
	if h.Cache == nil {
		return
	}
	body, err := json.Marshal(v)
	if err != nil {
		return
	}
	h.Cache.Set(r.Context(), key, language, body)
}

// invalidatePostCache drops all cached post responses. Valkey errors are
// already swallowed by the cache layer.
func (h *Handler) invalidatePostCache(r *http.Request) {
	if h.Cache != nil {
		h.Cache.InvalidatePosts(r.Context())
	}
}
