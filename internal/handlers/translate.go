// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"linguablog/internal/apperr"
	"linguablog/internal/middleware"
	"linguablog/internal/rbac"
	"linguablog/internal/translator"
)

type translateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
	SourceLanguage string `json:"source_language"`
	Format         string `json:"format"`
}

// Translate serves POST /api/translate. The endpoint is a proxy in front
// of the upstream model so the API key stays server-side; it is limited
// to callers who can author content.
func (h *Handler) Translate(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromCtx(r.Context())
	if !identity.Authenticated {
		writeError(w, apperr.Unauthenticatedf("authentication required"))
		return
	}
	if !identity.HasPermission(rbac.PermChangePost) {
		writeError(w, apperr.Forbiddenf("translation is limited to content editors"))
		return
	}

	var req translateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, apperr.Validationf("text is required"))
		return
	}
	if utf8.RuneCountInString(req.Text) > maxTranslateLen {
		writeError(w, apperr.Validationf("text is too long (max 50,000 characters)"))
		return
	}
	target := strings.ToLower(strings.TrimSpace(req.TargetLanguage))
	if !h.Languages.Supports(target) {
		writeError(w, apperr.Validationf("unsupported target language %q", req.TargetLanguage))
		return
	}

	result, err := h.Translator.Translate(r.Context(), translator.Request{
		Text:           req.Text,
		TargetLanguage: target,
		SourceLanguage: req.SourceLanguage,
		Format:         req.Format,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
