// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"linguablog/internal/auth"
	"linguablog/internal/models"
	"linguablog/internal/rbac"
)

type contextKey string

const identityKey contextKey = "identity"

// Authenticate resolves the request's identity from an optional
// "Authorization: Bearer <token>" header and stores it in the context.
// A missing header yields the anonymous identity; an invalid token is
// treated as anonymous too (protected routes reject it downstream), but
// is logged since it usually means an expired session.
func Authenticate(cfg auth.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := rbac.Anonymous

			header := r.Header.Get("Authorization")
			if token, ok := strings.CutPrefix(header, "Bearer "); ok {
				claims, err := auth.ParseToken(cfg, strings.TrimSpace(token))
				if err != nil {
					slog.Debug("rejected bearer token", "error", err)
				} else if id, err := claims.Identity(); err == nil {
					identity = id
				}
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromCtx returns the identity stored by Authenticate, or the
// anonymous identity when the middleware did not run.
func IdentityFromCtx(ctx context.Context) rbac.Identity {
	if id, ok := ctx.Value(identityKey).(rbac.Identity); ok {
		return id
	}
	return rbac.Anonymous
}

// RequireAuth rejects unauthenticated requests with a 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IdentityFromCtx(r.Context()).Authenticated {
			writeJSONError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests from anyone but admins and superusers.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := IdentityFromCtx(r.Context())
		if !id.Authenticated {
			writeJSONError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !id.Superuser && !id.HasRole(models.RoleAdmin) {
			writeJSONError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
