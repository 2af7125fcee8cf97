// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package apperr defines the application error taxonomy on top of the
// errdefs sentinels. Errors are raised at the point of detection and
// propagate unchanged to the HTTP boundary, where HTTPStatus classifies
// them; nothing in between swallows or downgrades them.
package apperr

import (
	"fmt"
	"net/http"

	"github.com/containerd/errdefs"
)

// Validationf builds a malformed-input error (HTTP 400).
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errdefs.ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Unauthenticatedf builds an authentication-required error (HTTP 401).
func Unauthenticatedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errdefs.ErrUnauthenticated, fmt.Sprintf(format, args...))
}

// Forbiddenf builds an authorization error for an identified actor (HTTP 403).
func Forbiddenf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errdefs.ErrPermissionDenied, fmt.Sprintf(format, args...))
}

// NotFoundf builds a missing-resource error (HTTP 404).
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errdefs.ErrNotFound, fmt.Sprintf(format, args...))
}

// Unavailablef builds an upstream-service error (HTTP 502).
func Unavailablef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errdefs.ErrUnavailable, fmt.Sprintf(format, args...))
}

// Unconfiguredf builds a service-not-configured error (HTTP 503): the
// feature exists but operations has not enabled it yet, as opposed to an
// upstream that was called and failed.
func Unconfiguredf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errdefs.ErrFailedPrecondition, fmt.Sprintf(format, args...))
}

// HTTPStatus maps a taxonomy error to its status code. Unclassified
// errors are internal failures. The 401/403 distinction is load-bearing:
// "not authenticated" must never collapse into "forbidden".
func HTTPStatus(err error) int {
	switch {
	case errdefs.IsInvalidArgument(err):
		return http.StatusBadRequest
	case errdefs.IsUnauthorized(err):
		return http.StatusUnauthorized
	case errdefs.IsPermissionDenied(err):
		return http.StatusForbidden
	case errdefs.IsNotFound(err):
		return http.StatusNotFound
	case errdefs.IsUnavailable(err):
		return http.StatusBadGateway
	case errdefs.IsFailedPrecondition(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
