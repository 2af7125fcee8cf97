// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package i18n resolves the active language for a request and rewrites
// translated-field lookups to their translation-table columns. Language
// is always passed explicitly; there is no ambient "current language".
package i18n

import (
	"net/http"
	"strings"
)

// Languages is the process-wide language configuration, read-only after
// startup. Default is always a member of Supported.
type Languages struct {
	Default   string
	Supported []string
}

// NewLanguages builds a Languages config, guaranteeing the default is
// supported and listed first.
func NewLanguages(def string, supported []string) Languages {
	ordered := []string{def}
	for _, code := range supported {
		if code != def && code != "" {
			ordered = append(ordered, code)
		}
	}
	return Languages{Default: def, Supported: ordered}
}

// Supports reports whether code is a configured language.
func (l Languages) Supports(code string) bool {
	for _, c := range l.Supported {
		if c == code {
			return true
		}
	}
	return false
}

// Resolve determines the active language for a request, in priority order:
// the ?lang query parameter, then the Accept-Language header, then the
// default. Unsupported values are ignored, never an error.
func (l Languages) Resolve(r *http.Request) string {
	if code := strings.TrimSpace(r.URL.Query().Get("lang")); code != "" {
		if lang, ok := l.match(code); ok {
			return lang
		}
	}
	if header := r.Header.Get("Accept-Language"); header != "" {
		for _, part := range strings.Split(header, ",") {
			code := strings.TrimSpace(part)
			if idx := strings.IndexByte(code, ';'); idx != -1 {
				code = strings.TrimSpace(code[:idx])
			}
			if lang, ok := l.match(code); ok {
				return lang
			}
		}
	}
	return l.Default
}

// match accepts exact codes and region-qualified forms ("en-US" → "en").
func (l Languages) match(code string) (string, bool) {
	code = strings.ToLower(code)
	if l.Supports(code) {
		return code, true
	}
	if base, _, found := strings.Cut(code, "-"); found && l.Supports(base) {
		return base, true
	}
	return "", false
}
