// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for content fields.
const (
	maxTitleLen       = 300
	maxSlugLen        = 300
	maxContentLen     = 100_000
	maxExcerptLen     = 1_000
	maxNameLen        = 200
	maxCommentLen     = 5_000
	maxEmailLen       = 254
	maxDisplayNameLen = 150
	minPasswordLen    = 8
	maxTranslateLen   = 50_000
)

// validatePostContent checks post inputs and returns the first error found.
func validatePostContent(title, slug, content, excerpt string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "title is required"
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "title is too long (max 300 characters)"
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "slug is too long (max 300 characters)"
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "content is too long (max 100,000 characters)"
	}
	if utf8.RuneCountInString(excerpt) > maxExcerptLen {
		return "excerpt is too long (max 1,000 characters)"
	}
	return ""
}

// validateComment checks comment inputs.
func validateComment(authorName, content string) string {
	if strings.TrimSpace(authorName) == "" {
		return "author_name is required"
	}
	if utf8.RuneCountInString(authorName) > maxNameLen {
		return "author_name is too long (max 200 characters)"
	}
	if strings.TrimSpace(content) == "" {
		return "content is required"
	}
	if utf8.RuneCountInString(content) > maxCommentLen {
		return "content is too long (max 5,000 characters)"
	}
	return ""
}

// validateCredentials checks registration inputs.
func validateCredentials(email, password, displayName string) string {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return "a valid email is required"
	}
	if utf8.RuneCountInString(email) > maxEmailLen {
		return "email is too long"
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return "password must be at least 8 characters"
	}
	if utf8.RuneCountInString(displayName) > maxDisplayNameLen {
		return "display_name is too long (max 150 characters)"
	}
	return ""
}
