// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "github.com/google/uuid"

// PostTranslation holds one language's localized fields for a post.
// Slugs are unique per (language_code, slug); a post has at most one
// row per language.
type PostTranslation struct {
	ID           uuid.UUID `json:"-"`
	PostID       uuid.UUID `json:"-"`
	LanguageCode string    `json:"language_code"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Excerpt      string    `json:"excerpt"`
	Content      string    `json:"content"`
}

// CategoryTranslation holds one language's localized fields for a category.
type CategoryTranslation struct {
	ID           uuid.UUID `json:"-"`
	CategoryID   uuid.UUID `json:"-"`
	LanguageCode string    `json:"language_code"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
}

// TagTranslation holds one language's localized fields for a tag.
type TagTranslation struct {
	ID           uuid.UUID `json:"-"`
	TagID        uuid.UUID `json:"-"`
	LanguageCode string    `json:"language_code"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
}
