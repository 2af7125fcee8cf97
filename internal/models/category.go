// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups posts by topic. Name, slug and description are
// localized in category_translations.
type Category struct {
	ID        uuid.UUID `json:"id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Virtual fields populated by store methods.
	Translation    *CategoryTranslation `json:"-"`
	ServedLanguage string               `json:"-"`
	PostCount      int                  `json:"post_count"`
}

// Tag labels posts. Name and slug are localized in tag_translations.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Virtual fields populated by store methods.
	Translation    *TagTranslation `json:"-"`
	ServedLanguage string          `json:"-"`
	PostCount      int             `json:"post_count"`
}
