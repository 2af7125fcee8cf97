// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PostStatus represents a post's position in the publication lifecycle.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusInReview  PostStatus = "in_review"
	PostStatusPublished PostStatus = "published"
	PostStatusArchived  PostStatus = "archived"
)

// PostStatuses lists every valid status.
var PostStatuses = []PostStatus{
	PostStatusDraft,
	PostStatusInReview,
	PostStatusPublished,
	PostStatusArchived,
}

// Valid reports whether s is one of the known statuses.
func (s PostStatus) Valid() bool {
	for _, known := range PostStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Post represents a blog post. Localized fields (title, slug, excerpt,
// content) live in post_translations, one row per language. The Translation
// field carries the variant resolved for the request's language, falling
// back to the default language when that language has no row.
type Post struct {
	ID         uuid.UUID  `json:"id"`
	Date       time.Time  `json:"date"`
	Image      string     `json:"image"`
	Thumb      string     `json:"thumb"`
	ImageAlt   string     `json:"image_alt"`
	AuthorName string     `json:"author"`
	Status     PostStatus `json:"status"`
	CreatedBy  *uuid.UUID `json:"created_by,omitempty"`
	ModifiedBy *uuid.UUID `json:"modified_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Virtual fields populated by store methods.
	Translation    *PostTranslation `json:"-"`
	ServedLanguage string           `json:"-"`
	Tags           []Tag            `json:"-"`
	Categories     []Category       `json:"-"`
}

// IsPublished returns true if the post is in published status.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// OwnedBy reports whether userID created the post.
func (p *Post) OwnedBy(userID uuid.UUID) bool {
	return p.CreatedBy != nil && *p.CreatedBy == userID
}
