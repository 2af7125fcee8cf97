// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package rbac

import (
	"github.com/google/uuid"

	"linguablog/internal/models"
)

// Visibility describes which posts a viewer may see in list and detail
// queries. Stores translate it to a WHERE clause applied before DISTINCT
// and pagination so hidden rows never leak through joins.
type Visibility struct {
	// All short-circuits filtering: the viewer sees every status.
	All bool
	// Statuses the viewer may see for posts they do not own.
	Statuses []models.PostStatus
	// OwnerID, when set, additionally exposes every post created by
	// this user regardless of status.
	OwnerID *uuid.UUID
}

// VisibleTo computes the post visibility for an identity by unioning the
// per-role rules:
//
//	anonymous/reader  published
//	reviewer          in_review + published
//	author            published + own posts in any status
//	editor/admin      everything
func VisibleTo(id Identity) Visibility {
	if id.Authenticated && (id.Superuser || id.HasRole(models.RoleAdmin) || id.HasRole(models.RoleEditor)) {
		return Visibility{All: true}
	}

	statuses := map[models.PostStatus]bool{models.PostStatusPublished: true}
	var ownerID *uuid.UUID

	if id.Authenticated {
		if id.HasRole(models.RoleReviewer) {
			statuses[models.PostStatusInReview] = true
		}
		if id.HasRole(models.RoleAuthor) {
			uid := id.UserID
			ownerID = &uid
		}
	}

	v := Visibility{OwnerID: ownerID}
	for _, s := range models.PostStatuses {
		if statuses[s] {
			v.Statuses = append(v.Statuses, s)
		}
	}
	return v
}

// Allows reports whether a single post is visible under v.
func (v Visibility) Allows(post *models.Post) bool {
	if v.All {
		return true
	}
	if v.OwnerID != nil && post.OwnedBy(*v.OwnerID) {
		return true
	}
	for _, s := range v.Statuses {
		if post.Status == s {
			return true
		}
	}
	return false
}
