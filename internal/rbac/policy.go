// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package rbac

import "linguablog/internal/models"

// authorEditableStatuses are the statuses in which a post still belongs to
// its author: the author may edit it and move it between them. Once a post
// leaves this set the author loses write access, even to their own post.
var authorEditableStatuses = map[models.PostStatus]bool{
	models.PostStatusDraft:    true,
	models.PostStatusInReview: true,
}

// transitionTargets is the declarative guard table: which target statuses
// each role may ever set. Ownership and permission rules are layered on
// top in CanTransition.
var transitionTargets = map[models.Role]map[models.PostStatus]bool{
	models.RoleAdmin: {
		models.PostStatusDraft:     true,
		models.PostStatusInReview:  true,
		models.PostStatusPublished: true,
		models.PostStatusArchived:  true,
	},
	models.RoleEditor: {
		models.PostStatusDraft:     true,
		models.PostStatusInReview:  true,
		models.PostStatusPublished: true,
		models.PostStatusArchived:  true,
	},
	models.RoleAuthor: {
		models.PostStatusDraft:    true,
		models.PostStatusInReview: true,
	},
	// reviewer and reader have no targets: read-only on posts.
}

// AuthorEditable reports whether a post in the given status is still
// writable by its author.
func AuthorEditable(status models.PostStatus) bool {
	return authorEditableStatuses[status]
}

// CanCreatePost reports whether the identity may create a post. Posts
// always start in draft, so creation needs only add_post.
func CanCreatePost(id Identity) bool {
	return id.Authenticated && id.HasPermission(PermAddPost)
}

// CanEditPost reports whether the identity may modify the post's fields.
// Admins and editors may edit any post; authors only their own, and only
// while the post has not left the draft/in_review window.
func CanEditPost(id Identity, post *models.Post) bool {
	if !id.Authenticated {
		return false
	}
	if id.Superuser || id.HasRole(models.RoleAdmin) || id.HasRole(models.RoleEditor) {
		return true
	}
	if !id.HasRole(models.RoleAuthor) {
		return false
	}
	return post.OwnedBy(id.UserID) && AuthorEditable(post.Status)
}

// CanDeletePost mirrors CanEditPost: deletion is an edit of last resort.
func CanDeletePost(id Identity, post *models.Post) bool {
	return CanEditPost(id, post)
}

// CanTransition evaluates the full guard table for a status change from
// the post's current status to target. It layers three rules:
//
//  1. role targets — at least one of the identity's roles must list the
//     target status in transitionTargets;
//  2. ownership — when only the author row grants the target, the post
//     must be owned by the caller and still in the author-editable window;
//  3. permissions — published/archived require can_publish_post, and
//     in_review requires can_approve_post or change_post.
//
// Setting the same status the post already has is treated as a plain edit
// and allowed whenever CanEditPost allows it.
func CanTransition(id Identity, post *models.Post, target models.PostStatus) bool {
	if !id.Authenticated {
		return false
	}
	if target == post.Status {
		return CanEditPost(id, post)
	}
	if id.Superuser {
		return true
	}

	allowed := false
	viaAuthorOnly := true
	for _, role := range id.Roles {
		if !transitionTargets[role][target] {
			continue
		}
		allowed = true
		if role != models.RoleAuthor {
			viaAuthorOnly = false
		}
	}
	if !allowed {
		return false
	}
	if viaAuthorOnly {
		if !post.OwnedBy(id.UserID) || !AuthorEditable(post.Status) {
			return false
		}
	}

	switch target {
	case models.PostStatusPublished, models.PostStatusArchived:
		return id.HasPermission(PermPublish)
	case models.PostStatusInReview:
		return id.HasPermission(PermApprove) || id.HasPermission(PermChangePost)
	default:
		return true
	}
}
