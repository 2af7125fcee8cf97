// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package rbac holds the static role/permission matrix and the policy
// rules that gate the post publication workflow. The tables here are
// read-only after startup; every check is a pure lookup.
package rbac

import (
	"sort"

	"github.com/google/uuid"

	"linguablog/internal/models"
)

// Permission is a permission code granted to roles.
type Permission string

const (
	PermAddPost    Permission = "add_post"
	PermChangePost Permission = "change_post"
	PermDeletePost Permission = "delete_post"
	PermViewPost   Permission = "view_post"
	PermApprove    Permission = "can_approve_post"
	PermPublish    Permission = "can_publish_post"

	PermAddCategory    Permission = "add_category"
	PermChangeCategory Permission = "change_category"
	PermDeleteCategory Permission = "delete_category"
	PermViewCategory   Permission = "view_category"

	PermAddTag    Permission = "add_tag"
	PermChangeTag Permission = "change_tag"
	PermDeleteTag Permission = "delete_tag"
	PermViewTag   Permission = "view_tag"

	PermAddComment      Permission = "add_comment"
	PermChangeComment   Permission = "change_comment"
	PermDeleteComment   Permission = "delete_comment"
	PermViewComment     Permission = "view_comment"
	PermModerateComment Permission = "can_moderate_comment"
)

// rolePermissions is the hand-curated role → permission matrix.
// Admin is assembled below as the union of every code.
var rolePermissions = map[models.Role][]Permission{
	models.RoleEditor: {
		PermAddPost, PermChangePost, PermDeletePost, PermViewPost,
		PermApprove, PermPublish,
		PermAddCategory, PermChangeCategory, PermViewCategory,
		PermAddTag, PermChangeTag, PermViewTag,
		PermViewComment, PermAddComment, PermChangeComment,
		PermDeleteComment, PermModerateComment,
	},
	models.RoleAuthor: {
		PermAddPost, PermChangePost, PermDeletePost, PermViewPost,
		PermViewCategory, PermViewTag,
		PermViewComment, PermAddComment,
	},
	models.RoleReviewer: {
		PermViewPost, PermViewCategory, PermViewTag,
		PermViewComment, PermAddComment,
	},
	models.RoleReader: {
		PermViewPost, PermViewCategory, PermViewTag,
		PermViewComment, PermAddComment,
	},
}

// allPermissions is the full permission universe.
var allPermissions = []Permission{
	PermAddPost, PermChangePost, PermDeletePost, PermViewPost,
	PermApprove, PermPublish,
	PermAddCategory, PermChangeCategory, PermDeleteCategory, PermViewCategory,
	PermAddTag, PermChangeTag, PermDeleteTag, PermViewTag,
	PermAddComment, PermChangeComment, PermDeleteComment, PermViewComment,
	PermModerateComment,
}

func init() {
	rolePermissions[models.RoleAdmin] = append([]Permission(nil), allPermissions...)
}

// Identity is the per-request view of the caller, supplied by the
// authentication layer. The zero value is an anonymous caller.
type Identity struct {
	UserID        uuid.UUID
	Authenticated bool
	Superuser     bool
	Roles         []models.Role
}

// Anonymous is the identity of an unauthenticated caller.
var Anonymous = Identity{}

// IdentityFor builds an Identity from a stored user.
func IdentityFor(u *models.User) Identity {
	return Identity{
		UserID:        u.ID,
		Authenticated: true,
		Superuser:     u.IsSuperuser,
		Roles:         u.Roles,
	}
}

// HasRole reports whether the identity holds the role. Superusers hold
// every role implicitly; anonymous callers hold none.
func (id Identity) HasRole(role models.Role) bool {
	if !id.Authenticated {
		return false
	}
	if id.Superuser {
		return true
	}
	for _, r := range id.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RolesOf returns the identity's full role set, sorted for stable output.
func RolesOf(id Identity) []models.Role {
	if !id.Authenticated {
		return nil
	}
	if id.Superuser {
		return append([]models.Role(nil), models.Roles...)
	}
	roles := append([]models.Role(nil), id.Roles...)
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}

// Permissions returns a copy of the permission set granted to a role.
func Permissions(role models.Role) []Permission {
	return append([]Permission(nil), rolePermissions[role]...)
}

// AllPermissions returns the full permission universe.
func AllPermissions() []Permission {
	return append([]Permission(nil), allPermissions...)
}

// RoleHasPermission reports whether the role's static set contains p.
func RoleHasPermission(role models.Role, p Permission) bool {
	for _, held := range rolePermissions[role] {
		if held == p {
			return true
		}
	}
	return false
}

// HasPermission reports whether any of the identity's roles grants p.
func (id Identity) HasPermission(p Permission) bool {
	if !id.Authenticated {
		return false
	}
	if id.Superuser {
		return true
	}
	for _, role := range id.Roles {
		if RoleHasPermission(role, p) {
			return true
		}
	}
	return false
}

// ParseRoles validates a set of role names, returning the valid roles and
// the names that did not match any known role. Duplicates are collapsed.
func ParseRoles(names []string) (valid []models.Role, invalid []string) {
	seen := make(map[models.Role]bool, len(names))
	for _, name := range names {
		if !models.ValidRole(name) {
			invalid = append(invalid, name)
			continue
		}
		role := models.Role(name)
		if !seen[role] {
			seen[role] = true
			valid = append(valid, role)
		}
	}
	return valid, invalid
}
