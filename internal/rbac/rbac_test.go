// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package rbac

import (
	"testing"

	"github.com/google/uuid"

	"linguablog/internal/models"
)

func identityWith(roles ...models.Role) Identity {
	return Identity{UserID: uuid.New(), Authenticated: true, Roles: roles}
}

func TestAdminHoldsEveryPermission(t *testing.T) {
	for _, p := range AllPermissions() {
		if !RoleHasPermission(models.RoleAdmin, p) {
			t.Errorf("admin is missing %s", p)
		}
	}
}

func TestRolePermissionMatrix(t *testing.T) {
	tests := []struct {
		role models.Role
		has  []Permission
		not  []Permission
	}{
		{
			role: models.RoleEditor,
			has:  []Permission{PermPublish, PermApprove, PermChangePost, PermModerateComment},
			not:  []Permission{PermDeleteCategory, PermDeleteTag},
		},
		{
			role: models.RoleAuthor,
			has:  []Permission{PermAddPost, PermChangePost, PermDeletePost, PermAddComment},
			not:  []Permission{PermPublish, PermApprove, PermAddCategory, PermModerateComment},
		},
		{
			role: models.RoleReviewer,
			has:  []Permission{PermViewPost, PermAddComment},
			not:  []Permission{PermAddPost, PermChangePost, PermPublish, PermApprove},
		},
		{
			role: models.RoleReader,
			has:  []Permission{PermViewPost, PermViewComment, PermAddComment},
			not:  []Permission{PermAddPost, PermChangePost, PermDeletePost, PermPublish},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			for _, p := range tt.has {
				if !RoleHasPermission(tt.role, p) {
					t.Errorf("%s should hold %s", tt.role, p)
				}
			}
			for _, p := range tt.not {
				if RoleHasPermission(tt.role, p) {
					t.Errorf("%s should not hold %s", tt.role, p)
				}
			}
		})
	}
}

func TestHasPermissionUnionsRoles(t *testing.T) {
	id := identityWith(models.RoleReader, models.RoleAuthor)
	if !id.HasPermission(PermAddPost) {
		t.Error("reader+author should hold add_post via the author role")
	}
	if id.HasPermission(PermPublish) {
		t.Error("reader+author should not hold can_publish_post")
	}
}

func TestAnonymousHoldsNothing(t *testing.T) {
	if Anonymous.HasPermission(PermViewPost) {
		t.Error("anonymous should hold no permissions")
	}
	if Anonymous.HasRole(models.RoleReader) {
		t.Error("anonymous should hold no roles")
	}
}

func TestSuperuserHoldsEverything(t *testing.T) {
	su := Identity{UserID: uuid.New(), Authenticated: true, Superuser: true}
	for _, p := range AllPermissions() {
		if !su.HasPermission(p) {
			t.Errorf("superuser is missing %s", p)
		}
	}
	for _, role := range models.Roles {
		if !su.HasRole(role) {
			t.Errorf("superuser should implicitly hold role %s", role)
		}
	}
}

func TestParseRoles(t *testing.T) {
	valid, invalid := ParseRoles([]string{"editor", "reader", "editor", "superstar"})
	if len(valid) != 2 || valid[0] != models.RoleEditor || valid[1] != models.RoleReader {
		t.Errorf("valid = %v, want [editor reader]", valid)
	}
	if len(invalid) != 1 || invalid[0] != "superstar" {
		t.Errorf("invalid = %v, want [superstar]", invalid)
	}
}

func TestIdentityFor(t *testing.T) {
	u := &models.User{
		ID:          uuid.New(),
		IsSuperuser: true,
		Roles:       []models.Role{models.RoleAdmin},
	}
	id := IdentityFor(u)
	if !id.Authenticated || !id.Superuser || id.UserID != u.ID {
		t.Errorf("IdentityFor mismatch: %+v", id)
	}
}
