// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package rbac

import (
	"testing"

	"github.com/google/uuid"

	"linguablog/internal/models"
)

func postIn(status models.PostStatus, owner uuid.UUID) *models.Post {
	return &models.Post{ID: uuid.New(), Status: status, CreatedBy: &owner}
}

func TestCanCreatePost(t *testing.T) {
	if CanCreatePost(Anonymous) {
		t.Error("anonymous may not create posts")
	}
	if CanCreatePost(identityWith(models.RoleReader)) {
		t.Error("reader may not create posts")
	}
	if !CanCreatePost(identityWith(models.RoleAuthor)) {
		t.Error("author may create posts")
	}
	if !CanCreatePost(identityWith(models.RoleEditor)) {
		t.Error("editor may create posts")
	}
}

func TestCanEditPostOwnership(t *testing.T) {
	author := identityWith(models.RoleAuthor)
	other := identityWith(models.RoleAuthor)

	own := postIn(models.PostStatusDraft, author.UserID)
	if !CanEditPost(author, own) {
		t.Error("author may edit their own draft")
	}
	if CanEditPost(other, own) {
		t.Error("author may not edit someone else's draft")
	}

	published := postIn(models.PostStatusPublished, author.UserID)
	if CanEditPost(author, published) {
		t.Error("author may not edit their own post once published")
	}

	editor := identityWith(models.RoleEditor)
	if !CanEditPost(editor, published) {
		t.Error("editor may edit any post")
	}
	if CanEditPost(identityWith(models.RoleReviewer), own) {
		t.Error("reviewer is read-only on posts")
	}
}

// TestCanTransition walks the status guard table for each role.
func TestCanTransition(t *testing.T) {
	owner := uuid.New()

	tests := []struct {
		name   string
		roles  []models.Role
		owns   bool
		from   models.PostStatus
		to     models.PostStatus
		want   bool
	}{
		// author on own post
		{"author submits own draft", []models.Role{models.RoleAuthor}, true, models.PostStatusDraft, models.PostStatusInReview, true},
		{"author withdraws own review", []models.Role{models.RoleAuthor}, true, models.PostStatusInReview, models.PostStatusDraft, true},
		{"author cannot publish", []models.Role{models.RoleAuthor}, true, models.PostStatusInReview, models.PostStatusPublished, false},
		{"author cannot archive", []models.Role{models.RoleAuthor}, true, models.PostStatusPublished, models.PostStatusArchived, false},
		{"author cannot touch published post", []models.Role{models.RoleAuthor}, true, models.PostStatusPublished, models.PostStatusDraft, false},

		// author on another author's post
		{"author cannot submit foreign draft", []models.Role{models.RoleAuthor}, false, models.PostStatusDraft, models.PostStatusInReview, false},

		// editor
		{"editor publishes from review", []models.Role{models.RoleEditor}, false, models.PostStatusInReview, models.PostStatusPublished, true},
		{"editor publishes straight from draft", []models.Role{models.RoleEditor}, false, models.PostStatusDraft, models.PostStatusPublished, true},
		{"editor archives", []models.Role{models.RoleEditor}, false, models.PostStatusPublished, models.PostStatusArchived, true},
		{"editor unarchives", []models.Role{models.RoleEditor}, false, models.PostStatusArchived, models.PostStatusDraft, true},
		{"editor sends back to draft", []models.Role{models.RoleEditor}, false, models.PostStatusInReview, models.PostStatusDraft, true},

		// admin
		{"admin publishes", []models.Role{models.RoleAdmin}, false, models.PostStatusDraft, models.PostStatusPublished, true},
		{"admin archives", []models.Role{models.RoleAdmin}, false, models.PostStatusInReview, models.PostStatusArchived, true},

		// read-only roles
		{"reviewer cannot transition", []models.Role{models.RoleReviewer}, false, models.PostStatusInReview, models.PostStatusPublished, false},
		{"reviewer cannot send back", []models.Role{models.RoleReviewer}, false, models.PostStatusInReview, models.PostStatusDraft, false},
		{"reader cannot transition", []models.Role{models.RoleReader}, false, models.PostStatusDraft, models.PostStatusInReview, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := identityWith(tt.roles...)
			postOwner := owner
			if tt.owns {
				postOwner = id.UserID
			}
			post := postIn(tt.from, postOwner)
			if got := CanTransition(id, post, tt.to); got != tt.want {
				t.Errorf("CanTransition(%v, %s→%s, owns=%v) = %v, want %v",
					tt.roles, tt.from, tt.to, tt.owns, got, tt.want)
			}
		})
	}
}

func TestCanTransitionSameStatusIsEdit(t *testing.T) {
	author := identityWith(models.RoleAuthor)
	post := postIn(models.PostStatusDraft, author.UserID)
	if !CanTransition(author, post, models.PostStatusDraft) {
		t.Error("re-asserting the current status is a plain edit for the owner")
	}

	foreign := postIn(models.PostStatusDraft, uuid.New())
	if CanTransition(author, foreign, models.PostStatusDraft) {
		t.Error("same-status on a foreign post still requires edit rights")
	}
}

func TestCanTransitionAnonymousAndSuperuser(t *testing.T) {
	post := postIn(models.PostStatusDraft, uuid.New())
	if CanTransition(Anonymous, post, models.PostStatusInReview) {
		t.Error("anonymous may never transition")
	}
	su := Identity{UserID: uuid.New(), Authenticated: true, Superuser: true}
	if !CanTransition(su, post, models.PostStatusArchived) {
		t.Error("superuser may always transition")
	}
}

func TestVisibleTo(t *testing.T) {
	anon := VisibleTo(Anonymous)
	if anon.All || len(anon.Statuses) != 1 || anon.Statuses[0] != models.PostStatusPublished {
		t.Errorf("anonymous visibility = %+v, want published only", anon)
	}

	reader := VisibleTo(identityWith(models.RoleReader))
	if reader.All || len(reader.Statuses) != 1 || reader.OwnerID != nil {
		t.Errorf("reader visibility = %+v, want published only", reader)
	}

	reviewer := VisibleTo(identityWith(models.RoleReviewer))
	if reviewer.All || len(reviewer.Statuses) != 2 {
		t.Errorf("reviewer visibility = %+v, want in_review+published", reviewer)
	}

	author := identityWith(models.RoleAuthor)
	av := VisibleTo(author)
	if av.All || av.OwnerID == nil || *av.OwnerID != author.UserID {
		t.Errorf("author visibility = %+v, want published plus own posts", av)
	}

	if !VisibleTo(identityWith(models.RoleEditor)).All {
		t.Error("editor sees everything")
	}
	if !VisibleTo(identityWith(models.RoleAdmin)).All {
		t.Error("admin sees everything")
	}
}

func TestVisibilityAllows(t *testing.T) {
	author := identityWith(models.RoleAuthor)
	v := VisibleTo(author)

	if !v.Allows(postIn(models.PostStatusDraft, author.UserID)) {
		t.Error("author sees own draft")
	}
	if v.Allows(postIn(models.PostStatusDraft, uuid.New())) {
		t.Error("author does not see foreign drafts")
	}
	if !v.Allows(postIn(models.PostStatusPublished, uuid.New())) {
		t.Error("everyone sees published posts")
	}

	anon := VisibleTo(Anonymous)
	if anon.Allows(postIn(models.PostStatusInReview, uuid.New())) {
		t.Error("anonymous does not see in_review posts")
	}
}
