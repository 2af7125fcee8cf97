// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"linguablog/internal/models"
)

func TestReactionToggleCycle(t *testing.T) {
	db := testDB(t)
	reactions := NewReactionStore(db)

	author := mustCreateUser(t, db, "react-author@test.local", models.RoleAuthor)
	reader := mustCreateUser(t, db, "react-reader@test.local", models.RoleReader)
	post := mustCreatePost(t, db, "Artículo con reacciones", author.ID)
	target := models.PostTarget(post.ID)

	// First toggle adds the reaction.
	res, err := reactions.Toggle(reader.ID, target, models.ReactionLike)
	if err != nil {
		t.Fatalf("Toggle add: %v", err)
	}
	if res.Action != "added" || res.Reaction == nil || *res.Reaction != models.ReactionLike {
		t.Errorf("add = %+v", res)
	}

	// A different reaction replaces, it does not stack.
	res, err = reactions.Toggle(reader.ID, target, models.ReactionLove)
	if err != nil {
		t.Fatalf("Toggle change: %v", err)
	}
	if res.Action != "changed" || res.Reaction == nil || *res.Reaction != models.ReactionLove {
		t.Errorf("change = %+v", res)
	}

	summary, err := reactions.Summarize(target, &reader.ID)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary.Total != 1 || summary.Counts[models.ReactionLove] != 1 || summary.Counts[models.ReactionLike] != 0 {
		t.Errorf("summary after change = %+v", summary)
	}
	if summary.MyReaction == nil || *summary.MyReaction != models.ReactionLove {
		t.Errorf("MyReaction = %v, want love", summary.MyReaction)
	}

	// Repeating the current reaction removes it.
	res, err = reactions.Toggle(reader.ID, target, models.ReactionLove)
	if err != nil {
		t.Fatalf("Toggle remove: %v", err)
	}
	if res.Action != "removed" || res.Reaction != nil {
		t.Errorf("remove = %+v", res)
	}

	summary, err = reactions.Summarize(target, &reader.ID)
	if err != nil {
		t.Fatalf("Summarize after remove: %v", err)
	}
	if summary.Total != 0 || summary.MyReaction != nil {
		t.Errorf("summary after remove = %+v", summary)
	}
}

func TestReactionSummaryCountsPerUser(t *testing.T) {
	db := testDB(t)
	reactions := NewReactionStore(db)

	author := mustCreateUser(t, db, "react-sum-author@test.local", models.RoleAuthor)
	alice := mustCreateUser(t, db, "react-sum-a@test.local", models.RoleReader)
	bob := mustCreateUser(t, db, "react-sum-b@test.local", models.RoleReader)
	post := mustCreatePost(t, db, "Artículo muy popular", author.ID)
	target := models.PostTarget(post.ID)

	if _, err := reactions.Toggle(alice.ID, target, models.ReactionClap); err != nil {
		t.Fatalf("alice toggle: %v", err)
	}
	if _, err := reactions.Toggle(bob.ID, target, models.ReactionClap); err != nil {
		t.Fatalf("bob toggle: %v", err)
	}
	if _, err := reactions.Toggle(author.ID, target, models.ReactionWow); err != nil {
		t.Fatalf("author toggle: %v", err)
	}

	summary, err := reactions.Summarize(target, nil)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary.Total != 3 || summary.Counts[models.ReactionClap] != 2 || summary.Counts[models.ReactionWow] != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.MyReaction != nil {
		t.Error("anonymous summary should carry no MyReaction")
	}
	// The key set is stable even for types nobody used.
	if len(summary.Counts) != len(models.ReactionTypes) {
		t.Errorf("counts has %d keys, want %d", len(summary.Counts), len(models.ReactionTypes))
	}
}

func TestReactionOnComment(t *testing.T) {
	db := testDB(t)
	reactions := NewReactionStore(db)
	comments := NewCommentStore(db)

	author := mustCreateUser(t, db, "react-comment@test.local", models.RoleAuthor)
	post := mustCreatePost(t, db, "Artículo comentado", author.ID)
	comment, err := comments.Create(post.ID, "Ana", "gran artículo")
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	res, err := reactions.Toggle(author.ID, models.CommentTarget(comment.ID), models.ReactionLaugh)
	if err != nil {
		t.Fatalf("Toggle on comment: %v", err)
	}
	if res.Action != "added" {
		t.Errorf("action = %q", res.Action)
	}

	// The post target and comment target are independent ledgers.
	postSummary, err := reactions.Summarize(models.PostTarget(post.ID), nil)
	if err != nil {
		t.Fatalf("Summarize post: %v", err)
	}
	if postSummary.Total != 0 {
		t.Errorf("post ledger picked up a comment reaction: %+v", postSummary)
	}
}
