// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ReactionType is the kind of reaction a user left on a target.
type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionLove    ReactionType = "love"
	ReactionClap    ReactionType = "clap"
	ReactionWow     ReactionType = "wow"
	ReactionLaugh   ReactionType = "laugh"
	ReactionInsight ReactionType = "insight"
)

// ReactionTypes lists every valid reaction type. Summaries always include
// all of them so callers get a stable key set.
var ReactionTypes = []ReactionType{
	ReactionLike,
	ReactionLove,
	ReactionClap,
	ReactionWow,
	ReactionLaugh,
	ReactionInsight,
}

// Valid reports whether t is one of the known reaction types.
func (t ReactionType) Valid() bool {
	for _, known := range ReactionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// TargetKind names a reactable entity type.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

// Target points at a reactable entity as a tagged (kind, id) pair so the
// reaction ledger works across entity types without polymorphic keys.
type Target struct {
	Kind TargetKind
	ID   uuid.UUID
}

// PostTarget builds a Target for a post.
func PostTarget(id uuid.UUID) Target {
	return Target{Kind: TargetPost, ID: id}
}

// CommentTarget builds a Target for a comment.
func CommentTarget(id uuid.UUID) Target {
	return Target{Kind: TargetComment, ID: id}
}

// Reaction ties a (user, target, type) triple. At most one row exists per
// triple; toggle semantics keep at most one row per (user, target) alive.
type Reaction struct {
	ID         uuid.UUID    `json:"id"`
	UserID     uuid.UUID    `json:"user_id"`
	TargetKind TargetKind   `json:"target_kind"`
	TargetID   uuid.UUID    `json:"target_id"`
	Type       ReactionType `json:"type"`
	CreatedAt  time.Time    `json:"created_at"`
}

// ReactionSummary aggregates all reactions on a target. Counts always
// contain every reaction type, zero-valued when absent.
type ReactionSummary struct {
	Counts     map[ReactionType]int `json:"counts"`
	Total      int                  `json:"total"`
	MyReaction *ReactionType        `json:"my_reaction"`
}

// NewReactionSummary returns a summary with all counts zeroed.
func NewReactionSummary() ReactionSummary {
	counts := make(map[ReactionType]int, len(ReactionTypes))
	for _, t := range ReactionTypes {
		counts[t] = 0
	}
	return ReactionSummary{Counts: counts}
}
