// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"linguablog/internal/models"
)

// ReactionStore handles the per-user reaction ledger on posts and comments.
type ReactionStore struct {
	db *sql.DB
}

// NewReactionStore creates a new ReactionStore with the given database connection.
func NewReactionStore(db *sql.DB) *ReactionStore {
	return &ReactionStore{db: db}
}

// ToggleResult describes what a Toggle call did.
type ToggleResult struct {
	Action   string               `json:"action"` // "added", "removed" or "changed"
	Reaction *models.ReactionType `json:"reaction,omitempty"`
}

// Toggle applies the reaction rules for one user on one target:
// no existing reaction inserts one, the same reaction removes it, a
// different reaction replaces it. The user's rows for the target are
// locked for the duration of the transaction so concurrent toggles
// serialize; an insert that still races the unique index is retried once.
func (s *ReactionStore) Toggle(userID uuid.UUID, target models.Target, reaction models.ReactionType) (*ToggleResult, error) {
	for attempt := 0; ; attempt++ {
		result, err := s.toggleOnce(userID, target, reaction)
		if err != nil && isUniqueViolation(err) && attempt == 0 {
			continue
		}
		return result, err
	}
}

func (s *ReactionStore) toggleOnce(userID uuid.UUID, target models.Target, reaction models.ReactionType) (*ToggleResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("toggle reaction begin: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(`
		SELECT id, type FROM reactions
		WHERE user_id = $1 AND target_kind = $2 AND target_id = $3
		ORDER BY created_at ASC
		FOR UPDATE
	`, userID, target.Kind, target.ID)
	if err != nil {
		return nil, fmt.Errorf("toggle reaction lock: %w", err)
	}

	type existingRow struct {
		id   uuid.UUID
		kind models.ReactionType
	}
	var existing []existingRow
	for rows.Next() {
		var r existingRow
		if err := rows.Scan(&r.id, &r.kind); err != nil {
			rows.Close()
			return nil, fmt.Errorf("toggle reaction scan: %w", err)
		}
		existing = append(existing, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var result ToggleResult
	switch {
	case len(existing) == 0:
		if _, err := tx.Exec(`
			INSERT INTO reactions (user_id, target_kind, target_id, type)
			VALUES ($1, $2, $3, $4)
		`, userID, target.Kind, target.ID, reaction); err != nil {
			return nil, fmt.Errorf("toggle reaction insert: %w", err)
		}
		result = ToggleResult{Action: "added", Reaction: &reaction}

	case existing[0].kind == reaction:
		// Same reaction again: remove it (and any strays).
		if _, err := tx.Exec(`
			DELETE FROM reactions
			WHERE user_id = $1 AND target_kind = $2 AND target_id = $3
		`, userID, target.Kind, target.ID); err != nil {
			return nil, fmt.Errorf("toggle reaction delete: %w", err)
		}
		result = ToggleResult{Action: "removed"}

	default:
		// Different reaction: keep the oldest row, retype it, drop strays.
		if len(existing) > 1 {
			for _, r := range existing[1:] {
				if _, err := tx.Exec(`DELETE FROM reactions WHERE id = $1`, r.id); err != nil {
					return nil, fmt.Errorf("toggle reaction prune: %w", err)
				}
			}
		}
		if _, err := tx.Exec(`
			UPDATE reactions SET type = $1 WHERE id = $2
		`, reaction, existing[0].id); err != nil {
			return nil, fmt.Errorf("toggle reaction update: %w", err)
		}
		result = ToggleResult{Action: "changed", Reaction: &reaction}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("toggle reaction commit: %w", err)
	}
	return &result, nil
}

// Summarize counts reactions per type for a target. When viewer is
// non-nil, MyReaction carries that user's current reaction.
func (s *ReactionStore) Summarize(target models.Target, viewer *uuid.UUID) (*models.ReactionSummary, error) {
	summary := models.NewReactionSummary()

	rows, err := s.db.Query(`
		SELECT type, COUNT(*) FROM reactions
		WHERE target_kind = $1 AND target_id = $2
		GROUP BY type
	`, target.Kind, target.ID)
	if err != nil {
		return nil, fmt.Errorf("summarize reactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind models.ReactionType
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("scan reaction count: %w", err)
		}
		summary.Counts[kind] = count
		summary.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if viewer != nil {
		var mine models.ReactionType
		err := s.db.QueryRow(`
			SELECT type FROM reactions
			WHERE user_id = $1 AND target_kind = $2 AND target_id = $3
			ORDER BY created_at ASC LIMIT 1
		`, *viewer, target.Kind, target.ID).Scan(&mine)
		switch {
		case err == sql.ErrNoRows:
		case err != nil:
			return nil, fmt.Errorf("viewer reaction: %w", err)
		default:
			summary.MyReaction = &mine
		}
	}
	return &summary, nil
}
