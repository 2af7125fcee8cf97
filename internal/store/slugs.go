// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// slugs.go holds the shared per-language unique-slug probing used by the
// post, category and tag stores, plus the unique-violation classifier for
// the reaction toggle's insert race.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Slug fallback tokens per entity type: a slug source that strips down to
// nothing still yields a non-empty slug.
const (
	postSlugFallback     = "post"
	categorySlugFallback = "categoria"
	tagSlugFallback      = "etiqueta"
)

// querier is the subset of *sql.DB and *sql.Tx the shared helpers need.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
	Exec(query string, args ...any) (sql.Result, error)
}

// uniqueSlug probes the translation table for a free slug within one
// language, starting at base and appending -2, -3, … on collision. The
// entity's own row is excluded when updating so a post keeps its slug.
// First writer wins the unsuffixed form.
func uniqueSlug(q querier, table, entityColumn, language, base string, excludeEntity *uuid.UUID) (string, error) {
	candidate := base
	for suffix := 2; ; suffix++ {
		query := `SELECT EXISTS (SELECT 1 FROM ` + table + ` WHERE language_code = $1 AND slug = $2`
		args := []any{language, candidate}
		if excludeEntity != nil {
			query += ` AND ` + entityColumn + ` <> $3`
			args = append(args, *excludeEntity)
		}
		query += `)`

		var exists bool
		if err := q.QueryRow(query, args...).Scan(&exists); err != nil {
			return "", fmt.Errorf("probe slug %q: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
	}
}

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
