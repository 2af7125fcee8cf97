// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"linguablog/internal/models"
)

// TagStore handles all tag-related database operations. Tag creation
// normally happens implicitly through post tagging (see PostStore), so
// this store only reads and deletes.
type TagStore struct {
	db *sql.DB
}

// NewTagStore creates a new TagStore with the given database connection.
func NewTagStore(db *sql.DB) *TagStore {
	return &TagStore{db: db}
}

const tagColumns = `
	t.id, t.created_at,
	COALESCE(tr.name, dtr.name),
	COALESCE(tr.slug, dtr.slug),
	COALESCE(tr.language_code, dtr.language_code)`

const tagFrom = `
	FROM tags t
	JOIN tag_translations dtr ON dtr.tag_id = t.id AND dtr.language_code = $1
	LEFT JOIN tag_translations tr ON tr.tag_id = t.id AND tr.language_code = $2`

// TagQuery filters the tag list.
type TagQuery struct {
	Language        string
	DefaultLanguage string
	Search          string
	WithCounts      bool
}

// List returns tags ordered by served-language name.
func (s *TagStore) List(q TagQuery) ([]models.Tag, error) {
	args := &sqlArgs{}
	args.add(q.DefaultLanguage)
	args.add(q.Language)

	var where []string
	if q.Search != "" {
		where = append(where, "COALESCE(tr.name, dtr.name) ILIKE "+args.add("%"+q.Search+"%"))
	}

	columns := tagColumns
	if q.WithCounts {
		columns += `,
	(SELECT COUNT(*) FROM post_tags pt
	 JOIN posts p ON p.id = pt.post_id
	 WHERE pt.tag_id = t.id AND p.status = 'published')`
	}

	query := `SELECT ` + columns + tagFrom
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY COALESCE(tr.name, dtr.name) ASC`

	rows, err := s.db.Query(query, args.vals...)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		t := models.Tag{Translation: &models.TagTranslation{}}
		dest := []any{
			&t.ID, &t.CreatedAt,
			&t.Translation.Name, &t.Translation.Slug, &t.ServedLanguage,
		}
		if q.WithCounts {
			dest = append(dest, &t.PostCount)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		t.Translation.TagID = t.ID
		t.Translation.LanguageCode = t.ServedLanguage
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// FindBySlug retrieves a tag by slug, trying the requested language first
// and the default language second. Returns nil if not found.
func (s *TagStore) FindBySlug(slugText, language, defaultLanguage string) (*models.Tag, error) {
	t, err := s.findBySlugIn(slugText, language, language, defaultLanguage)
	if err != nil || t != nil {
		return t, err
	}
	if language == defaultLanguage {
		return nil, nil
	}
	return s.findBySlugIn(slugText, defaultLanguage, language, defaultLanguage)
}

func (s *TagStore) findBySlugIn(slugText, slugLanguage, language, defaultLanguage string) (*models.Tag, error) {
	t := models.Tag{Translation: &models.TagTranslation{}}
	err := s.db.QueryRow(`SELECT `+tagColumns+tagFrom+`
		WHERE EXISTS (
			SELECT 1 FROM tag_translations x
			WHERE x.tag_id = t.id AND x.language_code = $3 AND x.slug = $4
		)`, defaultLanguage, language, slugLanguage, slugText).Scan(
		&t.ID, &t.CreatedAt,
		&t.Translation.Name, &t.Translation.Slug, &t.ServedLanguage,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tag by slug: %w", err)
	}
	t.Translation.TagID = t.ID
	t.Translation.LanguageCode = t.ServedLanguage
	return &t, nil
}

// Delete removes a tag; post links cascade.
func (s *TagStore) Delete(id uuid.UUID) error {
	if _, err := s.db.Exec(`DELETE FROM tags WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}

// Translations returns every stored language variant for a tag.
func (s *TagStore) Translations(tagID uuid.UUID) ([]models.TagTranslation, error) {
	rows, err := s.db.Query(`
		SELECT id, tag_id, language_code, name, slug
		FROM tag_translations WHERE tag_id = $1 ORDER BY language_code
	`, tagID)
	if err != nil {
		return nil, fmt.Errorf("tag translations: %w", err)
	}
	defer rows.Close()

	var out []models.TagTranslation
	for rows.Next() {
		var t models.TagTranslation
		if err := rows.Scan(&t.ID, &t.TagID, &t.LanguageCode, &t.Name, &t.Slug); err != nil {
			return nil, fmt.Errorf("scan tag translation: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
