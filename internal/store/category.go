// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"linguablog/internal/apperr"
	"linguablog/internal/models"
	"linguablog/internal/slug"
)

// CategoryStore handles all category-related database operations.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore creates a new CategoryStore with the given database connection.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `
	c.id, c.is_active, c.created_at, c.updated_at,
	COALESCE(tr.name, dtr.name),
	COALESCE(tr.slug, dtr.slug),
	COALESCE(tr.description, dtr.description),
	COALESCE(tr.language_code, dtr.language_code)`

const categoryFrom = `
	FROM categories c
	JOIN category_translations dtr ON dtr.category_id = c.id AND dtr.language_code = $1
	LEFT JOIN category_translations tr ON tr.category_id = c.id AND tr.language_code = $2`

// CategoryQuery filters the category list.
type CategoryQuery struct {
	Language        string
	DefaultLanguage string
	Search          string // substring match on served-language name or description
	Active          *bool  // nil lists both active and inactive
	WithCounts      bool   // populate PostCount with published post totals
}

// List returns categories ordered by served-language name.
func (s *CategoryStore) List(q CategoryQuery) ([]models.Category, error) {
	args := &sqlArgs{}
	args.add(q.DefaultLanguage)
	args.add(q.Language)

	var where []string
	if q.Active != nil {
		where = append(where, "c.is_active = "+args.add(*q.Active))
	}
	if q.Search != "" {
		pattern := args.add("%" + q.Search + "%")
		where = append(where, "(COALESCE(tr.name, dtr.name) ILIKE "+pattern+
			" OR COALESCE(tr.description, dtr.description) ILIKE "+pattern+")")
	}

	columns := categoryColumns
	if q.WithCounts {
		columns += `,
	(SELECT COUNT(*) FROM post_categories pc
	 JOIN posts p ON p.id = pc.post_id
	 WHERE pc.category_id = c.id AND p.status = 'published')`
	}

	query := `SELECT ` + columns + categoryFrom
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY COALESCE(tr.name, dtr.name) ASC`

	rows, err := s.db.Query(query, args.vals...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		c := models.Category{Translation: &models.CategoryTranslation{}}
		dest := []any{
			&c.ID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
			&c.Translation.Name, &c.Translation.Slug, &c.Translation.Description,
			&c.ServedLanguage,
		}
		if q.WithCounts {
			dest = append(dest, &c.PostCount)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Translation.CategoryID = c.ID
		c.Translation.LanguageCode = c.ServedLanguage
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// FindBySlug retrieves a category by slug, trying the requested language
// first and the default language second. Returns nil if not found.
func (s *CategoryStore) FindBySlug(slugText, language, defaultLanguage string) (*models.Category, error) {
	c, err := s.findBySlugIn(slugText, language, language, defaultLanguage)
	if err != nil || c != nil {
		return c, err
	}
	if language == defaultLanguage {
		return nil, nil
	}
	return s.findBySlugIn(slugText, defaultLanguage, language, defaultLanguage)
}

func (s *CategoryStore) findBySlugIn(slugText, slugLanguage, language, defaultLanguage string) (*models.Category, error) {
	c := models.Category{Translation: &models.CategoryTranslation{}}
	err := s.db.QueryRow(`SELECT `+categoryColumns+categoryFrom+`
		WHERE EXISTS (
			SELECT 1 FROM category_translations x
			WHERE x.category_id = c.id AND x.language_code = $3 AND x.slug = $4
		)`, defaultLanguage, language, slugLanguage, slugText).Scan(
		&c.ID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		&c.Translation.Name, &c.Translation.Slug, &c.Translation.Description,
		&c.ServedLanguage,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	c.Translation.CategoryID = c.ID
	c.Translation.LanguageCode = c.ServedLanguage
	return &c, nil
}

// CategoryInput carries the fields for creating or translating a category.
type CategoryInput struct {
	Name        string
	Slug        string // optional explicit slug source
	Description string
	IsActive    *bool
}

// Create inserts a category with its first translation.
func (s *CategoryStore) Create(in CategoryInput, language, defaultLanguage string) (*models.Category, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("create category begin: %w", err)
	}
	defer tx.Rollback()

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	var categoryID uuid.UUID
	err = tx.QueryRow(`
		INSERT INTO categories (is_active) VALUES ($1) RETURNING id
	`, active).Scan(&categoryID)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	// The default-language translation comes first so the category is
	// reachable from every language; a different request language gets a
	// second row with the same content.
	if err := upsertCategoryTranslation(tx, categoryID, defaultLanguage, in); err != nil {
		return nil, err
	}
	if language != defaultLanguage {
		if err := upsertCategoryTranslation(tx, categoryID, language, in); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create category commit: %w", err)
	}

	created, err := s.findByID(categoryID, language, defaultLanguage)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("read back created category %s", categoryID)
	}
	return created, nil
}

// Update applies a partial update in one language, creating the
// translation row when the language is new for this category.
func (s *CategoryStore) Update(category *models.Category, in CategoryInput, language, defaultLanguage string) (*models.Category, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("update category begin: %w", err)
	}
	defer tx.Rollback()

	if in.IsActive != nil {
		if _, err := tx.Exec(`
			UPDATE categories SET is_active = $1, updated_at = NOW() WHERE id = $2
		`, *in.IsActive, category.ID); err != nil {
			return nil, fmt.Errorf("update category: %w", err)
		}
	} else {
		if _, err := tx.Exec(`
			UPDATE categories SET updated_at = NOW() WHERE id = $1
		`, category.ID); err != nil {
			return nil, fmt.Errorf("touch category: %w", err)
		}
	}

	if err := upsertCategoryTranslation(tx, category.ID, language, in); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update category commit: %w", err)
	}
	return s.findByID(category.ID, language, defaultLanguage)
}

// upsertCategoryTranslation writes the (category, language) row. An
// existing row keeps its slug unless the name changed or an explicit
// slug was sent; an empty name on a new language row is rejected.
func upsertCategoryTranslation(tx *sql.Tx, categoryID uuid.UUID, language string, in CategoryInput) error {
	var existing models.CategoryTranslation
	err := tx.QueryRow(`
		SELECT id, name, slug, description
		FROM category_translations WHERE category_id = $1 AND language_code = $2
	`, categoryID, language).Scan(
		&existing.ID, &existing.Name, &existing.Slug, &existing.Description,
	)

	if err == sql.ErrNoRows {
		if strings.TrimSpace(in.Name) == "" {
			return apperr.Validationf("category name is required for language %q", language)
		}
		base := slug.MakeOr(in.Slug, language, "")
		if base == "" {
			base = slug.MakeOr(in.Name, language, categorySlugFallback)
		}
		slugText, err := uniqueSlug(tx, "category_translations", "category_id", language, base, nil)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`
			INSERT INTO category_translations (category_id, language_code, name, slug, description)
			VALUES ($1, $2, $3, $4, $5)
		`, categoryID, language, in.Name, slugText, in.Description); err != nil {
			return fmt.Errorf("insert category translation: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("load category translation: %w", err)
	}

	name := existing.Name
	if strings.TrimSpace(in.Name) != "" {
		name = in.Name
	}
	description := existing.Description
	if in.Description != "" {
		description = in.Description
	}

	slugText := existing.Slug
	switch {
	case slug.Make(in.Slug, language) != "":
		made, err := uniqueSlug(tx, "category_translations", "category_id", language,
			slug.Make(in.Slug, language), &categoryID)
		if err != nil {
			return err
		}
		slugText = made
	case name != existing.Name:
		made, err := uniqueSlug(tx, "category_translations", "category_id", language,
			slug.MakeOr(name, language, categorySlugFallback), &categoryID)
		if err != nil {
			return err
		}
		slugText = made
	}

	if _, err := tx.Exec(`
		UPDATE category_translations SET name = $1, slug = $2, description = $3
		WHERE id = $4
	`, name, slugText, description, existing.ID); err != nil {
		return fmt.Errorf("update category translation: %w", err)
	}
	return nil
}

// Delete removes a category; post links cascade, posts stay.
func (s *CategoryStore) Delete(id uuid.UUID) error {
	if _, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// Translations returns every stored language variant for a category.
func (s *CategoryStore) Translations(categoryID uuid.UUID) ([]models.CategoryTranslation, error) {
	rows, err := s.db.Query(`
		SELECT id, category_id, language_code, name, slug, description
		FROM category_translations WHERE category_id = $1 ORDER BY language_code
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("category translations: %w", err)
	}
	defer rows.Close()

	var out []models.CategoryTranslation
	for rows.Next() {
		var t models.CategoryTranslation
		if err := rows.Scan(&t.ID, &t.CategoryID, &t.LanguageCode, &t.Name, &t.Slug, &t.Description); err != nil {
			return nil, fmt.Errorf("scan category translation: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *CategoryStore) findByID(id uuid.UUID, language, defaultLanguage string) (*models.Category, error) {
	c := models.Category{Translation: &models.CategoryTranslation{}}
	err := s.db.QueryRow(`SELECT `+categoryColumns+categoryFrom+` WHERE c.id = $3`,
		defaultLanguage, language, id).Scan(
		&c.ID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		&c.Translation.Name, &c.Translation.Slug, &c.Translation.Description,
		&c.ServedLanguage,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	c.Translation.CategoryID = c.ID
	c.Translation.LanguageCode = c.ServedLanguage
	return &c, nil
}
