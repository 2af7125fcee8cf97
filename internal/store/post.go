// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"linguablog/internal/apperr"
	"linguablog/internal/i18n"
	"linguablog/internal/models"
	"linguablog/internal/rbac"
	"linguablog/internal/slug"
)

// PostStore handles all post-related database operations, including the
// per-language translation rows and the tag/category links.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// postColumns selects the post row plus the language-resolved translation.
// dtr is the default-language row (always present for complete posts),
// tr the requested-language row; COALESCE implements the fallback.
const postColumns = `
	p.id, p.date, p.image, p.thumb, p.image_alt, p.author_name, p.status,
	p.created_by, p.modified_by, p.created_at, p.updated_at,
	COALESCE(tr.title, dtr.title),
	COALESCE(tr.slug, dtr.slug),
	COALESCE(tr.excerpt, dtr.excerpt),
	COALESCE(tr.content, dtr.content),
	COALESCE(tr.language_code, dtr.language_code)`

const postFrom = `
	FROM posts p
	JOIN post_translations dtr ON dtr.post_id = p.id AND dtr.language_code = $1
	LEFT JOIN post_translations tr ON tr.post_id = p.id AND tr.language_code = $2`

// PostRewriter maps API-facing post field names to SQL expressions over
// the aliases used by postColumns/postFrom. Translated fields resolve to
// their COALESCE fallback expression; relation lookups (tags__name,
// categories__slug) resolve to the aliases the EXISTS filters use.
func PostRewriter() *i18n.Rewriter {
	posts := i18n.NewRewriter(
		map[string]string{
			"title":   "COALESCE(tr.title, dtr.title)",
			"slug":    "COALESCE(tr.slug, dtr.slug)",
			"excerpt": "COALESCE(tr.excerpt, dtr.excerpt)",
			"content": "COALESCE(tr.content, dtr.content)",
		},
		map[string]string{
			"id":         "p.id",
			"date":       "p.date",
			"created_at": "p.date", // the API exposes the post date as created_at
			"updated_at": "p.updated_at",
			"status":     "p.status",
			"author":     "p.author_name",
		},
	)
	tags := i18n.NewRewriter(
		map[string]string{"name": "ttr.name", "slug": "ttr.slug"}, nil)
	categories := i18n.NewRewriter(
		map[string]string{"name": "ctr.name", "slug": "ctr.slug"}, nil)
	return posts.Relate("tags", tags).Relate("categories", categories)
}

// PostQuery describes a post list request. Visibility is mandatory and is
// applied in SQL before pagination so hidden rows never leak or shift
// page boundaries.
type PostQuery struct {
	Language        string
	DefaultLanguage string
	Visibility      rbac.Visibility

	Category string // category slug, matched case-insensitively in any language
	Tag      string // tag name, matched exactly in any language
	Search   string // matched against served-language title/content and related names
	Ordering string // rewriter-whitelisted field, "-" prefix for descending

	Limit  int
	Offset int
}

// sqlArgs numbers positional arguments while building a query.
type sqlArgs struct {
	vals []any
}

func (a *sqlArgs) add(v any) string {
	a.vals = append(a.vals, v)
	return fmt.Sprintf("$%d", len(a.vals))
}

// visibilityClause renders a Visibility as a WHERE fragment. Empty string
// means unrestricted.
func visibilityClause(v rbac.Visibility, args *sqlArgs) string {
	if v.All {
		return ""
	}
	placeholders := make([]string, len(v.Statuses))
	for i, s := range v.Statuses {
		placeholders[i] = args.add(string(s))
	}
	clause := "p.status IN (" + strings.Join(placeholders, ", ") + ")"
	if v.OwnerID != nil {
		clause = "(" + clause + " OR p.created_by = " + args.add(*v.OwnerID) + ")"
	}
	return clause
}

// List returns the page of posts matching q plus the total match count
// (counted before LIMIT/OFFSET).
func (s *PostStore) List(q PostQuery) ([]models.Post, int, error) {
	rw := PostRewriter()
	args := &sqlArgs{}
	args.add(q.DefaultLanguage)
	args.add(q.Language)

	var where []string
	if clause := visibilityClause(q.Visibility, args); clause != "" {
		where = append(where, clause)
	}

	if q.Category != "" {
		col, _ := rw.Column("categories__slug")
		where = append(where, `EXISTS (
			SELECT 1 FROM post_categories pc
			JOIN category_translations ctr ON ctr.category_id = pc.category_id
			WHERE pc.post_id = p.id AND LOWER(`+col+`) = LOWER(`+args.add(q.Category)+`))`)
	}
	if q.Tag != "" {
		col, _ := rw.Column("tags__name")
		where = append(where, `EXISTS (
			SELECT 1 FROM post_tags pt
			JOIN tag_translations ttr ON ttr.tag_id = pt.tag_id
			WHERE pt.post_id = p.id AND `+col+` = `+args.add(q.Tag)+`)`)
	}
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		title, _ := rw.Column("title")
		content, _ := rw.Column("content")
		tagName, _ := rw.Column("tags__name")
		catName, _ := rw.Column("categories__name")
		where = append(where, `(`+title+` ILIKE `+args.add(pattern)+`
			OR `+content+` ILIKE `+args.add(pattern)+`
			OR EXISTS (
				SELECT 1 FROM post_tags pt
				JOIN tag_translations ttr ON ttr.tag_id = pt.tag_id
				WHERE pt.post_id = p.id AND `+tagName+` ILIKE `+args.add(pattern)+`)
			OR EXISTS (
				SELECT 1 FROM post_categories pc
				JOIN category_translations ctr ON ctr.category_id = pc.category_id
				WHERE pc.post_id = p.id AND `+catName+` ILIKE `+args.add(pattern)+`))`)
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countSQL := `SELECT COUNT(DISTINCT p.id)` + postFrom + whereSQL
	if err := s.db.QueryRow(countSQL, args.vals...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	orderSQL := "p.date DESC, p.id DESC"
	if q.Ordering != "" {
		clause, ok := rw.OrderClause(q.Ordering)
		if !ok {
			return nil, 0, apperr.Validationf("unknown ordering field %q", strings.TrimPrefix(q.Ordering, "-"))
		}
		orderSQL = clause + ", p.id DESC"
	}

	query := `SELECT ` + postColumns + postFrom + whereSQL + ` ORDER BY ` + orderSQL
	if q.Limit > 0 {
		query += ` LIMIT ` + args.add(q.Limit) + ` OFFSET ` + args.add(q.Offset)
	}

	rows, err := s.db.Query(query, args.vals...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range posts {
		if err := s.loadRelations(&posts[i], q.Language, q.DefaultLanguage); err != nil {
			return nil, 0, err
		}
	}
	return posts, total, nil
}

// FindBySlug retrieves a post by its slug in the requested language,
// falling back to the default-language slug space when the requested
// language has no match. Returns nil if not found. Visibility is the
// caller's concern (rbac.Visibility.Allows).
func (s *PostStore) FindBySlug(slugText, language, defaultLanguage string) (*models.Post, error) {
	p, err := s.findBySlugIn(slugText, language, language, defaultLanguage)
	if err != nil || p != nil {
		return p, err
	}
	if language == defaultLanguage {
		return nil, nil
	}
	return s.findBySlugIn(slugText, defaultLanguage, language, defaultLanguage)
}

func (s *PostStore) findBySlugIn(slugText, slugLanguage, language, defaultLanguage string) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+postFrom+`
		WHERE EXISTS (
			SELECT 1 FROM post_translations x
			WHERE x.post_id = p.id AND x.language_code = $3 AND x.slug = $4
		)`, defaultLanguage, language, slugLanguage, slugText)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	if err := s.loadRelations(p, language, defaultLanguage); err != nil {
		return nil, err
	}
	return p, nil
}

// FindByID retrieves a post by its UUID with the language resolved as in
// FindBySlug. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID, language, defaultLanguage string) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+postFrom+` WHERE p.id = $3`,
		defaultLanguage, language, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	if err := s.loadRelations(p, language, defaultLanguage); err != nil {
		return nil, err
	}
	return p, nil
}

// PostInput carries the fields for creating a post in one language.
type PostInput struct {
	Title      string
	Slug       string // optional explicit slug source
	Excerpt    string
	Content    string
	Date       *time.Time
	Image      string
	Thumb      string
	ImageAlt   string
	AuthorName string
	Tags       []string // tag names; missing tags are created
	Categories []string // category slugs; must exist
}

// Create inserts a post in draft status with its first translation,
// stamping created_by and modified_by with the actor. The whole operation
// is one transaction.
func (s *PostStore) Create(in PostInput, language, defaultLanguage string, actor uuid.UUID) (*models.Post, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("create post begin: %w", err)
	}
	defer tx.Rollback()

	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}

	var postID uuid.UUID
	err = tx.QueryRow(`
		INSERT INTO posts (date, image, thumb, image_alt, author_name, status, created_by, modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id
	`, date, in.Image, in.Thumb, in.ImageAlt, in.AuthorName,
		models.PostStatusDraft, actor).Scan(&postID)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	// The default-language translation is always written first so the
	// post is reachable from every language. When the request language
	// differs, a second row carries the same content under that language.
	if err := insertPostTranslation(tx, postID, defaultLanguage, in); err != nil {
		return nil, err
	}
	if language != defaultLanguage {
		if err := insertPostTranslation(tx, postID, language, in); err != nil {
			return nil, err
		}
	}

	if err := s.setTags(tx, postID, in.Tags, defaultLanguage); err != nil {
		return nil, err
	}
	if err := s.setCategories(tx, postID, in.Categories); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create post commit: %w", err)
	}

	created, err := s.FindByID(postID, language, defaultLanguage)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("read back created post %s", postID)
	}
	return created, nil
}

// insertPostTranslation writes one (post, language) translation row from
// the create input, probing for a free slug in that language's scope.
func insertPostTranslation(tx *sql.Tx, postID uuid.UUID, language string, in PostInput) error {
	base := slug.MakeOr(in.Slug, language, "")
	if base == "" {
		base = slug.MakeOr(in.Title, language, postSlugFallback)
	}
	slugText, err := uniqueSlug(tx, "post_translations", "post_id", language, base, nil)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`
		INSERT INTO post_translations (post_id, language_code, title, slug, excerpt, content)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, postID, language, in.Title, slugText, in.Excerpt, in.Content); err != nil {
		return fmt.Errorf("create post translation: %w", err)
	}
	return nil
}

// PostUpdate carries a partial update. Nil fields are left untouched.
// The status transition must already have passed the rbac guard.
type PostUpdate struct {
	Title      *string
	Slug       *string
	Excerpt    *string
	Content    *string
	Date       *time.Time
	Image      *string
	Thumb      *string
	ImageAlt   *string
	AuthorName *string
	Status     *models.PostStatus
	Tags       *[]string
	Categories *[]string
}

// Update applies a partial update to the post row and upserts the
// translation for the given language, stamping modified_by. Slug handling
// follows the regeneration rule: an explicit slug always wins (made
// unique), a changed title regenerates, an untouched title keeps the
// stored slug.
func (s *PostStore) Update(post *models.Post, up PostUpdate, language, defaultLanguage string, actor uuid.UUID) (*models.Post, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("update post begin: %w", err)
	}
	defer tx.Rollback()

	status := post.Status
	if up.Status != nil {
		status = *up.Status
	}
	date := post.Date
	if up.Date != nil {
		date = *up.Date
	}

	_, err = tx.Exec(`
		UPDATE posts SET
			date = $1, image = $2, thumb = $3, image_alt = $4, author_name = $5,
			status = $6, modified_by = $7, updated_at = NOW()
		WHERE id = $8
	`, date,
		stringOr(up.Image, post.Image),
		stringOr(up.Thumb, post.Thumb),
		stringOr(up.ImageAlt, post.ImageAlt),
		stringOr(up.AuthorName, post.AuthorName),
		status, actor, post.ID)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	if err := s.upsertTranslation(tx, post.ID, language, defaultLanguage, up); err != nil {
		return nil, err
	}

	if up.Tags != nil {
		if _, err := tx.Exec(`DELETE FROM post_tags WHERE post_id = $1`, post.ID); err != nil {
			return nil, fmt.Errorf("clear post tags: %w", err)
		}
		if err := s.setTags(tx, post.ID, *up.Tags, defaultLanguage); err != nil {
			return nil, err
		}
	}
	if up.Categories != nil {
		if _, err := tx.Exec(`DELETE FROM post_categories WHERE post_id = $1`, post.ID); err != nil {
			return nil, fmt.Errorf("clear post categories: %w", err)
		}
		if err := s.setCategories(tx, post.ID, *up.Categories); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update post commit: %w", err)
	}
	return s.FindByID(post.ID, language, defaultLanguage)
}

// upsertTranslation creates or updates the (post, language) translation
// row. A missing row is created lazily, filling unspecified fields from
// the default-language variant.
func (s *PostStore) upsertTranslation(tx *sql.Tx, postID uuid.UUID, language, defaultLanguage string, up PostUpdate) error {
	var existing models.PostTranslation
	err := tx.QueryRow(`
		SELECT id, title, slug, excerpt, content
		FROM post_translations WHERE post_id = $1 AND language_code = $2
	`, postID, language).Scan(
		&existing.ID, &existing.Title, &existing.Slug, &existing.Excerpt, &existing.Content,
	)

	switch {
	case err == sql.ErrNoRows:
		// Lazy creation of a new language variant; fall back to the
		// default-language values for fields the caller didn't send.
		var def models.PostTranslation
		err := tx.QueryRow(`
			SELECT title, excerpt, content
			FROM post_translations WHERE post_id = $1 AND language_code = $2
		`, postID, defaultLanguage).Scan(&def.Title, &def.Excerpt, &def.Content)
		if err != nil && err != sql.ErrNoRows {
			return fmt.Errorf("default translation: %w", err)
		}

		title := stringOr(up.Title, def.Title)
		base := ""
		if up.Slug != nil {
			base = slug.MakeOr(*up.Slug, language, "")
		}
		if base == "" {
			base = slug.MakeOr(title, language, postSlugFallback)
		}
		slugText, err := uniqueSlug(tx, "post_translations", "post_id", language, base, nil)
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
			INSERT INTO post_translations (post_id, language_code, title, slug, excerpt, content)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, postID, language, title, slugText,
			stringOr(up.Excerpt, def.Excerpt), stringOr(up.Content, def.Content))
		if err != nil {
			return fmt.Errorf("insert translation: %w", err)
		}
		return nil

	case err != nil:
		return fmt.Errorf("load translation: %w", err)
	}

	title := stringOr(up.Title, existing.Title)
	slugText := existing.Slug
	switch {
	case up.Slug != nil && slug.Make(*up.Slug, language) != "":
		made, err := uniqueSlug(tx, "post_translations", "post_id", language,
			slug.Make(*up.Slug, language), &postID)
		if err != nil {
			return err
		}
		slugText = made
	case up.Title != nil && *up.Title != existing.Title:
		made, err := uniqueSlug(tx, "post_translations", "post_id", language,
			slug.MakeOr(title, language, postSlugFallback), &postID)
		if err != nil {
			return err
		}
		slugText = made
	}

	_, err = tx.Exec(`
		UPDATE post_translations SET title = $1, slug = $2, excerpt = $3, content = $4
		WHERE id = $5
	`, title, slugText,
		stringOr(up.Excerpt, existing.Excerpt),
		stringOr(up.Content, existing.Content),
		existing.ID)
	if err != nil {
		return fmt.Errorf("update translation: %w", err)
	}
	return nil
}

// setTags links the named tags to the post. Names are matched in any
// language; missing tags are created with their first translation in the
// default language so they stay reachable from every language.
func (s *PostStore) setTags(tx *sql.Tx, postID uuid.UUID, names []string, defaultLanguage string) error {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		var tagID uuid.UUID
		err := tx.QueryRow(`
			SELECT t.id FROM tags t
			JOIN tag_translations x ON x.tag_id = t.id
			WHERE LOWER(x.name) = LOWER($1)
			LIMIT 1
		`, name).Scan(&tagID)
		if err == sql.ErrNoRows {
			if err := tx.QueryRow(`INSERT INTO tags DEFAULT VALUES RETURNING id`).Scan(&tagID); err != nil {
				return fmt.Errorf("create tag: %w", err)
			}
			slugText, err := uniqueSlug(tx, "tag_translations", "tag_id", defaultLanguage,
				slug.MakeOr(name, defaultLanguage, tagSlugFallback), nil)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(`
				INSERT INTO tag_translations (tag_id, language_code, name, slug)
				VALUES ($1, $2, $3, $4)
			`, tagID, defaultLanguage, name, slugText); err != nil {
				return fmt.Errorf("create tag translation: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("find tag %q: %w", name, err)
		}

		if _, err := tx.Exec(`
			INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, postID, tagID); err != nil {
			return fmt.Errorf("link tag: %w", err)
		}
	}
	return nil
}

// setCategories links categories by slug (any language). Unknown slugs
// fail the whole operation as a validation error.
func (s *PostStore) setCategories(tx *sql.Tx, postID uuid.UUID, slugs []string) error {
	for _, slugText := range slugs {
		slugText = strings.TrimSpace(slugText)
		if slugText == "" {
			continue
		}

		var categoryID uuid.UUID
		err := tx.QueryRow(`
			SELECT category_id FROM category_translations
			WHERE LOWER(slug) = LOWER($1) LIMIT 1
		`, slugText).Scan(&categoryID)
		if err == sql.ErrNoRows {
			return apperr.Validationf("unknown category %q", slugText)
		}
		if err != nil {
			return fmt.Errorf("find category %q: %w", slugText, err)
		}

		if _, err := tx.Exec(`
			INSERT INTO post_categories (post_id, category_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, postID, categoryID); err != nil {
			return fmt.Errorf("link category: %w", err)
		}
	}
	return nil
}

// Delete removes a post; comments, translations and links cascade.
func (s *PostStore) Delete(id uuid.UUID) error {
	if _, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// Translations returns every stored language variant for a post.
func (s *PostStore) Translations(postID uuid.UUID) ([]models.PostTranslation, error) {
	rows, err := s.db.Query(`
		SELECT id, post_id, language_code, title, slug, excerpt, content
		FROM post_translations WHERE post_id = $1 ORDER BY language_code
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("post translations: %w", err)
	}
	defer rows.Close()

	var out []models.PostTranslation
	for rows.Next() {
		var t models.PostTranslation
		if err := rows.Scan(&t.ID, &t.PostID, &t.LanguageCode, &t.Title, &t.Slug, &t.Excerpt, &t.Content); err != nil {
			return nil, fmt.Errorf("scan post translation: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// scanPost scans the postColumns projection.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	p := &models.Post{Translation: &models.PostTranslation{}}
	err := scanner.Scan(
		&p.ID, &p.Date, &p.Image, &p.Thumb, &p.ImageAlt, &p.AuthorName, &p.Status,
		&p.CreatedBy, &p.ModifiedBy, &p.CreatedAt, &p.UpdatedAt,
		&p.Translation.Title, &p.Translation.Slug,
		&p.Translation.Excerpt, &p.Translation.Content,
		&p.ServedLanguage,
	)
	if err != nil {
		return nil, err
	}
	p.Translation.PostID = p.ID
	p.Translation.LanguageCode = p.ServedLanguage
	return p, nil
}

// loadRelations populates Tags and Categories with language-resolved names.
func (s *PostStore) loadRelations(p *models.Post, language, defaultLanguage string) error {
	tagRows, err := s.db.Query(`
		SELECT t.id, t.created_at,
		       COALESCE(tr.name, dtr.name), COALESCE(tr.slug, dtr.slug),
		       COALESCE(tr.language_code, dtr.language_code)
		FROM post_tags pt
		JOIN tags t ON t.id = pt.tag_id
		JOIN tag_translations dtr ON dtr.tag_id = t.id AND dtr.language_code = $1
		LEFT JOIN tag_translations tr ON tr.tag_id = t.id AND tr.language_code = $2
		WHERE pt.post_id = $3
		ORDER BY 3
	`, defaultLanguage, language, p.ID)
	if err != nil {
		return fmt.Errorf("post tags: %w", err)
	}
	defer tagRows.Close()

	p.Tags = nil
	for tagRows.Next() {
		t := models.Tag{Translation: &models.TagTranslation{}}
		if err := tagRows.Scan(&t.ID, &t.CreatedAt,
			&t.Translation.Name, &t.Translation.Slug, &t.ServedLanguage); err != nil {
			return fmt.Errorf("scan post tag: %w", err)
		}
		t.Translation.TagID = t.ID
		t.Translation.LanguageCode = t.ServedLanguage
		p.Tags = append(p.Tags, t)
	}
	if err := tagRows.Err(); err != nil {
		return err
	}

	catRows, err := s.db.Query(`
		SELECT c.id, c.is_active, c.created_at, c.updated_at,
		       COALESCE(tr.name, dtr.name), COALESCE(tr.slug, dtr.slug),
		       COALESCE(tr.description, dtr.description),
		       COALESCE(tr.language_code, dtr.language_code)
		FROM post_categories pc
		JOIN categories c ON c.id = pc.category_id
		JOIN category_translations dtr ON dtr.category_id = c.id AND dtr.language_code = $1
		LEFT JOIN category_translations tr ON tr.category_id = c.id AND tr.language_code = $2
		WHERE pc.post_id = $3
		ORDER BY 5
	`, defaultLanguage, language, p.ID)
	if err != nil {
		return fmt.Errorf("post categories: %w", err)
	}
	defer catRows.Close()

	p.Categories = nil
	for catRows.Next() {
		c := models.Category{Translation: &models.CategoryTranslation{}}
		if err := catRows.Scan(&c.ID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
			&c.Translation.Name, &c.Translation.Slug, &c.Translation.Description,
			&c.ServedLanguage); err != nil {
			return fmt.Errorf("scan post category: %w", err)
		}
		c.Translation.CategoryID = c.ID
		c.Translation.LanguageCode = c.ServedLanguage
		p.Categories = append(p.Categories, c)
	}
	return catRows.Err()
}

// stringOr returns *v when set, fallback otherwise.
func stringOr(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}
