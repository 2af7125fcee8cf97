// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/google/uuid"

	"linguablog/internal/models"
	"linguablog/internal/rbac"
)

func TestPostCreateStartsAsDraft(t *testing.T) {
	db := testDB(t)
	author := mustCreateUser(t, db, "post-create@test.local", models.RoleAuthor)

	post := mustCreatePost(t, db, "Primer artículo de prueba", author.ID)

	if post.Status != models.PostStatusDraft {
		t.Errorf("status = %s, want draft", post.Status)
	}
	if post.CreatedBy == nil || *post.CreatedBy != author.ID {
		t.Error("created_by should stamp the actor")
	}
	if post.ModifiedBy == nil || *post.ModifiedBy != author.ID {
		t.Error("modified_by should stamp the actor")
	}
	if post.Translation.Slug != "primer-articulo-de-prueba" {
		t.Errorf("slug = %q", post.Translation.Slug)
	}
	if post.ServedLanguage != "es" {
		t.Errorf("served language = %q", post.ServedLanguage)
	}
}

// Two posts with the same title in one language get -2 suffixed slugs;
// the same title in another language keeps the unsuffixed slug since
// uniqueness is per language.
func TestPostSlugCollisions(t *testing.T) {
	db := testDB(t)
	author := mustCreateUser(t, db, "post-slug@test.local", models.RoleAuthor)
	posts := NewPostStore(db)

	first := mustCreatePost(t, db, "Título repetido", author.ID)
	second := mustCreatePost(t, db, "Título repetido", author.ID)
	third := mustCreatePost(t, db, "Título repetido", author.ID)

	if first.Translation.Slug != "titulo-repetido" {
		t.Errorf("first slug = %q", first.Translation.Slug)
	}
	if second.Translation.Slug != "titulo-repetido-2" {
		t.Errorf("second slug = %q", second.Translation.Slug)
	}
	if third.Translation.Slug != "titulo-repetido-3" {
		t.Errorf("third slug = %q", third.Translation.Slug)
	}

	// Same slug in a different language is free.
	en, err := posts.Create(PostInput{Title: "Título Repetido"}, "en", "es", author.ID)
	if err != nil {
		t.Fatalf("create en post: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM posts WHERE id = $1", en.ID) })
	if en.Translation.Slug != "titulo-repetido" {
		t.Errorf("en slug = %q, want unsuffixed", en.Translation.Slug)
	}
}

// Creating a post through a non-default language must still write the
// default-language translation, or the post is unreachable from every
// read path that anchors on it.
func TestPostCreateNonDefaultLanguage(t *testing.T) {
	db := testDB(t)
	author := mustCreateUser(t, db, "post-nondefault@test.local", models.RoleAuthor)
	posts := NewPostStore(db)

	post, err := posts.Create(PostInput{
		Title: "Written in English",
		Tags:  []string{"anglo"},
	}, "en", "es", author.ID)
	if err != nil {
		t.Fatalf("create en post: %v", err)
	}
	if post == nil {
		t.Fatal("create returned no post")
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM posts WHERE id = $1", post.ID)
		cleanTags(t, db, "anglo")
	})

	if post.ServedLanguage != "en" || post.Translation.Title != "Written in English" {
		t.Errorf("served = %q title = %q", post.ServedLanguage, post.Translation.Title)
	}

	// The default-language variant exists and carries the same content.
	viaDefault, err := posts.FindByID(post.ID, "es", "es")
	if err != nil {
		t.Fatalf("FindByID es: %v", err)
	}
	if viaDefault == nil {
		t.Fatal("post invisible under the default language")
	}
	if viaDefault.Translation.Title != "Written in English" {
		t.Errorf("default-language title = %q", viaDefault.Translation.Title)
	}

	trs, err := posts.Translations(post.ID)
	if err != nil {
		t.Fatalf("Translations: %v", err)
	}
	if len(trs) != 2 {
		t.Errorf("translations = %d, want es and en", len(trs))
	}

	// The implicitly created tag got its row under the default language.
	tag, err := NewTagStore(db).FindBySlug("anglo", "es", "es")
	if err != nil || tag == nil {
		t.Errorf("tag under default language = (%v, %v)", tag, err)
	}
}

func TestPostTranslationFallback(t *testing.T) {
	db := testDB(t)
	author := mustCreateUser(t, db, "post-fallback@test.local", models.RoleAuthor)
	posts := NewPostStore(db)

	post := mustCreatePost(t, db, "Solo en español", author.ID)

	// Requesting English falls back to the Spanish variant.
	got, err := posts.FindByID(post.ID, "en", "es")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.ServedLanguage != "es" {
		t.Errorf("served language = %q, want fallback es", got.ServedLanguage)
	}
	if got.Translation.Title != "Solo en español" {
		t.Errorf("title = %q", got.Translation.Title)
	}

	// Adding an English variant switches the served language.
	title := "English only title"
	if _, err := posts.Update(post, PostUpdate{Title: &title}, "en", "es", author.ID); err != nil {
		t.Fatalf("Update en: %v", err)
	}
	got, err = posts.FindByID(post.ID, "en", "es")
	if err != nil {
		t.Fatalf("FindByID after update: %v", err)
	}
	if got.ServedLanguage != "en" || got.Translation.Title != title {
		t.Errorf("served = %q title = %q", got.ServedLanguage, got.Translation.Title)
	}

	// The Spanish variant is untouched.
	got, err = posts.FindByID(post.ID, "es", "es")
	if err != nil {
		t.Fatalf("FindByID es: %v", err)
	}
	if got.Translation.Title != "Solo en español" {
		t.Errorf("es title changed: %q", got.Translation.Title)
	}
}

func TestPostFindBySlugChecksDefaultLanguage(t *testing.T) {
	db := testDB(t)
	author := mustCreateUser(t, db, "post-byslug@test.local", models.RoleAuthor)
	posts := NewPostStore(db)

	post := mustCreatePost(t, db, "Búsqueda por slug", author.ID)

	// The Spanish slug resolves even when English is requested.
	got, err := posts.FindBySlug("busqueda-por-slug", "en", "es")
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if got == nil || got.ID != post.ID {
		t.Fatal("expected the post via its default-language slug")
	}

	if missing, err := posts.FindBySlug("no-such-slug", "es", "es"); err != nil || missing != nil {
		t.Errorf("unknown slug = (%v, %v), want (nil, nil)", missing, err)
	}
}

func TestPostUpdateSlugRules(t *testing.T) {
	db := testDB(t)
	author := mustCreateUser(t, db, "post-update@test.local", models.RoleAuthor)
	posts := NewPostStore(db)

	post := mustCreatePost(t, db, "Título original", author.ID)

	// Editing content only keeps the slug.
	content := "nuevo contenido"
	updated, err := posts.Update(post, PostUpdate{Content: &content}, "es", "es", author.ID)
	if err != nil {
		t.Fatalf("Update content: %v", err)
	}
	if updated.Translation.Slug != "titulo-original" {
		t.Errorf("slug changed on content edit: %q", updated.Translation.Slug)
	}

	// Changing the title regenerates the slug.
	title := "Título renovado"
	updated, err = posts.Update(updated, PostUpdate{Title: &title}, "es", "es", author.ID)
	if err != nil {
		t.Fatalf("Update title: %v", err)
	}
	if updated.Translation.Slug != "titulo-renovado" {
		t.Errorf("slug = %q, want regenerated", updated.Translation.Slug)
	}

	// An explicit slug wins over the title.
	slug := "Slug Manual Aquí"
	updated, err = posts.Update(updated, PostUpdate{Slug: &slug}, "es", "es", author.ID)
	if err != nil {
		t.Fatalf("Update slug: %v", err)
	}
	if updated.Translation.Slug != "slug-manual-aqui" {
		t.Errorf("slug = %q, want slugified explicit value", updated.Translation.Slug)
	}
}

func TestPostListVisibility(t *testing.T) {
	db := testDB(t)
	author := mustCreateUser(t, db, "post-vis-author@test.local", models.RoleAuthor)
	other := mustCreateUser(t, db, "post-vis-other@test.local", models.RoleAuthor)
	posts := NewPostStore(db)

	draft := mustCreatePost(t, db, "Borrador de visibilidad", author.ID)
	published := mustCreatePost(t, db, "Publicado de visibilidad", author.ID)
	status := models.PostStatusPublished
	if _, err := posts.Update(published, PostUpdate{Status: &status}, "es", "es", author.ID); err != nil {
		t.Fatalf("publish: %v", err)
	}

	contains := func(list []models.Post, id uuid.UUID) bool {
		for i := range list {
			if list[i].ID == id {
				return true
			}
		}
		return false
	}

	// Anonymous sees only the published post.
	anon, _, err := posts.List(PostQuery{
		Language: "es", DefaultLanguage: "es",
		Visibility: rbac.VisibleTo(rbac.Anonymous),
	})
	if err != nil {
		t.Fatalf("List anonymous: %v", err)
	}
	if contains(anon, draft.ID) {
		t.Error("anonymous list leaked a draft")
	}
	if !contains(anon, published.ID) {
		t.Error("anonymous list missed a published post")
	}

	// The owner additionally sees their own draft.
	own, _, err := posts.List(PostQuery{
		Language: "es", DefaultLanguage: "es",
		Visibility: rbac.VisibleTo(rbac.IdentityFor(author)),
	})
	if err != nil {
		t.Fatalf("List author: %v", err)
	}
	if !contains(own, draft.ID) {
		t.Error("author list should include their own draft")
	}

	// A different author does not see the foreign draft.
	foreign, _, err := posts.List(PostQuery{
		Language: "es", DefaultLanguage: "es",
		Visibility: rbac.VisibleTo(rbac.IdentityFor(other)),
	})
	if err != nil {
		t.Fatalf("List other: %v", err)
	}
	if contains(foreign, draft.ID) {
		t.Error("foreign author list leaked a draft")
	}
}

func TestPostListFiltersAndOrdering(t *testing.T) {
	db := testDB(t)
	editor := mustCreateUser(t, db, "post-filter@test.local", models.RoleEditor)
	posts := NewPostStore(db)
	categories := NewCategoryStore(db)

	cat, err := categories.Create(CategoryInput{Name: "Filtrado Integración"}, "es", "es")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM categories WHERE id = $1", cat.ID) })

	tagged, err := posts.Create(PostInput{
		Title:      "Artículo etiquetado filtros",
		Tags:       []string{"go-pruebas"},
		Categories: []string{cat.Translation.Slug},
	}, "es", "es", editor.ID)
	if err != nil {
		t.Fatalf("create tagged post: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM posts WHERE id = $1", tagged.ID)
		cleanTags(t, db, "go-pruebas")
	})
	plain := mustCreatePost(t, db, "Artículo sin filtros", editor.ID)

	all := rbac.Visibility{All: true}

	byTag, _, err := posts.List(PostQuery{
		Language: "es", DefaultLanguage: "es", Visibility: all, Tag: "go-pruebas",
	})
	if err != nil {
		t.Fatalf("List by tag: %v", err)
	}
	if len(byTag) != 1 || byTag[0].ID != tagged.ID {
		t.Errorf("tag filter returned %d posts", len(byTag))
	}

	byCat, _, err := posts.List(PostQuery{
		Language: "es", DefaultLanguage: "es", Visibility: all, Category: cat.Translation.Slug,
	})
	if err != nil {
		t.Fatalf("List by category: %v", err)
	}
	if len(byCat) != 1 || byCat[0].ID != tagged.ID {
		t.Errorf("category filter returned %d posts", len(byCat))
	}

	bySearch, _, err := posts.List(PostQuery{
		Language: "es", DefaultLanguage: "es", Visibility: all, Search: "sin filtros",
	})
	if err != nil {
		t.Fatalf("List by search: %v", err)
	}
	if len(bySearch) != 1 || bySearch[0].ID != plain.ID {
		t.Errorf("search returned %d posts", len(bySearch))
	}

	// Unknown ordering fields are rejected, known ones accepted.
	if _, _, err := posts.List(PostQuery{
		Language: "es", DefaultLanguage: "es", Visibility: all, Ordering: "-password",
	}); err == nil {
		t.Error("unknown ordering field should fail")
	}
	if _, _, err := posts.List(PostQuery{
		Language: "es", DefaultLanguage: "es", Visibility: all, Ordering: "-created_at",
	}); err != nil {
		t.Errorf("ordering by -created_at: %v", err)
	}
	if _, _, err := posts.List(PostQuery{
		Language: "es", DefaultLanguage: "es", Visibility: all, Ordering: "title",
	}); err != nil {
		t.Errorf("ordering by title: %v", err)
	}
}

func TestPostDeleteCascades(t *testing.T) {
	db := testDB(t)
	author := mustCreateUser(t, db, "post-delete@test.local", models.RoleAuthor)
	posts := NewPostStore(db)
	comments := NewCommentStore(db)

	post := mustCreatePost(t, db, "Artículo a borrar", author.ID)
	if _, err := comments.Create(post.ID, "Ana", "comentario"); err != nil {
		t.Fatalf("create comment: %v", err)
	}

	if err := posts.Delete(post.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if got, err := posts.FindByID(post.ID, "es", "es"); err != nil || got != nil {
		t.Errorf("post still present: (%v, %v)", got, err)
	}
	left, err := comments.ListForPost(post.ID)
	if err != nil {
		t.Fatalf("ListForPost: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("comments survived the post: %d", len(left))
	}
}
