package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"newsdesk/internal/apperr"
	"newsdesk/internal/article"
	"newsdesk/internal/models"
)

// testAuthor creates a throwaway author row for article FK constraints.
func testAuthor(t *testing.T, users *UserStore, email string) *models.User {
	t.Helper()

	u, err := users.Create(context.Background(), email, "test-password", "Test Author", models.RoleAuthor)
	if err != nil {
		t.Fatalf("create test author: %v", err)
	}
	return u
}

func TestArticleCreateDerivesSlugs(t *testing.T) {
	db := testDB(t)
	articles := NewArticleStore(db)
	users := NewUserStore(db)
	ctx := context.Background()

	author := testAuthor(t, users, "slugs@example.com")
	t.Cleanup(func() {
		cleanArticles(t, db, "budget-vote-passes")
		cleanUsers(t, db, "slugs@example.com")
	})

	created, err := articles.Create(ctx, article.CreateCommand{
		Title:       "Budget Vote Passes",
		TitleAr:     "تمرير الميزانية",
		AuthorID:    author.ID,
		AuthorEmail: author.Email,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.Slug != "budget-vote-passes" {
		t.Errorf("slug = %q", created.Slug)
	}
	if created.SlugAr != "تمرير-الميزانية" {
		t.Errorf("slugAr = %q", created.SlugAr)
	}
	if created.Status != models.ArticleStatusDraft {
		t.Errorf("status = %q, want draft", created.Status)
	}
}

func TestArticleUpdatePartialAndAssociations(t *testing.T) {
	db := testDB(t)
	articles := NewArticleStore(db)
	tags := NewTagStore(db)
	users := NewUserStore(db)
	ctx := context.Background()

	author := testAuthor(t, users, "assoc@example.com")
	t.Cleanup(func() {
		cleanArticles(t, db, "original-title")
		cleanTags(t, db, "assoc-politics")
		cleanUsers(t, db, "assoc@example.com")
	})

	summary := "original summary"
	created, err := articles.Create(ctx, article.CreateCommand{
		Title:       "Original Title",
		TitleAr:     "العنوان الأصلي",
		Summary:     &summary,
		AuthorID:    author.ID,
		AuthorEmail: author.Email,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	now := time.Now()
	tag := &models.Tag{ID: uuid.New(), Name: "assoc-politics", CreatedAt: now, UpdatedAt: now}
	if err := tags.Create(ctx, tag); err != nil {
		t.Fatalf("tag create failed: %v", err)
	}

	img := models.File{
		ID:       uuid.New(),
		URL:      "https://cdn.example.com/a.jpg",
		Filename: "a.jpg",
		Mimetype: "image/jpeg",
		Size:     3,
		Path:     "media/test/a.jpg",
	}

	// Partial update: only the Arabic title changes; tag and image sets are
	// replaced. The unknown tag ID must be dropped silently.
	newTitleAr := "عنوان جديد"
	updated, err := articles.Update(ctx, article.UpdateCommand{
		ID:        created.ID,
		TitleAr:   &newTitleAr,
		Tags:      []models.Tag{*tag, {ID: uuid.New()}},
		SetTags:   true,
		Images:    []models.File{img},
		SetImages: true,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Title != "Original Title" {
		t.Errorf("untouched title changed: %q", updated.Title)
	}
	if updated.TitleAr != newTitleAr {
		t.Errorf("titleAr = %q", updated.TitleAr)
	}
	if updated.Summary == nil || *updated.Summary != "original summary" {
		t.Error("untouched summary changed")
	}
	if len(updated.Tags) != 1 || updated.Tags[0].ID != tag.ID {
		t.Errorf("tags = %+v, want only the real tag", updated.Tags)
	}
	if len(updated.Images) != 1 || updated.Images[0].Filename != "a.jpg" {
		t.Errorf("images = %+v", updated.Images)
	}
}

func TestArticleUpdateNotFound(t *testing.T) {
	db := testDB(t)
	articles := NewArticleStore(db)

	title := "x"
	_, err := articles.Update(context.Background(), article.UpdateCommand{
		ID:    uuid.New(),
		Title: &title,
	})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("want not found, got %v", err)
	}
}

func TestArticleArchiveBatchAndRestore(t *testing.T) {
	db := testDB(t)
	articles := NewArticleStore(db)
	users := NewUserStore(db)
	ctx := context.Background()

	author := testAuthor(t, users, "archive@example.com")
	t.Cleanup(func() {
		cleanArticles(t, db, "to-archive")
		cleanUsers(t, db, "archive@example.com")
	})

	created, err := articles.Create(ctx, article.CreateCommand{
		Title:       "To Archive",
		TitleAr:     "للأرشفة",
		AuthorID:    author.ID,
		AuthorEmail: author.Email,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	result, err := articles.ArchiveBatch(ctx, []uuid.UUID{created.ID, uuid.New()})
	if err != nil {
		t.Fatalf("ArchiveBatch failed: %v", err)
	}
	if result.TotalProcessed != 2 || result.Archived != 1 {
		t.Errorf("result = %+v, want processed 2 archived 1", result)
	}

	// A second pass archives nothing.
	result, err = articles.ArchiveBatch(ctx, []uuid.UUID{created.ID})
	if err != nil {
		t.Fatalf("second ArchiveBatch failed: %v", err)
	}
	if result.Archived != 0 {
		t.Errorf("already-archived article transitioned again")
	}

	if err := articles.Restore(ctx, created.ID); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	restored, err := articles.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if restored.Status != models.ArticleStatusDraft {
		t.Errorf("status after restore = %q", restored.Status)
	}

	// Restoring a non-archived article is rejected.
	if err := articles.Restore(ctx, created.ID); !apperr.IsKind(err, apperr.KindBadRequest) {
		t.Errorf("want bad request, got %v", err)
	}
}

func TestArticleDeleteCascades(t *testing.T) {
	db := testDB(t)
	articles := NewArticleStore(db)
	users := NewUserStore(db)
	ctx := context.Background()

	author := testAuthor(t, users, "cascade@example.com")
	t.Cleanup(func() { cleanUsers(t, db, "cascade@example.com") })

	created, err := articles.Create(ctx, article.CreateCommand{
		Title:       "Cascade Me",
		TitleAr:     "احذفني",
		AuthorID:    author.ID,
		AuthorEmail: author.Email,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := articles.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := articles.GetByID(ctx, created.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("want not found after delete, got %v", err)
	}
	if err := articles.Delete(ctx, created.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("double delete: want not found, got %v", err)
	}
}

func TestArticleListFiltersByAuthor(t *testing.T) {
	db := testDB(t)
	articles := NewArticleStore(db)
	users := NewUserStore(db)
	ctx := context.Background()

	author := testAuthor(t, users, "list@example.com")
	t.Cleanup(func() {
		cleanArticles(t, db, "list-mine")
		cleanUsers(t, db, "list@example.com")
	})

	if _, err := articles.Create(ctx, article.CreateCommand{
		Title:       "List Mine",
		TitleAr:     "قائمتي",
		AuthorID:    author.ID,
		AuthorEmail: author.Email,
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	result, err := articles.List(ctx, article.ListFilter{
		AuthorID: &author.ID,
		Page:     1,
		Limit:    10,
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if result.Metadata.Total != 1 || len(result.Data) != 1 {
		t.Errorf("total = %d, rows = %d, want 1/1", result.Metadata.Total, len(result.Data))
	}
	if result.Data[0].AuthorID != author.ID {
		t.Error("foreign article leaked into author-scoped list")
	}
}

func TestArticleSearch(t *testing.T) {
	db := testDB(t)
	articles := NewArticleStore(db)
	users := NewUserStore(db)
	ctx := context.Background()

	author := testAuthor(t, users, "search@example.com")
	t.Cleanup(func() {
		cleanArticles(t, db, "quantum-breakthrough-zq")
		cleanUsers(t, db, "search@example.com")
	})

	if _, err := articles.Create(ctx, article.CreateCommand{
		Title:       "Quantum Breakthrough ZQ",
		TitleAr:     "اختراق كمي",
		AuthorID:    author.ID,
		AuthorEmail: author.Email,
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	result, err := articles.Search(ctx, article.SearchQuery{Query: "breakthrough zq", Limit: 10})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if result.TotalResults != 1 || len(result.Articles) != 1 {
		t.Errorf("results = %d/%d, want 1/1", result.TotalResults, len(result.Articles))
	}
}
