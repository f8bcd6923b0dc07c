// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"newsdesk/internal/apperr"
	"newsdesk/internal/article"
	"newsdesk/internal/models"
	"newsdesk/internal/slug"
)

// articleColumns is the scan order shared by every article query.
const articleColumns = `id, title, title_ar, content, content_ar, summary, summary_ar,
       slug, slug_ar, status, category_id, author_id, author_email,
       views, published_at, created_at, updated_at`

// ArticleStore handles all article-related database operations, including
// the tag links and file rows attached to each article.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore with the given database connection.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// Create inserts a skeleton article. Slugs are derived here from the title
// pair; the Arabic slug keeps its original script.
func (s *ArticleStore) Create(ctx context.Context, cmd article.CreateCommand) (*models.Article, error) {
	slugEn := slug.Generate(cmd.Title)
	if slugEn == "" {
		slugEn = uuid.NewString()
	}
	slugAr := slug.GenerateUnicode(cmd.TitleAr)
	if slugAr == "" {
		slugAr = slugEn
	}

	a := &models.Article{}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO articles (title, title_ar, content, content_ar, summary, summary_ar,
		                      slug, slug_ar, category_id, author_id, author_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+articleColumns+`
	`, cmd.Title, cmd.TitleAr, cmd.Content, cmd.ContentAr, cmd.Summary, cmd.SummaryAr,
		slugEn, slugAr, cmd.CategoryID, cmd.AuthorID, cmd.AuthorEmail,
	).Scan(scanTargets(a)...)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return a, nil
}

// GetByID retrieves an article with its tags and files.
func (s *ArticleStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	a := &models.Article{}
	err := s.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE id = $1`, id,
	).Scan(scanTargets(a)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.Newf(apperr.KindNotFound, "article %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find article by id: %w", err)
	}

	if err := s.loadAssociations(ctx, []*models.Article{a}); err != nil {
		return nil, err
	}
	return a, nil
}

// Update applies a partial update inside a transaction. Nil scalar pointers
// leave their columns untouched via COALESCE; the Set* flags replace the
// corresponding association set wholesale.
func (s *ArticleStore) Update(ctx context.Context, cmd article.UpdateCommand) (*models.Article, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	var slugEn, slugAr *string
	if cmd.Title != nil {
		v := slug.Generate(*cmd.Title)
		slugEn = &v
	}
	if cmd.TitleAr != nil {
		v := slug.GenerateUnicode(*cmd.TitleAr)
		slugAr = &v
	}

	var updatedID uuid.UUID
	err = tx.QueryRowContext(ctx, `
		UPDATE articles SET
			title = COALESCE($1, title),
			title_ar = COALESCE($2, title_ar),
			content = COALESCE($3, content),
			content_ar = COALESCE($4, content_ar),
			summary = COALESCE($5, summary),
			summary_ar = COALESCE($6, summary_ar),
			slug = COALESCE($7, slug),
			slug_ar = COALESCE($8, slug_ar),
			category_id = COALESCE($9, category_id),
			status = COALESCE($10, status),
			published_at = COALESCE($11, published_at),
			updated_at = NOW()
		WHERE id = $12
		RETURNING id
	`, cmd.Title, cmd.TitleAr, cmd.Content, cmd.ContentAr, cmd.Summary, cmd.SummaryAr,
		slugEn, slugAr, cmd.CategoryID, cmd.Status, cmd.PublishedAt, cmd.ID,
	).Scan(&updatedID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.Newf(apperr.KindNotFound, "article %s not found", cmd.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}

	if cmd.SetTags {
		if err := replaceTags(ctx, tx, cmd.ID, cmd.Tags); err != nil {
			return nil, err
		}
	}
	if cmd.SetImages {
		if err := replaceFiles(ctx, tx, cmd.ID, models.FileRoleImage, cmd.Images); err != nil {
			return nil, err
		}
	}
	if cmd.SetVideos {
		if err := replaceFiles(ctx, tx, cmd.ID, models.FileRoleVideo, cmd.Videos); err != nil {
			return nil, err
		}
	}
	if cmd.SetFeatured {
		var featured []models.File
		if cmd.Featured != nil {
			featured = []models.File{*cmd.Featured}
		}
		if err := replaceFiles(ctx, tx, cmd.ID, models.FileRoleFeatured, featured); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}

	return s.GetByID(ctx, cmd.ID)
}

// replaceTags swaps the article's tag link set. Tag IDs that do not exist in
// the tags table are silently dropped by the INSERT ... SELECT.
func replaceTags(ctx context.Context, tx *sql.Tx, articleID uuid.UUID, tags []models.Tag) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM article_tags WHERE article_id = $1`, articleID); err != nil {
		return fmt.Errorf("clear article tags: %w", err)
	}
	if len(tags) == 0 {
		return nil
	}

	ids := make([]string, len(tags))
	for i, t := range tags {
		ids[i] = t.ID.String()
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO article_tags (article_id, tag_id)
		SELECT $1, id FROM tags WHERE id = ANY($2::uuid[])
	`, articleID, ids); err != nil {
		return fmt.Errorf("link article tags: %w", err)
	}
	return nil
}

// replaceFiles swaps the article's file rows for one role, preserving the
// given order through the position column.
func replaceFiles(ctx context.Context, tx *sql.Tx, articleID uuid.UUID, role models.FileRole, files []models.File) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM files WHERE article_id = $1 AND role = $2`, articleID, role); err != nil {
		return fmt.Errorf("clear %s files: %w", role, err)
	}

	for i, f := range files {
		createdAt := f.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO files (id, article_id, role, url, filename, mimetype,
			                   size_bytes, path, thumb_path, position, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, f.ID, articleID, role, f.URL, f.Filename, f.Mimetype,
			f.Size, f.Path, f.ThumbPath, i, createdAt,
		); err != nil {
			return fmt.Errorf("insert %s file: %w", role, err)
		}
	}
	return nil
}

// Delete removes an article. Tag links and file rows go with it via cascade.
func (s *ArticleStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.Newf(apperr.KindNotFound, "article %s not found", id)
	}
	return nil
}

// List returns a filtered, paged slice of articles with pagination metadata.
func (s *ArticleStore) List(ctx context.Context, f article.ListFilter) (*article.ListResult, error) {
	where := "TRUE"
	args := []any{}
	n := 0
	next := func(v any) string {
		n++
		args = append(args, v)
		return fmt.Sprintf("$%d", n)
	}

	if f.Status != nil {
		where += " AND status = " + next(*f.Status)
	}
	if f.CategoryID != nil {
		where += " AND category_id = " + next(*f.CategoryID)
	}
	if f.AuthorID != nil {
		where += " AND author_id = " + next(*f.AuthorID)
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM articles WHERE `+where, args...,
	).Scan(&total); err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}

	order := sortClause(f.Sort)
	offset := (f.Page - 1) * f.Limit
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE %s ORDER BY %s LIMIT %s OFFSET %s`,
		articleColumns, where, order, next(f.Limit), next(offset))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	articles, err := scanArticles(rows)
	if err != nil {
		return nil, err
	}
	if err := s.loadAssociations(ctx, articles); err != nil {
		return nil, err
	}

	totalPages := (total + f.Limit - 1) / f.Limit
	return &article.ListResult{
		Data: deref(articles),
		Metadata: article.Pagination{
			Page:       f.Page,
			Limit:      f.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// sortClause maps a sort key to a safe ORDER BY expression. Unknown keys
// fall back to newest-first.
func sortClause(sort string) string {
	switch sort {
	case "oldest":
		return "created_at ASC"
	case "views":
		return "views DESC"
	case "published":
		return "published_at DESC NULLS LAST"
	default:
		return "created_at DESC"
	}
}

// Search runs a case-insensitive substring search over titles, summaries,
// and content in both languages.
func (s *ArticleStore) Search(ctx context.Context, q article.SearchQuery) (*article.SearchResult, error) {
	pattern := "%" + q.Query + "%"
	where := `(title ILIKE $1 OR title_ar ILIKE $1 OR summary ILIKE $1
	           OR summary_ar ILIKE $1 OR content ILIKE $1 OR content_ar ILIKE $1)`
	args := []any{pattern}
	if q.AuthorID != nil {
		where += " AND author_id = $2"
		args = append(args, *q.AuthorID)
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM articles WHERE `+where, args...,
	).Scan(&total); err != nil {
		return nil, fmt.Errorf("count search results: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM articles WHERE %s ORDER BY created_at DESC LIMIT %d`,
		articleColumns, where, q.Limit)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	defer rows.Close()

	articles, err := scanArticles(rows)
	if err != nil {
		return nil, err
	}
	if err := s.loadAssociations(ctx, articles); err != nil {
		return nil, err
	}

	return &article.SearchResult{
		Articles:     deref(articles),
		TotalResults: total,
	}, nil
}

// ArchiveBatch archives every listed article that is not already archived.
// Unknown IDs and already-archived articles count as processed but not
// archived.
func (s *ArticleStore) ArchiveBatch(ctx context.Context, ids []uuid.UUID) (*article.ArchiveResult, error) {
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE articles SET status = 'archived', updated_at = NOW()
		WHERE id = ANY($1::uuid[]) AND status <> 'archived'
	`, raw)
	if err != nil {
		return nil, fmt.Errorf("archive articles: %w", err)
	}

	archived, _ := res.RowsAffected()
	return &article.ArchiveResult{
		TotalProcessed: len(ids),
		Archived:       int(archived),
	}, nil
}

// Restore moves an archived article back to draft.
func (s *ArticleStore) Restore(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE articles SET status = 'draft', updated_at = NOW()
		WHERE id = $1 AND status = 'archived'
	`, id)
	if err != nil {
		return fmt.Errorf("restore article: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		if err := s.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM articles WHERE id = $1)`, id,
		).Scan(&exists); err != nil {
			return fmt.Errorf("check article: %w", err)
		}
		if !exists {
			return apperr.Newf(apperr.KindNotFound, "article %s not found", id)
		}
		return apperr.New(apperr.KindBadRequest, "article is not archived")
	}
	return nil
}

// loadAssociations hydrates tags and files for a batch of articles with two
// queries instead of one pair per article.
func (s *ArticleStore) loadAssociations(ctx context.Context, articles []*models.Article) error {
	if len(articles) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*models.Article, len(articles))
	ids := make([]string, len(articles))
	for i, a := range articles {
		byID[a.ID] = a
		ids[i] = a.ID.String()
		a.Tags = []models.Tag{}
		a.Images = []models.File{}
		a.Videos = []models.File{}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT at.article_id, t.id, t.name, t.name_ar, t.created_at, t.updated_at
		FROM article_tags at
		JOIN tags t ON t.id = at.tag_id
		WHERE at.article_id = ANY($1::uuid[])
		ORDER BY t.created_at
	`, ids)
	if err != nil {
		return fmt.Errorf("load article tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var articleID uuid.UUID
		var t models.Tag
		if err := rows.Scan(&articleID, &t.ID, &t.Name, &t.NameAr, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return fmt.Errorf("scan article tag: %w", err)
		}
		if a := byID[articleID]; a != nil {
			a.Tags = append(a.Tags, t)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load article tags: %w", err)
	}

	fileRows, err := s.db.QueryContext(ctx, `
		SELECT article_id, role, id, url, filename, mimetype, size_bytes,
		       path, thumb_path, created_at, updated_at
		FROM files
		WHERE article_id = ANY($1::uuid[])
		ORDER BY position
	`, ids)
	if err != nil {
		return fmt.Errorf("load article files: %w", err)
	}
	defer fileRows.Close()

	for fileRows.Next() {
		var articleID uuid.UUID
		var role models.FileRole
		var f models.File
		if err := fileRows.Scan(&articleID, &role, &f.ID, &f.URL, &f.Filename,
			&f.Mimetype, &f.Size, &f.Path, &f.ThumbPath, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return fmt.Errorf("scan article file: %w", err)
		}
		a := byID[articleID]
		if a == nil {
			continue
		}
		switch role {
		case models.FileRoleImage:
			a.Images = append(a.Images, f)
		case models.FileRoleVideo:
			a.Videos = append(a.Videos, f)
		case models.FileRoleFeatured:
			featured := f
			a.FeaturedMedia = &featured
		}
	}
	return fileRows.Err()
}

// scanTargets returns the scan destinations matching articleColumns.
func scanTargets(a *models.Article) []any {
	return []any{
		&a.ID, &a.Title, &a.TitleAr, &a.Content, &a.ContentAr, &a.Summary, &a.SummaryAr,
		&a.Slug, &a.SlugAr, &a.Status, &a.CategoryID, &a.AuthorID, &a.AuthorEmail,
		&a.Views, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
	}
}

func scanArticles(rows *sql.Rows) ([]*models.Article, error) {
	var articles []*models.Article
	for rows.Next() {
		a := &models.Article{}
		if err := rows.Scan(scanTargets(a)...); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func deref(articles []*models.Article) []models.Article {
	out := make([]models.Article, len(articles))
	for i, a := range articles {
		out[i] = *a
	}
	return out
}
