// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package article contains the orchestration core for the admin article
// workflows: tag resolution, media upload coordination, mutation merging,
// and the create/update lifecycle with compensating deletion. All I/O goes
// through the collaborator interfaces declared here; production
// implementations live in internal/store and internal/storage.
package article

import (
	"context"
	"time"

	"github.com/google/uuid"

	"newsdesk/internal/models"
)

// Store is the persistence contract for articles. Implementations must
// return apperr.KindNotFound errors for unresolvable IDs.
type Store interface {
	Create(ctx context.Context, cmd CreateCommand) (*models.Article, error)
	Update(ctx context.Context, cmd UpdateCommand) (*models.Article, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Article, error)
	List(ctx context.Context, f ListFilter) (*ListResult, error)
	Search(ctx context.Context, q SearchQuery) (*SearchResult, error)
	ArchiveBatch(ctx context.Context, ids []uuid.UUID) (*ArchiveResult, error)
	Restore(ctx context.Context, id uuid.UUID) error
}

// TagRepository is the persistence contract for tags. FindByID returns
// (nil, nil) when the tag does not exist.
type TagRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Tag, error)
	Create(ctx context.Context, t *models.Tag) error
}

// FileUploader stores raw file bytes in the storage backend and returns the
// resulting file metadata record.
type FileUploader interface {
	UploadFile(ctx context.Context, data []byte, filename, mimetype string) (*models.File, error)
}

// FileDeleter removes a file's objects from the storage backend.
// Callers in the update and delete flows treat failures as best-effort.
type FileDeleter interface {
	DeleteFile(ctx context.Context, f models.File) error
}

// CreateCommand carries the fields persisted for a new article. The store
// derives slugs from the title pair.
type CreateCommand struct {
	Title       string
	TitleAr     string
	Content     *string
	ContentAr   *string
	Summary     *string
	SummaryAr   *string
	CategoryID  *uuid.UUID
	AuthorID    uuid.UUID
	AuthorEmail string
}

// UpdateCommand carries a partial update. Nil scalar pointers leave the
// corresponding column untouched. The Set* flags distinguish "replace the
// association set" from "leave it alone" for tags and media.
type UpdateCommand struct {
	ID          uuid.UUID
	Title       *string
	TitleAr     *string
	Content     *string
	ContentAr   *string
	Summary     *string
	SummaryAr   *string
	CategoryID  *uuid.UUID
	Status      *models.ArticleStatus
	PublishedAt *time.Time

	Tags    []models.Tag
	SetTags bool

	Images    []models.File
	SetImages bool

	Videos    []models.File
	SetVideos bool

	Featured    *models.File
	SetFeatured bool
}

// ListFilter selects and pages the admin article listing.
type ListFilter struct {
	Status     *models.ArticleStatus
	CategoryID *uuid.UUID
	AuthorID   *uuid.UUID // set for AUTHOR callers, who only see their own
	Page       int
	Limit      int
	Sort       string
}

// Pagination describes the page window of a list result.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ListResult is a page of articles plus pagination metadata.
type ListResult struct {
	Data     []models.Article `json:"data"`
	Metadata Pagination       `json:"metadata"`
}

// SearchQuery is a free-text search over titles, summaries, and content.
type SearchQuery struct {
	Query    string
	AuthorID *uuid.UUID
	Limit    int
}

// SearchResult holds search matches and the total match count.
type SearchResult struct {
	Articles     []models.Article `json:"articles"`
	TotalResults int              `json:"totalResults"`
}

// ArchiveResult reports the outcome of a batch archive. Partial success is
// legitimate: Archived counts only the articles actually transitioned.
type ArchiveResult struct {
	TotalProcessed int `json:"totalProcessed"`
	Archived       int `json:"archived"`
}
