// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package article

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"newsdesk/internal/apperr"
	"newsdesk/internal/models"
	"newsdesk/internal/parse"
)

// Service orchestrates the article workflows over the injected
// collaborators. It holds no state of its own; every request builds its own
// merge products.
type Service struct {
	store    Store
	tags     TagRepository
	uploader FileUploader
	deleter  FileDeleter
}

// NewService creates the orchestration service with its collaborators.
func NewService(store Store, tags TagRepository, uploader FileUploader, deleter FileDeleter) *Service {
	return &Service{
		store:    store,
		tags:     tags,
		uploader: uploader,
		deleter:  deleter,
	}
}

// CreateInput carries a validated create request.
type CreateInput struct {
	Title      string
	TitleAr    string
	Content    *string
	ContentAr  *string
	Summary    *string
	SummaryAr  *string
	CategoryID *uuid.UUID

	TagIDs     []string
	InlineTags []parse.TagSpec

	Featured *Upload
	Images   []Upload
	Videos   []Upload
}

// UpdateInput carries a partial update request. Nil pointers mean "leave
// the field as it is".
type UpdateInput struct {
	Title      *string
	TitleAr    *string
	Content    *string
	ContentAr  *string
	Summary    *string
	SummaryAr  *string
	CategoryID *uuid.UUID

	TagIDs        []string
	RemovedImages []string
	RemovedVideos []string
	RemovedTags   []string

	Featured *Upload
	Images   []Upload
	Videos   []Upload
}

// Create runs the create workflow:
//
//  1. persist a skeleton article to obtain a durable ID
//  2. resolve tags
//  3. upload featured/image/video files
//  4. persist the enriched article
//  5. re-fetch and return the final state
//
// If step 2 or 3 fails, the skeleton is deleted before the error surfaces.
// The final re-fetch reflects server-side derivation such as slugs.
func (s *Service) Create(ctx context.Context, user models.User, in CreateInput) (*models.Article, error) {
	if in.Title == "" || in.TitleAr == "" {
		return nil, apperr.New(apperr.KindBadRequest, "title and titleAr are required")
	}

	skeleton, err := s.store.Create(ctx, CreateCommand{
		Title:       in.Title,
		TitleAr:     in.TitleAr,
		Content:     in.Content,
		ContentAr:   in.ContentAr,
		Summary:     in.Summary,
		SummaryAr:   in.SummaryAr,
		CategoryID:  in.CategoryID,
		AuthorID:    user.ID,
		AuthorEmail: user.Email,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindBadRequest, "failed to create article", err)
	}

	tags, err := s.resolveTags(ctx, in.TagIDs, in.InlineTags)
	if err != nil {
		s.compensateCreate(ctx, skeleton.ID, err)
		return nil, apperr.Wrap(apperr.KindBadRequest, "failed to create article", err)
	}

	media, err := s.uploadMedia(ctx, in.Featured, in.Images, in.Videos)
	if err != nil {
		s.compensateCreate(ctx, skeleton.ID, err)
		return nil, apperr.Wrap(apperr.KindBadRequest, "failed to create article", err)
	}

	_, err = s.store.Update(ctx, UpdateCommand{
		ID:          skeleton.ID,
		Tags:        tags,
		SetTags:     true,
		Images:      media.images,
		SetImages:   true,
		Videos:      media.videos,
		SetVideos:   true,
		Featured:    media.featured,
		SetFeatured: true,
	})
	if err != nil {
		s.compensateCreate(ctx, skeleton.ID, err)
		return nil, apperr.Wrap(apperr.KindBadRequest, "failed to create article", err)
	}

	return s.store.GetByID(ctx, skeleton.ID)
}

// compensateCreate removes the skeleton article after a post-skeleton
// failure. A failed compensation leaves an orphaned skeleton behind; it is
// logged distinctly so operators can reconcile.
func (s *Service) compensateCreate(ctx context.Context, id uuid.UUID, cause error) {
	if err := s.store.Delete(ctx, id); err != nil {
		slog.Error("compensating skeleton delete failed",
			"article_id", id,
			"error", err,
			"cause", cause,
		)
	}
}

// Update runs the update workflow: fetch → authorize → best-effort delete
// removed files → upload new files → merge → persist → re-fetch. Fields
// absent from the input retain their prior values. Titles may be changed
// but never cleared.
func (s *Service) Update(ctx context.Context, user models.User, id uuid.UUID, in UpdateInput) (*models.Article, error) {
	if (in.Title != nil && *in.Title == "") || (in.TitleAr != nil && *in.TitleAr == "") {
		return nil, apperr.New(apperr.KindBadRequest, "title and titleAr cannot be empty")
	}

	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorizeWrite(user, existing); err != nil {
		return nil, err
	}

	// Old files leaving the article are deleted from storage best-effort:
	// a failed blob delete never blocks the update.
	s.deleteRemovedFiles(ctx, existing, in)

	media, err := s.uploadMedia(ctx, in.Featured, in.Images, in.Videos)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindBadRequest, "failed to update article", err)
	}

	cmd := UpdateCommand{
		ID:         id,
		Title:      in.Title,
		TitleAr:    in.TitleAr,
		Content:    in.Content,
		ContentAr:  in.ContentAr,
		Summary:    in.Summary,
		SummaryAr:  in.SummaryAr,
		CategoryID: in.CategoryID,

		Images:    mergeFiles(existing.Images, in.RemovedImages, media.images),
		SetImages: true,
		Videos:    mergeFiles(existing.Videos, in.RemovedVideos, media.videos),
		SetVideos: true,
		Tags:      mergeTags(existing.Tags, in.RemovedTags, in.TagIDs),
		SetTags:   true,
	}
	if media.featured != nil {
		cmd.Featured = media.featured
		cmd.SetFeatured = true
	}

	if _, err := s.store.Update(ctx, cmd); err != nil {
		return nil, apperr.Wrap(apperr.KindBadRequest, "failed to update article", err)
	}

	return s.store.GetByID(ctx, id)
}

// deleteRemovedFiles issues best-effort storage deletes for files the update
// removes: images and videos named in the removal lists, plus the current
// featured media when a replacement is being uploaded.
func (s *Service) deleteRemovedFiles(ctx context.Context, existing *models.Article, in UpdateInput) {
	removedImages := idSet(in.RemovedImages)
	removedVideos := idSet(in.RemovedVideos)

	for _, f := range existing.Images {
		if removedImages[f.ID] {
			s.bestEffortDelete(ctx, f)
		}
	}
	for _, f := range existing.Videos {
		if removedVideos[f.ID] {
			s.bestEffortDelete(ctx, f)
		}
	}
	if in.Featured != nil && !in.Featured.empty() && existing.FeaturedMedia != nil {
		s.bestEffortDelete(ctx, *existing.FeaturedMedia)
	}
}

// bestEffortDelete removes a blob from storage, logging failures instead of
// propagating them.
func (s *Service) bestEffortDelete(ctx context.Context, f models.File) {
	if err := s.deleter.DeleteFile(ctx, f); err != nil {
		slog.Warn("file delete failed", "file_id", f.ID, "path", f.Path, "error", err)
	}
}

// Get fetches a single article. AUTHOR callers may only read their own.
func (s *Service) Get(ctx context.Context, user models.User, id uuid.UUID) (*models.Article, error) {
	art, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == models.RoleAuthor && art.AuthorID != user.ID {
		return nil, apperr.New(apperr.KindForbidden, "article belongs to another author")
	}
	return art, nil
}

// List returns a page of articles. AUTHOR callers are scoped to their own
// articles regardless of the requested filter.
func (s *Service) List(ctx context.Context, user models.User, f ListFilter) (*ListResult, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}
	if user.Role == models.RoleAuthor {
		f.AuthorID = &user.ID
	}
	return s.store.List(ctx, f)
}

// Search runs a free-text search. AUTHOR callers are scoped to their own
// articles.
func (s *Service) Search(ctx context.Context, user models.User, q SearchQuery) (*SearchResult, error) {
	if q.Query == "" {
		return nil, apperr.New(apperr.KindBadRequest, "search query is required")
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
	if user.Role == models.RoleAuthor {
		q.AuthorID = &user.ID
	}
	return s.store.Search(ctx, q)
}

// Publish transitions an article to published. publishedAt is set exactly
// once: republishing after an unpublish keeps the original timestamp.
func (s *Service) Publish(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	art, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if art.IsArchived() {
		return nil, apperr.New(apperr.KindBadRequest, "archived articles cannot be published")
	}

	status := models.ArticleStatusPublished
	cmd := UpdateCommand{ID: id, Status: &status}
	if art.PublishedAt == nil {
		now := time.Now()
		cmd.PublishedAt = &now
	}
	return s.store.Update(ctx, cmd)
}

// Unpublish reverts a published article to draft. publishedAt is preserved.
func (s *Service) Unpublish(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	if _, err := s.store.GetByID(ctx, id); err != nil {
		return nil, err
	}

	status := models.ArticleStatusDraft
	return s.store.Update(ctx, UpdateCommand{ID: id, Status: &status})
}

// Archive transitions a batch of articles to archived. Articles already
// archived are skipped; the result reports how many actually transitioned.
// The batch fails only when nothing could be archived.
func (s *Service) Archive(ctx context.Context, rawIDs []string) (*ArchiveResult, error) {
	if len(rawIDs) == 0 {
		return nil, apperr.New(apperr.KindBadRequest, "no article ids provided")
	}

	ids := make([]uuid.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperr.Newf(apperr.KindBadRequest, "invalid article id %q", raw)
		}
		ids = append(ids, id)
	}

	result, err := s.store.ArchiveBatch(ctx, ids)
	if err != nil {
		return nil, err
	}
	if result.Archived == 0 {
		return nil, apperr.New(apperr.KindBadRequest, "no articles were archived")
	}
	return result, nil
}

// Unarchive restores an archived article to draft.
func (s *Service) Unarchive(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	if err := s.store.Restore(ctx, id); err != nil {
		return nil, err
	}
	return s.store.GetByID(ctx, id)
}

// Delete permanently removes an article. Storage blobs are cleaned up only
// for draft articles; published and archived articles keep their media
// objects in the bucket even after the rows are gone.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	art, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if art.Status == models.ArticleStatusDraft {
		if art.FeaturedMedia != nil {
			s.bestEffortDelete(ctx, *art.FeaturedMedia)
		}
		for _, f := range art.Images {
			s.bestEffortDelete(ctx, f)
		}
		for _, f := range art.Videos {
			s.bestEffortDelete(ctx, f)
		}
	}

	return s.store.Delete(ctx, id)
}

// AssignTags resolves the given tag references (strict, like the create
// flow) and links them to the article, keeping the tags already present.
func (s *Service) AssignTags(ctx context.Context, user models.User, id uuid.UUID, tagIDs []string, specs []parse.TagSpec) (*models.Article, error) {
	art, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeWrite(user, art); err != nil {
		return nil, err
	}

	resolved, err := s.resolveTags(ctx, tagIDs, specs)
	if err != nil {
		return nil, err
	}

	merged := art.Tags
	for _, t := range resolved {
		if !art.HasTag(t.ID) {
			merged = append(merged, t)
		}
	}

	return s.store.Update(ctx, UpdateCommand{ID: id, Tags: merged, SetTags: true})
}

// RemoveTag unlinks a tag from an article. The tag entity itself is never
// deleted, only the association.
func (s *Service) RemoveTag(ctx context.Context, user models.User, articleID, tagID uuid.UUID) (*models.Article, error) {
	art, err := s.store.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if err := authorizeWrite(user, art); err != nil {
		return nil, err
	}

	if !art.HasTag(tagID) {
		return nil, apperr.Newf(apperr.KindNotFound, "tag %s is not linked to this article", tagID)
	}

	kept := make([]models.Tag, 0, len(art.Tags))
	for _, t := range art.Tags {
		if t.ID != tagID {
			kept = append(kept, t)
		}
	}

	return s.store.Update(ctx, UpdateCommand{ID: articleID, Tags: kept, SetTags: true})
}

// authorizeWrite checks ownership for AUTHOR callers. Editors and admins
// may modify any article.
func authorizeWrite(user models.User, art *models.Article) error {
	if user.Role == models.RoleAuthor && art.AuthorID != user.ID {
		return apperr.New(apperr.KindForbidden, "article belongs to another author")
	}
	return nil
}
