// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"newsdesk/internal/apperr"
	"newsdesk/internal/article"
	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
	"newsdesk/internal/parse"
)

// maxUploadSize is the maximum allowed multipart request size (50 MB).
const maxUploadSize = 50 << 20

// CreateArticle handles the multipart article create request.
func (a *Admin) CreateArticle(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, apperr.New(apperr.KindBadRequest, "request too large or malformed"))
		return
	}

	in := article.CreateInput{
		Title:     r.FormValue("title"),
		TitleAr:   r.FormValue("titleAr"),
		Content:   formPtr(r, "content"),
		ContentAr: formPtr(r, "contentAr"),
		Summary:   formPtr(r, "summary"),
		SummaryAr: formPtr(r, "summaryAr"),
		TagIDs:    parse.List(r.MultipartForm.Value["tagIds"]),
	}

	categoryID, err := formUUID(r, "categoryId")
	if err != nil {
		writeError(w, err)
		return
	}
	in.CategoryID = categoryID

	in.InlineTags, err = parse.TagSpecList(r.MultipartForm.Value["tags"])
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindBadRequest, "invalid tags field", err))
		return
	}

	if in.Featured, err = readUpload(r, "featuredImage"); err != nil {
		writeError(w, err)
		return
	}
	if in.Images, err = readUploads(r, "images"); err != nil {
		writeError(w, err)
		return
	}
	if in.Videos, err = readUploads(r, "videos"); err != nil {
		writeError(w, err)
		return
	}

	created, err := a.articles.Create(r.Context(), *user, in)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// UpdateArticle handles the multipart partial update request. Absent fields
// keep their current values.
func (a *Admin) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())

	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, apperr.New(apperr.KindBadRequest, "request too large or malformed"))
		return
	}

	in := article.UpdateInput{
		Title:         formPtr(r, "title"),
		TitleAr:       formPtr(r, "titleAr"),
		Content:       formPtr(r, "content"),
		ContentAr:     formPtr(r, "contentAr"),
		Summary:       formPtr(r, "summary"),
		SummaryAr:     formPtr(r, "summaryAr"),
		TagIDs:        parse.List(r.MultipartForm.Value["tags"]),
		RemovedImages: parse.List(r.MultipartForm.Value["removedImages"]),
		RemovedVideos: parse.List(r.MultipartForm.Value["removedVideos"]),
		RemovedTags:   parse.List(r.MultipartForm.Value["removedTags"]),
	}

	categoryID, err := formUUID(r, "categoryId")
	if err != nil {
		writeError(w, err)
		return
	}
	in.CategoryID = categoryID

	if in.Featured, err = readUpload(r, "featuredImage"); err != nil {
		writeError(w, err)
		return
	}
	if in.Images, err = readUploads(r, "images"); err != nil {
		writeError(w, err)
		return
	}
	if in.Videos, err = readUploads(r, "videos"); err != nil {
		writeError(w, err)
		return
	}

	updated, err := a.articles.Update(r.Context(), *user, id, in)
	if err != nil {
		writeError(w, err)
		return
	}

	a.invalidate(r, id)
	respondJSON(w, http.StatusOK, updated)
}

// GetArticle returns a single article. Cached responses are served only to
// moderators; authors bypass the cache so ownership is always re-checked.
func (a *Admin) GetArticle(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())

	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	cacheable := a.cache != nil && user.CanModerate()
	if cacheable {
		if payload, ok := a.cache.Get(r.Context(), id.String()); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(payload)
			return
		}
	}

	art, err := a.articles.Get(r.Context(), *user, id)
	if err != nil {
		writeError(w, err)
		return
	}

	payload, err := json.Marshal(art)
	if err != nil {
		writeError(w, err)
		return
	}
	if cacheable {
		a.cache.Set(r.Context(), id.String(), payload)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// ListArticles returns a filtered, paged article listing.
func (a *Admin) ListArticles(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())
	q := r.URL.Query()

	f := article.ListFilter{Sort: q.Get("sort")}
	f.Page, _ = strconv.Atoi(q.Get("page"))
	f.Limit, _ = strconv.Atoi(q.Get("limit"))

	if raw := q.Get("status"); raw != "" {
		status := models.ArticleStatus(raw)
		if !status.Valid() {
			writeError(w, apperr.Newf(apperr.KindBadRequest, "invalid status %q", raw))
			return
		}
		f.Status = &status
	}
	if raw := q.Get("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, apperr.Newf(apperr.KindBadRequest, "invalid category id %q", raw))
			return
		}
		f.CategoryID = &id
	}

	result, err := a.articles.List(r.Context(), *user, f)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// SearchArticles runs a free-text search over the article fields.
func (a *Admin) SearchArticles(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())
	q := r.URL.Query()

	sq := article.SearchQuery{Query: q.Get("q")}
	sq.Limit, _ = strconv.Atoi(q.Get("limit"))

	result, err := a.articles.Search(r.Context(), *user, sq)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// DeleteArticle permanently removes an article.
func (a *Admin) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := a.articles.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	a.invalidate(r, id)
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// PublishArticle transitions an article to published.
func (a *Admin) PublishArticle(w http.ResponseWriter, r *http.Request) {
	a.lifecycle(w, r, a.articles.Publish)
}

// UnpublishArticle reverts a published article to draft.
func (a *Admin) UnpublishArticle(w http.ResponseWriter, r *http.Request) {
	a.lifecycle(w, r, a.articles.Unpublish)
}

// UnarchiveArticle restores an archived article to draft.
func (a *Admin) UnarchiveArticle(w http.ResponseWriter, r *http.Request) {
	a.lifecycle(w, r, a.articles.Unarchive)
}

// lifecycle runs a single-article status transition and invalidates the
// cache entry on success.
func (a *Admin) lifecycle(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id uuid.UUID) (*models.Article, error)) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	art, err := op(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	a.invalidate(r, id)
	respondJSON(w, http.StatusOK, art)
}

// archiveRequest is the JSON body of the batch archive endpoint.
type archiveRequest struct {
	IDs []string `json:"ids"`
}

// ArchiveArticles archives a batch of articles.
func (a *Admin) ArchiveArticles(w http.ResponseWriter, r *http.Request) {
	var req archiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.KindBadRequest, "invalid request body"))
		return
	}

	result, err := a.articles.Archive(r.Context(), req.IDs)
	if err != nil {
		writeError(w, err)
		return
	}

	if a.cache != nil {
		a.cache.InvalidateAll(r.Context())
	}
	respondJSON(w, http.StatusOK, result)
}

// assignTagsRequest is the JSON body of the tag assignment endpoint. TagIDs
// reference existing tags; Tags are inline creation specs.
type assignTagsRequest struct {
	TagIDs []string        `json:"tagIds"`
	Tags   []parse.TagSpec `json:"tags"`
}

// AssignTags links existing or newly created tags to an article.
func (a *Admin) AssignTags(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())

	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req assignTagsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.KindBadRequest, "invalid request body"))
		return
	}

	art, err := a.articles.AssignTags(r.Context(), *user, id, req.TagIDs, req.Tags)
	if err != nil {
		writeError(w, err)
		return
	}

	a.invalidate(r, id)
	respondJSON(w, http.StatusOK, art)
}

// RemoveTag unlinks a tag from an article.
func (a *Admin) RemoveTag(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())

	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	tagID, err := pathUUID(r, "tagId")
	if err != nil {
		writeError(w, err)
		return
	}

	art, err := a.articles.RemoveTag(r.Context(), *user, id, tagID)
	if err != nil {
		writeError(w, err)
		return
	}

	a.invalidate(r, id)
	respondJSON(w, http.StatusOK, art)
}

// invalidate drops the cached entry for an article after a mutation.
func (a *Admin) invalidate(r *http.Request, id uuid.UUID) {
	if a.cache != nil {
		a.cache.Invalidate(r.Context(), id.String())
	}
}

// formPtr returns a pointer to a form value, or nil when the field was not
// sent at all. An explicitly empty field overwrites the column with the
// empty string; the service rejects empty titles.
func formPtr(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// formUUID parses an optional UUID form field.
func formUUID(r *http.Request, key string) (*uuid.UUID, error) {
	raw := r.FormValue(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperr.Newf(apperr.KindBadRequest, "invalid %s %q", key, raw)
	}
	return &id, nil
}

// pathUUID parses a UUID path parameter.
func pathUUID(r *http.Request, key string) (uuid.UUID, error) {
	raw := chi.URLParam(r, key)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Newf(apperr.KindBadRequest, "invalid %s %q", key, raw)
	}
	return id, nil
}

// readUpload reads a single optional file field into an upload payload.
func readUpload(r *http.Request, key string) (*article.Upload, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[key]) == 0 {
		return nil, nil
	}

	uploads, err := readUploads(r, key)
	if err != nil {
		return nil, err
	}
	if len(uploads) == 0 {
		return nil, nil
	}
	return &uploads[0], nil
}

// readUploads reads every file sent under a multipart field. The content
// type is sniffed from the file bytes; the client-declared type is only a
// fallback when sniffing is inconclusive.
func readUploads(r *http.Request, key string) ([]article.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	var uploads []article.Upload
	for _, header := range r.MultipartForm.File[key] {
		file, err := header.Open()
		if err != nil {
			return nil, apperr.Wrap(apperr.KindBadRequest, "failed to open uploaded file", err)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, apperr.Wrap(apperr.KindBadRequest, "failed to read uploaded file", err)
		}

		mimetype := http.DetectContentType(data)
		if mimetype == "application/octet-stream" {
			if declared := header.Header.Get("Content-Type"); declared != "" {
				mimetype = declared
			}
		}

		uploads = append(uploads, article.Upload{
			Data:     data,
			Filename: header.Filename,
			Mimetype: mimetype,
		})
	}
	return uploads, nil
}
