// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package article

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"newsdesk/internal/apperr"
	"newsdesk/internal/imaging"
	"newsdesk/internal/models"
)

// Upload is a raw file payload from a multipart request.
type Upload struct {
	Data     []byte
	Filename string
	Mimetype string
}

// empty reports whether the upload carries no bytes. Empty payloads are
// silently skipped, not treated as errors.
func (u Upload) empty() bool {
	return len(u.Data) == 0
}

// uploadedMedia collects the results of one coordinated media upload batch.
type uploadedMedia struct {
	featured *models.File
	images   []models.File
	videos   []models.File
}

// uploadMedia uploads the featured file, then the image group, then the
// video group. Within a group uploads run concurrently; the first failure
// cancels the group and fails the whole batch. Results keep the caller's
// input order regardless of upload completion order.
//
// Blobs already uploaded when a later sibling fails are NOT removed from
// storage here; compensation on the create path removes only the owning
// article record.
func (s *Service) uploadMedia(ctx context.Context, featured *Upload, images, videos []Upload) (*uploadedMedia, error) {
	out := &uploadedMedia{}

	if featured != nil && !featured.empty() {
		f, err := s.uploader.UploadFile(ctx, featured.Data, featured.Filename, featured.Mimetype)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindBadRequest, "featured media upload failed", err)
		}
		s.attachThumbnail(ctx, f, featured.Data)
		out.featured = f
	}

	var err error
	if out.images, err = s.uploadGroup(ctx, images); err != nil {
		return nil, apperr.Wrap(apperr.KindBadRequest, "image upload failed", err)
	}
	if out.videos, err = s.uploadGroup(ctx, videos); err != nil {
		return nil, apperr.Wrap(apperr.KindBadRequest, "video upload failed", err)
	}

	return out, nil
}

// uploadGroup fans out one media group concurrently and joins the results
// in input order. Empty payloads are skipped before the fan-out.
func (s *Service) uploadGroup(ctx context.Context, uploads []Upload) ([]models.File, error) {
	var pending []Upload
	for _, u := range uploads {
		if !u.empty() {
			pending = append(pending, u)
		}
	}
	if len(pending) == 0 {
		return nil, nil
	}

	results := make([]*models.File, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	for i, u := range pending {
		g.Go(func() error {
			f, err := s.uploader.UploadFile(gctx, u.Data, u.Filename, u.Mimetype)
			if err != nil {
				return err
			}
			results[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	files := make([]models.File, 0, len(results))
	for _, f := range results {
		files = append(files, *f)
	}
	return files, nil
}

// attachThumbnail generates and uploads a thumbnail for a featured image.
// Best-effort: failures are logged and the original upload stands alone.
func (s *Service) attachThumbnail(ctx context.Context, f *models.File, data []byte) {
	if !strings.HasPrefix(f.Mimetype, "image/") {
		return
	}

	thumbData, err := imaging.Thumbnail(data, imaging.ThumbMaxWidth)
	if err != nil {
		slog.Warn("thumbnail generation failed", "file", f.Filename, "error", err)
		return
	}
	if thumbData == nil {
		return // already small enough
	}

	thumb, err := s.uploader.UploadFile(ctx, thumbData, thumbName(f.Filename), "image/jpeg")
	if err != nil {
		slog.Warn("thumbnail upload failed", "file", f.Filename, "error", err)
		return
	}
	f.ThumbPath = &thumb.Path
}

// thumbName derives a thumbnail filename from the original name.
func thumbName(filename string) string {
	if idx := strings.LastIndexByte(filename, '.'); idx > 0 {
		filename = filename[:idx]
	}
	return filename + "_thumb.jpg"
}
