package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"newsdesk/internal/models"
)

// Uploader adapts the S3 client to the collaborator contract consumed by the
// article orchestration core: it generates storage keys, uploads the bytes,
// and returns the file metadata record.
type Uploader struct {
	client *Client
}

// NewUploader creates an Uploader over the given storage client.
func NewUploader(client *Client) *Uploader {
	return &Uploader{client: client}
}

// UploadFile stores the payload under a date-partitioned key and returns the
// resulting file record. The record is not persisted here; the article store
// owns file rows.
func (u *Uploader) UploadFile(ctx context.Context, data []byte, filename, mimetype string) (*models.File, error) {
	if u.client == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}

	now := time.Now()
	fileID := uuid.New()

	ext := filepath.Ext(filename)
	key := fmt.Sprintf("media/%d/%02d/%s%s", now.Year(), now.Month(), fileID, ext)

	if err := u.client.Upload(ctx, key, mimetype, bytes.NewReader(data), int64(len(data))); err != nil {
		return nil, err
	}

	return &models.File{
		ID:        fileID,
		URL:       u.client.FileURL(key),
		Filename:  filename,
		Mimetype:  mimetype,
		Size:      int64(len(data)),
		Path:      key,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// DeleteFile removes a file's objects from storage, including its thumbnail
// when one exists.
func (u *Uploader) DeleteFile(ctx context.Context, f models.File) error {
	if u.client == nil {
		return fmt.Errorf("object storage is not configured")
	}
	if err := u.client.Delete(ctx, f.Path); err != nil {
		return err
	}
	if f.ThumbPath != nil {
		if err := u.client.Delete(ctx, *f.ThumbPath); err != nil {
			return err
		}
	}
	return nil
}
