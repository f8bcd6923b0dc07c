// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileRole distinguishes how a file is attached to its article.
type FileRole string

const (
	FileRoleImage    FileRole = "image"
	FileRoleVideo    FileRole = "video"
	FileRoleFeatured FileRole = "featured"
)

// File is a media object uploaded to S3-compatible storage. Metadata lives in
// PostgreSQL; the bytes live in the bucket under Path. A file belongs to
// exactly one article.
type File struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	Filename  string    `json:"filename"`
	Mimetype  string    `json:"mimetype"`
	Size      int64     `json:"size"`
	Path      string    `json:"path"`
	ThumbPath *string   `json:"thumbPath,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsImage returns true if the file is an image type.
func (f *File) IsImage() bool {
	return strings.HasPrefix(f.Mimetype, "image/")
}

// HumanSize returns a human-readable file size string.
func (f *File) HumanSize() string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	switch {
	case f.Size >= mb:
		return fmt.Sprintf("%.1f MB", float64(f.Size)/float64(mb))
	case f.Size >= kb:
		return fmt.Sprintf("%.0f KB", float64(f.Size)/float64(kb))
	default:
		return fmt.Sprintf("%d B", f.Size)
	}
}
