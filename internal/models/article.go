// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ArticleStatus represents the publishing state of an article.
type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusPublished ArticleStatus = "published"
	ArticleStatusArchived  ArticleStatus = "archived"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s ArticleStatus) Valid() bool {
	switch s {
	case ArticleStatusDraft, ArticleStatusPublished, ArticleStatusArchived:
		return true
	}
	return false
}

// Article is a bilingual news article. The English and Arabic title pair is
// mandatory; all other content pairs are independently optional. AuthorID and
// AuthorEmail are set at creation and never change afterwards.
type Article struct {
	ID            uuid.UUID     `json:"id"`
	Title         string        `json:"title"`
	TitleAr       string        `json:"titleAr"`
	Content       *string       `json:"content,omitempty"`
	ContentAr     *string       `json:"contentAr,omitempty"`
	Summary       *string       `json:"summary,omitempty"`
	SummaryAr     *string       `json:"summaryAr,omitempty"`
	Slug          string        `json:"slug"`
	SlugAr        string        `json:"slugAr"`
	Status        ArticleStatus `json:"status"`
	CategoryID    *uuid.UUID    `json:"categoryId,omitempty"`
	Tags          []Tag         `json:"tags"`
	Images        []File        `json:"images"`
	Videos        []File        `json:"videos"`
	FeaturedMedia *File         `json:"featuredMedia,omitempty"`
	AuthorID      uuid.UUID     `json:"authorId"`
	AuthorEmail   string        `json:"authorEmail"`
	Views         int64         `json:"views"`
	PublishedAt   *time.Time    `json:"publishedAt,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// IsPublished returns true if the article is in published status.
func (a *Article) IsPublished() bool {
	return a.Status == ArticleStatusPublished
}

// IsArchived returns true if the article is in archived status.
func (a *Article) IsArchived() bool {
	return a.Status == ArticleStatusArchived
}

// HasTag reports whether the article already carries the given tag.
func (a *Article) HasTag(tagID uuid.UUID) bool {
	for _, t := range a.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}
