// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"newsdesk/internal/models"
)

// TagStore handles all tag-related database operations.
type TagStore struct {
	db *sql.DB
}

// NewTagStore creates a new TagStore with the given database connection.
func NewTagStore(db *sql.DB) *TagStore {
	return &TagStore{db: db}
}

// FindByID retrieves a tag by its UUID. Returns nil if not found.
func (s *TagStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	t := &models.Tag{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, name_ar, created_at, updated_at
		FROM tags WHERE id = $1
	`, id).Scan(&t.ID, &t.Name, &t.NameAr, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tag by id: %w", err)
	}
	return t, nil
}

// Create inserts a new tag with the ID the caller assigned.
func (s *TagStore) Create(ctx context.Context, t *models.Tag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (id, name, name_ar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, t.ID, t.Name, t.NameAr, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

// List returns all tags ordered by name.
func (s *TagStore) List(ctx context.Context) ([]models.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, name_ar, created_at, updated_at
		FROM tags ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.NameAr, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
