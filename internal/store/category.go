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
	"newsdesk/internal/slug"
)

// CategoryStore handles all category-related database operations.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore creates a new CategoryStore with the given database connection.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// List returns all categories ordered by name.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, name_ar, slug, created_at
		FROM categories ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.NameAr, &c.Slug, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// FindByID retrieves a category by its UUID. Returns nil if not found.
func (s *CategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, name_ar, slug, created_at
		FROM categories WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.NameAr, &c.Slug, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// Create inserts a new category, deriving its slug from the English name.
func (s *CategoryStore) Create(ctx context.Context, name string, nameAr *string) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, name_ar, slug)
		VALUES ($1, $2, $3)
		RETURNING id, name, name_ar, slug, created_at
	`, name, nameAr, slug.Generate(name)).Scan(&c.ID, &c.Name, &c.NameAr, &c.Slug, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}
