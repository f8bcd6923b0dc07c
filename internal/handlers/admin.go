// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the admin API. Handlers
// decode requests, delegate to the article service and stores, and encode
// JSON responses. Error kinds from the core map onto HTTP statuses here.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"newsdesk/internal/apperr"
	"newsdesk/internal/article"
	"newsdesk/internal/cache"
	"newsdesk/internal/store"
)

// Admin bundles the dependencies for the admin API handlers.
type Admin struct {
	articles   *article.Service
	tags       *store.TagStore
	categories *store.CategoryStore
	cache      *cache.ArticleCache
}

// NewAdmin creates the admin handler set. The cache may be nil, in which
// case article detail reads always go to the database.
func NewAdmin(articles *article.Service, tags *store.TagStore, categories *store.CategoryStore, articleCache *cache.ArticleCache) *Admin {
	return &Admin{
		articles:   articles,
		tags:       tags,
		categories: categories,
		cache:      articleCache,
	}
}

// ListTags returns all tags.
func (a *Admin) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := a.tags.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tags)
}

// ListCategories returns all categories.
func (a *Admin) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.categories.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

// respondJSON writes a JSON body with the given status.
func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeError maps an error onto its HTTP status and writes a JSON error
// body. Internal errors are logged and hidden behind a generic message.
func writeError(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		msg = "internal server error"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
