// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/atadizayn/atasite/internal/model"
)

const categoryColumns = `id, name, name_en, name_tr, slug, slug_en, slug_tr, collection,
	description, description_en, description_tr,
	rich_text, rich_text_en, rich_text_tr, seo_canonical,
	publish_date, created_at, updated_at`

func scanCategory(row scanner) (model.Category, error) {
	var c model.Category
	var slug, slugEN, slugTR sql.NullString
	err := row.Scan(
		&c.ID, &c.Name.Base, &c.Name.EN, &c.Name.TR, &slug, &slugEN, &slugTR, &c.Collection,
		&c.Description.Base, &c.Description.EN, &c.Description.TR,
		&c.RichText.Base, &c.RichText.EN, &c.RichText.TR, &c.SEOCanonical,
		&c.PublishDate, &c.CreatedAt, &c.UpdatedAt,
	)
	c.Slugs = slugsFromNull(slug, slugEN, slugTR)
	return c, err
}

// CreateCategory inserts c and sets its ID and timestamps.
func (q *Queries) CreateCategory(ctx context.Context, c *model.Category) error {
	now := time.Now().UTC()
	if c.PublishDate.IsZero() {
		c.PublishDate = now
	}
	c.CreatedAt, c.UpdatedAt = now, now

	args := []any{c.Name.Base, c.Name.EN, c.Name.TR}
	args = append(args, slugArgs(c.Slugs)...)
	args = append(args, c.Collection,
		c.Description.Base, c.Description.EN, c.Description.TR,
		c.RichText.Base, c.RichText.EN, c.RichText.TR, c.SEOCanonical,
		c.PublishDate.UTC(), c.CreatedAt, c.UpdatedAt,
	)

	res, err := q.db.ExecContext(ctx, `INSERT INTO categories (
		name, name_en, name_tr, slug, slug_en, slug_tr, collection,
		description, description_en, description_tr,
		rich_text, rich_text_en, rich_text_tr, seo_canonical,
		publish_date, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		return err
	}
	c.ID, err = res.LastInsertId()
	return err
}

// UpdateCategory writes every column of c.
func (q *Queries) UpdateCategory(ctx context.Context, c *model.Category) error {
	c.UpdatedAt = time.Now().UTC()

	args := []any{c.Name.Base, c.Name.EN, c.Name.TR}
	args = append(args, slugArgs(c.Slugs)...)
	args = append(args, c.Collection,
		c.Description.Base, c.Description.EN, c.Description.TR,
		c.RichText.Base, c.RichText.EN, c.RichText.TR, c.SEOCanonical,
		c.PublishDate.UTC(), c.UpdatedAt, c.ID,
	)

	return execOne(ctx, q.db, `UPDATE categories SET
		name = ?, name_en = ?, name_tr = ?, slug = ?, slug_en = ?, slug_tr = ?, collection = ?,
		description = ?, description_en = ?, description_tr = ?,
		rich_text = ?, rich_text_en = ?, rich_text_tr = ?, seo_canonical = ?,
		publish_date = ?, updated_at = ?
	WHERE id = ?`, args...)
}

// GetCategory returns a category by ID or sql.ErrNoRows.
func (q *Queries) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	return scanCategory(q.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id))
}

// ListCategories returns categories in creation order, optionally filtered by
// collection.
func (q *Queries) ListCategories(ctx context.Context, collection string) ([]model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`
	var args []any
	if collection != "" {
		query += ` WHERE collection = ?`
		args = append(args, collection)
	}
	query += ` ORDER BY id`

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// DeleteCategory removes a category. Categories with products cannot be deleted.
func (q *Queries) DeleteCategory(ctx context.Context, id int64) error {
	return execOne(ctx, q.db, `DELETE FROM categories WHERE id = ?`, id)
}
