// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/atadizayn/atasite/internal/model"
)

const productColumns = `id, category_id, name, name_en, name_tr, slug, slug_en, slug_tr,
	description, description_en, description_tr,
	rich_text, rich_text_en, rich_text_tr,
	publish_date, created_at, updated_at`

func scanProduct(row scanner) (model.Product, error) {
	var p model.Product
	var slug, slugEN, slugTR sql.NullString
	err := row.Scan(
		&p.ID, &p.CategoryID, &p.Name.Base, &p.Name.EN, &p.Name.TR, &slug, &slugEN, &slugTR,
		&p.Description.Base, &p.Description.EN, &p.Description.TR,
		&p.RichText.Base, &p.RichText.EN, &p.RichText.TR,
		&p.PublishDate, &p.CreatedAt, &p.UpdatedAt,
	)
	p.Slugs = slugsFromNull(slug, slugEN, slugTR)
	return p, err
}

// CreateProduct inserts p and sets its ID and timestamps.
func (q *Queries) CreateProduct(ctx context.Context, p *model.Product) error {
	now := time.Now().UTC()
	if p.PublishDate.IsZero() {
		p.PublishDate = now
	}
	p.CreatedAt, p.UpdatedAt = now, now

	args := []any{p.CategoryID, p.Name.Base, p.Name.EN, p.Name.TR}
	args = append(args, slugArgs(p.Slugs)...)
	args = append(args,
		p.Description.Base, p.Description.EN, p.Description.TR,
		p.RichText.Base, p.RichText.EN, p.RichText.TR,
		p.PublishDate.UTC(), p.CreatedAt, p.UpdatedAt,
	)

	res, err := q.db.ExecContext(ctx, `INSERT INTO products (
		category_id, name, name_en, name_tr, slug, slug_en, slug_tr,
		description, description_en, description_tr,
		rich_text, rich_text_en, rich_text_tr,
		publish_date, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		return err
	}
	p.ID, err = res.LastInsertId()
	return err
}

// UpdateProduct writes every column of p.
func (q *Queries) UpdateProduct(ctx context.Context, p *model.Product) error {
	p.UpdatedAt = time.Now().UTC()

	args := []any{p.CategoryID, p.Name.Base, p.Name.EN, p.Name.TR}
	args = append(args, slugArgs(p.Slugs)...)
	args = append(args,
		p.Description.Base, p.Description.EN, p.Description.TR,
		p.RichText.Base, p.RichText.EN, p.RichText.TR,
		p.PublishDate.UTC(), p.UpdatedAt, p.ID,
	)

	return execOne(ctx, q.db, `UPDATE products SET
		category_id = ?, name = ?, name_en = ?, name_tr = ?, slug = ?, slug_en = ?, slug_tr = ?,
		description = ?, description_en = ?, description_tr = ?,
		rich_text = ?, rich_text_en = ?, rich_text_tr = ?,
		publish_date = ?, updated_at = ?
	WHERE id = ?`, args...)
}

// GetProduct returns a product by ID or sql.ErrNoRows.
func (q *Queries) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	return scanProduct(q.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id))
}

// ListProducts returns products in creation order. A categoryID of 0 lists
// every product.
func (q *Queries) ListProducts(ctx context.Context, categoryID int64) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var args []any
	if categoryID != 0 {
		query += ` WHERE category_id = ?`
		args = append(args, categoryID)
	}
	query += ` ORDER BY id`

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// CountProductsByCategory returns how many products reference a category.
func (q *Queries) CountProductsByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE category_id = ?`, categoryID).Scan(&n)
	return n, err
}

// DeleteProduct removes a product.
func (q *Queries) DeleteProduct(ctx context.Context, id int64) error {
	return execOne(ctx, q.db, `DELETE FROM products WHERE id = ?`, id)
}
