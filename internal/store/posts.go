// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/atadizayn/atasite/internal/model"
)

const blogPostColumns = `id, title, title_en, title_tr, slug, slug_en, slug_tr,
	meta_description, meta_description_en, meta_description_tr,
	content, content_en, content_tr, collection, status,
	publish_date, created_at, updated_at`

func scanBlogPost(row scanner) (model.BlogPost, error) {
	var p model.BlogPost
	var slug, slugEN, slugTR sql.NullString
	err := row.Scan(
		&p.ID, &p.Title.Base, &p.Title.EN, &p.Title.TR, &slug, &slugEN, &slugTR,
		&p.MetaDescription.Base, &p.MetaDescription.EN, &p.MetaDescription.TR,
		&p.Content.Base, &p.Content.EN, &p.Content.TR, &p.Collection, &p.Status,
		&p.PublishDate, &p.CreatedAt, &p.UpdatedAt,
	)
	p.Slugs = slugsFromNull(slug, slugEN, slugTR)
	return p, err
}

// CreateBlogPost inserts p and sets its ID and timestamps.
func (q *Queries) CreateBlogPost(ctx context.Context, p *model.BlogPost) error {
	now := time.Now().UTC()
	if p.PublishDate.IsZero() {
		p.PublishDate = now
	}
	p.CreatedAt, p.UpdatedAt = now, now

	args := []any{p.Title.Base, p.Title.EN, p.Title.TR}
	args = append(args, slugArgs(p.Slugs)...)
	args = append(args,
		p.MetaDescription.Base, p.MetaDescription.EN, p.MetaDescription.TR,
		p.Content.Base, p.Content.EN, p.Content.TR, p.Collection, p.Status,
		p.PublishDate.UTC(), p.CreatedAt, p.UpdatedAt,
	)

	res, err := q.db.ExecContext(ctx, `INSERT INTO blog_posts (
		title, title_en, title_tr, slug, slug_en, slug_tr,
		meta_description, meta_description_en, meta_description_tr,
		content, content_en, content_tr, collection, status,
		publish_date, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		return err
	}
	p.ID, err = res.LastInsertId()
	return err
}

// UpdateBlogPost writes every column of p.
func (q *Queries) UpdateBlogPost(ctx context.Context, p *model.BlogPost) error {
	p.UpdatedAt = time.Now().UTC()

	args := []any{p.Title.Base, p.Title.EN, p.Title.TR}
	args = append(args, slugArgs(p.Slugs)...)
	args = append(args,
		p.MetaDescription.Base, p.MetaDescription.EN, p.MetaDescription.TR,
		p.Content.Base, p.Content.EN, p.Content.TR, p.Collection, p.Status,
		p.PublishDate.UTC(), p.UpdatedAt, p.ID,
	)

	return execOne(ctx, q.db, `UPDATE blog_posts SET
		title = ?, title_en = ?, title_tr = ?, slug = ?, slug_en = ?, slug_tr = ?,
		meta_description = ?, meta_description_en = ?, meta_description_tr = ?,
		content = ?, content_en = ?, content_tr = ?, collection = ?, status = ?,
		publish_date = ?, updated_at = ?
	WHERE id = ?`, args...)
}

// GetBlogPost returns a post by ID or sql.ErrNoRows.
func (q *Queries) GetBlogPost(ctx context.Context, id int64) (model.BlogPost, error) {
	return scanBlogPost(q.db.QueryRowContext(ctx,
		`SELECT `+blogPostColumns+` FROM blog_posts WHERE id = ?`, id))
}

// ListBlogPostsParams filters ListBlogPosts.
type ListBlogPostsParams struct {
	Collection string
	// PublishedAt limits the result to posts published at or before it.
	PublishedAt time.Time
}

// ListBlogPosts returns posts, newest publish date first.
func (q *Queries) ListBlogPosts(ctx context.Context, arg ListBlogPostsParams) ([]model.BlogPost, error) {
	query := `SELECT ` + blogPostColumns + ` FROM blog_posts WHERE 1 = 1`
	var args []any
	if arg.Collection != "" {
		query += ` AND collection = ?`
		args = append(args, arg.Collection)
	}
	if !arg.PublishedAt.IsZero() {
		query += ` AND status = ? AND publish_date <= ?`
		args = append(args, model.PostStatusPublished, arg.PublishedAt.UTC())
	}
	query += ` ORDER BY publish_date DESC, id DESC`

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var posts []model.BlogPost
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// CountBlogPostsPublishedBetween counts published posts whose publish date
// falls in (from, to].
func (q *Queries) CountBlogPostsPublishedBetween(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blog_posts
		WHERE status = ? AND publish_date > ? AND publish_date <= ?`,
		model.PostStatusPublished, from.UTC(), to.UTC()).Scan(&n)
	return n, err
}

// DeleteBlogPost removes a post.
func (q *Queries) DeleteBlogPost(ctx context.Context, id int64) error {
	return execOne(ctx, q.db, `DELETE FROM blog_posts WHERE id = ?`, id)
}

// execOne runs a statement that must affect exactly one row; zero rows
// affected is reported as sql.ErrNoRows.
func execOne(ctx context.Context, db DBTX, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
