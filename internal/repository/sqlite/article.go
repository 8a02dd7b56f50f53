package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/portfolio-api/internal/apperror"
	"github.com/sakif/portfolio-api/internal/model"
	"github.com/sakif/portfolio-api/internal/repository"
)

// Compile-time check that *DB implements the article contract.
// `var _ X = (*Y)(nil)` fails the build immediately if a method is missing,
// instead of at the first call site that passes *DB as the interface.
var _ repository.ArticleRepository = (*DB)(nil)

// CreateArticle inserts a new article.
//
// The repository owns ID generation and timestamps: callers hand in the
// content fields and get the ID, CreatedAt and UpdatedAt filled in on the
// same struct (pointer receiver — the caller's copy is mutated in place).
// xid gives us 20-char URL-safe IDs with no coordination needed.
func (db *DB) CreateArticle(ctx context.Context, article *model.Article) error {
	article.ID = xid.New().String()

	now := time.Now().UTC()
	article.CreatedAt = now
	article.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO articles (id, title, excerpt, content, category, read_time, published, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		article.ID,
		article.Title,
		article.Excerpt,
		article.Content,
		article.Category,
		article.ReadTime,
		article.Published,
		article.CreatedAt,
		article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating article: %w", err)
	}

	return nil
}

// GetArticleByID retrieves a single article.
// sql.ErrNoRows is translated to the app's NotFound error so the handler
// layer can map it to 404 without knowing anything about database/sql.
func (db *DB) GetArticleByID(ctx context.Context, id string) (*model.Article, error) {
	var a model.Article

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, excerpt, content, category, read_time, published, created_at, updated_at
		 FROM articles
		 WHERE id = ?`,
		id,
	).Scan(
		&a.ID,
		&a.Title,
		&a.Excerpt,
		&a.Content,
		&a.Category,
		&a.ReadTime,
		&a.Published,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("article", id)
		}
		return nil, fmt.Errorf("sqlite: getting article %s: %w", id, err)
	}

	return &a, nil
}

// ListArticles returns every article, drafts included, newest first.
// Protected endpoint — the admin dashboard needs to see unpublished drafts.
func (db *DB) ListArticles(ctx context.Context) ([]model.Article, error) {
	return db.listArticles(ctx,
		`SELECT id, title, excerpt, content, category, read_time, published, created_at, updated_at
		 FROM articles
		 ORDER BY created_at DESC, id DESC`)
}

// ListPublishedArticles returns only articles with published = true, in the
// same order as ListArticles. This backs the public (unauthenticated) feed.
func (db *DB) ListPublishedArticles(ctx context.Context) ([]model.Article, error) {
	return db.listArticles(ctx,
		`SELECT id, title, excerpt, content, category, read_time, published, created_at, updated_at
		 FROM articles
		 WHERE published = 1
		 ORDER BY created_at DESC, id DESC`)
}

// listArticles runs a SELECT producing article rows and scans them.
// Shared by the two list variants — they differ only in the WHERE clause.
func (db *DB) listArticles(ctx context.Context, query string) ([]model.Article, error) {
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing articles: %w", err)
	}
	// rows holds a pool connection until closed — leaking it here would
	// eventually exhaust the pool and hang every request.
	defer rows.Close()

	articles := make([]model.Article, 0)

	for rows.Next() {
		var a model.Article
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Excerpt, &a.Content, &a.Category,
			&a.ReadTime, &a.Published, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning article row: %w", err)
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating articles: %w", err)
	}

	return articles, nil
}

// UpdateArticle persists a full article row. The caller (the service layer)
// has already merged the patch onto the fetched record; this method just
// writes the result and refreshes updated_at. ID and created_at are immutable
// and never appear in the SET clause.
func (db *DB) UpdateArticle(ctx context.Context, article *model.Article) error {
	article.UpdatedAt = time.Now().UTC()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE articles
		 SET title = ?, excerpt = ?, content = ?, category = ?, read_time = ?, published = ?, updated_at = ?
		 WHERE id = ?`,
		article.Title,
		article.Excerpt,
		article.Content,
		article.Category,
		article.ReadTime,
		article.Published,
		article.UpdatedAt,
		article.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating article %s: %w", article.ID, err)
	}

	// RowsAffected == 0 means the WHERE clause matched nothing: the article
	// was deleted between the read and this write. Report not-found rather
	// than silently succeeding.
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("article", article.ID)
	}

	return nil
}

// DeleteArticle removes an article by ID. Idempotent: deleting an id that
// doesn't exist succeeds — DELETE with a non-matching WHERE is not an error,
// and the endpoint contract is 204 either way.
func (db *DB) DeleteArticle(ctx context.Context, id string) error {
	if _, err := db.conn.ExecContext(ctx,
		`DELETE FROM articles WHERE id = ?`, id,
	); err != nil {
		return fmt.Errorf("sqlite: deleting article %s: %w", id, err)
	}
	return nil
}
