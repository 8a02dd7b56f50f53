// Package repository defines the storage contracts the rest of the app
// programs against. Two implementations exist: sqlite (production) and
// memory (tests, DB-less runs). Call sites only ever see these interfaces —
// the concrete store is chosen once, at startup.
package repository

import (
	"context"

	"github.com/sakif/portfolio-api/internal/model"
)

// ArticlePatch is a partial update. A nil field means "leave the stored value
// untouched"; a non-nil field overwrites it. Pointer fields are what lets us
// distinguish "set published to false" from "don't touch published".
type ArticlePatch struct {
	Title     *string `json:"title"`
	Excerpt   *string `json:"excerpt"`
	Content   *string `json:"content"`
	Category  *string `json:"category"`
	ReadTime  *string `json:"readTime"`
	Published *bool   `json:"published"`
}

// Apply merges the non-nil fields of the patch onto an article.
// ID and CreatedAt are never touched; the caller refreshes UpdatedAt.
func (p ArticlePatch) Apply(a *model.Article) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Excerpt != nil {
		a.Excerpt = *p.Excerpt
	}
	if p.Content != nil {
		a.Content = *p.Content
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.ReadTime != nil {
		a.ReadTime = *p.ReadTime
	}
	if p.Published != nil {
		a.Published = *p.Published
	}
}

// ArticleRepository persists articles. List methods return newest-first
// (created_at descending); each call runs a fresh query.
type ArticleRepository interface {
	CreateArticle(ctx context.Context, article *model.Article) error
	GetArticleByID(ctx context.Context, id string) (*model.Article, error)
	ListArticles(ctx context.Context) ([]model.Article, error)
	ListPublishedArticles(ctx context.Context) ([]model.Article, error)
	UpdateArticle(ctx context.Context, article *model.Article) error
	// DeleteArticle is idempotent: deleting an id that doesn't exist is not
	// an error.
	DeleteArticle(ctx context.Context, id string) error
}

// UserRepository persists admin accounts. It stores password hashes only —
// hashing itself happens in the auth package, never here.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// Store bundles both repositories. The sqlite and memory implementations
// each satisfy it, so server wiring can swap backends with one assignment.
type Store interface {
	ArticleRepository
	UserRepository
}
