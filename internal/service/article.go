package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/portfolio-api/internal/apperror"
	"github.com/sakif/portfolio-api/internal/model"
	"github.com/sakif/portfolio-api/internal/repository"
)

const MaxTitleLength = 200

// ArticleService handles business logic for blog articles.
type ArticleService struct {
	repo   repository.ArticleRepository
	logger *slog.Logger
}

// NewArticleService creates a new ArticleService. The caller decides which
// repository implementation to inject — sqlite in production, memory in tests.
func NewArticleService(repo repository.ArticleRepository, logger *slog.Logger) *ArticleService {
	return &ArticleService{
		repo:   repo,
		logger: logger,
	}
}

// ArticleInput carries the writable fields for creating an article.
// ID and timestamps are assigned by the repository, never by the caller.
type ArticleInput struct {
	Title     string `json:"title"`
	Excerpt   string `json:"excerpt"`
	Content   string `json:"content"`
	Category  string `json:"category"`
	ReadTime  string `json:"readTime"`
	Published bool   `json:"published"`
}

// Create validates and saves a new article. Immediately after creation
// CreatedAt == UpdatedAt; the article is a draft unless Published was set.
func (s *ArticleService) Create(ctx context.Context, input ArticleInput) (*model.Article, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "article title is required")
	}
	if len(title) > MaxTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("article title must be %d characters or less", MaxTitleLength))
	}

	article := &model.Article{
		Title:     title,
		Excerpt:   input.Excerpt,
		Content:   input.Content,
		Category:  input.Category,
		ReadTime:  input.ReadTime,
		Published: input.Published,
	}

	if err := s.repo.CreateArticle(ctx, article); err != nil {
		s.logger.Error("failed to create article",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating article: %w", err)
	}

	s.logger.Info("article created",
		slog.String("id", article.ID),
		slog.String("title", article.Title),
		slog.Bool("published", article.Published),
	)

	return article, nil
}

// GetByID retrieves an article by its ID.
// Returns apperror.ErrNotFound if it doesn't exist.
func (s *ArticleService) GetByID(ctx context.Context, id string) (*model.Article, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "article ID is required")
	}

	return s.repo.GetArticleByID(ctx, id)
}

// ListAll returns every article, drafts included, newest first.
func (s *ArticleService) ListAll(ctx context.Context) ([]model.Article, error) {
	articles, err := s.repo.ListArticles(ctx)
	if err != nil {
		s.logger.Error("failed to list articles", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	return articles, nil
}

// ListPublished returns only published articles, newest first. This is the
// one article operation reachable without authentication.
func (s *ArticleService) ListPublished(ctx context.Context) ([]model.Article, error) {
	articles, err := s.repo.ListPublishedArticles(ctx)
	if err != nil {
		s.logger.Error("failed to list published articles", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing published articles: %w", err)
	}
	return articles, nil
}

// Update applies a partial update to an existing article.
//
// Fetch-merge-write: read the stored record, overlay the non-nil patch
// fields, persist the result. Fields absent from the patch keep their stored
// values; UpdatedAt is refreshed on every successful update regardless of
// which fields changed. The read and write are separate statements, so two
// concurrent updates to the same article can lose one writer's fields —
// accepted for the single-admin usage model.
func (s *ArticleService) Update(ctx context.Context, id string, patch repository.ArticlePatch) (*model.Article, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "article ID is required")
	}

	article, err := s.repo.GetArticleByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, apperror.ValidationFailed("title", "article title must not be empty")
		}
		if len(title) > MaxTitleLength {
			return nil, apperror.ValidationFailed("title",
				fmt.Sprintf("article title must be %d characters or less", MaxTitleLength))
		}
		patch.Title = &title
	}

	patch.Apply(article)

	if err := s.repo.UpdateArticle(ctx, article); err != nil {
		s.logger.Error("failed to update article",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating article: %w", err)
	}

	s.logger.Info("article updated",
		slog.String("id", article.ID),
		slog.Bool("published", article.Published),
	)

	return article, nil
}

// Delete removes an article. Deleting an id that doesn't exist succeeds —
// the operation is idempotent end to end.
func (s *ArticleService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "article ID is required")
	}

	if err := s.repo.DeleteArticle(ctx, id); err != nil {
		return err
	}

	s.logger.Info("article deleted", slog.String("id", id))
	return nil
}
