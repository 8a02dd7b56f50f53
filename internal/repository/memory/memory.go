// Package memory implements the repository interfaces with plain in-process
// maps. It exists for two reasons:
//
//  1. Tests: service and handler tests run against this store with zero
//     database setup.
//  2. DB-less runs: STORE=memory starts the server without touching disk —
//     useful for demos; everything is lost on restart.
//
// It honours exactly the same contract as the sqlite store: same ordering,
// same error values, same idempotent delete. The concurrency model is a
// single RWMutex over both tables, which is plenty for a single-admin site.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/portfolio-api/internal/apperror"
	"github.com/sakif/portfolio-api/internal/model"
	"github.com/sakif/portfolio-api/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// Store is the in-memory implementation of repository.Store.
type Store struct {
	mu       sync.RWMutex
	articles map[string]*model.Article
	users    map[string]*model.User // keyed by ID; username lookups scan
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		articles: make(map[string]*model.Article),
		users:    make(map[string]*model.User),
	}
}

// --- Articles ---

func (s *Store) CreateArticle(_ context.Context, article *model.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	article.ID = xid.New().String()
	now := time.Now().UTC()
	article.CreatedAt = now
	article.UpdatedAt = now

	// Store a copy so later mutations of the caller's struct can't reach in.
	stored := *article
	s.articles[article.ID] = &stored
	return nil
}

func (s *Store) GetArticleByID(_ context.Context, id string) (*model.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[id]
	if !ok {
		return nil, apperror.NotFound("article", id)
	}
	result := *a
	return &result, nil
}

func (s *Store) ListArticles(_ context.Context) ([]model.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.list(func(*model.Article) bool { return true }), nil
}

func (s *Store) ListPublishedArticles(_ context.Context) ([]model.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.list(func(a *model.Article) bool { return a.Published }), nil
}

// list snapshots matching articles newest-first. Ties on CreatedAt fall back
// to id descending — xids are time-ordered, so this matches the sqlite
// store's ORDER BY created_at DESC, id DESC exactly.
func (s *Store) list(keep func(*model.Article) bool) []model.Article {
	result := make([]model.Article, 0, len(s.articles))
	for _, a := range s.articles {
		if keep(a) {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result
}

func (s *Store) UpdateArticle(_ context.Context, article *model.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.articles[article.ID]; !ok {
		return apperror.NotFound("article", article.ID)
	}

	article.UpdatedAt = time.Now().UTC()
	stored := *article
	s.articles[article.ID] = &stored
	return nil
}

// DeleteArticle is idempotent — a missing id is not an error.
func (s *Store) DeleteArticle(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.articles, id)
	return nil
}

// --- Users ---

func (s *Store) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Enforce username uniqueness the same way the sqlite UNIQUE constraint
	// does, so the register flow behaves identically on both stores.
	for _, u := range s.users {
		if u.Username == user.Username {
			return apperror.Conflict("Username already exists")
		}
	}

	user.ID = xid.New().String()
	user.CreatedAt = time.Now().UTC()

	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", username)
}

func (s *Store) GetUserByID(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *u
	return &result, nil
}
