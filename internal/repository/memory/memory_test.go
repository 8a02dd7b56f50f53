package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/portfolio-api/internal/apperror"
	"github.com/sakif/portfolio-api/internal/model"
	"github.com/sakif/portfolio-api/internal/repository"
)

// The memory store must honour the same contract as the sqlite store —
// these tests pin the behaviours the service and handler tests depend on.

func createArticle(t *testing.T, s *Store, title string, published bool) *model.Article {
	t.Helper()
	a := &model.Article{Title: title, Published: published}
	if err := s.CreateArticle(context.Background(), a); err != nil {
		t.Fatalf("CreateArticle() error = %v", err)
	}
	return a
}

func TestArticleLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	created := createArticle(t, s, "lifecycle", false)
	if created.ID == "" {
		t.Fatal("CreateArticle() did not assign an ID")
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Error("CreatedAt should equal UpdatedAt right after insert")
	}

	found, err := s.GetArticleByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetArticleByID() error = %v", err)
	}
	if found.Title != "lifecycle" {
		t.Errorf("Title = %q, want %q", found.Title, "lifecycle")
	}

	// Mutating the returned copy must not leak into the store.
	found.Title = "mutated"
	again, err := s.GetArticleByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetArticleByID() error = %v", err)
	}
	if again.Title != "lifecycle" {
		t.Error("store returned an aliased pointer — mutations leaked in")
	}

	if err := s.DeleteArticle(ctx, created.ID); err != nil {
		t.Fatalf("DeleteArticle() error = %v", err)
	}
	if err := s.DeleteArticle(ctx, created.ID); err != nil {
		t.Errorf("second DeleteArticle() error = %v, want nil (idempotent)", err)
	}
	if _, err := s.GetArticleByID(ctx, created.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetArticleByID() after delete error = %v, want ErrNotFound", err)
	}
}

func TestListOrderingAndFilter(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := createArticle(t, s, "first", true)
	createArticle(t, s, "second", false)
	third := createArticle(t, s, "third", true)

	all, err := s.ListArticles(ctx)
	if err != nil {
		t.Fatalf("ListArticles() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListArticles() returned %d, want 3", len(all))
	}
	if all[0].ID != third.ID || all[2].ID != first.ID {
		t.Errorf("ListArticles() not newest-first: %q, %q, %q", all[0].Title, all[1].Title, all[2].Title)
	}

	published, err := s.ListPublishedArticles(ctx)
	if err != nil {
		t.Fatalf("ListPublishedArticles() error = %v", err)
	}
	if len(published) != 2 {
		t.Fatalf("ListPublishedArticles() returned %d, want 2", len(published))
	}
	if published[0].ID != third.ID || published[1].ID != first.ID {
		t.Error("ListPublishedArticles() order differs from ListArticles()")
	}
}

func TestUpdateArticle(t *testing.T) {
	s := New()
	ctx := context.Background()

	created := createArticle(t, s, "before", false)

	fetched, err := s.GetArticleByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetArticleByID() error = %v", err)
	}
	published := true
	repository.ArticlePatch{Published: &published}.Apply(fetched)

	if err := s.UpdateArticle(ctx, fetched); err != nil {
		t.Fatalf("UpdateArticle() error = %v", err)
	}

	updated, err := s.GetArticleByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetArticleByID() error = %v", err)
	}
	if !updated.Published {
		t.Error("Published flag not persisted")
	}
	if updated.Title != "before" {
		t.Errorf("Title changed by unrelated patch: %q", updated.Title)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Error("UpdatedAt did not advance")
	}

	ghost := &model.Article{ID: "nope"}
	if err := s.UpdateArticle(ctx, ghost); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("UpdateArticle() on missing id error = %v, want ErrNotFound", err)
	}
}

func TestUsers(t *testing.T) {
	s := New()
	ctx := context.Background()

	user := &model.User{Username: "alice", PasswordHash: "hash"}
	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if user.ID == "" {
		t.Fatal("CreateUser() did not assign an ID")
	}

	dup := &model.User{Username: "alice", PasswordHash: "other"}
	if err := s.CreateUser(ctx, dup); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("CreateUser() duplicate error = %v, want ErrConflict", err)
	}

	byName, err := s.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername() error = %v", err)
	}
	byID, err := s.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if byName.ID != byID.ID {
		t.Error("username and id lookups disagree")
	}

	if _, err := s.GetUserByUsername(ctx, "nobody"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetUserByUsername() miss error = %v, want ErrNotFound", err)
	}
}
