package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/portfolio-api/internal/repository"
	"github.com/sakif/portfolio-api/internal/service"
)

// ArticleHandler exposes the article CRUD endpoints.
//
// Each handler does exactly three things: decode the request, call the
// service, map the outcome to a status + JSON body. Business rules live in
// the service; SQL lives in the repository; neither appears here.
type ArticleHandler struct {
	articles *service.ArticleService
	logger   *slog.Logger
}

// NewArticleHandler creates an ArticleHandler.
func NewArticleHandler(articles *service.ArticleService, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{articles: articles, logger: logger}
}

// HandleListPublished returns published articles for the public site.
//
// HTTP: GET /api/articles/published (no auth)
func (h *ArticleHandler) HandleListPublished(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.ListPublished(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, articles)
}

// HandleList returns all articles, drafts included.
//
// HTTP: GET /api/articles (bearer token required)
func (h *ArticleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, articles)
}

// HandleGetByID returns a single article.
//
// HTTP: GET /api/articles/{id} (bearer token required)
// 200 | 404
func (h *ArticleHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	article, err := h.articles.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

// HandleCreate creates a new article.
//
// HTTP: POST /api/articles (bearer token required)
// 201 with the full article (id and timestamps assigned)
func (h *ArticleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input service.ArticleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	article, err := h.articles.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, article)
}

// HandleUpdate applies a partial update.
//
// HTTP: PUT /api/articles/{id} (bearer token required)
// 200 with the merged article | 404
//
// The body is decoded into an ArticlePatch (pointer fields), so only the
// fields present in the JSON are touched — `{"published":true}` flips the
// flag and leaves every other field as stored.
func (h *ArticleHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch repository.ArticlePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	article, err := h.articles.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

// HandleDelete removes an article.
//
// HTTP: DELETE /api/articles/{id} (bearer token required)
// 204 always — delete is idempotent, a second delete of the same id is
// indistinguishable from the first.
func (h *ArticleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.articles.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
