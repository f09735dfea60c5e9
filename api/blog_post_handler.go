package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/marketing-site-backend/database"
	"github.com/rpupo63/marketing-site-backend/errs"
	"github.com/rpupo63/marketing-site-backend/models"
)

// maxBlogPostBytes bounds admin request bodies; image blocks carry URLs, not data.
const maxBlogPostBytes = 1 << 20

type blogPostHandler struct {
	responder     Responder
	logger        zerolog.Logger
	blogPostRepo  *database.BlogPostRepo
	blogPostStore *database.BlogPostStore
	now           func() time.Time
}

func newBlogPostHandler(blogPostRepo *database.BlogPostRepo, blogPostStore *database.BlogPostStore, now func() time.Time) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		blogPostRepo:  blogPostRepo,
		blogPostStore: blogPostStore,
		now:           now,
	}
}

// getAllBlogPosts lists posts newest first. q, category and status each
// narrow the result; given together they intersect.
func (h blogPostHandler) getAllBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		status := models.Status(query.Get("status"))
		if status != "" && !status.Valid() {
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "must be publish or draft"))
			return
		}

		keyword, category := query.Get("q"), query.Get("category")
		var blogPosts []models.BlogPost
		switch {
		case keyword != "":
			blogPosts = h.blogPostStore.Search(r.Context(), keyword)
			if category != "" {
				blogPosts = slices.DeleteFunc(blogPosts, func(p models.BlogPost) bool {
					return !database.HasCategory(p, category)
				})
			}
		case category != "":
			blogPosts = h.blogPostStore.FindByCategory(r.Context(), category)
		default:
			blogPosts = h.blogPostStore.LoadAll(r.Context())
		}

		if status != "" {
			blogPosts = slices.DeleteFunc(blogPosts, func(p models.BlogPost) bool { return p.Status != status })
		}
		sortNewestFirst(blogPosts)

		h.responder.WriteJSON(w, BlogPostCollection{
			BlogPosts: blogPosts,
			Total:     len(blogPosts),
		})
	}
}

func (h blogPostHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID := models.PostID(chi.URLParam(r, "blogPostID"))

		blogPost, ok := h.blogPostStore.GetByID(r.Context(), blogPostID)
		if !ok {
			h.responder.WriteError(w, errs.NewNotFound("blog post"))
			return
		}

		h.responder.WriteJSON(w, blogPost)
	}
}

// createBlogPost fills in what the editor leaves out: id, date, reading
// time and a draft status.
func (h blogPostHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPost, err := h.decodeBlogPost(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		now := h.now()
		if blogPost.ID == "" {
			blogPost.ID = models.NewPostID(now)
		}
		if blogPost.Date.IsZero() {
			blogPost.Date = now.UTC()
		}
		if blogPost.Status == "" {
			blogPost.Status = models.StatusDraft
		}
		if blogPost.ReadingTime == 0 {
			blogPost.ReadingTime = models.EstimateReadingTime(blogPost.Content)
		}

		if err := h.blogPostRepo.Add(r.Context(), blogPost); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.adminLogger(r).Info().Str("id", blogPost.ID.String()).Str("status", string(blogPost.Status)).Msg("Blog post created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, blogPost)
	}
}

// updateBlogPost replaces the stored record wholesale. The id comes from the
// path and the original date is kept.
func (h blogPostHandler) updateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID := models.PostID(chi.URLParam(r, "blogPostID"))

		blogPost, err := h.decodeBlogPost(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.blogPostRepo.FindByID(r.Context(), blogPostID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFound("blog post"))
			return
		}

		blogPost.ID = blogPostID
		blogPost.Date = existing.Date
		if blogPost.Status == "" {
			blogPost.Status = existing.Status
		}
		if blogPost.ReadingTime == 0 {
			blogPost.ReadingTime = models.EstimateReadingTime(blogPost.Content)
		}

		if err := h.blogPostRepo.Update(r.Context(), blogPost); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.adminLogger(r).Info().Str("id", blogPost.ID.String()).Msg("Blog post updated")
		h.responder.WriteJSON(w, blogPost)
	}
}

func (h blogPostHandler) deleteBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID := models.PostID(chi.URLParam(r, "blogPostID"))

		removed, err := h.blogPostRepo.DeleteByID(r.Context(), blogPostID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if removed == 0 {
			h.responder.WriteError(w, errs.NewNotFound("blog post"))
			return
		}

		h.adminLogger(r).Info().Str("id", blogPostID.String()).Int("removed", removed).Msg("Blog post deleted")
		h.responder.WriteJSON(w, DeleteResponse{Status: "deleted", Removed: removed})
	}
}

// decodeBlogPost reads an admin request body and checks the fields the
// editor must supply.
func (h blogPostHandler) decodeBlogPost(w http.ResponseWriter, r *http.Request) (models.BlogPost, error) {
	var blogPost models.BlogPost

	bodyBytes, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBlogPostBytes))
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read request body")
		return blogPost, errs.NewBadRequestError("failed to read request body")
	}

	if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&blogPost); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to decode blog post request body")
		return blogPost, errs.NewInvalidJSONError(err)
	}

	if blogPost.Title == "" {
		return blogPost, errs.NewMissingRequiredFieldError("title")
	}
	if blogPost.Excerpt == "" {
		return blogPost, errs.NewMissingRequiredFieldError("excerpt")
	}
	if blogPost.Status != "" && !blogPost.Status.Valid() {
		return blogPost, errs.NewInvalidFieldError("status", "must be publish or draft")
	}
	return blogPost, nil
}

func (h blogPostHandler) adminLogger(r *http.Request) *zerolog.Logger {
	logger := zerolog.Ctx(r.Context()).With().Str("handlerName", "blogPostHandler")
	if subject, err := ctxGetAdminSubject(r.Context()); err == nil {
		logger = logger.Str("admin", subject)
	}
	l := logger.Logger()
	return &l
}

func sortNewestFirst(blogPosts []models.BlogPost) {
	slices.SortStableFunc(blogPosts, func(a, b models.BlogPost) int {
		return b.Date.Compare(a.Date)
	})
}
