package database

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/marketing-site-backend/errs"
	"github.com/rpupo63/marketing-site-backend/models"
)

// BlogPostStore is the fail-open view of BlogPostRepo used by public pages:
// a failed read looks like an empty blog and a failed write is a false
// return. Failures are logged, never returned.
//
// An unreadable stored value counts as an empty collection here, so
// mutations go on and overwrite it. A backend that cannot be reached is
// never overwritten.
type BlogPostStore struct {
	repo   *BlogPostRepo
	logger zerolog.Logger
}

func NewBlogPostStore(repo *BlogPostRepo) *BlogPostStore {
	return &BlogPostStore{
		repo:   repo,
		logger: log.With().Str("component", "blogPostStore").Str("key", repo.Key()).Logger(),
	}
}

// withError attaches err and, for storage errors, the whole cause chain.
func withError(event *zerolog.Event, err error) *zerolog.Event {
	event = event.Err(err)
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) && apiErr.Cause != nil {
		event = event.Str("cause", apiErr.GetFullError())
	}
	return event
}

// load is LoadAll with a corrupt value read as empty.
func (s *BlogPostStore) load(ctx context.Context) ([]models.BlogPost, error) {
	blogPosts, err := s.repo.LoadAll(ctx)
	if errs.IsDeserializationError(err) {
		withError(s.logger.Warn(), err).Msg("Stored blog posts are unreadable, treating them as empty")
		return []models.BlogPost{}, nil
	}
	return blogPosts, err
}

func (s *BlogPostStore) LoadAll(ctx context.Context) []models.BlogPost {
	blogPosts, err := s.load(ctx)
	if err != nil {
		withError(s.logger.Error(), err).Msg("Failed to load blog posts, serving an empty list")
		return []models.BlogPost{}
	}
	return blogPosts
}

func (s *BlogPostStore) SaveAll(ctx context.Context, blogPosts []models.BlogPost) bool {
	if err := s.repo.SaveAll(ctx, blogPosts); err != nil {
		withError(s.logger.Error(), err).Int("count", len(blogPosts)).Msg("Failed to save blog posts")
		return false
	}
	return true
}

func (s *BlogPostStore) GetByID(ctx context.Context, id models.PostID) (models.BlogPost, bool) {
	blogPosts := s.LoadAll(ctx)
	if i := indexOf(blogPosts, id); i >= 0 {
		return blogPosts[i], true
	}
	return models.BlogPost{}, false
}

func (s *BlogPostStore) Add(ctx context.Context, blogPost models.BlogPost) bool {
	blogPosts, err := s.load(ctx)
	if err != nil {
		withError(s.logger.Error(), err).Str("id", blogPost.ID.String()).Msg("Failed to add blog post")
		return false
	}
	return s.SaveAll(ctx, append([]models.BlogPost{blogPost}, blogPosts...))
}

// Update reports false both when no post has the id and when saving failed.
func (s *BlogPostStore) Update(ctx context.Context, blogPost models.BlogPost) bool {
	blogPosts, err := s.load(ctx)
	if err != nil {
		withError(s.logger.Error(), err).Str("id", blogPost.ID.String()).Msg("Failed to update blog post")
		return false
	}
	i := indexOf(blogPosts, blogPost.ID)
	if i < 0 {
		s.logger.Warn().Str("id", blogPost.ID.String()).Msg("Blog post not updated, no post has this id")
		return false
	}
	blogPosts[i] = blogPost
	return s.SaveAll(ctx, blogPosts)
}

// DeleteByID returns the save result, so deleting an unknown id is true.
func (s *BlogPostStore) DeleteByID(ctx context.Context, id models.PostID) bool {
	blogPosts, err := s.load(ctx)
	if err != nil {
		withError(s.logger.Error(), err).Str("id", id.String()).Msg("Failed to delete blog post")
		return false
	}
	return s.SaveAll(ctx, withoutID(blogPosts, id))
}

func (s *BlogPostStore) FindByCategory(ctx context.Context, category string) []models.BlogPost {
	return filterByCategory(s.LoadAll(ctx), category)
}

func (s *BlogPostStore) Search(ctx context.Context, keyword string) []models.BlogPost {
	return filterByKeyword(s.LoadAll(ctx), keyword)
}
