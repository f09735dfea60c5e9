package database

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rpupo63/marketing-site-backend/errs"
	"github.com/rpupo63/marketing-site-backend/kv"
	"github.com/rpupo63/marketing-site-backend/models"
)

// BlogPostRepo keeps the whole blog as one JSON array under a single key.
// Every call reads the full collection, and every mutation rewrites it.
// Nothing serializes concurrent writers: two overlapping load-modify-save
// cycles lose one of the updates.
type BlogPostRepo struct {
	backend kv.Backend
	key     string
}

func NewBlogPostRepo(backend kv.Backend, key string) *BlogPostRepo {
	return &BlogPostRepo{backend: backend, key: key}
}

// Key returns the storage key the collection lives under.
func (r *BlogPostRepo) Key() string {
	return r.key
}

// LoadAll returns the stored collection in stored order. An absent key is an
// empty collection.
func (r *BlogPostRepo) LoadAll(ctx context.Context) ([]models.BlogPost, error) {
	raw, ok, err := r.backend.Get(ctx, r.key)
	if err != nil {
		return nil, errs.NewStorageReadError(r.key, err)
	}
	if !ok {
		return []models.BlogPost{}, nil
	}

	var blogPosts []models.BlogPost
	if err := json.Unmarshal([]byte(raw), &blogPosts); err != nil {
		return nil, errs.NewDeserializationError(r.key, err)
	}
	if blogPosts == nil {
		blogPosts = []models.BlogPost{}
	}
	return blogPosts, nil
}

// SaveAll replaces the stored collection with blogPosts.
func (r *BlogPostRepo) SaveAll(ctx context.Context, blogPosts []models.BlogPost) error {
	if blogPosts == nil {
		blogPosts = []models.BlogPost{}
	}
	data, err := json.Marshal(blogPosts)
	if err != nil {
		return errs.NewStorageWriteError(r.key, err)
	}
	if err := r.backend.Set(ctx, r.key, string(data)); err != nil {
		return errs.NewStorageWriteError(r.key, err)
	}
	return nil
}

// FindByID returns the first post whose id matches, or nil when none does.
func (r *BlogPostRepo) FindByID(ctx context.Context, id models.PostID) (*models.BlogPost, error) {
	blogPosts, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(blogPosts, id); i >= 0 {
		return &blogPosts[i], nil
	}
	return nil, nil
}

// Add inserts blogPost at the head of the collection. Ids are not checked
// for uniqueness; a duplicate shadows the older record for every id lookup.
func (r *BlogPostRepo) Add(ctx context.Context, blogPost models.BlogPost) error {
	blogPosts, err := r.LoadAll(ctx)
	if err != nil {
		return err
	}
	return r.SaveAll(ctx, append([]models.BlogPost{blogPost}, blogPosts...))
}

// Update replaces the first post with blogPost's id. Nothing is written when
// no post matches.
func (r *BlogPostRepo) Update(ctx context.Context, blogPost models.BlogPost) error {
	blogPosts, err := r.LoadAll(ctx)
	if err != nil {
		return err
	}
	i := indexOf(blogPosts, blogPost.ID)
	if i < 0 {
		return errs.NewNotFound("blog post " + blogPost.ID.String())
	}
	blogPosts[i] = blogPost
	return r.SaveAll(ctx, blogPosts)
}

// DeleteByID removes every post with the given id and reports how many were
// removed. The collection is rewritten even when nothing matched.
func (r *BlogPostRepo) DeleteByID(ctx context.Context, id models.PostID) (int, error) {
	blogPosts, err := r.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	kept := withoutID(blogPosts, id)
	if err := r.SaveAll(ctx, kept); err != nil {
		return 0, err
	}
	return len(blogPosts) - len(kept), nil
}

// FindByCategory returns, in stored order, the posts carrying category,
// compared case-insensitively.
func (r *BlogPostRepo) FindByCategory(ctx context.Context, category string) ([]models.BlogPost, error) {
	blogPosts, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return filterByCategory(blogPosts, category), nil
}

// Search matches keyword case-insensitively against title, excerpt and
// plain-string content. Block content is not searched.
func (r *BlogPostRepo) Search(ctx context.Context, keyword string) ([]models.BlogPost, error) {
	blogPosts, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return filterByKeyword(blogPosts, keyword), nil
}

func filterByCategory(blogPosts []models.BlogPost, category string) []models.BlogPost {
	found := []models.BlogPost{}
	for _, blogPost := range blogPosts {
		if HasCategory(blogPost, category) {
			found = append(found, blogPost)
		}
	}
	return found
}

func filterByKeyword(blogPosts []models.BlogPost, keyword string) []models.BlogPost {
	needle := strings.ToLower(keyword)
	found := []models.BlogPost{}
	for _, blogPost := range blogPosts {
		if matchesKeyword(blogPost, needle) {
			found = append(found, blogPost)
		}
	}
	return found
}

func withoutID(blogPosts []models.BlogPost, id models.PostID) []models.BlogPost {
	kept := make([]models.BlogPost, 0, len(blogPosts))
	for _, blogPost := range blogPosts {
		if blogPost.ID != id {
			kept = append(kept, blogPost)
		}
	}
	return kept
}

func matchesKeyword(blogPost models.BlogPost, needle string) bool {
	if strings.Contains(strings.ToLower(blogPost.Title), needle) ||
		strings.Contains(strings.ToLower(blogPost.Excerpt), needle) {
		return true
	}
	return !blogPost.Content.IsBlocks() && strings.Contains(strings.ToLower(blogPost.Content.Text), needle)
}

func indexOf(blogPosts []models.BlogPost, id models.PostID) int {
	for i, blogPost := range blogPosts {
		if blogPost.ID == id {
			return i
		}
	}
	return -1
}

// HasCategory compares categories case-insensitively.
func HasCategory(blogPost models.BlogPost, category string) bool {
	for _, c := range blogPost.Categories {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}
