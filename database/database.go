package database

import (
	"github.com/rpupo63/marketing-site-backend/kv"
)

// DefaultBlogKey is the storage key the site has always kept its posts under.
const DefaultBlogKey = "blogPosts"

type Database struct {
	backend       kv.Backend
	blogPostRepo  *BlogPostRepo
	blogPostStore *BlogPostStore
}

// New wires the blog repositories over one backend and storage key.
func New(backend kv.Backend, key string) Database {
	if key == "" {
		key = DefaultBlogKey
	}
	repo := NewBlogPostRepo(backend, key)
	return Database{
		backend:       backend,
		blogPostRepo:  repo,
		blogPostStore: NewBlogPostStore(repo),
	}
}

// Accessor methods for each repository

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) BlogPostStore() *BlogPostStore {
	return d.blogPostStore
}

func (d Database) Close() error {
	return kv.Close(d.backend)
}
