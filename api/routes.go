package api

import (
	"github.com/go-chi/chi/v5"
)

// setupPublicRoutes serves the pages' reads. They never fail on storage
// errors; a broken store looks like an empty blog.
func setupPublicRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(RequestLoggingMiddleware)

		r.Get("/healthz", handlers.healthHandler.getHealth())

		r.Get("/blog-posts", handlers.blogPostHandler.getAllBlogPosts())
		r.Get("/blog-post/{blogPostID}", handlers.blogPostHandler.getBlogPost())
		r.Get("/blog/rss.xml", handlers.feedHandler.getFeed())
	})
}

// setupAdminRoutes serves the editor's writes, which report storage errors.
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(RequestLoggingMiddleware)
		r.Use(authMiddleware.authenticate)

		r.Post("/blog-post", handlers.blogPostHandler.createBlogPost())
		r.Put("/blog-post/{blogPostID}", handlers.blogPostHandler.updateBlogPost())
		r.Delete("/blog-post/{blogPostID}", handlers.blogPostHandler.deleteBlogPost())
	})
}
