package api

import (
	"github.com/rpupo63/marketing-site-backend/config"
	"github.com/rpupo63/marketing-site-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, r router) *routeHandlers {
	return &routeHandlers{
		healthHandler:   newHealthHandler(r.startupTime, r.now),
		blogPostHandler: newBlogPostHandler(database.BlogPostRepo(), database.BlogPostStore(), r.now),
		feedHandler: newFeedHandler(
			database.BlogPostStore(),
			config.GetString(r.config, "SITE_TITLE", "Blog"),
			siteBaseURL(r.config),
			r.now,
		),
	}
}

// siteBaseURL prefers SITE_BASE_URL and falls back to the older BASE_URL.
func siteBaseURL(c map[string]string) string {
	if baseURL := config.GetString(c, "SITE_BASE_URL", ""); baseURL != "" {
		return baseURL
	}
	return config.GetString(c, "BASE_URL", "http://localhost:3000")
}
