package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/marketing-site-backend/database"
	"github.com/rpupo63/marketing-site-backend/models"
)

const feedSize = 20

type feedHandler struct {
	logger        zerolog.Logger
	blogPostStore *database.BlogPostStore
	siteTitle     string
	siteURL       string
	now           func() time.Time
}

func newFeedHandler(blogPostStore *database.BlogPostStore, siteTitle, siteURL string, now func() time.Time) feedHandler {
	return feedHandler{
		logger:        log.With().Str("handlerName", "feedHandler").Logger(),
		blogPostStore: blogPostStore,
		siteTitle:     siteTitle,
		siteURL:       strings.TrimSuffix(siteURL, "/"),
		now:           now,
	}
}

// getFeed serves the newest published posts as RSS 2.0.
func (h feedHandler) getFeed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPosts := h.blogPostStore.LoadAll(r.Context())

		var published []models.BlogPost
		for _, blogPost := range blogPosts {
			if blogPost.IsPublished() {
				published = append(published, blogPost)
			}
		}
		sortNewestFirst(published)
		if len(published) > feedSize {
			published = published[:feedSize]
		}

		feed := &feeds.Feed{
			Title:       h.siteTitle,
			Link:        &feeds.Link{Href: h.siteURL + "/blog"},
			Description: h.siteTitle + " blog",
			Created:     h.now(),
		}
		if len(published) > 0 {
			feed.Updated = published[0].Date
		}

		for _, blogPost := range published {
			link := blogPostURL(h.siteURL, blogPost.ID)
			feed.Items = append(feed.Items, &feeds.Item{
				Id:          link,
				Title:       blogPost.Title,
				Link:        &feeds.Link{Href: link},
				Author:      &feeds.Author{Name: blogPost.Author.Name},
				Description: blogPost.Excerpt,
				Created:     blogPost.Date,
			})
		}

		w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
		if err := feed.WriteRss(w); err != nil {
			h.logger.Error().Err(err).Msg("Failed to write RSS feed")
			http.Error(w, "Failed to generate RSS", http.StatusInternalServerError)
		}
	}
}

// blogPostURL is the public page of a post under the site's /blog path.
func blogPostURL(baseURL string, id models.PostID) string {
	return fmt.Sprintf("%s/blog/%s", strings.TrimSuffix(baseURL, "/"), url.PathEscape(id.String()))
}
