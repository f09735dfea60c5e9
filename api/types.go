package api

import (
	"time"

	"github.com/rpupo63/marketing-site-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	healthHandler   healthHandler
	blogPostHandler blogPostHandler
	feedHandler     feedHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
	Cause   string `json:"cause,omitempty"`
}

type BlogPostCollection struct {
	BlogPosts []models.BlogPost `json:"blogPosts"`
	Total     int               `json:"total"`
}

type DeleteResponse struct {
	Status  string `json:"status"`
	Removed int    `json:"removed"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"startedAt"`
	Uptime    string    `json:"uptime"`
}
