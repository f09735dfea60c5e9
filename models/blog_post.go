package models

import (
	"time"
)

// Status is the publication state of a blog post.
type Status string

const (
	StatusPublish Status = "publish"
	StatusDraft   Status = "draft"
)

func (s Status) Valid() bool {
	return s == StatusPublish || s == StatusDraft
}

// BlogPost is one record of the persisted blog collection.
type BlogPost struct {
	ID          PostID    `json:"id"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	Content     Content   `json:"content"`
	Image       string    `json:"image"`
	Date        time.Time `json:"date"`
	Categories  []string  `json:"categories"`
	Tags        []string  `json:"tags"`
	Author      Author    `json:"author"`
	ReadingTime int       `json:"readingTime"`
	Status      Status    `json:"status"`
}

// Author is embedded in every post rather than referenced.
type Author struct {
	Name   string  `json:"name"`
	Avatar string  `json:"avatar"`
	Bio    string  `json:"bio,omitempty"`
	Social *Social `json:"social,omitempty"`
}

type Social struct {
	Twitter  string `json:"twitter,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

func (p BlogPost) IsPublished() bool {
	return p.Status == StatusPublish
}
