// Package views holds the site's templ components and the record types they
// render. Components are plain Go functions returning templ.Component so the
// root package can pass query results straight through.
package views

import (
	"strconv"
	"strings"
	"time"
)

// Project is a portfolio entry shown in the gallery and on the home page.
type Project struct {
	ID               int64
	Title            string
	Description      string
	ShortDescription string
	ImageURL         string
	Tags             string // comma-separated
	GithubURL        string
	LiveURL          string
	Category         string
	Featured         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TagList splits the comma-separated tags field into trimmed tags.
func (p Project) TagList() []string {
	return splitTags(p.Tags)
}

// Link returns the public URL path for the project details page.
func (p Project) Link() string {
	return "/project/" + strconv.FormatInt(p.ID, 10)
}

// BlogPost is an article, addressed publicly by its unique slug.
type BlogPost struct {
	ID            int64
	Title         string
	Slug          string
	Content       string
	Excerpt       string
	FeaturedImage string
	Tags          string
	Published     bool
	Featured      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TagList splits the comma-separated tags field into trimmed tags.
func (p BlogPost) TagList() []string {
	return splitTags(p.Tags)
}

// Link returns the public URL path for the article page.
func (p BlogPost) Link() string {
	return "/blog/" + p.Slug
}

// ContactMessage is a submission from the public contact form. Rows are
// immutable once written except for the admin console's mark-as-read action.
type ContactMessage struct {
	ID        int64
	Name      string
	Email     string
	Message   string
	Read      bool
	CreatedAt time.Time
}

// NewsletterSubscriber is a signup from the footer newsletter form.
type NewsletterSubscriber struct {
	ID         int64
	Email      string
	Subscribed bool
	CreatedAt  time.Time
}

// SiteConfig carries the display-side configuration into templates: site
// identity plus the operator contact card shown on the contact page.
type SiteConfig struct {
	Name        string
	URL         string
	Description string
	Author      string

	ContactEmail        string
	ContactPhone        string
	ContactLocation     string
	ContactAvailability string
}

// Flash is a one-shot notice drained from the session by the next page render.
type Flash struct {
	Category string // "success" or "error"
	Text     string
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page    int
	PerPage int
	Total   int
}

// TotalPages returns the number of pages needed for Total items.
func (p Pagination) TotalPages() int {
	if p.PerPage <= 0 || p.Total <= 0 {
		return 0
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }

func (p Pagination) HasNext() bool { return p.Page < p.TotalPages() }

func splitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var tags []string
	for _, t := range parts {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
