// Package portfolio is a personal-portfolio content site built with Go,
// Echo, and templ. It serves the marketing pages, a filterable project
// gallery, a paginated blog, a contact form with operator email
// notifications, a newsletter signup endpoint, and a record-management
// console over the underlying content tables.
package portfolio

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/avelis/portfolio/views"
)

// App is the central application. It wires together the store, mailer,
// handlers, and middleware.
type App struct {
	Config Config
	Echo   *echo.Echo
	Store  *Store
	Mailer NotificationSender

	log       zerolog.Logger
	site      views.SiteConfig
	staticDir string
}

// New creates the App with the given configuration and logger.
func New(cfg Config, log zerolog.Logger) *App {
	return &App{
		Config:    cfg,
		Echo:      echo.New(),
		Mailer:    NewMailer(cfg),
		log:       log,
		site:      cfg.Site(),
		staticDir: "public",
	}
}

// Start initializes the database, seeds first-run content, registers
// middleware and routes, and starts the server. It blocks until the server
// stops.
func (a *App) Start() error {
	if err := a.bootstrap(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) bootstrap() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("portfolio: SESSION_SECRET is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("portfolio: init store: %w", err)
	}
	a.Store = store

	if err := Seed(store); err != nil {
		return fmt.Errorf("portfolio: seed: %w", err)
	}

	a.setupMiddleware()
	a.setupRoutes()
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)

	e.GET("/", a.handleIndex)
	e.GET("/about", a.handleAbout)
	e.GET("/faq", a.handleFAQ)
	e.GET("/works", a.handleWorks)
	e.GET("/works-masonry", a.handleWorksMasonry)
	e.GET("/blog", a.handleBlog)
	e.GET("/blog/:slug", a.handleBlogArticle)
	e.GET("/project/:id", a.handleProjectDetails)
	e.GET("/contact", a.handleContact)
	e.GET("/404", a.handleError404)
	e.POST("/submit_contact", a.handleSubmitContact)
	e.POST("/subscribe", a.handleSubscribe)

	e.GET("/feed.xml", a.handleFeed)
	e.GET("/sitemap.xml", a.handleSitemap)

	admin := e.Group("/admin")
	admin.GET("", a.handleAdminDashboard)
	admin.GET("/projects", a.handleAdminProjects)
	admin.GET("/projects/new", a.handleAdminProjectNew)
	admin.POST("/projects/new", a.handleAdminProjectCreate)
	admin.GET("/projects/:id", a.handleAdminProjectEdit)
	admin.POST("/projects/:id", a.handleAdminProjectUpdate)
	admin.POST("/projects/:id/delete", a.handleAdminProjectDelete)
	admin.GET("/posts", a.handleAdminPosts)
	admin.GET("/posts/new", a.handleAdminPostNew)
	admin.POST("/posts/new", a.handleAdminPostCreate)
	admin.GET("/posts/:id", a.handleAdminPostEdit)
	admin.POST("/posts/:id", a.handleAdminPostUpdate)
	admin.POST("/posts/:id/delete", a.handleAdminPostDelete)
	admin.GET("/messages", a.handleAdminMessages)
	admin.POST("/messages/read", a.handleAdminMessagesMarkRead)
	admin.POST("/messages/:id/delete", a.handleAdminMessageDelete)
	admin.GET("/subscribers", a.handleAdminSubscribers)
	admin.GET("/subscribers/new", a.handleAdminSubscriberNew)
	admin.POST("/subscribers/new", a.handleAdminSubscriberCreate)
	admin.GET("/subscribers/:id", a.handleAdminSubscriberEdit)
	admin.POST("/subscribers/:id", a.handleAdminSubscriberUpdate)
	admin.POST("/subscribers/:id/delete", a.handleAdminSubscriberDelete)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
