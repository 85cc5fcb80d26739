package portfolio

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/avelis/portfolio/views"
)

const blogPageSize = 5

func (a *App) handleIndex(c echo.Context) error {
	projects, err := a.Store.FeaturedProjects(3)
	if err != nil {
		return err
	}
	posts, err := a.Store.RecentPosts(3)
	if err != nil {
		return err
	}
	return Render(c, views.Home(a.site, projects, posts))
}

func (a *App) handleWorks(c echo.Context) error {
	category := c.QueryParam("category")
	if category == "" {
		category = "all"
	}
	search := c.QueryParam("search")

	projects, err := a.Store.ListProjects(category, search, nil)
	if err != nil {
		return err
	}
	// Categories come from all projects, not just the filtered set, so the
	// filter bar stays complete.
	categories, err := a.Store.ListCategories()
	if err != nil {
		return err
	}
	return Render(c, views.Works(a.site, projects, categories, category, search))
}

func (a *App) handleWorksMasonry(c echo.Context) error {
	return Render(c, views.WorksMasonry(a.site))
}

func (a *App) handleAbout(c echo.Context) error {
	return Render(c, views.About(a.site))
}

func (a *App) handleFAQ(c echo.Context) error {
	return Render(c, views.FAQ(a.site))
}

func (a *App) handleError404(c echo.Context) error {
	return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site))
}

func (a *App) handleBlog(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}

	var featured *views.BlogPost
	var excludeID int64
	post, err := a.Store.FeaturedPost()
	switch {
	case err == nil:
		featured = &post
		excludeID = post.ID
	case errors.Is(err, ErrNotFound):
		// no featured post; the grid shows everything
	default:
		return err
	}

	posts, total, err := a.Store.ListPublishedPosts(excludeID, page, blogPageSize)
	if err != nil {
		return err
	}
	pg := views.Pagination{Page: page, PerPage: blogPageSize, Total: total}
	return Render(c, views.Blog(a.site, featured, posts, pg))
}

func (a *App) handleBlogArticle(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Store.GetPublishedPost(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site))
		}
		return err
	}
	related, err := a.Store.RelatedPosts(post.ID, 3)
	if err != nil {
		return err
	}
	return Render(c, views.Article(a.site, post, related))
}

func (a *App) handleProjectDetails(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site))
	}
	project, err := a.Store.GetProject(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site))
		}
		return err
	}
	related, err := a.Store.RelatedProjects(project.ID, project.Category, 3)
	if err != nil {
		return err
	}
	return Render(c, views.ProjectDetails(a.site, project, related))
}

func (a *App) handleContact(c echo.Context) error {
	return Render(c, views.Contact(a.site, takeFlashes(c), CsrfToken(c)))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.site))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("server error")
		_ = RenderStatus(c, code, views.ServerError(a.site))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
