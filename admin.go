package portfolio

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/avelis/portfolio/views"
)

// The record-management console. Every create/update confirms with a flash
// naming the affected record; contact messages are read-only apart from
// delete and the bulk mark-as-read action.

func (a *App) handleAdminDashboard(c echo.Context) error {
	var counts views.AdminCounts
	var err error
	if counts.Projects, err = a.Store.CountProjects(); err != nil {
		return err
	}
	if counts.Posts, err = a.Store.CountPosts(); err != nil {
		return err
	}
	if counts.Messages, err = a.Store.CountMessages(); err != nil {
		return err
	}
	if counts.UnreadMessages, err = a.Store.CountUnreadMessages(); err != nil {
		return err
	}
	if counts.Subscribers, err = a.Store.CountSubscribers(); err != nil {
		return err
	}
	return Render(c, views.AdminDashboard(counts, takeFlashes(c)))
}

// triStateParam reads a yes/no/any query value ("1", "0", or empty).
func triStateParam(c echo.Context, name string) (views.TriState, *bool) {
	switch c.QueryParam(name) {
	case "1":
		v := true
		return "1", &v
	case "0":
		v := false
		return "0", &v
	default:
		return "", nil
	}
}

func paramID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func formBool(c echo.Context, name string) bool {
	return c.FormValue(name) != ""
}

// --- Projects ---

func (a *App) handleAdminProjects(c echo.Context) error {
	search := c.QueryParam("search")
	category := c.QueryParam("category")
	featuredTS, featured := triStateParam(c, "featured")

	projects, err := a.Store.ListProjects(category, search, featured)
	if err != nil {
		return err
	}
	categories, err := a.Store.ListCategories()
	if err != nil {
		return err
	}
	return Render(c, views.AdminProjectList(projects, categories, search, category, featuredTS, takeFlashes(c), CsrfToken(c)))
}

func (a *App) handleAdminProjectNew(c echo.Context) error {
	return Render(c, views.AdminProjectForm(views.Project{Category: "web"}, true, takeFlashes(c), CsrfToken(c)))
}

func projectFromForm(c echo.Context) views.Project {
	return views.Project{
		Title:            c.FormValue("title"),
		Description:      c.FormValue("description"),
		ShortDescription: c.FormValue("short_description"),
		ImageURL:         c.FormValue("image_url"),
		Tags:             c.FormValue("tags"),
		GithubURL:        c.FormValue("github_url"),
		LiveURL:          c.FormValue("live_url"),
		Category:         c.FormValue("category"),
		Featured:         formBool(c, "featured"),
	}
}

func (a *App) handleAdminProjectCreate(c echo.Context) error {
	p := projectFromForm(c)
	if p.Title == "" {
		addFlash(c, "error", "Title is required.")
		return c.Redirect(http.StatusSeeOther, "/admin/projects/new")
	}
	if _, err := a.Store.CreateProject(p); err != nil {
		return err
	}
	addFlash(c, "success", `Project "`+p.Title+`" created successfully!`)
	return c.Redirect(http.StatusSeeOther, "/admin/projects")
}

func (a *App) handleAdminProjectEdit(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return echo.ErrNotFound
	}
	project, err := a.Store.GetProject(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	return Render(c, views.AdminProjectForm(project, false, takeFlashes(c), CsrfToken(c)))
}

func (a *App) handleAdminProjectUpdate(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return echo.ErrNotFound
	}
	p := projectFromForm(c)
	p.ID = id
	if p.Title == "" {
		addFlash(c, "error", "Title is required.")
		return c.Redirect(http.StatusSeeOther, "/admin/projects/"+c.Param("id"))
	}
	if err := a.Store.UpdateProject(p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	addFlash(c, "success", `Project "`+p.Title+`" updated successfully!`)
	return c.Redirect(http.StatusSeeOther, "/admin/projects")
}

func (a *App) handleAdminProjectDelete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return echo.ErrNotFound
	}
	if err := a.Store.DeleteProject(id); err != nil {
		return err
	}
	addFlash(c, "success", "Project deleted.")
	return c.Redirect(http.StatusSeeOther, "/admin/projects")
}

// --- Blog posts ---

func (a *App) handleAdminPosts(c echo.Context) error {
	search := c.QueryParam("search")
	publishedTS, published := triStateParam(c, "published")
	featuredTS, featured := triStateParam(c, "featured")

	posts, err := a.Store.ListAllPosts(search, published, featured)
	if err != nil {
		return err
	}
	return Render(c, views.AdminPostList(posts, search, publishedTS, featuredTS, takeFlashes(c), CsrfToken(c)))
}

func (a *App) handleAdminPostNew(c echo.Context) error {
	return Render(c, views.AdminPostForm(views.BlogPost{}, true, takeFlashes(c), CsrfToken(c)))
}

func postFromForm(c echo.Context) views.BlogPost {
	p := views.BlogPost{
		Title:         c.FormValue("title"),
		Slug:          c.FormValue("slug"),
		Content:       c.FormValue("content"),
		Excerpt:       c.FormValue("excerpt"),
		FeaturedImage: c.FormValue("featured_image"),
		Tags:          c.FormValue("tags"),
		Published:     formBool(c, "published"),
		Featured:      formBool(c, "featured"),
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	return p
}

func (a *App) handleAdminPostCreate(c echo.Context) error {
	p := postFromForm(c)
	if p.Title == "" || p.Slug == "" || p.Content == "" {
		addFlash(c, "error", "Title, slug, and content are required.")
		return c.Redirect(http.StatusSeeOther, "/admin/posts/new")
	}
	if _, err := a.Store.CreatePost(p); err != nil {
		if errors.Is(err, ErrDuplicateSlug) {
			addFlash(c, "error", `A post with slug "`+p.Slug+`" already exists.`)
			return c.Redirect(http.StatusSeeOther, "/admin/posts/new")
		}
		return err
	}
	addFlash(c, "success", `Blog post "`+p.Title+`" created successfully!`)
	return c.Redirect(http.StatusSeeOther, "/admin/posts")
}

func (a *App) handleAdminPostEdit(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return echo.ErrNotFound
	}
	post, err := a.Store.GetPost(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	return Render(c, views.AdminPostForm(post, false, takeFlashes(c), CsrfToken(c)))
}

func (a *App) handleAdminPostUpdate(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return echo.ErrNotFound
	}
	p := postFromForm(c)
	p.ID = id
	if p.Title == "" || p.Slug == "" || p.Content == "" {
		addFlash(c, "error", "Title, slug, and content are required.")
		return c.Redirect(http.StatusSeeOther, "/admin/posts/"+c.Param("id"))
	}
	if err := a.Store.UpdatePost(p); err != nil {
		switch {
		case errors.Is(err, ErrDuplicateSlug):
			addFlash(c, "error", `A post with slug "`+p.Slug+`" already exists.`)
			return c.Redirect(http.StatusSeeOther, "/admin/posts/"+c.Param("id"))
		case errors.Is(err, ErrNotFound):
			return echo.ErrNotFound
		default:
			return err
		}
	}
	addFlash(c, "success", `Blog post "`+p.Title+`" updated successfully!`)
	return c.Redirect(http.StatusSeeOther, "/admin/posts")
}

func (a *App) handleAdminPostDelete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return echo.ErrNotFound
	}
	if err := a.Store.DeletePost(id); err != nil {
		return err
	}
	addFlash(c, "success", "Blog post deleted.")
	return c.Redirect(http.StatusSeeOther, "/admin/posts")
}

// --- Contact messages ---

func (a *App) handleAdminMessages(c echo.Context) error {
	search := c.QueryParam("search")
	readTS, read := triStateParam(c, "read")

	messages, err := a.Store.ListMessages(search, read)
	if err != nil {
		return err
	}
	return Render(c, views.AdminMessageList(messages, search, readTS, takeFlashes(c), CsrfToken(c)))
}

func (a *App) handleAdminMessagesMarkRead(c echo.Context) error {
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	var ids []int64
	for _, raw := range c.Request().PostForm["ids"] {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if err := a.Store.MarkMessagesRead(ids); err != nil {
		return err
	}
	addFlash(c, "success", "Messages marked as read!")
	return c.Redirect(http.StatusSeeOther, "/admin/messages")
}

func (a *App) handleAdminMessageDelete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return echo.ErrNotFound
	}
	if err := a.Store.DeleteMessage(id); err != nil {
		return err
	}
	addFlash(c, "success", "Message deleted.")
	return c.Redirect(http.StatusSeeOther, "/admin/messages")
}

// --- Newsletter subscribers ---

func (a *App) handleAdminSubscribers(c echo.Context) error {
	search := c.QueryParam("search")
	subscribedTS, subscribed := triStateParam(c, "subscribed")

	subs, err := a.Store.ListSubscribers(search, subscribed)
	if err != nil {
		return err
	}
	return Render(c, views.AdminSubscriberList(subs, search, subscribedTS, takeFlashes(c), CsrfToken(c)))
}

func (a *App) handleAdminSubscriberNew(c echo.Context) error {
	return Render(c, views.AdminSubscriberForm(views.NewsletterSubscriber{Subscribed: true}, true, takeFlashes(c), CsrfToken(c)))
}

func (a *App) handleAdminSubscriberCreate(c echo.Context) error {
	sub := views.NewsletterSubscriber{
		Email:      c.FormValue("email"),
		Subscribed: formBool(c, "subscribed"),
	}
	if sub.Email == "" {
		addFlash(c, "error", "Email is required.")
		return c.Redirect(http.StatusSeeOther, "/admin/subscribers/new")
	}
	if _, err := a.Store.CreateSubscriber(sub); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			addFlash(c, "error", `A subscriber with email "`+sub.Email+`" already exists.`)
			return c.Redirect(http.StatusSeeOther, "/admin/subscribers/new")
		}
		return err
	}
	addFlash(c, "success", `Subscriber "`+sub.Email+`" created successfully!`)
	return c.Redirect(http.StatusSeeOther, "/admin/subscribers")
}

func (a *App) handleAdminSubscriberEdit(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return echo.ErrNotFound
	}
	sub, err := a.Store.GetSubscriber(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	return Render(c, views.AdminSubscriberForm(sub, false, takeFlashes(c), CsrfToken(c)))
}

func (a *App) handleAdminSubscriberUpdate(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return echo.ErrNotFound
	}
	sub := views.NewsletterSubscriber{
		ID:         id,
		Email:      c.FormValue("email"),
		Subscribed: formBool(c, "subscribed"),
	}
	if err := a.Store.UpdateSubscriber(sub); err != nil {
		switch {
		case errors.Is(err, ErrDuplicateEmail):
			addFlash(c, "error", `A subscriber with email "`+sub.Email+`" already exists.`)
			return c.Redirect(http.StatusSeeOther, "/admin/subscribers/"+c.Param("id"))
		case errors.Is(err, ErrNotFound):
			return echo.ErrNotFound
		default:
			return err
		}
	}
	addFlash(c, "success", `Subscriber "`+sub.Email+`" updated successfully!`)
	return c.Redirect(http.StatusSeeOther, "/admin/subscribers")
}

func (a *App) handleAdminSubscriberDelete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return echo.ErrNotFound
	}
	if err := a.Store.DeleteSubscriber(id); err != nil {
		return err
	}
	addFlash(c, "success", "Subscriber deleted.")
	return c.Redirect(http.StatusSeeOther, "/admin/subscribers")
}
