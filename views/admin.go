package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// AdminCounts feeds the console dashboard.
type AdminCounts struct {
	Projects       int
	Posts          int
	Messages       int
	UnreadMessages int
	Subscribers    int
}

// TriState is a yes/no/any filter value as it appears in the query string:
// "" (any), "1" (yes), or "0" (no).
type TriState string

var adminSections = []struct {
	Href  string
	Label string
}{
	{"/admin", "Dashboard"},
	{"/admin/projects", "Projects"},
	{"/admin/posts", "Blog Posts"},
	{"/admin/messages", "Messages"},
	{"/admin/subscribers", "Subscribers"},
}

func adminPage(title string, msgs []Flash, body func(b *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := &writer{ctx: ctx, w: w}
		b.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
		b.raw(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		b.raw(`<meta name="robots" content="noindex"/>`)
		b.raw(`<title>`)
		b.text(title)
		b.raw(` · Portfolio Admin</title>`)
		b.raw(`<link rel="stylesheet" href="/public/css/admin.css"/>`)
		b.raw(`</head><body class="admin">`)
		b.raw(`<header class="admin-header"><span class="brand">Portfolio Admin</span><nav>`)
		for _, s := range adminSections {
			b.rawf(`<a href="%s">%s</a>`, s.Href, attr(s.Label))
		}
		b.raw(`</nav></header><main>`)
		b.rawf(`<h1>%s</h1>`, templ.EscapeString(title))
		flashes(b, msgs)
		body(b)
		b.raw(`</main></body></html>`)
		return b.err
	})
}

// AdminDashboard renders record counts for every managed table.
func AdminDashboard(counts AdminCounts, msgs []Flash) templ.Component {
	return adminPage("Dashboard", msgs, func(b *writer) {
		b.raw(`<ul class="admin-counts">`)
		stat := func(label string, n int, href string) {
			b.rawf(`<li><a href="%s"><strong>%d</strong> %s</a></li>`, href, n, attr(label))
		}
		stat("projects", counts.Projects, "/admin/projects")
		stat("blog posts", counts.Posts, "/admin/posts")
		stat("messages", counts.Messages, "/admin/messages")
		b.rawf(`<li class="unread"><strong>%d</strong> unread messages</li>`, counts.UnreadMessages)
		stat("subscribers", counts.Subscribers, "/admin/subscribers")
		b.raw(`</ul>`)
	})
}

// AdminProjectList renders the project console screen: searchable, filterable
// by category and featured flag.
func AdminProjectList(projects []Project, categories []string, search, category string, featured TriState, msgs []Flash, csrfToken string) templ.Component {
	return adminPage("Projects", msgs, func(b *writer) {
		b.raw(`<a class="admin-new" href="/admin/projects/new">New Project</a>`)

		b.raw(`<form class="admin-filter" action="/admin/projects" method="get">`)
		b.rawf(`<input type="search" name="search" value="%s" placeholder="Search title or description"/>`, attr(search))
		b.raw(`<select name="category"><option value="">All categories</option>`)
		for _, c := range categories {
			sel := ""
			if c == category {
				sel = " selected"
			}
			b.rawf(`<option value="%s"%s>%s</option>`, attr(c), sel, templ.EscapeString(c))
		}
		b.raw(`</select>`)
		triStateSelect(b, "featured", "Featured", featured)
		b.raw(`<button type="submit">Filter</button></form>`)

		b.raw(`<table class="admin-table"><thead><tr><th>Title</th><th>Category</th><th>Featured</th><th>Created</th><th></th></tr></thead><tbody>`)
		for _, p := range projects {
			b.raw(`<tr>`)
			b.rawf(`<td><a href="/admin/projects/%d">%s</a></td>`, p.ID, templ.EscapeString(p.Title))
			b.rawf(`<td>%s</td>`, templ.EscapeString(p.Category))
			b.rawf(`<td>%s</td>`, boolMark(p.Featured))
			b.rawf(`<td>%s</td>`, formatDate(p.CreatedAt))
			deleteCell(b, "/admin/projects/"+strconv.FormatInt(p.ID, 10)+"/delete", csrfToken)
			b.raw(`</tr>`)
		}
		b.raw(`</tbody></table>`)
	})
}

// AdminProjectForm renders the create/edit form for a project.
func AdminProjectForm(project Project, isNew bool, msgs []Flash, csrfToken string) templ.Component {
	title := "Edit Project"
	action := "/admin/projects/" + strconv.FormatInt(project.ID, 10)
	if isNew {
		title = "New Project"
		action = "/admin/projects/new"
	}
	return adminPage(title, msgs, func(b *writer) {
		b.rawf(`<form class="admin-form" action="%s" method="post">`, action)
		b.rawf(`<input type="hidden" name="_csrf" value="%s"/>`, attr(csrfToken))
		textField(b, "title", "Title", project.Title, true)
		textArea(b, "description", "Description", project.Description)
		textField(b, "short_description", "Short description", project.ShortDescription, false)
		textField(b, "image_url", "Image URL", project.ImageURL, false)
		textField(b, "tags", "Tags (comma-separated)", project.Tags, false)
		textField(b, "github_url", "GitHub URL", project.GithubURL, false)
		textField(b, "live_url", "Live URL", project.LiveURL, false)
		textField(b, "category", "Category", project.Category, false)
		checkbox(b, "featured", "Featured", project.Featured)
		b.raw(`<button type="submit">Save</button></form>`)
	})
}

// AdminPostList renders the blog post console screen.
func AdminPostList(posts []BlogPost, search string, published, featured TriState, msgs []Flash, csrfToken string) templ.Component {
	return adminPage("Blog Posts", msgs, func(b *writer) {
		b.raw(`<a class="admin-new" href="/admin/posts/new">New Post</a>`)

		b.raw(`<form class="admin-filter" action="/admin/posts" method="get">`)
		b.rawf(`<input type="search" name="search" value="%s" placeholder="Search title or content"/>`, attr(search))
		triStateSelect(b, "published", "Published", published)
		triStateSelect(b, "featured", "Featured", featured)
		b.raw(`<button type="submit">Filter</button></form>`)

		b.raw(`<table class="admin-table"><thead><tr><th>Title</th><th>Published</th><th>Featured</th><th>Created</th><th></th></tr></thead><tbody>`)
		for _, p := range posts {
			b.raw(`<tr>`)
			b.rawf(`<td><a href="/admin/posts/%d">%s</a></td>`, p.ID, templ.EscapeString(p.Title))
			b.rawf(`<td>%s</td>`, boolMark(p.Published))
			b.rawf(`<td>%s</td>`, boolMark(p.Featured))
			b.rawf(`<td>%s</td>`, formatDate(p.CreatedAt))
			deleteCell(b, "/admin/posts/"+strconv.FormatInt(p.ID, 10)+"/delete", csrfToken)
			b.raw(`</tr>`)
		}
		b.raw(`</tbody></table>`)
	})
}

// AdminPostForm renders the create/edit form for a blog post.
func AdminPostForm(post BlogPost, isNew bool, msgs []Flash, csrfToken string) templ.Component {
	title := "Edit Post"
	action := "/admin/posts/" + strconv.FormatInt(post.ID, 10)
	if isNew {
		title = "New Post"
		action = "/admin/posts/new"
	}
	return adminPage(title, msgs, func(b *writer) {
		b.rawf(`<form class="admin-form" action="%s" method="post">`, action)
		b.rawf(`<input type="hidden" name="_csrf" value="%s"/>`, attr(csrfToken))
		textField(b, "title", "Title", post.Title, true)
		textField(b, "slug", "Slug (leave blank to derive from title)", post.Slug, false)
		textArea(b, "content", "Content (Markdown)", post.Content)
		textArea(b, "excerpt", "Excerpt", post.Excerpt)
		textField(b, "featured_image", "Featured image URL", post.FeaturedImage, false)
		textField(b, "tags", "Tags (comma-separated)", post.Tags, false)
		checkbox(b, "published", "Published", post.Published)
		checkbox(b, "featured", "Featured", post.Featured)
		b.raw(`<button type="submit">Save</button></form>`)
	})
}

// AdminMessageList renders the read-only contact message screen with the
// bulk mark-as-read action. Messages cannot be created or edited here.
func AdminMessageList(messages []ContactMessage, search string, read TriState, msgs []Flash, csrfToken string) templ.Component {
	return adminPage("Messages", msgs, func(b *writer) {
		b.raw(`<form class="admin-filter" action="/admin/messages" method="get">`)
		b.rawf(`<input type="search" name="search" value="%s" placeholder="Search name, email, or message"/>`, attr(search))
		triStateSelect(b, "read", "Read", read)
		b.raw(`<button type="submit">Filter</button></form>`)

		// The bulk form stays outside the table so per-row delete forms do
		// not nest inside it; checkboxes join it via the form attribute.
		b.raw(`<form id="bulk-read" action="/admin/messages/read" method="post">`)
		b.rawf(`<input type="hidden" name="_csrf" value="%s"/>`, attr(csrfToken))
		b.raw(`<button type="submit" class="bulk-read">Mark selected as read</button></form>`)
		b.raw(`<table class="admin-table"><thead><tr><th></th><th>Name</th><th>Email</th><th>Message</th><th>Read</th><th>Received</th><th></th></tr></thead><tbody>`)
		for _, m := range messages {
			cls := "unread"
			if m.Read {
				cls = "read"
			}
			b.rawf(`<tr class="%s">`, cls)
			b.rawf(`<td><input type="checkbox" form="bulk-read" name="ids" value="%d"/></td>`, m.ID)
			b.rawf(`<td>%s</td>`, templ.EscapeString(m.Name))
			b.rawf(`<td>%s</td>`, templ.EscapeString(m.Email))
			b.rawf(`<td class="message-body">%s</td>`, templ.EscapeString(m.Message))
			b.rawf(`<td>%s</td>`, boolMark(m.Read))
			b.rawf(`<td>%s</td>`, formatDate(m.CreatedAt))
			deleteCell(b, "/admin/messages/"+strconv.FormatInt(m.ID, 10)+"/delete", csrfToken)
			b.raw(`</tr>`)
		}
		b.raw(`</tbody></table>`)
	})
}

// AdminSubscriberList renders the newsletter subscriber console screen.
func AdminSubscriberList(subs []NewsletterSubscriber, search string, subscribed TriState, msgs []Flash, csrfToken string) templ.Component {
	return adminPage("Subscribers", msgs, func(b *writer) {
		b.raw(`<a class="admin-new" href="/admin/subscribers/new">New Subscriber</a>`)

		b.raw(`<form class="admin-filter" action="/admin/subscribers" method="get">`)
		b.rawf(`<input type="search" name="search" value="%s" placeholder="Search email"/>`, attr(search))
		triStateSelect(b, "subscribed", "Subscribed", subscribed)
		b.raw(`<button type="submit">Filter</button></form>`)

		b.raw(`<table class="admin-table"><thead><tr><th>Email</th><th>Subscribed</th><th>Created</th><th></th></tr></thead><tbody>`)
		for _, s := range subs {
			b.raw(`<tr>`)
			b.rawf(`<td><a href="/admin/subscribers/%d">%s</a></td>`, s.ID, templ.EscapeString(s.Email))
			b.rawf(`<td>%s</td>`, boolMark(s.Subscribed))
			b.rawf(`<td>%s</td>`, formatDate(s.CreatedAt))
			deleteCell(b, "/admin/subscribers/"+strconv.FormatInt(s.ID, 10)+"/delete", csrfToken)
			b.raw(`</tr>`)
		}
		b.raw(`</tbody></table>`)
	})
}

// AdminSubscriberForm renders the create/edit form for a subscriber.
func AdminSubscriberForm(sub NewsletterSubscriber, isNew bool, msgs []Flash, csrfToken string) templ.Component {
	title := "Edit Subscriber"
	action := "/admin/subscribers/" + strconv.FormatInt(sub.ID, 10)
	if isNew {
		title = "New Subscriber"
		action = "/admin/subscribers/new"
	}
	return adminPage(title, msgs, func(b *writer) {
		b.rawf(`<form class="admin-form" action="%s" method="post">`, action)
		b.rawf(`<input type="hidden" name="_csrf" value="%s"/>`, attr(csrfToken))
		textField(b, "email", "Email", sub.Email, true)
		checkbox(b, "subscribed", "Subscribed", sub.Subscribed)
		b.raw(`<button type="submit">Save</button></form>`)
	})
}

func textField(b *writer, name, label, value string, required bool) {
	req := ""
	if required {
		req = " required"
	}
	b.rawf(`<label for="f-%s">%s</label>`, name, attr(label))
	b.rawf(`<input id="f-%s" type="text" name="%s" value="%s"%s/>`, name, name, attr(value), req)
}

func textArea(b *writer, name, label, value string) {
	b.rawf(`<label for="f-%s">%s</label>`, name, attr(label))
	b.rawf(`<textarea id="f-%s" name="%s">%s</textarea>`, name, name, templ.EscapeString(value))
}

func checkbox(b *writer, name, label string, checked bool) {
	chk := ""
	if checked {
		chk = " checked"
	}
	b.rawf(`<label class="checkbox"><input type="checkbox" name="%s" value="1"%s/> %s</label>`, name, chk, attr(label))
}

func triStateSelect(b *writer, name, label string, value TriState) {
	b.rawf(`<select name="%s" aria-label="%s">`, name, attr(label))
	opts := []struct {
		Value TriState
		Label string
	}{
		{"", label + ": any"},
		{"1", label + ": yes"},
		{"0", label + ": no"},
	}
	for _, o := range opts {
		sel := ""
		if o.Value == value {
			sel = " selected"
		}
		b.rawf(`<option value="%s"%s>%s</option>`, o.Value, sel, attr(o.Label))
	}
	b.raw(`</select>`)
}

func deleteCell(b *writer, action, csrfToken string) {
	b.raw(`<td>`)
	b.rawf(`<form class="inline-delete" action="%s" method="post">`, action)
	b.rawf(`<input type="hidden" name="_csrf" value="%s"/>`, attr(csrfToken))
	b.raw(`<button type="submit">Delete</button></form></td>`)
}

func boolMark(v bool) string {
	if v {
		return "✓"
	}
	return "—"
}
