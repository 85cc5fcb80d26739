package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/avelis/portfolio/views"
)

type stubMailer struct {
	err  error
	sent int
}

func (m *stubMailer) SendContactNotification(ctx context.Context, name, email, message string) error {
	m.sent++
	return m.err
}

// newTestApp builds an App backed by a throwaway database with routes
// registered. Session and CSRF middleware are left off so requests can be
// driven directly.
func newTestApp(t *testing.T) (*App, *stubMailer) {
	t.Helper()
	cfg := Config{}
	cfg.setDefaults()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "test.db")
	cfg.SessionSecret = "test-secret"

	a := New(cfg, zerolog.Nop())
	store, err := NewStore(cfg.DatabasePath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	a.Store = store

	mailer := &stubMailer{}
	a.Mailer = mailer
	a.setupRoutes()
	return a, mailer
}

func get(t *testing.T, a *App, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func postForm(t *testing.T, a *App, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func itoa64(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestPublicPagesRender(t *testing.T) {
	a, _ := newTestApp(t)
	if err := Seed(a.Store); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{"/", "/about", "/faq", "/works", "/works-masonry", "/blog", "/contact"} {
		rec := get(t, a, path)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "</html>") {
			t.Errorf("GET %s did not render a full page", path)
		}
	}
}

func TestBlogArticle(t *testing.T) {
	a, _ := newTestApp(t)
	if err := Seed(a.Store); err != nil {
		t.Fatal(err)
	}

	rec := get(t, a, "/blog/frontend-innovations-user-journeys")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET article = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Frontend innovations and user journeys") {
		t.Error("article body missing post title")
	}

	rec = get(t, a, "/blog/no-such-post")
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET missing article = %d, want 404", rec.Code)
	}
}

func TestBlogOutOfRangePage(t *testing.T) {
	a, _ := newTestApp(t)
	if err := Seed(a.Store); err != nil {
		t.Fatal(err)
	}

	rec := get(t, a, "/blog?page=99")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /blog?page=99 = %d, want 200", rec.Code)
	}
	// The featured slot still renders; the grid is empty.
	if !strings.Contains(rec.Body.String(), "</html>") {
		t.Error("out-of-range page did not render")
	}
}

func TestProjectDetails(t *testing.T) {
	a, _ := newTestApp(t)
	if err := Seed(a.Store); err != nil {
		t.Fatal(err)
	}

	rec := get(t, a, "/project/1")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /project/1 = %d, want 200", rec.Code)
	}

	for _, path := range []string{"/project/999", "/project/abc"} {
		rec := get(t, a, path)
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s = %d, want 404", path, rec.Code)
		}
	}
}

func TestSubmitContactPersistsAndNotifies(t *testing.T) {
	a, mailer := newTestApp(t)

	rec := postForm(t, a, "/submit_contact", url.Values{
		"name":    {"Ada"},
		"email":   {"ada@example.com"},
		"message": {"Hello there"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("submit = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/contact" {
		t.Errorf("redirect = %q, want /contact", loc)
	}
	if mailer.sent != 1 {
		t.Errorf("notification sent %d times, want 1", mailer.sent)
	}

	messages, err := a.Store.ListMessages("", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(messages))
	}
	if messages[0].Read {
		t.Error("new message should be unread")
	}
	if messages[0].Name != "Ada" || messages[0].Email != "ada@example.com" {
		t.Errorf("stored message = %+v", messages[0])
	}
}

func TestSubmitContactInvalidEmailPersistsNothing(t *testing.T) {
	a, mailer := newTestApp(t)

	rec := postForm(t, a, "/submit_contact", url.Values{
		"name":    {"Ada"},
		"email":   {"not-an-email"},
		"message": {"Hello"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("submit = %d, want 303", rec.Code)
	}
	if mailer.sent != 0 {
		t.Error("invalid submission must not trigger a notification")
	}
	if n, _ := a.Store.CountMessages(); n != 0 {
		t.Errorf("got %d messages, want 0", n)
	}
}

func TestSubmitContactMailFailureKeepsRow(t *testing.T) {
	a, mailer := newTestApp(t)
	mailer.err = errors.New("smtp down")

	rec := postForm(t, a, "/submit_contact", url.Values{
		"name":    {"Ada"},
		"email":   {"ada@example.com"},
		"message": {"Hello"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("submit = %d, want 303", rec.Code)
	}
	if n, _ := a.Store.CountMessages(); n != 1 {
		t.Errorf("got %d messages after mail failure, want 1", n)
	}
}

func subscribeJSON(t *testing.T, a *App, email string) subscribeResponse {
	t.Helper()
	rec := postForm(t, a, "/subscribe", url.Values{"email": {email}})
	if rec.Code != http.StatusOK {
		t.Fatalf("subscribe = %d, want 200", rec.Code)
	}
	var resp subscribeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad subscribe response %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestSubscribeEndpoint(t *testing.T) {
	a, _ := newTestApp(t)

	resp := subscribeJSON(t, a, "reader@example.com")
	if resp.Status != "success" || resp.Message != "Successfully subscribed!" {
		t.Errorf("first subscribe = %+v", resp)
	}

	resp = subscribeJSON(t, a, "reader@example.com")
	if resp.Status != "warning" || resp.Message != "Email already subscribed!" {
		t.Errorf("second subscribe = %+v", resp)
	}

	resp = subscribeJSON(t, a, "bogus")
	if resp.Status != "warning" {
		t.Errorf("invalid email = %+v", resp)
	}
	if n, _ := a.Store.CountSubscribers(); n != 1 {
		t.Errorf("got %d subscribers, want 1", n)
	}
}

func TestWorksCategoryFilter(t *testing.T) {
	a, _ := newTestApp(t)
	if _, err := a.Store.CreateProject(views.Project{Title: "Mobile Thing", Category: "mobile"}); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Store.CreateProject(views.Project{Title: "Web Thing", Category: "web"}); err != nil {
		t.Fatal(err)
	}

	rec := get(t, a, "/works?category=mobile")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /works = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Mobile Thing") {
		t.Error("filtered page missing matching project")
	}
	if strings.Contains(body, "Web Thing") {
		t.Error("filtered page includes project from another category")
	}
}

func TestFeedAndSitemap(t *testing.T) {
	a, _ := newTestApp(t)
	if err := Seed(a.Store); err != nil {
		t.Fatal(err)
	}

	rec := get(t, a, "/feed.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /feed.xml = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<rss") {
		t.Error("feed missing rss element")
	}
	if !strings.Contains(rec.Body.String(), "frontend-innovations-user-journeys") {
		t.Error("feed missing seeded post")
	}

	rec = get(t, a, "/sitemap.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /sitemap.xml = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<urlset") {
		t.Error("sitemap missing urlset element")
	}
}

func TestAdminDashboardAndLists(t *testing.T) {
	a, _ := newTestApp(t)
	if err := Seed(a.Store); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{"/admin", "/admin/projects", "/admin/posts", "/admin/messages", "/admin/subscribers", "/admin/projects/new", "/admin/posts/new", "/admin/subscribers/new"} {
		rec := get(t, a, path)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
	}
}

func TestAdminProjectCRUD(t *testing.T) {
	a, _ := newTestApp(t)

	rec := postForm(t, a, "/admin/projects/new", url.Values{
		"title":       {"New Project"},
		"description": {"Body"},
		"category":    {"web"},
		"featured":    {"on"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("create = %d, want 303", rec.Code)
	}

	projects, err := a.Store.ListProjects("all", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(projects) != 1 || !projects[0].Featured {
		t.Fatalf("created project = %+v", projects)
	}
	id := projects[0].ID

	rec = postForm(t, a, "/admin/projects/"+itoa64(id), url.Values{
		"title":       {"Renamed"},
		"description": {"Body"},
		"category":    {"mobile"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("update = %d, want 303", rec.Code)
	}
	got, err := a.Store.GetProject(id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Renamed" || got.Featured {
		t.Errorf("updated project = %+v", got)
	}

	rec = postForm(t, a, "/admin/projects/"+itoa64(id)+"/delete", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("delete = %d, want 303", rec.Code)
	}
	if n, _ := a.Store.CountProjects(); n != 0 {
		t.Errorf("got %d projects after delete, want 0", n)
	}
}

func TestAdminPostDuplicateSlug(t *testing.T) {
	a, _ := newTestApp(t)

	form := url.Values{
		"title":     {"Post"},
		"slug":      {"the-slug"},
		"content":   {"Body"},
		"published": {"on"},
	}
	if rec := postForm(t, a, "/admin/posts/new", form); rec.Code != http.StatusSeeOther {
		t.Fatalf("create = %d, want 303", rec.Code)
	}
	rec := postForm(t, a, "/admin/posts/new", form)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("duplicate create = %d, want 303 back to the form", rec.Code)
	}
	if n, _ := a.Store.CountPosts(); n != 1 {
		t.Errorf("got %d posts, want 1", n)
	}
}

func TestAdminMarkMessagesRead(t *testing.T) {
	a, _ := newTestApp(t)

	var ids []string
	for _, name := range []string{"a", "b", "c"} {
		id, err := a.Store.CreateMessage(views.ContactMessage{Name: name, Email: name + "@example.com", Message: "hi"})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, itoa64(id))
	}

	rec := postForm(t, a, "/admin/messages/read", url.Values{"ids": ids[:2]})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("mark read = %d, want 303", rec.Code)
	}
	if n, _ := a.Store.CountUnreadMessages(); n != 1 {
		t.Errorf("got %d unread messages, want 1", n)
	}
}

func TestErrorPageForUnknownRoute(t *testing.T) {
	a, _ := newTestApp(t)
	a.Echo.HTTPErrorHandler = a.httpErrorHandler

	rec := get(t, a, "/definitely-not-a-page")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown route = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "404") {
		t.Error("missing rendered error page")
	}
}
