package portfolio

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/avelis/portfolio/views"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testProject returns a project created offset minutes in the past so tests
// can control recency ordering.
func testProject(title, category string, featured bool, offset int) views.Project {
	return views.Project{
		Title:       title,
		Description: title + " description",
		Category:    category,
		Featured:    featured,
		CreatedAt:   time.Now().Add(-time.Duration(offset) * time.Minute),
	}
}

func testPost(title, slug string, published bool, offset int) views.BlogPost {
	return views.BlogPost{
		Title:     title,
		Slug:      slug,
		Content:   title + " content",
		Published: published,
		CreatedAt: time.Now().Add(-time.Duration(offset) * time.Minute),
	}
}

func TestCreateAndGetProject(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.CreateProject(views.Project{
		Title:            "Test Project",
		Description:      "A longer description",
		ShortDescription: "Short",
		Tags:             "Go, Echo",
		Featured:         true,
	})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	got, err := s.GetProject(id)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if got.Title != "Test Project" {
		t.Errorf("Title = %q, want %q", got.Title, "Test Project")
	}
	if got.Category != "web" {
		t.Errorf("Category = %q, want default %q", got.Category, "web")
	}
	if !got.Featured {
		t.Error("Featured should be true")
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps should be set on insert")
	}
	if tags := got.TagList(); len(tags) != 2 || tags[0] != "Go" || tags[1] != "Echo" {
		t.Errorf("TagList = %v, want [Go Echo]", tags)
	}
}

func TestFeaturedProjectsMostRecentThree(t *testing.T) {
	s := setupTestStore(t)

	for i, p := range []views.Project{
		testProject("Oldest Featured", "web", true, 50),
		testProject("Old Featured", "web", true, 40),
		testProject("Not Featured", "web", false, 30),
		testProject("Mid Featured", "web", true, 20),
		testProject("New Featured", "web", true, 10),
	} {
		if _, err := s.CreateProject(p); err != nil {
			t.Fatalf("CreateProject %d failed: %v", i, err)
		}
	}

	got, err := s.FeaturedProjects(3)
	if err != nil {
		t.Fatalf("FeaturedProjects failed: %v", err)
	}
	want := []string{"New Featured", "Mid Featured", "Old Featured"}
	if len(got) != len(want) {
		t.Fatalf("got %d projects, want %d", len(got), len(want))
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("project %d = %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestListProjectsCategoryAndSearch(t *testing.T) {
	s := setupTestStore(t)

	for _, p := range []views.Project{
		testProject("Delivery App", "mobile", false, 10),
		testProject("Fitness App", "mobile", false, 5),
		testProject("Web App Builder", "web", false, 1),
		{Title: "Tracker", Description: "a mobile app for tracking", Category: "mobile", CreatedAt: time.Now().Add(-2 * time.Minute)},
	} {
		if _, err := s.CreateProject(p); err != nil {
			t.Fatalf("CreateProject failed: %v", err)
		}
	}

	got, err := s.ListProjects("mobile", "app", nil)
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	// Tracker matches via description; Web App Builder is excluded by
	// category. Newest first.
	want := []string{"Tracker", "Fitness App", "Delivery App"}
	if len(got) != len(want) {
		t.Fatalf("got %d projects, want %d: %+v", len(got), len(want), got)
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("project %d = %q, want %q", i, got[i].Title, title)
		}
	}

	all, err := s.ListProjects("all", "", nil)
	if err != nil {
		t.Fatalf("ListProjects all failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("got %d projects for category=all, want 4", len(all))
	}
}

func TestListCategoriesDistinct(t *testing.T) {
	s := setupTestStore(t)

	for _, p := range []views.Project{
		testProject("A", "web", false, 3),
		testProject("B", "web", false, 2),
		testProject("C", "mobile", false, 1),
	} {
		if _, err := s.CreateProject(p); err != nil {
			t.Fatalf("CreateProject failed: %v", err)
		}
	}

	got, err := s.ListCategories()
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(got) != 2 || got[0] != "mobile" || got[1] != "web" {
		t.Errorf("ListCategories = %v, want [mobile web]", got)
	}
}

func TestDuplicateSlugRejected(t *testing.T) {
	s := setupTestStore(t)

	first := testPost("First", "shared-slug", true, 10)
	if _, err := s.CreatePost(first); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	_, err := s.CreatePost(testPost("Second", "shared-slug", true, 5))
	if !errors.Is(err, ErrDuplicateSlug) {
		t.Fatalf("duplicate slug error = %v, want ErrDuplicateSlug", err)
	}

	got, err := s.GetPublishedPost("shared-slug")
	if err != nil {
		t.Fatalf("GetPublishedPost failed: %v", err)
	}
	if got.Title != "First" {
		t.Errorf("first row affected by failed insert: Title = %q", got.Title)
	}
}

func TestUpdatePostSlugCollision(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.CreatePost(testPost("One", "one", true, 10)); err != nil {
		t.Fatal(err)
	}
	id, err := s.CreatePost(testPost("Two", "two", true, 5))
	if err != nil {
		t.Fatal(err)
	}

	p, err := s.GetPost(id)
	if err != nil {
		t.Fatal(err)
	}
	p.Slug = "one"
	if err := s.UpdatePost(p); !errors.Is(err, ErrDuplicateSlug) {
		t.Fatalf("update collision error = %v, want ErrDuplicateSlug", err)
	}
}

func TestGetPublishedPostHidesDrafts(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.CreatePost(testPost("Draft", "draft-post", false, 1)); err != nil {
		t.Fatal(err)
	}

	if _, err := s.GetPublishedPost("draft-post"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("draft lookup error = %v, want ErrNotFound", err)
	}
}

func TestListPublishedPostsPagination(t *testing.T) {
	s := setupTestStore(t)

	for i := 0; i < 7; i++ {
		p := testPost("Post", "post-"+string(rune('a'+i)), true, 70-i)
		if _, err := s.CreatePost(p); err != nil {
			t.Fatal(err)
		}
	}

	page1, total, err := s.ListPublishedPosts(0, 1, 5)
	if err != nil {
		t.Fatalf("page 1 failed: %v", err)
	}
	if total != 7 || len(page1) != 5 {
		t.Errorf("page 1: got %d posts, total %d; want 5 and 7", len(page1), total)
	}

	page2, _, err := s.ListPublishedPosts(0, 2, 5)
	if err != nil {
		t.Fatalf("page 2 failed: %v", err)
	}
	if len(page2) != 2 {
		t.Errorf("page 2: got %d posts, want 2", len(page2))
	}

	// Out-of-range pages return an empty page, not an error.
	page9, total, err := s.ListPublishedPosts(0, 9, 5)
	if err != nil {
		t.Fatalf("page 9 failed: %v", err)
	}
	if len(page9) != 0 {
		t.Errorf("page 9: got %d posts, want 0", len(page9))
	}
	if total != 7 {
		t.Errorf("page 9 total = %d, want 7", total)
	}
}

func TestFeaturedPostMostRecent(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.FeaturedPost(); !errors.Is(err, ErrNotFound) {
		t.Fatal("FeaturedPost on empty table should return ErrNotFound")
	}

	for _, p := range []views.BlogPost{
		testPost("Old Featured", "old-featured", true, 20),
		// A draft must not win even when it is newer.
		testPost("Hidden Featured", "hidden-featured", false, 5),
		testPost("New Featured", "new-featured", true, 10),
	} {
		p.Featured = true
		if _, err := s.CreatePost(p); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.FeaturedPost()
	if err != nil {
		t.Fatalf("FeaturedPost failed: %v", err)
	}
	if got.Title != "New Featured" {
		t.Errorf("FeaturedPost = %q, want %q", got.Title, "New Featured")
	}
}

func TestSubscribeLifecycle(t *testing.T) {
	s := setupTestStore(t)

	res, err := s.Subscribe("reader@example.com")
	if err != nil {
		t.Fatalf("first Subscribe failed: %v", err)
	}
	if res != SubscribedNew {
		t.Errorf("first Subscribe = %v, want SubscribedNew", res)
	}

	res, err = s.Subscribe("reader@example.com")
	if err != nil {
		t.Fatalf("second Subscribe failed: %v", err)
	}
	if res != AlreadySubscribed {
		t.Errorf("second Subscribe = %v, want AlreadySubscribed", res)
	}

	subs, err := s.ListSubscribers("", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 1 {
		t.Fatalf("got %d subscriber rows, want 1", len(subs))
	}

	// Unsubscribe, then subscribing again flips the existing row back on.
	sub := subs[0]
	sub.Subscribed = false
	if err := s.UpdateSubscriber(sub); err != nil {
		t.Fatal(err)
	}
	res, err = s.Subscribe("reader@example.com")
	if err != nil {
		t.Fatalf("resubscribe failed: %v", err)
	}
	if res != Resubscribed {
		t.Errorf("resubscribe = %v, want Resubscribed", res)
	}
	got, err := s.GetSubscriber(sub.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Subscribed {
		t.Error("subscriber should be active after resubscribe")
	}
}

func TestCreateSubscriberDuplicateEmail(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.CreateSubscriber(views.NewsletterSubscriber{Email: "dup@example.com", Subscribed: true}); err != nil {
		t.Fatal(err)
	}
	_, err := s.CreateSubscriber(views.NewsletterSubscriber{Email: "dup@example.com", Subscribed: true})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("duplicate email error = %v, want ErrDuplicateEmail", err)
	}
}

func TestMarkMessagesReadBulk(t *testing.T) {
	s := setupTestStore(t)

	var ids []int64
	for _, name := range []string{"a", "b", "c"} {
		id, err := s.CreateMessage(views.ContactMessage{Name: name, Email: name + "@example.com", Message: "hi"})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}

	if err := s.MarkMessagesRead(ids[:2]); err != nil {
		t.Fatalf("MarkMessagesRead failed: %v", err)
	}

	messages, err := s.ListMessages("", nil)
	if err != nil {
		t.Fatal(err)
	}
	readCount := 0
	for _, m := range messages {
		if m.Read {
			readCount++
			if m.ID != ids[0] && m.ID != ids[1] {
				t.Errorf("unexpected message %d marked read", m.ID)
			}
		}
	}
	if readCount != 2 {
		t.Errorf("got %d read messages, want 2", readCount)
	}

	unread := false
	if got, err := s.ListMessages("", &unread); err != nil || len(got) != 1 {
		t.Errorf("unread filter: got %d messages (err %v), want 1", len(got), err)
	}
}

func TestSeedOnlyWhenEmpty(t *testing.T) {
	s := setupTestStore(t)

	if err := Seed(s); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	n, err := s.CountProjects()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("seed created %d projects, want 3", n)
	}
	posts, err := s.ListAllPosts("", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 2 {
		t.Fatalf("seed created %d posts, want 2", len(posts))
	}

	// Second run must be a no-op.
	if err := Seed(s); err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}
	if n, _ := s.CountProjects(); n != 3 {
		t.Errorf("second seed changed project count to %d", n)
	}
}

func TestRelatedPostsExcludeCurrent(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.CreatePost(testPost("Current", "current", true, 10))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		if _, err := s.CreatePost(testPost("Other", "other-"+string(rune('a'+i)), true, 20+i)); err != nil {
			t.Fatal(err)
		}
	}

	related, err := s.RelatedPosts(id, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(related) != 3 {
		t.Fatalf("got %d related posts, want 3", len(related))
	}
	for _, p := range related {
		if p.ID == id {
			t.Error("related posts include the current post")
		}
	}
}
