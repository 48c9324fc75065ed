package web

import (
	"net/http"
	"strconv"
	"strings"
	"testing"
	"yatube/db"
	"yatube/feed"
	"yatube/models"
)

type pageResponse struct {
	Page PageInfo `json:"page"`
}

func TestPagesShowTheRightContext(t *testing.T) {
	f := newFixture(t)
	cl := f.login(t, &f.author)

	check := func(t *testing.T, got PageInfo) {
		t.Helper()
		if len(got.Posts) != 1 {
			t.Fatalf("posts = %+v, want one post", got.Posts)
		}
		p := got.Posts[0]
		if p.ID != f.post.ID || p.Text != "Test post" || p.Author != "Author" || p.Group != "test-slug" {
			t.Errorf("post = %+v", p)
		}
	}

	t.Run("index", func(t *testing.T) {
		var resp pageResponse
		cl.getJSON("/?format=json", &resp)
		check(t, resp.Page)
	})
	t.Run("group", func(t *testing.T) {
		var resp struct {
			Group GroupInfo `json:"group"`
			Page  PageInfo  `json:"page"`
		}
		cl.getJSON("/group/test-slug/?format=json", &resp)
		check(t, resp.Page)
		if resp.Group.Title != "Test group" || resp.Group.Description != "Test description" {
			t.Errorf("group = %+v", resp.Group)
		}
	})
	t.Run("profile", func(t *testing.T) {
		var resp struct {
			Author    string   `json:"author"`
			PostCount int      `json:"post_count"`
			Page      PageInfo `json:"page"`
		}
		cl.getJSON("/profile/Author/?format=json", &resp)
		check(t, resp.Page)
		if resp.Author != "Author" || resp.PostCount != 1 {
			t.Errorf("author = %q with %d posts", resp.Author, resp.PostCount)
		}
	})
	t.Run("detail", func(t *testing.T) {
		var resp struct {
			Post      PostInfo `json:"post"`
			PostCount int      `json:"post_count"`
		}
		cl.getJSON("/posts/"+strconv.FormatUint(f.post.ID, 10)+"/?format=json", &resp)
		if resp.Post.ID != f.post.ID || resp.Post.Text != "Test post" || resp.PostCount != 1 {
			t.Errorf("detail = %+v", resp)
		}
	})
}

func TestPostStaysOutOfForeignFeeds(t *testing.T) {
	f := newFixture(t)
	other := models.Group{Title: "Other group", Slug: "other"}
	if err := db.Instance.Create(&other).Error; err != nil {
		t.Fatal(err)
	}
	if _, err := models.PostCreate(&f.other, "Someone else", other.ID, ""); err != nil {
		t.Fatal(err)
	}
	cl := f.guest(t)

	var resp pageResponse
	cl.getJSON("/profile/Author/?format=json", &resp)
	for _, p := range resp.Page.Posts {
		if p.Text == "Someone else" {
			t.Errorf("post of No_author shown in the profile of Author")
		}
	}
	cl.getJSON("/group/test-slug/?format=json", &resp)
	for _, p := range resp.Page.Posts {
		if p.Text == "Someone else" {
			t.Errorf("post of group other shown in group test-slug")
		}
	}
	cl.getJSON("/group/other/?format=json", &resp)
	if len(resp.Page.Posts) != 1 || resp.Page.Posts[0].Text != "Someone else" {
		t.Errorf("group other = %+v", resp.Page.Posts)
	}
}

func TestPaginator(t *testing.T) {
	f := newFixture(t)
	// 12 more posts for 13 in every feed
	for i := 0; i < 12; i++ {
		if _, err := models.PostCreate(&f.author, "Post "+strconv.Itoa(i), f.group.ID, ""); err != nil {
			t.Fatal(err)
		}
	}
	cl := f.guest(t)
	paths := []string{"/", "/group/test-slug/", "/profile/Author/"}
	tests := []struct {
		query string
		posts int
	}{
		{"", 10},
		{"page=1&", 10},
		{"page=2&", 3},
		{"page=3&", 0},
	}
	for _, path := range paths {
		for _, tt := range tests {
			target := path + "?" + tt.query + "format=json"
			t.Run(target, func(t *testing.T) {
				var resp pageResponse
				cl.getJSON(target, &resp)
				if len(resp.Page.Posts) != tt.posts {
					t.Errorf("posts = %d, want %d", len(resp.Page.Posts), tt.posts)
				}
				if resp.Page.Count != 13 || resp.Page.TotalPages != 2 {
					t.Errorf("count = %d, pages = %d", resp.Page.Count, resp.Page.TotalPages)
				}
			})
		}
	}

	var first pageResponse
	cl.getJSON("/?format=json", &first)
	if first.Page.Posts[0].Text != "Post 11" || first.Page.HasPrevious || !first.Page.HasNext {
		t.Errorf("first page = %+v", first.Page)
	}
}

func TestInvalidPageNumber(t *testing.T) {
	f := newFixture(t)
	cl := f.guest(t)
	for _, target := range []string{"/?page=0", "/?page=-1", "/?page=abc", "/group/test-slug/?page=0", "/profile/Author/?page=x&format=json"} {
		t.Run(target, func(t *testing.T) {
			if w := cl.get(target); w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestIndexIsCachedUntilInvalidated(t *testing.T) {
	f := newFixture(t)
	cl := f.login(t, &f.author)

	before := cl.get("/").Body.String()
	if !strings.Contains(before, "Test post") {
		t.Fatalf("index does not show the post")
	}

	if _, err := models.PostCreate(&f.author, "Written behind the cache", 0, ""); err != nil {
		t.Fatal(err)
	}
	if body := cl.get("/").Body.String(); strings.Contains(body, "Written behind the cache") {
		t.Errorf("index changed without invalidation")
	}
	// the JSON view reads the feed directly
	var resp pageResponse
	cl.getJSON("/?format=json", &resp)
	if resp.Page.Count != 2 {
		t.Errorf("feed count = %d, want 2", resp.Page.Count)
	}

	assertRedirect(t, cl.postForm("/create/", map[string][]string{"text": {"Created through the form"}}), "/profile/Author/")
	body := cl.get("/").Body.String()
	if !strings.Contains(body, "Written behind the cache") || !strings.Contains(body, "Created through the form") {
		t.Errorf("index is stale after invalidation")
	}
}

func TestCachedIndexIsNotShared(t *testing.T) {
	f := newFixture(t)
	_ = f.login(t, &f.author).get("/")
	body := f.guest(t).get("/").Body.String()
	if strings.Contains(body, "/auth/logout/") {
		t.Errorf("guest sees the navigation of a logged in user")
	}
	if !strings.Contains(body, "Test post") {
		t.Errorf("guest index misses the post")
	}
}

func TestIndexCachesOnlyExistingPages(t *testing.T) {
	f := newFixture(t)
	cl := f.guest(t)
	for _, target := range []string{"/?page=999", "/?page=2"} {
		if w := cl.get(target); w.Code != http.StatusOK {
			t.Fatalf("GET %s = %d", target, w.Code)
		}
	}
	if n := f.renders.Len(feed.Global); n != 0 {
		t.Errorf("%d pages cached for pages past the end", n)
	}
	cl.get("/")
	if n := f.renders.Len(feed.Global); n != 1 {
		t.Errorf("%d pages cached after GET /, want 1", n)
	}
}
