package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"
)

func TestURLExistsForEveryone(t *testing.T) {
	f := newFixture(t)
	guest := f.guest(t)
	addresses := []string{
		"/",
		"/group/" + f.group.Slug + "/",
		"/profile/" + f.other.Username + "/",
		"/posts/" + strconv.FormatUint(f.post.ID, 10) + "/",
		"/auth/login/",
		"/auth/signup/",
	}
	for _, address := range addresses {
		t.Run(address, func(t *testing.T) {
			if w := guest.get(address); w.Code != http.StatusOK {
				t.Errorf("GET %s = %d, want 200", address, w.Code)
			}
		})
	}
}

func TestURLsRenderTheirPage(t *testing.T) {
	f := newFixture(t)
	author := f.login(t, &f.author)
	postID := strconv.FormatUint(f.post.ID, 10)
	tests := []struct {
		address, marker string
	}{
		{"/", "<h1>Latest posts</h1>"},
		{"/group/" + f.group.Slug + "/", "<h1>Test group</h1>"},
		{"/profile/" + f.other.Username + "/", "All posts by No_author"},
		{"/posts/" + postID + "/", "<p>Test post</p>"},
		{"/create/", "<h1>New post</h1>"},
		{"/posts/" + postID + "/edit/", "<h1>Edit post</h1>"},
	}
	for _, page := range tests {
		t.Run(page.address, func(t *testing.T) {
			w := author.get(page.address)
			if w.Code != http.StatusOK {
				t.Fatalf("GET %s = %d, want 200", page.address, w.Code)
			}
			if !strings.Contains(w.Body.String(), page.marker) {
				t.Errorf("GET %s does not contain %q", page.address, page.marker)
			}
		})
	}
}

func TestNotExistingPageIs404(t *testing.T) {
	f := newFixture(t)
	guest := f.guest(t)
	for _, address := range []string{
		"/not_exist/",
		"/group/no-such-group/",
		"/profile/nobody/",
		"/posts/100500/",
		"/posts/abc/",
		"/media/posts/missing.jpg",
	} {
		if w := guest.get(address); w.Code != http.StatusNotFound {
			t.Errorf("GET %s = %d, want 404", address, w.Code)
		}
	}
	w := guest.get("/not_exist/")
	if !strings.Contains(w.Body.String(), "Page not found") {
		t.Errorf("404 page not rendered: %s", w.Body.String())
	}
}

func TestAuthorCanOpenEditPage(t *testing.T) {
	f := newFixture(t)
	w := f.login(t, &f.author).get("/posts/" + strconv.FormatUint(f.post.ID, 10) + "/edit/")
	if w.Code != http.StatusOK {
		t.Errorf("author edit page = %d, want 200", w.Code)
	}
}

func TestNonAuthorIsRedirectedToPost(t *testing.T) {
	f := newFixture(t)
	postURL := "/posts/" + strconv.FormatUint(f.post.ID, 10) + "/"
	other := f.login(t, &f.other)
	assertRedirect(t, other.get(postURL+"edit/"), postURL)
	w := other.postForm(postURL+"edit/", url.Values{"text": {"Hijacked"}})
	assertRedirect(t, w, postURL)
}

func TestGuestIsRedirectedToLogin(t *testing.T) {
	f := newFixture(t)
	guest := f.guest(t)
	editURL := "/posts/" + strconv.FormatUint(f.post.ID, 10) + "/edit/"
	tests := []struct {
		method string
		url    string
	}{
		{http.MethodGet, "/create/"},
		{http.MethodPost, "/create/"},
		{http.MethodGet, editURL},
		{http.MethodPost, editURL},
		{http.MethodPost, "/posts/" + strconv.FormatUint(f.post.ID, 10) + "/comment/"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			w := guest.do(tt.method, tt.url, nil, "")
			if w.Code != http.StatusFound {
				t.Fatalf("status = %d, want 302", w.Code)
			}
			if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "/auth/login/?next=") {
				t.Errorf("Location = %q, want the login page", loc)
			}
		})
	}
}

func TestAuthorizedUserCanOpenCreatePage(t *testing.T) {
	f := newFixture(t)
	w := f.login(t, &f.other).get("/create/")
	if w.Code != http.StatusOK {
		t.Fatalf("create page = %d, want 200", w.Code)
	}
	for _, field := range []string{`name="text"`, `name="group"`, `name="image"`} {
		if !strings.Contains(w.Body.String(), field) {
			t.Errorf("create form has no %s field", field)
		}
	}
}
