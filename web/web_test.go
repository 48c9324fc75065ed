package web

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"yatube/db"
	"yatube/feed"
	"yatube/models"
	"yatube/storage"
	"yatube/templates"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
)

const testPassword = "pass123"

type fixture struct {
	router  *gin.Engine
	renders *feed.MemoryRenderCache
	media   *storage.DiskStorage
	author  models.User
	other   models.User
	group   models.Group
	post    models.Post
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	instance, err := db.Open(sqlite.Open(filepath.Join(t.TempDir(), "web.db")))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.Instance = instance
	if err = models.Migrate(instance); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	renders := feed.NewMemoryRenderCache()
	media := storage.NewDiskStorage(t.TempDir())
	Init(feed.New(feed.NewGormSource(instance), renders, 10), templates.Load(), media)

	router := gin.New()
	router.Use(sessions.Sessions("sessionid", cookie.NewStore([]byte("test session key"))))
	Register(router)

	f := &fixture{router: router, renders: renders, media: media}
	if f.author, err = models.UserCreate("Author", "author@example.com", testPassword); err != nil {
		t.Fatal(err)
	}
	if f.other, err = models.UserCreate("No_author", "other@example.com", testPassword); err != nil {
		t.Fatal(err)
	}
	f.group = models.Group{Title: "Test group", Slug: "test-slug", Description: "Test description"}
	if err = db.Instance.Create(&f.group).Error; err != nil {
		t.Fatal(err)
	}
	if f.post, err = models.PostCreate(&f.author, "Test post", f.group.ID, ""); err != nil {
		t.Fatal(err)
	}
	return f
}

// client keeps the session cookie between requests
type client struct {
	t       *testing.T
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func (f *fixture) guest(t *testing.T) *client {
	return &client{t: t, router: f.router, cookies: map[string]*http.Cookie{}}
}

func (f *fixture) login(t *testing.T, user *models.User) *client {
	t.Helper()
	cl := f.guest(t)
	w := cl.postForm("/auth/login/", url.Values{"username": {user.Username}, "password": {testPassword}})
	if w.Code != http.StatusFound {
		t.Fatalf("login as %s: status %d, body %s", user.Username, w.Code, w.Body.String())
	}
	return cl
}

func (cl *client) do(method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, c := range cl.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	cl.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(cl.cookies, c.Name)
			continue
		}
		cl.cookies[c.Name] = c
	}
	return w
}

func (cl *client) get(target string) *httptest.ResponseRecorder {
	return cl.do(http.MethodGet, target, nil, "")
}

func (cl *client) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	return cl.do(http.MethodPost, target, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

func (cl *client) postMultipart(target string, fields map[string]string, image []byte) *httptest.ResponseRecorder {
	cl.t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for name, value := range fields {
		_ = mw.WriteField(name, value)
	}
	if image != nil {
		part, err := mw.CreateFormFile("image", "small.png")
		if err != nil {
			cl.t.Fatal(err)
		}
		_, _ = part.Write(image)
	}
	_ = mw.Close()
	return cl.do(http.MethodPost, target, body, mw.FormDataContentType())
}

func (cl *client) getJSON(target string, v interface{}) {
	cl.t.Helper()
	w := cl.get(target)
	if w.Code != http.StatusOK {
		cl.t.Fatalf("GET %s: status %d", target, w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		cl.t.Fatalf("GET %s: bad JSON: %v", target, err)
	}
}

func smallPNG(t *testing.T) []byte {
	t.Helper()
	buf := bytes.Buffer{}
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 1))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func postCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := db.Instance.Model(&models.Post{}).Count(&count).Error; err != nil {
		t.Fatal(err)
	}
	return count
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302; body %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("Location = %q, want %q", got, location)
	}
}
