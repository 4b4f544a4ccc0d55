package routes

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"inkpress/app/auth"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

const testSecret = "routes-test-secret"

func setupTestTemplates(t *testing.T) string {
	tmpDir := t.TempDir()
	viewsDir := filepath.Join(tmpDir, "app", "views")

	// Create directories
	dirs := []string{
		filepath.Join(viewsDir, "posts"),
		filepath.Join(viewsDir, "auth"),
		filepath.Join(viewsDir, "pages"),
		filepath.Join(tmpDir, "static"),
	}
	for _, dir := range dirs {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}

	// Create template files
	templates := map[string]string{
		filepath.Join(viewsDir, "layout.html"):         `{{define "layout"}}<!DOCTYPE html><html><body>{{if .Identity}}<span class="user">{{.Identity.Name}}</span>{{end}}{{if .Flash}}<div class="flash">{{.Flash}}</div>{{end}}{{if .Error}}<div class="error">{{.Error}}</div>{{end}}{{template "content" .}}</body></html>{{end}}`,
		filepath.Join(viewsDir, "posts/index.html"):    `{{define "content"}}<div class="posts">{{range .Posts}}<h2>{{.Title}}</h2>{{end}}</div>{{end}}`,
		filepath.Join(viewsDir, "posts/show.html"):     `{{define "content"}}<h1>{{.Post.Title}}</h1><p>{{.Post.Body}}</p><div class="comments">{{range .Comments}}<p>{{.AuthorName}}: {{.Text}}</p>{{end}}</div>{{end}}`,
		filepath.Join(viewsDir, "posts/form.html"):     `{{define "content"}}<form method="POST"><input name="title" value="{{.Post.Title}}"><input name="subtitle"><input name="img_url"><textarea name="body"></textarea></form>{{end}}`,
		filepath.Join(viewsDir, "auth/register.html"):  `{{define "content"}}<form method="POST" action="/register"><input name="email"><input name="name"><input name="password"></form>{{end}}`,
		filepath.Join(viewsDir, "auth/login.html"):     `{{define "content"}}<form method="POST" action="/login"><input name="email"><input name="password"></form>{{end}}`,
		filepath.Join(viewsDir, "pages/about.html"):    `{{define "content"}}<h1>About</h1>{{end}}`,
		filepath.Join(viewsDir, "pages/contact.html"):  `{{define "content"}}<h1>Contact</h1>{{end}}`,
		filepath.Join(tmpDir, "static", "style.css"):   "body { background: #f0f0f0; }",
	}
	for path, content := range templates {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	return tmpDir
}

func setupTestDB(t *testing.T) *badger.DB {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestRouter(t *testing.T) *mux.Router {
	db := setupTestDB(t)
	basePath := setupTestTemplates(t)
	tokens := auth.NewTokenManager(testSecret, time.Hour)
	return SetupRoutesWithPath(db, tokens, basePath)
}

// postForm performs a form POST, optionally with a session cookie.
func postForm(router *mux.Router, path string, form url.Values, session *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if session != nil {
		req.AddCookie(session)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router *mux.Router, path string, session *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if session != nil {
		req.AddCookie(session)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// register creates an account and returns its session cookie. The first
// account registered against a fresh database is the administrator.
func register(t *testing.T, router *mux.Router, email, name, password string) *http.Cookie {
	t.Helper()
	w := postForm(router, "/register", url.Values{
		"email":    {email},
		"name":     {name},
		"password": {password},
	}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))
	return sessionCookie(t, w)
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookie && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func createPost(t *testing.T, router *mux.Router, session *http.Cookie, title string) {
	t.Helper()
	w := postForm(router, "/new-post", url.Values{
		"title":    {title},
		"subtitle": {"A subtitle"},
		"body":     {"Body text long enough for validation"},
		"img_url":  {"https://example.com/cover.jpg"},
	}, session)
	require.Equal(t, http.StatusSeeOther, w.Code)
}
