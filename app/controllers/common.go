package controllers

import (
	"html/template"
	"net/http"
	"net/url"
	"path/filepath"

	"inkpress/app/auth"
	"inkpress/app/models"
)

const flashCookie = "inkpress_flash"

// viewData is the payload handed to every template. Identity and Flash feed
// the layout; the rest is page specific.
type viewData struct {
	Identity *auth.Identity
	Flash    string
	Error    string
	Post     *models.Post
	Posts    []*models.Post
	Comments []*models.Comment
	Editing  bool
}

// loadTemplates loads and parses all templates
func loadTemplates(basePath string) map[string]*template.Template {
	pages := map[string]string{
		"index":    "posts/index.html",
		"show":     "posts/show.html",
		"form":     "posts/form.html",
		"register": "auth/register.html",
		"login":    "auth/login.html",
		"about":    "pages/about.html",
		"contact":  "pages/contact.html",
	}

	templates := make(map[string]*template.Template)
	layout := filepath.Join(basePath, "app/views/layout.html")
	for name, page := range pages {
		templates[name] = template.Must(template.ParseFiles(
			layout,
			filepath.Join(basePath, "app/views", page),
		))
	}
	return templates
}

// setFlash queues a one-shot message for the next rendered page.
func setFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(message),
		Path:     "/",
		HttpOnly: true,
	})
}

// takeFlash reads the pending flash message, if any, and clears it.
func takeFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return message
}

func renderTemplate(w http.ResponseWriter, t *template.Template, data *viewData) {
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}
