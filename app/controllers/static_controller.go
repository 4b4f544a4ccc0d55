package controllers

import (
	"html/template"
	"net/http"

	"inkpress/app/middleware"
)

// StaticController serves the informational pages
type StaticController struct {
	templates map[string]*template.Template
}

// NewStaticController creates a new StaticController
func NewStaticController() *StaticController {
	return NewStaticControllerWithPath("")
}

// NewStaticControllerWithPath creates a new StaticController with a custom base path
func NewStaticControllerWithPath(basePath string) *StaticController {
	return &StaticController{
		templates: loadTemplates(basePath),
	}
}

// About renders the about page
func (sc *StaticController) About(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, sc.templates["about"], &viewData{
		Identity: middleware.Identity(r),
		Flash:    takeFlash(w, r),
	})
}

// Contact renders the contact page
func (sc *StaticController) Contact(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, sc.templates["contact"], &viewData{
		Identity: middleware.Identity(r),
		Flash:    takeFlash(w, r),
	})
}
