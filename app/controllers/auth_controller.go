package controllers

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"inkpress/app/auth"
	"inkpress/app/middleware"
	"inkpress/app/models"
	"inkpress/app/repositories"
	"inkpress/app/services"

	"github.com/dgraph-io/badger/v4"
)

const sessionLifetime = 7 * 24 * time.Hour

// AuthController handles registration, login and logout
type AuthController struct {
	authService *services.AuthService
	tokens      *auth.TokenManager
	templates   map[string]*template.Template
}

// NewAuthController creates a new AuthController wired to the given DB
func NewAuthController(db *badger.DB, tokens *auth.TokenManager) *AuthController {
	return NewAuthControllerWithPath(db, tokens, "")
}

// NewAuthControllerWithPath creates a new AuthController with a custom base path
func NewAuthControllerWithPath(db *badger.DB, tokens *auth.TokenManager, basePath string) *AuthController {
	userRepo := repositories.NewBadgerUserRepository(db)

	return &AuthController{
		authService: services.NewAuthService(userRepo),
		tokens:      tokens,
		templates:   loadTemplates(basePath),
	}
}

// SetService sets the auth service for testing
func (ac *AuthController) SetService(service *services.AuthService) {
	ac.authService = service
}

// RegisterForm displays the registration form
func (ac *AuthController) RegisterForm(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, ac.templates["register"], &viewData{
		Identity: middleware.Identity(r),
		Flash:    takeFlash(w, r),
	})
}

// Register creates the account and immediately establishes a session. An
// already registered email is pointed to the login page instead; a
// validation failure re-renders the form with nothing persisted.
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := ac.authService.Register(
		r.FormValue("email"),
		r.FormValue("name"),
		r.FormValue("password"),
	)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			setFlash(w, "That email is registered already, log in instead.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		renderTemplate(w, ac.templates["register"], &viewData{Error: err.Error()})
		return
	}

	if err := ac.establishSession(w, user); err != nil {
		http.Error(w, "Failed to establish session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LoginForm displays the login form
func (ac *AuthController) LoginForm(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, ac.templates["login"], &viewData{
		Identity: middleware.Identity(r),
		Flash:    takeFlash(w, r),
	})
}

// Login verifies the credentials and establishes a session. Both failure
// modes flash a message and return to the login form without touching
// session state.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := ac.authService.Login(r.FormValue("email"), r.FormValue("password"))
	switch {
	case errors.Is(err, services.ErrUnknownEmail):
		setFlash(w, "This email does not exist.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	case errors.Is(err, services.ErrBadPassword):
		setFlash(w, "Incorrect password.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	case err != nil:
		http.Error(w, "Login failed", http.StatusInternalServerError)
		return
	}

	if err := ac.establishSession(w, user); err != nil {
		http.Error(w, "Failed to establish session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout clears the session cookie
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// establishSession mints a signed token for the user and binds it to the
// client via an HttpOnly cookie.
func (ac *AuthController) establishSession(w http.ResponseWriter, user *models.User) error {
	token, err := ac.tokens.Issue(user)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionLifetime / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
