package routes

import (
	"net/http"
	"path/filepath"

	"inkpress/app/auth"
	"inkpress/app/controllers"
	"inkpress/app/middleware"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
)

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(db *badger.DB, tokens *auth.TokenManager) *mux.Router {
	return SetupRoutesWithPath(db, tokens, "")
}

// SetupRoutesWithPath defines the routes with a custom base path for
// template and static file lookup.
func SetupRoutesWithPath(db *badger.DB, tokens *auth.TokenManager, basePath string) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.WithIdentity(tokens))

	authController := controllers.NewAuthControllerWithPath(db, tokens, basePath)
	postController := controllers.NewPostControllerWithPath(db, basePath)
	staticController := controllers.NewStaticControllerWithPath(basePath)

	// Serve static files
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(filepath.Join(basePath, "static")))))

	// Public pages
	router.HandleFunc("/", postController.Index).Methods("GET")
	router.HandleFunc("/about", staticController.About).Methods("GET")
	router.HandleFunc("/contact", staticController.Contact).Methods("GET")
	router.HandleFunc("/post/{id:[0-9]+}", postController.Show).Methods("GET")

	// Account endpoints
	router.HandleFunc("/register", authController.RegisterForm).Methods("GET")
	router.HandleFunc("/register", authController.Register).Methods("POST")
	router.HandleFunc("/login", authController.LoginForm).Methods("GET")
	router.HandleFunc("/login", authController.Login).Methods("POST")
	router.HandleFunc("/logout", middleware.RequireAuth(authController.Logout)).Methods("GET")

	// Comment submission checks identity itself so it can bounce anonymous
	// visitors to the login page with a message.
	router.HandleFunc("/post/{id:[0-9]+}", postController.Comment).Methods("POST")

	// Authoring is administrator only, creation included.
	router.HandleFunc("/new-post", middleware.RequireAdmin(postController.NewForm)).Methods("GET")
	router.HandleFunc("/new-post", middleware.RequireAdmin(postController.Create)).Methods("POST")
	router.HandleFunc("/edit-post/{id:[0-9]+}", middleware.RequireAdmin(postController.EditForm)).Methods("GET")
	router.HandleFunc("/edit-post/{id:[0-9]+}", middleware.RequireAdmin(postController.Edit)).Methods("POST")
	router.HandleFunc("/delete/{id:[0-9]+}", middleware.RequireAdmin(postController.Delete)).Methods("GET")

	return router
}
