package controllers

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"inkpress/app/middleware"
	"inkpress/app/models"
	"inkpress/app/repositories"
	"inkpress/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
)

// PostController handles listing, viewing, authoring and commenting
type PostController struct {
	postService    *services.PostService
	commentService *services.CommentService
	templates      map[string]*template.Template
}

// NewPostController creates a new PostController wired to the given DB
func NewPostController(db *badger.DB) *PostController {
	return NewPostControllerWithPath(db, "")
}

// NewPostControllerWithPath creates a new PostController with a custom base path
func NewPostControllerWithPath(db *badger.DB, basePath string) *PostController {
	postRepo := repositories.NewBadgerPostRepository(db)
	commentRepo := repositories.NewBadgerCommentRepository(db)

	return &PostController{
		postService:    services.NewPostService(postRepo, commentRepo),
		commentService: services.NewCommentService(commentRepo, postRepo),
		templates:      loadTemplates(basePath),
	}
}

// SetServices sets the services for testing
func (pc *PostController) SetServices(posts *services.PostService, comments *services.CommentService) {
	pc.postService = posts
	pc.commentService = comments
}

// Index lists all posts in insertion order
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts()
	if err != nil {
		http.Error(w, "Failed to fetch posts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	renderTemplate(w, pc.templates["index"], &viewData{
		Identity: middleware.Identity(r),
		Flash:    takeFlash(w, r),
		Posts:    posts,
	})
}

// Show displays a single post with its comments
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	post, ok := pc.lookupPost(w, r)
	if !ok {
		return
	}

	renderTemplate(w, pc.templates["show"], &viewData{
		Identity: middleware.Identity(r),
		Flash:    takeFlash(w, r),
		Post:     post,
		Comments: post.Comments,
	})
}

// Comment handles a comment submission on the post detail page. Anonymous
// submissions are bounced to the login page and nothing is written.
func (pc *PostController) Comment(w http.ResponseWriter, r *http.Request) {
	post, ok := pc.lookupPost(w, r)
	if !ok {
		return
	}

	identity := middleware.Identity(r)
	if identity == nil {
		setFlash(w, "You need to be logged in to post comments.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	comment := &models.Comment{
		PostID:     post.ID,
		AuthorID:   identity.ID,
		AuthorName: identity.Name,
		Text:       r.FormValue("text"),
	}
	if err := pc.commentService.CreateComment(comment); err != nil {
		setFlash(w, "Your comment could not be saved.")
	}

	// Redirect back to the detail view so a refresh cannot resubmit.
	http.Redirect(w, r, "/post/"+strconv.Itoa(post.ID), http.StatusSeeOther)
}

// NewForm displays the form for creating a new post
func (pc *PostController) NewForm(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, pc.templates["form"], &viewData{
		Identity: middleware.Identity(r),
		Flash:    takeFlash(w, r),
		Post:     &models.Post{},
	})
}

// Create creates a new post authored by the current identity
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	identity := middleware.Identity(r)
	post := &models.Post{
		Title:      r.FormValue("title"),
		Subtitle:   r.FormValue("subtitle"),
		Body:       r.FormValue("body"),
		ImageURL:   r.FormValue("img_url"),
		AuthorID:   identity.ID,
		AuthorName: identity.Name,
	}

	if err := pc.postService.CreatePost(post); err != nil {
		message := err.Error()
		if errors.Is(err, repositories.ErrDuplicateTitle) {
			message = "A post with that title already exists."
		}
		w.WriteHeader(http.StatusBadRequest)
		renderTemplate(w, pc.templates["form"], &viewData{
			Identity: identity,
			Error:    message,
			Post:     post,
		})
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// EditForm displays the edit form pre-filled with the post's fields. The
// author is not part of the form; it cannot be re-edited.
func (pc *PostController) EditForm(w http.ResponseWriter, r *http.Request) {
	post, ok := pc.lookupPost(w, r)
	if !ok {
		return
	}

	renderTemplate(w, pc.templates["form"], &viewData{
		Identity: middleware.Identity(r),
		Flash:    takeFlash(w, r),
		Post:     post,
		Editing:  true,
	})
}

// Edit overwrites title, subtitle, body and image URL of an existing post
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	post, ok := pc.lookupPost(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	updated := &models.Post{
		ID:       post.ID,
		Title:    r.FormValue("title"),
		Subtitle: r.FormValue("subtitle"),
		Body:     r.FormValue("body"),
		ImageURL: r.FormValue("img_url"),
	}

	if err := pc.postService.UpdatePost(updated); err != nil {
		message := err.Error()
		if errors.Is(err, repositories.ErrDuplicateTitle) {
			message = "A post with that title already exists."
		}
		w.WriteHeader(http.StatusBadRequest)
		renderTemplate(w, pc.templates["form"], &viewData{
			Identity: middleware.Identity(r),
			Error:    message,
			Post:     updated,
			Editing:  true,
		})
		return
	}

	http.Redirect(w, r, "/post/"+strconv.Itoa(post.ID), http.StatusSeeOther)
}

// Delete removes a post and all of its comments
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	if err := pc.postService.DeletePost(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			http.Error(w, "Post not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// lookupPost resolves the {id} route variable to a post, writing the error
// response itself when the id is malformed or unknown.
func (pc *PostController) lookupPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return nil, false
	}

	post, err := pc.postService.GetPost(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			http.Error(w, "Post not found", http.StatusNotFound)
			return nil, false
		}
		http.Error(w, "Failed to fetch post: "+err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return post, true
}
