package posts

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/devconnect-go/apperror"
	"github.com/user/devconnect-go/auth"
	"github.com/user/devconnect-go/validation"
)

// PostHandlers exposes the post store over HTTP. Every post route requires
// authentication; the router group these routes are mounted on carries the
// JWT middleware.
type PostHandlers struct {
	service *PostService
}

// NewPostHandlers creates a new PostHandlers.
func NewPostHandlers(service *PostService) *PostHandlers {
	return &PostHandlers{service: service}
}

// RegisterRoutes mounts the post routes on the given (authenticated) router.
func (h *PostHandlers) RegisterRoutes(router chi.Router) {
	router.Post("/", h.handleCreatePost)
	router.Get("/", h.handleListPosts)
	router.Get("/{id}", h.handleGetPost)
	router.Delete("/{id}", h.handleDeletePost)
	router.Put("/like/{id}", h.handleLike)
	router.Put("/unlike/{id}", h.handleUnlike)
	router.Put("/dislike/{id}", h.handleDislike)
	router.Put("/undislike/{id}", h.handleUndislike)
	router.Post("/comment/{id}", h.handleAddComment)
	router.Delete("/comment/{id}/{comment_id}", h.handleRemoveComment)
}

func callerID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("No token, authorization denied", nil))
		return 0, false
	}
	return userID, true
}

// handleCreatePost godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postBody body posts.CreatePostRequest true "Post text"
// @Success 200 {object} posts.Post
// @Failure 400 {object} apperror.ValidationResponse
// @Router /api/posts [post]
func (h *PostHandlers) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	if err := validation.Check(req); err != nil {
		auth.WriteError(w, r, err)
		return
	}

	post, err := h.service.CreatePost(r.Context(), userID, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, post)
}

// handleListPosts godoc
// @Summary List all posts, newest first
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} posts.Post
// @Router /api/posts [get]
func (h *PostHandlers) handleListPosts(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}
	result, err := h.service.ListPosts(r.Context())
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, result)
}

// handleGetPost godoc
// @Summary Get a post by id
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post id"
// @Success 200 {object} posts.Post
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/posts/{id} [get]
func (h *PostHandlers) handleGetPost(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}
	postID, err := ParsePostID(chi.URLParam(r, "id"))
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	post, err := h.service.GetPost(r.Context(), postID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, post)
}

// handleDeletePost godoc
// @Summary Delete an owned post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post id"
// @Success 200 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Router /api/posts/{id} [delete]
func (h *PostHandlers) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	postID, err := ParsePostID(chi.URLParam(r, "id"))
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	if err := h.service.DeletePost(r.Context(), postID, userID); err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, apperror.ErrorResponse{Msg: "Post removed"})
}

// handleLike godoc
// @Summary Like a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post id"
// @Success 200 {array} int "Updated like set"
// @Failure 400 {object} apperror.ErrorResponse
// @Router /api/posts/like/{id} [put]
func (h *PostHandlers) handleLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	postID, err := ParsePostID(chi.URLParam(r, "id"))
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	likes, err := h.service.Like(r.Context(), postID, userID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, likes)
}

// handleUnlike godoc
// @Summary Remove a like from a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post id"
// @Success 200 {array} int "Updated like set"
// @Failure 400 {object} apperror.ErrorResponse
// @Router /api/posts/unlike/{id} [put]
func (h *PostHandlers) handleUnlike(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	postID, err := ParsePostID(chi.URLParam(r, "id"))
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	likes, err := h.service.Unlike(r.Context(), postID, userID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, likes)
}

// handleDislike godoc
// @Summary Dislike a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post id"
// @Success 200 {array} int "Updated dislike set"
// @Failure 400 {object} apperror.ErrorResponse
// @Router /api/posts/dislike/{id} [put]
func (h *PostHandlers) handleDislike(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	postID, err := ParsePostID(chi.URLParam(r, "id"))
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	dislikes, err := h.service.Dislike(r.Context(), postID, userID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, dislikes)
}

// handleUndislike godoc
// @Summary Remove a dislike from a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post id"
// @Success 200 {array} int "Updated dislike set"
// @Failure 400 {object} apperror.ErrorResponse
// @Router /api/posts/undislike/{id} [put]
func (h *PostHandlers) handleUndislike(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	postID, err := ParsePostID(chi.URLParam(r, "id"))
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	dislikes, err := h.service.Undislike(r.Context(), postID, userID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, dislikes)
}

// handleAddComment godoc
// @Summary Comment on a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post id"
// @Param commentBody body posts.CreateCommentRequest true "Comment text"
// @Success 200 {array} posts.Comment
// @Failure 400 {object} apperror.ValidationResponse
// @Router /api/posts/comment/{id} [post]
func (h *PostHandlers) handleAddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	postID, err := ParsePostID(chi.URLParam(r, "id"))
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	if err := validation.Check(req); err != nil {
		auth.WriteError(w, r, err)
		return
	}

	comments, err := h.service.AddComment(r.Context(), postID, userID, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, comments)
}

// handleRemoveComment godoc
// @Summary Remove an owned comment from a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post id"
// @Param comment_id path string true "Comment id"
// @Success 200 {array} posts.Comment
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/posts/comment/{id}/{comment_id} [delete]
func (h *PostHandlers) handleRemoveComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	postID, err := ParsePostID(chi.URLParam(r, "id"))
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	comments, err := h.service.RemoveComment(r.Context(), postID, chi.URLParam(r, "comment_id"), userID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, comments)
}
