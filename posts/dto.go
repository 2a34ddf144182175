package posts

// CreatePostRequest is the payload for creating a post.
type CreatePostRequest struct {
	Text string `json:"text" validate:"required"`
}

// CreateCommentRequest is the payload for commenting on a post.
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}
