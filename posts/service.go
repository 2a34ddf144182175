package posts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/devconnect-go/apperror"
)

// PostService owns every query against the posts table. Like/dislike
// toggling and comment mutations are single-statement updates so concurrent
// edits on the same post serialize on the row lock.
type PostService struct {
	db *pgxpool.Pool
}

// NewPostService creates a new PostService.
func NewPostService(db *pgxpool.Pool) *PostService {
	return &PostService{db: db}
}

const postSelect = `
	SELECT id, user_id, text, name, avatar, likes, dislikes, comments, created_at
	FROM posts`

func scanPost(row pgx.Row) (*Post, error) {
	var p Post
	err := row.Scan(
		&p.ID, &p.User, &p.Text, &p.Name, &p.Avatar,
		&p.Likes, &p.Dislikes, &p.Comments, &p.Date,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func postNotFound() *apperror.AppError {
	return apperror.NewNotFoundError("Post not found", nil)
}

// ParsePostID validates a post id path parameter. A malformed id is reported
// exactly like a missing post.
func ParsePostID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, postNotFound()
	}
	return id, nil
}

// CreatePost creates a post owned by the caller, snapshotting the caller's
// current name and avatar onto it.
func (s *PostService) CreatePost(ctx context.Context, userID int32, req CreatePostRequest) (*Post, error) {
	var name, avatar string
	err := s.db.QueryRow(ctx, `SELECT name, avatar FROM users WHERE id = $1`, userID).
		Scan(&name, &avatar)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("User not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to load post author", err)
	}

	post := &Post{
		ID:       uuid.New(),
		User:     userID,
		Text:     req.Text,
		Name:     name,
		Avatar:   avatar,
		Likes:    []int32{},
		Dislikes: []int32{},
		Comments: []Comment{},
	}
	query := `INSERT INTO posts (id, user_id, text, name, avatar)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING created_at`
	err = s.db.QueryRow(ctx, query, post.ID, post.User, post.Text, post.Name, post.Avatar).
		Scan(&post.Date)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create post", err)
	}
	return post, nil
}

// ListPosts returns every post, newest first.
func (s *PostService) ListPosts(ctx context.Context) ([]Post, error) {
	rows, err := s.db.Query(ctx, postSelect+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list posts", err)
	}
	defer rows.Close()

	result := []Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, apperror.NewDatabaseError("failed to scan post", err)
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to list posts", err)
	}
	return result, nil
}

// GetPost returns a single post by id.
func (s *PostService) GetPost(ctx context.Context, postID uuid.UUID) (*Post, error) {
	p, err := scanPost(s.db.QueryRow(ctx, postSelect+` WHERE id = $1`, postID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, postNotFound()
		}
		return nil, apperror.NewDatabaseError("failed to get post", err)
	}
	return p, nil
}

// DeletePost removes a post. Only the owner may delete it; a non-owner gets
// 401. A missing post is also reported as 401 on this route, a quirk of the
// API contract kept as is.
func (s *PostService) DeletePost(ctx context.Context, postID uuid.UUID, userID int32) error {
	var ownerID int32
	err := s.db.QueryRow(ctx, `SELECT user_id FROM posts WHERE id = $1`, postID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return postNotFound().WithStatus(http.StatusUnauthorized)
		}
		return apperror.NewDatabaseError("failed to get post", err)
	}
	if ownerID != userID {
		return apperror.NewUnauthorizedError("User not authorized", nil)
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, postID); err != nil {
		return apperror.NewDatabaseError("failed to delete post", err)
	}
	return nil
}

// Like adds the caller to the post's like set and clears any standing
// dislike, in one statement. Liking twice fails with 400.
func (s *PostService) Like(ctx context.Context, postID uuid.UUID, userID int32) ([]int32, error) {
	query := `UPDATE posts
	          SET likes = array_append(likes, $2), dislikes = array_remove(dislikes, $2)
	          WHERE id = $1 AND NOT ($2 = ANY(likes))
	          RETURNING likes`
	return s.toggleReaction(ctx, query, postID, userID, "Post already liked")
}

// Unlike removes the caller from the post's like set. Unliking a post the
// caller never liked fails with 400.
func (s *PostService) Unlike(ctx context.Context, postID uuid.UUID, userID int32) ([]int32, error) {
	query := `UPDATE posts
	          SET likes = array_remove(likes, $2)
	          WHERE id = $1 AND $2 = ANY(likes)
	          RETURNING likes`
	return s.toggleReaction(ctx, query, postID, userID, "Post has not yet been liked")
}

// Dislike mirrors Like for the dislike set.
func (s *PostService) Dislike(ctx context.Context, postID uuid.UUID, userID int32) ([]int32, error) {
	query := `UPDATE posts
	          SET dislikes = array_append(dislikes, $2), likes = array_remove(likes, $2)
	          WHERE id = $1 AND NOT ($2 = ANY(dislikes))
	          RETURNING dislikes`
	return s.toggleReaction(ctx, query, postID, userID, "Post already disliked")
}

// Undislike mirrors Unlike for the dislike set.
func (s *PostService) Undislike(ctx context.Context, postID uuid.UUID, userID int32) ([]int32, error) {
	query := `UPDATE posts
	          SET dislikes = array_remove(dislikes, $2)
	          WHERE id = $1 AND $2 = ANY(dislikes)
	          RETURNING dislikes`
	return s.toggleReaction(ctx, query, postID, userID, "Post has not yet been disliked")
}

// toggleReaction runs one of the guarded reaction updates. When the update
// matched no row the post is either absent (404) or the guard predicate
// failed (400 with the operation-specific message).
func (s *PostService) toggleReaction(ctx context.Context, query string, postID uuid.UUID, userID int32, guardMsg string) ([]int32, error) {
	var reactions []int32
	err := s.db.QueryRow(ctx, query, postID, userID).Scan(&reactions)
	if err == nil {
		return reactions, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewDatabaseError("failed to update post reactions", err)
	}

	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, postID).Scan(&exists); err != nil {
		return nil, apperror.NewDatabaseError("failed to check post existence", err)
	}
	if !exists {
		return nil, postNotFound()
	}
	return nil, apperror.NewBadRequestError(guardMsg, nil)
}

// AddComment prepends a comment with a fresh id and the caller's current
// name/avatar snapshot, returning the post's full comment sequence.
func (s *PostService) AddComment(ctx context.Context, postID uuid.UUID, userID int32, req CreateCommentRequest) ([]Comment, error) {
	var name, avatar string
	err := s.db.QueryRow(ctx, `SELECT name, avatar FROM users WHERE id = $1`, userID).
		Scan(&name, &avatar)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("User not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to load comment author", err)
	}

	comment := Comment{
		ID:     uuid.NewString(),
		User:   userID,
		Text:   req.Text,
		Name:   name,
		Avatar: avatar,
		Date:   time.Now().UTC(),
	}
	payload, err := json.Marshal([]Comment{comment})
	if err != nil {
		return nil, apperror.NewInternalError("failed to encode comment", err)
	}

	var comments []Comment
	query := `UPDATE posts SET comments = $2::jsonb || comments WHERE id = $1 RETURNING comments`
	err = s.db.QueryRow(ctx, query, postID, string(payload)).Scan(&comments)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, postNotFound()
		}
		return nil, apperror.NewDatabaseError("failed to add comment", err)
	}
	return comments, nil
}

// RemoveComment deletes a comment from a post. Only the comment's author may
// remove it. The removal and the ownership check happen in one statement;
// the failure is disambiguated afterwards.
func (s *PostService) RemoveComment(ctx context.Context, postID uuid.UUID, commentID string, userID int32) ([]Comment, error) {
	query := `UPDATE posts
	          SET comments = COALESCE(
	              (SELECT jsonb_agg(elem ORDER BY ord)
	               FROM jsonb_array_elements(comments) WITH ORDINALITY AS t(elem, ord)
	               WHERE elem->>'id' <> $2),
	              '[]'::jsonb
	          )
	          WHERE id = $1 AND EXISTS (
	              SELECT 1 FROM jsonb_array_elements(comments) c
	              WHERE c->>'id' = $2 AND (c->>'user')::int = $3
	          )
	          RETURNING comments`

	var comments []Comment
	err := s.db.QueryRow(ctx, query, postID, commentID, userID).Scan(&comments)
	if err == nil {
		return comments, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewDatabaseError("failed to remove comment", err)
	}

	// The guarded update matched nothing: missing post, missing comment, or
	// a caller who does not own the comment.
	var commentExists bool
	err = s.db.QueryRow(ctx, `SELECT EXISTS (
	        SELECT 1 FROM posts, jsonb_array_elements(comments) c
	        WHERE posts.id = $1 AND c->>'id' = $2
	    )`, postID, commentID).Scan(&commentExists)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to check comment existence", err)
	}
	if !commentExists {
		return nil, apperror.NewNotFoundError("Comment does not exist", nil)
	}
	return nil, apperror.NewUnauthorizedError("User not authorized", nil)
}
