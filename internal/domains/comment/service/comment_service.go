package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"blogicum-backend/internal/domains/comment"
	"blogicum-backend/internal/shared/authz"
)

type commentService struct {
	repo  comment.Repository
	posts comment.PostVisibility
	now   func() time.Time
}

func NewCommentService(repo comment.Repository, posts comment.PostVisibility) comment.Service {
	return &commentService{repo: repo, posts: posts, now: time.Now}
}

func (s *commentService) ListByPost(ctx context.Context, postID uuid.UUID) ([]comment.Comment, error) {
	return s.repo.ListByPost(ctx, postID)
}

// Add: post phải tồn tại và viewer nhìn thấy được, nếu không → post.ErrPostNotFound
func (s *commentService) Add(ctx context.Context, postID, viewerID uuid.UUID, form comment.CommentForm) (*comment.Comment, error) {
	if _, err := s.posts.GetVisiblePost(ctx, postID, &viewerID); err != nil {
		return nil, err
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	c := &comment.Comment{
		ID:        uuid.New(),
		Text:      form.Text,
		PostID:    postID,
		AuthorID:  viewerID,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *commentService) Edit(ctx context.Context, postID, commentID, viewerID uuid.UUID, form comment.CommentForm) (*comment.Comment, error) {
	c, err := s.loadForAuthor(ctx, postID, commentID, viewerID)
	if err != nil {
		return nil, err
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	c.Text = form.Text
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *commentService) Delete(ctx context.Context, postID, commentID, viewerID uuid.UUID) error {
	c, err := s.loadForAuthor(ctx, postID, commentID, viewerID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, c.ID)
}

// loadForAuthor: post ẩn với viewer → post.ErrPostNotFound trước khi xét quyền,
// comment tra theo cặp (comment_id, post_id), lệch post → ErrCommentNotFound
func (s *commentService) loadForAuthor(ctx context.Context, postID, commentID, viewerID uuid.UUID) (*comment.Comment, error) {
	if _, err := s.posts.GetVisiblePost(ctx, postID, &viewerID); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByIDAndPost(ctx, commentID, postID)
	if err != nil {
		return nil, err
	}
	if err := authz.EnsureAuthor(viewerID, c.AuthorID); err != nil {
		return nil, err
	}
	return c, nil
}
