package service

import (
	"context"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blogicum-backend/internal/domains/comment"
	postModel "blogicum-backend/internal/domains/post/model"
	"blogicum-backend/internal/shared/authz"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, c *comment.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockRepo) GetByIDAndPost(ctx context.Context, id, postID uuid.UUID) (*comment.Comment, error) {
	args := m.Called(ctx, id, postID)
	c, _ := args.Get(0).(*comment.Comment)
	return c, args.Error(1)
}

func (m *mockRepo) ListByPost(ctx context.Context, postID uuid.UUID) ([]comment.Comment, error) {
	args := m.Called(ctx, postID)
	list, _ := args.Get(0).([]comment.Comment)
	return list, args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, c *comment.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockPosts struct{ mock.Mock }

func (m *mockPosts) GetVisiblePost(ctx context.Context, postID uuid.UUID, viewerID *uuid.UUID) (*postModel.Post, error) {
	args := m.Called(ctx, postID, viewerID)
	p, _ := args.Get(0).(*postModel.Post)
	return p, args.Error(1)
}

func TestAdd_CreatesOnVisiblePost(t *testing.T) {
	repo, posts := new(mockRepo), new(mockPosts)
	postID, viewer := uuid.New(), uuid.New()
	posts.On("GetVisiblePost", mock.Anything, postID, &viewer).Return(&postModel.Post{ID: postID}, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *comment.Comment) bool {
		return c.PostID == postID && c.AuthorID == viewer && c.Text == "nice"
	})).Return(nil)

	c, err := NewCommentService(repo, posts).Add(context.Background(), postID, viewer, comment.CommentForm{Text: "nice"})

	require.NoError(t, err)
	assert.Equal(t, postID, c.PostID)
	repo.AssertExpectations(t)
}

func TestAdd_InvisiblePost(t *testing.T) {
	repo, posts := new(mockRepo), new(mockPosts)
	postID, viewer := uuid.New(), uuid.New()
	posts.On("GetVisiblePost", mock.Anything, postID, &viewer).Return(nil, postModel.ErrPostNotFound)

	_, err := NewCommentService(repo, posts).Add(context.Background(), postID, viewer, comment.CommentForm{Text: "hi"})

	assert.ErrorIs(t, err, postModel.ErrPostNotFound)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdd_EmptyText(t *testing.T) {
	repo, posts := new(mockRepo), new(mockPosts)
	postID, viewer := uuid.New(), uuid.New()
	posts.On("GetVisiblePost", mock.Anything, postID, &viewer).Return(&postModel.Post{ID: postID}, nil)

	_, err := NewCommentService(repo, posts).Add(context.Background(), postID, viewer, comment.CommentForm{})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "text")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// visiblePost cho mọi GetVisiblePost trả về post đang hiển thị
func visiblePost() *mockPosts {
	posts := new(mockPosts)
	posts.On("GetVisiblePost", mock.Anything, mock.Anything, mock.Anything).Return(&postModel.Post{}, nil)
	return posts
}

func TestEdit_MismatchedPost(t *testing.T) {
	repo := new(mockRepo)
	commentID, otherPost, author := uuid.New(), uuid.New(), uuid.New()
	repo.On("GetByIDAndPost", mock.Anything, commentID, otherPost).Return(nil, comment.ErrCommentNotFound)

	_, err := NewCommentService(repo, visiblePost()).Edit(context.Background(), otherPost, commentID, author, comment.CommentForm{Text: "x"})

	assert.ErrorIs(t, err, comment.ErrCommentNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestEdit_NonAuthor(t *testing.T) {
	repo := new(mockRepo)
	c := &comment.Comment{ID: uuid.New(), PostID: uuid.New(), AuthorID: uuid.New(), Text: "old"}
	repo.On("GetByIDAndPost", mock.Anything, c.ID, c.PostID).Return(c, nil)

	_, err := NewCommentService(repo, visiblePost()).Edit(context.Background(), c.PostID, c.ID, uuid.New(), comment.CommentForm{Text: "new"})

	assert.ErrorIs(t, err, authz.ErrNotAuthor)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestEditDelete_HiddenPostIsNotFound(t *testing.T) {
	repo, posts := new(mockRepo), new(mockPosts)
	postID, commentID, stranger := uuid.New(), uuid.New(), uuid.New()
	posts.On("GetVisiblePost", mock.Anything, postID, &stranger).Return(nil, postModel.ErrPostNotFound)
	svc := NewCommentService(repo, posts)

	_, err := svc.Edit(context.Background(), postID, commentID, stranger, comment.CommentForm{Text: "x"})
	assert.ErrorIs(t, err, postModel.ErrPostNotFound)

	err = svc.Delete(context.Background(), postID, commentID, stranger)
	assert.ErrorIs(t, err, postModel.ErrPostNotFound)

	repo.AssertNotCalled(t, "GetByIDAndPost", mock.Anything, mock.Anything, mock.Anything)
}

func TestEdit_Author(t *testing.T) {
	repo := new(mockRepo)
	c := &comment.Comment{ID: uuid.New(), PostID: uuid.New(), AuthorID: uuid.New(), Text: "old"}
	repo.On("GetByIDAndPost", mock.Anything, c.ID, c.PostID).Return(c, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	got, err := NewCommentService(repo, visiblePost()).Edit(context.Background(), c.PostID, c.ID, c.AuthorID, comment.CommentForm{Text: "new"})

	require.NoError(t, err)
	assert.Equal(t, "new", got.Text)
}

func TestDelete_Author(t *testing.T) {
	repo := new(mockRepo)
	c := &comment.Comment{ID: uuid.New(), PostID: uuid.New(), AuthorID: uuid.New()}
	repo.On("GetByIDAndPost", mock.Anything, c.ID, c.PostID).Return(c, nil)
	repo.On("Delete", mock.Anything, c.ID).Return(nil)

	require.NoError(t, NewCommentService(repo, visiblePost()).Delete(context.Background(), c.PostID, c.ID, c.AuthorID))
	repo.AssertExpectations(t)
}
