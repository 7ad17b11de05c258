package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blogicum-backend/internal/domains/post/model"
	"blogicum-backend/internal/infrastructure/storage"
)

func newImageFixture() (*mockRepo, *mockStorage, ImageServiceInterface) {
	repo := new(mockRepo)
	store := new(mockStorage)
	return repo, store, NewImageService(repo, store, storage.NewImageProcessor(1024*1024))
}

func TestProcessImage_WritesVariants(t *testing.T) {
	repo, store, svc := newImageFixture()
	postID := uuid.New()
	key := model.OriginalImageKey(postID, uuid.New(), "png")
	repo.On("GetByID", mock.Anything, postID).Return(&model.Post{ID: postID, ImageKey: &key}, nil)
	store.On("Download", mock.Anything, key).Return(pngBytes(t), nil)
	for _, v := range []string{storage.VariantLarge, storage.VariantMedium, storage.VariantThumbnail} {
		store.On("Upload", mock.Anything, model.VariantKey(key, v), mock.Anything, "image/jpeg").Return(nil).Once()
	}

	require.NoError(t, svc.ProcessImage(ctx, postID, key))
	store.AssertExpectations(t)
}

func TestProcessImage_SkipsReplacedImage(t *testing.T) {
	repo, store, svc := newImageFixture()
	postID := uuid.New()
	current := "posts/a/new/original.jpg"
	repo.On("GetByID", mock.Anything, postID).Return(&model.Post{ID: postID, ImageKey: &current}, nil)

	require.NoError(t, svc.ProcessImage(ctx, postID, "posts/a/old/original.jpg"))
	store.AssertNotCalled(t, "Download", mock.Anything, mock.Anything)
}

func TestProcessImage_SkipsDeletedPost(t *testing.T) {
	repo, store, svc := newImageFixture()
	postID := uuid.New()
	repo.On("GetByID", mock.Anything, postID).Return(nil, model.ErrPostNotFound)

	require.NoError(t, svc.ProcessImage(ctx, postID, "posts/a/b/original.jpg"))
	store.AssertNotCalled(t, "Download", mock.Anything, mock.Anything)
}

func TestDeleteImages_RejectsForeignPrefix(t *testing.T) {
	_, store, svc := newImageFixture()

	assert.Error(t, svc.DeleteImages(ctx, "users/"))
	assert.Error(t, svc.DeleteImages(ctx, model.ImageRoot))
	store.AssertNotCalled(t, "DeleteByPrefix", mock.Anything, mock.Anything)

	prefix := model.PostImagePrefix(uuid.New())
	store.On("DeleteByPrefix", mock.Anything, prefix).Return(nil)
	assert.NoError(t, svc.DeleteImages(ctx, prefix))
}

func TestSweepOrphans(t *testing.T) {
	repo, store, svc := newImageFixture()
	alive, gone1, gone2 := uuid.New(), uuid.New(), uuid.New()
	store.On("ListPrefixes", mock.Anything, model.ImageRoot).Return([]string{
		model.PostImagePrefix(alive),
		model.PostImagePrefix(gone1),
		"posts/not-a-uuid/",
		model.PostImagePrefix(gone2),
	}, nil)
	// batch size 2 → hai lần query
	repo.On("ExistingIDs", mock.Anything, []uuid.UUID{alive, gone1}).Return([]uuid.UUID{alive}, nil)
	repo.On("ExistingIDs", mock.Anything, []uuid.UUID{gone2}).Return([]uuid.UUID{}, nil)
	store.On("DeleteByPrefix", mock.Anything, model.PostImagePrefix(gone1)).Return(nil)
	store.On("DeleteByPrefix", mock.Anything, model.PostImagePrefix(gone2)).Return(nil)

	removed, err := svc.SweepOrphans(ctx, 2)

	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	store.AssertNotCalled(t, "DeleteByPrefix", mock.Anything, model.PostImagePrefix(alive))
}
