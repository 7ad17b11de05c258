package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blogicum-backend/internal/domains/category"
	"blogicum-backend/internal/domains/location"
	"blogicum-backend/internal/domains/post/model"
	"blogicum-backend/internal/domains/post/repository"
	"blogicum-backend/internal/domains/user"
	"blogicum-backend/internal/infrastructure/storage"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, p *model.Post) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Post)
	return p, args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, p *model.Post) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	return m.Called(ctx, id, published).Error(0)
}

func (m *mockRepo) ListFeed(ctx context.Context, q repository.FeedQuery, limit, offset int) ([]model.Post, error) {
	args := m.Called(ctx, q, limit, offset)
	posts, _ := args.Get(0).([]model.Post)
	return posts, args.Error(1)
}

func (m *mockRepo) CountFeed(ctx context.Context, q repository.FeedQuery) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}

func (m *mockRepo) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, ids)
	existing, _ := args.Get(0).([]uuid.UUID)
	return existing, args.Error(1)
}

type mockUsers struct{ mock.Mock }

func (m *mockUsers) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type mockCategories struct{ mock.Mock }

func (m *mockCategories) GetPublishedBySlug(ctx context.Context, slug string) (*category.Category, error) {
	args := m.Called(ctx, slug)
	c, _ := args.Get(0).(*category.Category)
	return c, args.Error(1)
}

func (m *mockCategories) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*category.Category)
	return c, args.Error(1)
}

type mockLocations struct{ mock.Mock }

func (m *mockLocations) GetByID(ctx context.Context, id uuid.UUID) (*location.Location, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*location.Location)
	return l, args.Error(1)
}

type mockStorage struct{ mock.Mock }

func (m *mockStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	return m.Called(ctx, key, data, contentType).Error(0)
}

func (m *mockStorage) Download(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *mockStorage) DeleteByPrefix(ctx context.Context, prefix string) error {
	return m.Called(ctx, prefix).Error(0)
}

func (m *mockStorage) ListPrefixes(ctx context.Context, parent string) ([]string, error) {
	args := m.Called(ctx, parent)
	prefixes, _ := args.Get(0).([]string)
	return prefixes, args.Error(1)
}

func (m *mockStorage) URL(key string) string {
	return "http://minio.local/blogicum/" + key
}

type mockQueue struct{ mock.Mock }

func (m *mockQueue) Enqueue(ctx context.Context, taskType string, payload interface{}) error {
	return m.Called(ctx, taskType, payload).Error(0)
}

type fixture struct {
	repo       *mockRepo
	users      *mockUsers
	categories *mockCategories
	locations  *mockLocations
	storage    *mockStorage
	queue      *mockQueue
	svc        *postService
	now        time.Time
}

func newFixture() *fixture {
	f := &fixture{
		repo:       new(mockRepo),
		users:      new(mockUsers),
		categories: new(mockCategories),
		locations:  new(mockLocations),
		storage:    new(mockStorage),
		queue:      new(mockQueue),
		now:        time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewPostService(
		f.repo, f.users, f.categories, f.locations,
		f.storage, storage.NewImageProcessor(1024*1024), f.queue, 10,
	).(*postService)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}
