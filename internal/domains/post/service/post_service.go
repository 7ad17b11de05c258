package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"blogicum-backend/internal/domains/category"
	"blogicum-backend/internal/domains/location"
	"blogicum-backend/internal/domains/post/model"
	"blogicum-backend/internal/domains/post/repository"
	"blogicum-backend/internal/infrastructure/storage"
	"blogicum-backend/internal/shared"
	"blogicum-backend/internal/shared/authz"
	"blogicum-backend/internal/shared/pagination"
	"blogicum-backend/pkg/logger"
)

type postService struct {
	repo       repository.RepositoryInterface
	users      UserLookup
	categories CategoryLookup
	locations  LocationLookup
	images     ImageStorage
	processor  *storage.ImageProcessor
	queue      Enqueuer
	pageSize   int
	now        func() time.Time
}

func NewPostService(
	repo repository.RepositoryInterface,
	users UserLookup,
	categories CategoryLookup,
	locations LocationLookup,
	images ImageStorage,
	processor *storage.ImageProcessor,
	queue Enqueuer,
	pageSize int,
) ServiceInterface {
	return &postService{
		repo:       repo,
		users:      users,
		categories: categories,
		locations:  locations,
		images:     images,
		processor:  processor,
		queue:      queue,
		pageSize:   pageSize,
		now:        time.Now,
	}
}

// ========================================
// FEEDS
// ========================================

func (s *postService) HomeFeed(ctx context.Context, rawPage string) (*model.Feed, error) {
	q := repository.FeedQuery{PublicOnly: true, WithComments: true, Now: s.now()}
	return s.feed(ctx, q, rawPage)
}

// CategoryFeed - category không tồn tại hoặc chưa publish → category.ErrCategoryNotFound
func (s *postService) CategoryFeed(ctx context.Context, slug, rawPage string) (*model.Feed, error) {
	cat, err := s.categories.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	q := repository.FeedQuery{CategoryID: &cat.ID, PublicOnly: true, WithComments: true, Now: s.now()}
	feed, err := s.feed(ctx, q, rawPage)
	if err != nil {
		return nil, err
	}

	feed.Category = &model.CategoryRef{
		ID:          cat.ID,
		Title:       cat.Title,
		Slug:        cat.Slug,
		IsPublished: cat.IsPublished,
	}
	return feed, nil
}

// ProfileFeed - chủ profile thấy tất cả posts của mình, người khác chỉ thấy posts public
func (s *postService) ProfileFeed(ctx context.Context, username string, viewerID *uuid.UUID, rawPage string) (*model.Feed, error) {
	owner, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	isOwner := viewerID != nil && *viewerID == owner.ID
	q := repository.FeedQuery{AuthorID: &owner.ID, PublicOnly: !isOwner, WithComments: true, Now: s.now()}

	feed, err := s.feed(ctx, q, rawPage)
	if err != nil {
		return nil, err
	}

	profile := owner.ToPublicProfile()
	feed.Profile = &profile
	return feed, nil
}

func (s *postService) feed(ctx context.Context, q repository.FeedQuery, rawPage string) (*model.Feed, error) {
	total, err := s.repo.CountFeed(ctx, q)
	if err != nil {
		return nil, err
	}

	page := pagination.NewPage(rawPage, s.pageSize, total)

	posts, err := s.repo.ListFeed(ctx, q, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	items := make([]model.PostResponse, 0, len(posts))
	for i := range posts {
		items = append(items, s.ToResponse(&posts[i]))
	}

	return &model.Feed{Posts: items, Page: page}, nil
}

// ========================================
// DETAIL
// ========================================

func (s *postService) GetVisiblePost(ctx context.Context, postID uuid.UUID, viewerID *uuid.UUID) (*model.Post, error) {
	p, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !p.VisibleTo(viewerID, s.now()) {
		return nil, model.ErrPostNotFound
	}
	return p, nil
}

func (s *postService) ToResponse(p *model.Post) model.PostResponse {
	return p.ToResponse(s.images.URL)
}

// ========================================
// AUTHOR ACTIONS
// ========================================

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, form model.PostForm) (*model.PostResponse, error) {
	format, err := s.validateForm(ctx, form)
	if err != nil {
		return nil, err
	}

	p := &model.Post{
		ID:          uuid.New(),
		Title:       form.Title,
		Text:        form.Text,
		PubDate:     form.PubDateOr(s.now()),
		AuthorID:    authorID,
		CategoryID:  form.CategoryUUID(),
		LocationID:  form.LocationUUID(),
		IsPublished: form.IsPublished == nil || *form.IsPublished,
		CreatedAt:   s.now(),
	}

	// Upload trước khi insert: lỗi storage → không persist gì cả
	if len(form.Image) > 0 {
		key, err := s.uploadImage(ctx, p.ID, form.Image, format)
		if err != nil {
			return nil, err
		}
		p.ImageKey = &key
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if p.ImageKey != nil {
			s.enqueueDelete(ctx, p.ID, model.PostImagePrefix(p.ID))
		}
		return nil, err
	}

	if p.ImageKey != nil {
		s.enqueueProcess(ctx, p.ID, *p.ImageKey)
	}

	return s.reload(ctx, p.ID)
}

func (s *postService) GetEditForm(ctx context.Context, postID, viewerID uuid.UUID) (*model.EditFormResponse, error) {
	p, err := s.loadForAuthor(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}

	form := &model.EditFormResponse{
		ID:          p.ID,
		Title:       p.Title,
		Text:        p.Text,
		PubDate:     p.PubDate,
		CategoryID:  p.CategoryID,
		LocationID:  p.LocationID,
		IsPublished: p.IsPublished,
	}
	if p.ImageKey != nil {
		form.ImageURL = s.images.URL(*p.ImageKey)
	}
	return form, nil
}

func (s *postService) Update(ctx context.Context, postID, viewerID uuid.UUID, form model.PostForm) (*model.PostResponse, error) {
	p, err := s.loadForAuthor(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}

	format, err := s.validateForm(ctx, form)
	if err != nil {
		return nil, err
	}

	p.Title = form.Title
	p.Text = form.Text
	p.CategoryID = form.CategoryUUID()
	p.LocationID = form.LocationUUID()
	p.PubDate = form.PubDateOr(p.PubDate)
	if form.IsPublished != nil {
		p.IsPublished = *form.IsPublished
	}

	oldKey := p.ImageKey
	var newKey *string
	switch {
	case len(form.Image) > 0:
		key, err := s.uploadImage(ctx, p.ID, form.Image, format)
		if err != nil {
			return nil, err
		}
		newKey = &key
		p.ImageKey = newKey
	case form.ClearImage:
		p.ImageKey = nil
	}

	if err := s.repo.Update(ctx, p); err != nil {
		if newKey != nil {
			s.enqueueDelete(ctx, p.ID, model.ImageDir(*newKey))
		}
		return nil, err
	}

	if oldKey != nil && (p.ImageKey == nil || *p.ImageKey != *oldKey) {
		s.enqueueDelete(ctx, p.ID, model.ImageDir(*oldKey))
	}
	if newKey != nil {
		s.enqueueProcess(ctx, p.ID, *newKey)
	}

	return s.reload(ctx, p.ID)
}

func (s *postService) Delete(ctx context.Context, postID, viewerID uuid.UUID) error {
	p, err := s.loadForAuthor(ctx, postID, viewerID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, p.ID); err != nil {
		return err
	}

	if p.ImageKey != nil {
		s.enqueueDelete(ctx, p.ID, model.PostImagePrefix(p.ID))
	}
	return nil
}

// ========================================
// ADMIN
// ========================================

func (s *postService) SetPublished(ctx context.Context, postID uuid.UUID, published bool) (*model.PostResponse, error) {
	if err := s.repo.SetPublished(ctx, postID, published); err != nil {
		return nil, err
	}
	return s.reload(ctx, postID)
}

// ========================================
// HELPERS
// ========================================

// loadForAuthor: post ẩn với viewer → 404, post public nhưng không phải author → 403
func (s *postService) loadForAuthor(ctx context.Context, postID, viewerID uuid.UUID) (*model.Post, error) {
	p, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := authz.EnsureAuthor(viewerID, p.AuthorID); err != nil {
		if !p.IsPubliclyVisible(s.now()) {
			return nil, model.ErrPostNotFound
		}
		return nil, err
	}
	return p, nil
}

// validateForm gom toàn bộ field errors (kể cả category/location/image) vào một validation.Errors.
// Trả về format của ảnh khi form có ảnh.
func (s *postService) validateForm(ctx context.Context, form model.PostForm) (string, error) {
	errs := validation.Errors{}

	if err := form.Validate(); err != nil {
		var verrs validation.Errors
		if !errors.As(err, &verrs) {
			return "", err
		}
		for field, fieldErr := range verrs {
			errs[field] = fieldErr
		}
	}

	if id := form.CategoryUUID(); id != nil {
		_, err := s.categories.GetByID(ctx, *id)
		switch {
		case errors.Is(err, category.ErrCategoryNotFound):
			errs["category_id"] = model.ErrCategoryMissing
		case err != nil:
			return "", err
		}
	}

	if id := form.LocationUUID(); id != nil {
		_, err := s.locations.GetByID(ctx, *id)
		switch {
		case errors.Is(err, location.ErrLocationNotFound):
			errs["location_id"] = model.ErrLocationMissing
		case err != nil:
			return "", err
		}
	}

	var format string
	if len(form.Image) > 0 {
		f, err := s.processor.ValidateImage(form.Image)
		if err != nil {
			errs["image"] = err
		}
		format = f
	}

	return format, errs.Filter()
}

func (s *postService) uploadImage(ctx context.Context, postID uuid.UUID, data []byte, format string) (string, error) {
	key := model.OriginalImageKey(postID, uuid.New(), storage.Extension(format))
	if err := s.images.Upload(ctx, key, data, storage.ContentType(format)); err != nil {
		return "", fmt.Errorf("upload post image: %w", err)
	}
	return key, nil
}

func (s *postService) reload(ctx context.Context, postID uuid.UUID) (*model.PostResponse, error) {
	p, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	resp := s.ToResponse(p)
	return &resp, nil
}

// Enqueue lỗi chỉ log, không fail request; orphan sweep dọn phần còn sót
func (s *postService) enqueueProcess(ctx context.Context, postID uuid.UUID, key string) {
	payload := shared.PostImagePayload{PostID: postID.String(), ImageKey: key}
	if err := s.queue.Enqueue(ctx, shared.TypeProcessPostImage, payload); err != nil {
		logger.ErrorWithFields("failed to enqueue image processing", err, map[string]interface{}{
			"post_id":   postID.String(),
			"image_key": key,
		})
	}
}

func (s *postService) enqueueDelete(ctx context.Context, postID uuid.UUID, prefix string) {
	payload := shared.DeletePostImagesPayload{PostID: postID.String(), Prefix: prefix}
	if err := s.queue.Enqueue(ctx, shared.TypeDeletePostImages, payload); err != nil {
		logger.ErrorWithFields("failed to enqueue image deletion", err, map[string]interface{}{
			"post_id": postID.String(),
			"prefix":  prefix,
		})
	}
}
