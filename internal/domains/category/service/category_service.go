package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"blogicum-backend/internal/domains/category"
	"blogicum-backend/internal/shared/utils"
	"blogicum-backend/pkg/cache"
	"blogicum-backend/pkg/logger"
)

const slugCacheKey = "category:slug:%s"

type categoryService struct {
	repo     category.Repository
	cache    cache.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewCategoryService(repo category.Repository, c cache.Cache, cacheTTL time.Duration) category.Service {
	return &categoryService{
		repo:     repo,
		cache:    c,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// ========================================
// PUBLIC
// ========================================

// GetPublishedBySlug: cache-aside theo slug; category chưa publish coi như không tồn tại
func (s *categoryService) GetPublishedBySlug(ctx context.Context, slug string) (*category.Category, error) {
	key := fmt.Sprintf(slugCacheKey, slug)

	var cached category.Category
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Error("category cache get failed", err)
	}

	c := &cached
	if !found {
		c, err = s.repo.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, key, c, s.cacheTTL); err != nil {
			logger.Error("category cache set failed", err)
		}
	}

	if !c.IsPublished {
		return nil, category.ErrCategoryNotFound
	}
	return c, nil
}

func (s *categoryService) ListPublished(ctx context.Context) ([]category.Category, error) {
	return s.repo.List(ctx, true)
}

// ========================================
// ADMIN
// ========================================

func (s *categoryService) Create(ctx context.Context, req category.CreateCategoryRequest) (*category.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.GenerateSlug(req.Title)
	}
	if !utils.IsValidSlug(slug) {
		return nil, fmt.Errorf("%w: cannot derive slug from title, provide one explicitly", category.ErrInvalidSlug)
	}

	c := &category.Category{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Slug:        slug,
		IsPublished: req.IsPublished == nil || *req.IsPublished,
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.invalidate(ctx, c.Slug)
	return c, nil
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) ListAll(ctx context.Context) ([]category.Category, error) {
	return s.repo.List(ctx, false)
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req category.UpdateCategoryRequest) (*category.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldSlug := c.Slug

	req.Apply(c)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.invalidate(ctx, oldSlug, c.Slug)
	return c, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, c.Slug)
	return nil
}

func (s *categoryService) invalidate(ctx context.Context, slugs ...string) {
	keys := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		keys = append(keys, fmt.Sprintf(slugCacheKey, slug))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logger.Error("category cache invalidation failed", err)
	}
}
