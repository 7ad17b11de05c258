package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"blogicum-backend/internal/domains/location"
)

type locationService struct {
	repo location.Repository
	now  func() time.Time
}

func NewLocationService(repo location.Repository) location.Service {
	return &locationService{repo: repo, now: time.Now}
}

func (s *locationService) ListPublished(ctx context.Context) ([]location.Location, error) {
	return s.repo.List(ctx, true)
}

func (s *locationService) Create(ctx context.Context, req location.CreateLocationRequest) (*location.Location, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	l := &location.Location{
		ID:          uuid.New(),
		Name:        req.Name,
		IsPublished: req.IsPublished == nil || *req.IsPublished,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *locationService) GetByID(ctx context.Context, id uuid.UUID) (*location.Location, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *locationService) ListAll(ctx context.Context) ([]location.Location, error) {
	return s.repo.List(ctx, false)
}

func (s *locationService) Update(ctx context.Context, id uuid.UUID, req location.UpdateLocationRequest) (*location.Location, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(l)
	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *locationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
