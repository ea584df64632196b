package app

import (
	"context"
	"fmt"
	"time"

	"voyage_booking/internal/domain"
)

const (
	keyDestinations = "catalog:destinations"
	keyEvents       = "catalog:events"
)

func keyDestination(id int64) string { return fmt.Sprintf("catalog:destination:%d", id) }
func keyEvent(id int64) string       { return fmt.Sprintf("catalog:event:%d", id) }

// CatalogService serves the read-heavy catalog paths cache-aside.
type CatalogService struct {
	repo     domain.CatalogRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewCatalogService(r domain.CatalogRepository, c domain.Cache, ttl time.Duration) *CatalogService {
	return &CatalogService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *CatalogService) GetDestination(ctx context.Context, id int64) (domain.Destination, error) {
	key := keyDestination(id)
	var d domain.Destination
	if ok, _ := s.cache.Get(ctx, key, &d); ok {
		return d, nil
	}
	d, err := s.repo.GetDestination(ctx, id)
	if err != nil {
		return domain.Destination{}, err
	}
	_ = s.cache.Set(ctx, key, d, int(s.cacheTTL.Seconds()))
	return d, nil
}

func (s *CatalogService) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	var out []domain.Destination
	if ok, _ := s.cache.Get(ctx, keyDestinations, &out); ok {
		return out, nil
	}
	out, err := s.repo.ListDestinations(ctx)
	if err != nil {
		return nil, err
	}
	// copy before caching so callers can't mutate the cached slice
	cp := make([]domain.Destination, len(out))
	copy(cp, out)
	_ = s.cache.Set(ctx, keyDestinations, cp, int(s.cacheTTL.Seconds()))
	return out, nil
}

func (s *CatalogService) GetEvent(ctx context.Context, id int64) (domain.Event, error) {
	key := keyEvent(id)
	var e domain.Event
	if ok, _ := s.cache.Get(ctx, key, &e); ok {
		return e, nil
	}
	e, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}
	_ = s.cache.Set(ctx, key, e, int(s.cacheTTL.Seconds()))
	return e, nil
}

func (s *CatalogService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	var out []domain.Event
	if ok, _ := s.cache.Get(ctx, keyEvents, &out); ok {
		return out, nil
	}
	out, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	cp := make([]domain.Event, len(out))
	copy(cp, out)
	_ = s.cache.Set(ctx, keyEvents, cp, int(s.cacheTTL.Seconds()))
	return out, nil
}
