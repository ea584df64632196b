package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"voyage_booking/internal/domain"
	"voyage_booking/internal/pricing"
)

// SeedService pulls the catalog feed and upserts it into storage,
// invalidating the catalog caches it touches.
type SeedService struct {
	feed  domain.CatalogFeed
	repo  domain.CatalogRepository
	cache domain.Cache
}

func NewSeedService(f domain.CatalogFeed, r domain.CatalogRepository, c domain.Cache) *SeedService {
	return &SeedService{feed: f, repo: r, cache: c}
}

func (s *SeedService) SeedDestination(ctx context.Context, d domain.Destination) error {
	if pricing.ParseUnitPrice(d.Price) == 0 {
		// A digitless price label silently books for free; flag it at
		// ingest time, where catalog authors can still fix it.
		log.Warn().Int64("id", d.ID).Str("price", d.Price).Msg("destination price has no digits")
	}
	if err := s.repo.UpsertDestination(ctx, d); err != nil {
		return fmt.Errorf("upsert destination %d: %w", d.ID, err)
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, keyDestination(d.ID))
		_ = s.cache.Del(ctx, keyDestinations)
	}
	return nil
}

func (s *SeedService) SeedEvent(ctx context.Context, e domain.Event) error {
	if pricing.ParseUnitPrice(e.Price) == 0 {
		log.Warn().Int64("id", e.ID).Str("price", e.Price).Msg("event price has no digits")
	}
	if err := s.repo.UpsertEvent(ctx, e); err != nil {
		return fmt.Errorf("upsert event %d: %w", e.ID, err)
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, keyEvent(e.ID))
		_ = s.cache.Del(ctx, keyEvents)
	}
	return nil
}

// FetchDestinations and FetchEvents expose the feed to the seeder binary,
// which fans the upserts out itself.
func (s *SeedService) FetchDestinations(ctx context.Context) ([]domain.Destination, error) {
	return s.feed.FetchDestinations(ctx)
}

func (s *SeedService) FetchEvents(ctx context.Context) ([]domain.Event, error) {
	return s.feed.FetchEvents(ctx)
}
