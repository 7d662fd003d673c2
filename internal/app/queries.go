package app

import (
	"context"
	"fmt"
	"time"

	"andaman_market/internal/domain"
)

// QueryService serves the public browse endpoints with a cache-aside layer
// in front of the repository.
type QueryService struct {
	repo     domain.MarketRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.MarketRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) GetHotel(ctx context.Context, id int64) (domain.HotelView, error) {
	key := fmt.Sprintf("hotel:%d", id)
	var hv domain.HotelView
	if ok, _ := s.cache.Get(ctx, key, &hv); ok {
		return hv, nil
	}
	hv, err := s.repo.GetHotelView(ctx, id)
	if err != nil {
		return domain.HotelView{}, err
	}
	_ = s.cache.Set(ctx, key, hv, int(s.cacheTTL.Seconds()))
	return hv, nil
}

func (s *QueryService) ListServices(ctx context.Context, q domain.ServicesQuery) ([]domain.ServiceSummary, error) {
	key := "services:all"
	if q.Type != nil {
		key = fmt.Sprintf("services:%s", *q.Type)
	}
	var out []domain.ServiceSummary
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	items, err := s.repo.ListServices(ctx, q)
	if err != nil {
		return nil, err
	}

	// copy the slice so cached values never alias the repo's backing array
	cp := make([]domain.ServiceSummary, len(items))
	copy(cp, items)
	_ = s.cache.Set(ctx, key, cp, int(s.cacheTTL.Seconds()))
	return cp, nil
}
