package weather

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitedProvider wraps a Provider with a shared outbound rate limit,
// keeping the service inside the OpenWeather free-tier quota.
type RateLimitedProvider struct {
	provider Provider
	limiter  *rate.Limiter
}

var _ Provider = (*RateLimitedProvider)(nil)

// NewRateLimitedProvider allows rps requests per second with the given
// burst across all provider endpoints.
func NewRateLimitedProvider(provider Provider, rps float64, burst int) *RateLimitedProvider {
	return &RateLimitedProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimitedProvider) Geocode(ctx context.Context, city string) (*Coordinates, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.Geocode(ctx, city)
}

func (r *RateLimitedProvider) LocalTime(ctx context.Context, coords Coordinates) (*LocalTime, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.LocalTime(ctx, coords)
}

func (r *RateLimitedProvider) DailyForecast(ctx context.Context, coords Coordinates) ([]DailyForecast, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.DailyForecast(ctx, coords)
}
