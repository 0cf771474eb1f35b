/**
 * @description
 * Service layer for the market directory.
 * Orchestrates fetching listings from the weather-market API, caching the
 * unfiltered listing in Redis, re-applying filters client-side, and
 * degrading to the built-in sample set on any fetch failure.
 *
 * @dependencies
 * - webapp/internal/weatherapi
 * - github.com/redis/go-redis/v9
 *
 * @notes
 * - Client-side re-filtering of server-filtered results is idempotent: the
 *   predicate matches exactly what the server already applied.
 * - Changing the selected country invalidates the city constraint, so
 *   ResolveFilter resets the city whenever the country differs.
 * - Concurrent filter changes from one session are sequenced; a response
 *   computed for a superseded request is discarded instead of overwriting
 *   fresher state.
 */

package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/weather-project/webapp/internal/logger"
	"github.com/weather-project/webapp/internal/models"
	"github.com/weather-project/webapp/internal/weatherapi"
)

const (
	CacheKeyMarkets = "markets:list"
	MarketsCacheTTL = time.Minute
)

// ErrSuperseded marks a listing response that lost the race to a newer
// request from the same session. Callers drop the result.
var ErrSuperseded = errors.New("listing request superseded")

// Filter is the directory's normalized filter state. Empty means "all".
type Filter struct {
	Country string
	City    string
	Search  string
}

// NormalizeFilter maps the UI's "all" sentinel to the empty wildcard and
// trims search whitespace.
func NormalizeFilter(f Filter) Filter {
	if strings.EqualFold(f.Country, "all") {
		f.Country = ""
	}
	if strings.EqualFold(f.City, "all") {
		f.City = ""
	}
	f.Search = strings.TrimSpace(f.Search)
	return f
}

// ResolveFilter applies the incoming filter over the previous one.
// A country switch resets the city: keeping it would pin a constraint that
// no longer belongs to the selected country.
func ResolveFilter(prev, next Filter) Filter {
	next = NormalizeFilter(next)
	prev = NormalizeFilter(prev)
	if next.Country != prev.Country {
		next.City = ""
	}
	return next
}

// Match reports whether a market satisfies the filter.
func (f Filter) Match(m models.Market) bool {
	if f.Country != "" && m.Country != f.Country {
		return false
	}
	if f.City != "" && m.City != f.City {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(m.City), needle) &&
			!strings.Contains(strings.ToLower(m.Question), needle) {
			return false
		}
	}
	return true
}

// Apply filters a listing. Filtering is idempotent: applying the same
// filter to its own output returns the same set.
func (f Filter) Apply(markets []models.Market) []models.Market {
	filtered := make([]models.Market, 0, len(markets))
	for _, m := range markets {
		if f.Match(m) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// DirectoryService handles market listing operations
type DirectoryService struct {
	API   *weatherapi.Client
	Redis *redis.Client

	mu   sync.Mutex
	seqs map[string]uint64
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(api *weatherapi.Client, rdb *redis.Client) *DirectoryService {
	return &DirectoryService{
		API:   api,
		Redis: rdb,
		seqs:  map[string]uint64{},
	}
}

// ListMarkets fetches markets matching the filter.
// On any transport or application failure the fixed sample set is returned
// instead (degraded=true); the listing never surfaces an error state.
func (s *DirectoryService) ListMarkets(ctx context.Context, filter Filter) (markets []models.Market, degraded bool) {
	filter = NormalizeFilter(filter)

	fetched, err := s.fetchMarkets(ctx, filter)
	if err != nil {
		logger.Error("DirectoryService: listing fetch failed, serving samples: %v", err)
		return filter.Apply(SampleMarkets()), true
	}

	// Re-apply the filter locally; idempotent over server-filtered results.
	return filter.Apply(fetched), false
}

// ListMarketsSequenced is ListMarkets with per-session request sequencing:
// if a newer request from the same session began while this one was in
// flight, the stale result is discarded and ErrSuperseded returned.
func (s *DirectoryService) ListMarketsSequenced(ctx context.Context, session string, filter Filter) ([]models.Market, bool, error) {
	token := s.begin(session)

	markets, degraded := s.ListMarkets(ctx, filter)

	if !s.current(session, token) {
		return nil, false, ErrSuperseded
	}
	return markets, degraded, nil
}

func (s *DirectoryService) begin(session string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seqs[session]++
	return s.seqs[session]
}

func (s *DirectoryService) current(session string, token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seqs[session] == token
}

// fetchMarkets hits the API, caching the unfiltered listing in Redis.
func (s *DirectoryService) fetchMarkets(ctx context.Context, filter Filter) ([]models.Market, error) {
	useCache := filter == Filter{}

	if useCache && s.Redis != nil {
		data, err := s.Redis.Get(ctx, CacheKeyMarkets).Bytes()
		if err == nil {
			var cached []models.Market
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			logger.Error("DirectoryService: cache read error: %v", err)
		}
	}

	markets, err := s.API.ListMarkets(ctx, weatherapi.MarketFilter{
		Country: filter.Country,
		City:    filter.City,
		Search:  filter.Search,
	})
	if err != nil {
		return nil, err
	}

	if useCache && s.Redis != nil {
		if data, err := json.Marshal(markets); err == nil {
			if err := s.Redis.Set(ctx, CacheKeyMarkets, data, MarketsCacheTTL).Err(); err != nil {
				logger.Error("DirectoryService: cache write error: %v", err)
			}
		}
	}

	return markets, nil
}
