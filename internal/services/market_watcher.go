/**
 * @description
 * Market watcher: polls watched market details and publishes pool /
 * participant changes to a Redis channel. Detail pages subscribe over SSE
 * so an open view reflects other users' bets without a reload.
 *
 * @dependencies
 * - webapp/internal/weatherapi
 * - github.com/redis/go-redis/v9
 *
 * @notes
 * - The watch set is a Redis sorted set scored by expiry; SSE subscribers
 *   re-arm their market's entry while connected, so polling stops shortly
 *   after the last viewer leaves.
 * - Without Redis the watcher is inert and detail pages simply don't update
 *   live.
 */

package services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/weather-project/webapp/internal/logger"
	"github.com/weather-project/webapp/internal/models"
	"github.com/weather-project/webapp/internal/weatherapi"
)

const (
	PoolUpdateChannel = "market:pool_updates"

	watchSetKey = "markets:watched"
	// watchLease is how long a single Watch call keeps a market polled.
	watchLease = 2 * time.Minute
)

// PoolUpdate is the payload published for a changed market.
type PoolUpdate struct {
	MarketID     string              `json:"marketId"`
	Pool         float64             `json:"pool"`
	Participants int                 `json:"participants"`
	Status       models.MarketStatus `json:"status"`
}

// MarketWatcher polls watched markets for pool changes
type MarketWatcher struct {
	API      *weatherapi.Client
	Redis    *redis.Client
	Interval time.Duration

	snapshots map[string]PoolUpdate
}

// NewMarketWatcher creates a new MarketWatcher
func NewMarketWatcher(api *weatherapi.Client, rdb *redis.Client, interval time.Duration) *MarketWatcher {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &MarketWatcher{
		API:       api,
		Redis:     rdb,
		Interval:  interval,
		snapshots: map[string]PoolUpdate{},
	}
}

// Watch marks a market as having a live viewer for the next lease window.
func (w *MarketWatcher) Watch(ctx context.Context, marketID string) {
	if w.Redis == nil || marketID == "" {
		return
	}
	expiry := float64(time.Now().Add(watchLease).Unix())
	if err := w.Redis.ZAdd(ctx, watchSetKey, redis.Z{Score: expiry, Member: marketID}).Err(); err != nil {
		logger.Error("MarketWatcher: failed to arm watch for %s: %v", marketID, err)
	}
}

// Run polls until the context is cancelled. Inert without Redis.
func (w *MarketWatcher) Run(ctx context.Context) {
	if w.Redis == nil {
		return
	}

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	logger.Info("MarketWatcher: polling watched markets every %s", w.Interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *MarketWatcher) tick(ctx context.Context) {
	now := strconv.FormatInt(time.Now().Unix(), 10)

	// Drop expired leases, then poll what's left
	if err := w.Redis.ZRemRangeByScore(ctx, watchSetKey, "-inf", "("+now).Err(); err != nil {
		logger.Error("MarketWatcher: failed to prune watch set: %v", err)
	}

	ids, err := w.Redis.ZRangeByScore(ctx, watchSetKey, &redis.ZRangeBy{Min: now, Max: "+inf"}).Result()
	if err != nil {
		logger.Error("MarketWatcher: failed to read watch set: %v", err)
		return
	}

	for _, id := range ids {
		w.poll(ctx, id)
	}
}

func (w *MarketWatcher) poll(ctx context.Context, marketID string) {
	market, err := w.API.GetMarket(ctx, marketID)
	if err != nil || market == nil {
		if err != nil {
			logger.Error("MarketWatcher: poll failed for %s: %v", marketID, err)
		}
		return
	}

	update := PoolUpdate{
		MarketID:     market.ID,
		Pool:         market.Pool,
		Participants: market.Participants,
		Status:       market.Status,
	}

	if prev, ok := w.snapshots[marketID]; ok && prev == update {
		return
	}
	w.snapshots[marketID] = update

	payload, err := json.Marshal(update)
	if err != nil {
		return
	}
	if err := w.Redis.Publish(ctx, PoolUpdateChannel, payload).Err(); err != nil {
		logger.Error("MarketWatcher: publish failed for %s: %v", marketID, err)
	}
}

// WatchKeyTTL returns how long a Watch call keeps a market armed. Exposed so
// SSE handlers can re-arm comfortably inside the lease.
func WatchKeyTTL() time.Duration {
	return watchLease
}
