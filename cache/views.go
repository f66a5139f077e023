package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/menuport/portal-app/models"
)

// Dashboard view names.
const (
	ViewCashier = "cashier"
	ViewKitchen = "kitchen"
)

// Views caches the cashier/kitchen order snapshots per portal so the
// dashboards can poll without hitting the database every time. A nil
// *Views is a valid no-op cache.
type Views struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewViews(rdb *redis.Client, ttl time.Duration) *Views {
	return &Views{rdb: rdb, ttl: ttl}
}

func viewKey(portalID uint, view string) string {
	return fmt.Sprintf("views:%d:%s", portalID, view)
}

// GetOrders returns the cached snapshot and whether it was present.
func (v *Views) GetOrders(ctx context.Context, portalID uint, view string) ([]models.Order, bool) {
	if v == nil || v.rdb == nil {
		return nil, false
	}
	val, err := v.rdb.Get(ctx, viewKey(portalID, view)).Result()
	if err != nil {
		return nil, false
	}
	var orders []models.Order
	if err := json.Unmarshal([]byte(val), &orders); err != nil {
		return nil, false
	}
	return orders, true
}

// SetOrders stores a snapshot. Failures are ignored; the cache is
// advisory.
func (v *Views) SetOrders(ctx context.Context, portalID uint, view string, orders []models.Order) {
	if v == nil || v.rdb == nil {
		return
	}
	data, err := json.Marshal(orders)
	if err != nil {
		return
	}
	v.rdb.Set(ctx, viewKey(portalID, view), data, v.ttl)
}

// Invalidate drops both dashboard snapshots for a portal. Called after
// any order mutation.
func (v *Views) Invalidate(ctx context.Context, portalID uint) {
	if v == nil || v.rdb == nil {
		return
	}
	v.rdb.Del(ctx, viewKey(portalID, ViewCashier), viewKey(portalID, ViewKitchen))
}
