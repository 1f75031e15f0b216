package redisad

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"hotel_allocation/internal/adapters/observability"
	"hotel_allocation/internal/domain"
)

// ResultStore keeps solved allocations as JSON under solution:{id}.
type ResultStore struct{ c *redis.Client }

func New(addr, pass string, db int) *ResultStore {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}))
}

func NewWithClient(c *redis.Client) *ResultStore { return &ResultStore{c: c} }

func key(id string) string { return "solution:" + id }

func (r *ResultStore) Put(ctx context.Context, a domain.HotelAllocation, ttlSec int) error {
	if a.ID == "" {
		return fmt.Errorf("store solution: empty id")
	}
	b, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal solution %s: %w", a.ID, err)
	}
	observability.ObserveCache("redis", "set")
	return r.c.Set(ctx, key(a.ID), b, time.Duration(ttlSec)*time.Second).Err()
}

func (r *ResultStore) Get(ctx context.Context, id string) (domain.HotelAllocation, error) {
	v, err := r.c.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.ObserveCache("redis", "miss")
		return domain.HotelAllocation{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.HotelAllocation{}, err
	}
	observability.ObserveCache("redis", "hit")
	var out domain.HotelAllocation
	if err := json.Unmarshal(v, &out); err != nil {
		return domain.HotelAllocation{}, fmt.Errorf("decode solution %s: %w", id, err)
	}
	return out, nil
}

func (r *ResultStore) Del(ctx context.Context, id string) error {
	observability.ObserveCache("redis", "del")
	return r.c.Del(ctx, key(id)).Err()
}

func (r *ResultStore) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }
