package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	"github.com/m04kA/SMC-TenantBookingService/pkg/types"
)

const (
	cacheName = "slots"
	keyPrefix = "slots:"
	scanBatch = 100
)

// Recorder метрики обращений к кэшу
type Recorder interface {
	CacheHit(cache string)
	CacheMiss(cache string)
	CacheError(cache string)
}

type noopRecorder struct{}

func (noopRecorder) CacheHit(string)   {}
func (noopRecorder) CacheMiss(string)  {}
func (noopRecorder) CacheError(string) {}

type cachedSlot struct {
	Time      string `json:"t"`
	Available bool   `json:"a"`
}

// Cache кэш вычисленных слотов в redis
// Все услуги одной даты тенанта лежат в одном hash, поэтому инвалидация даты это один DEL.
type Cache struct {
	client   redis.UniversalClient
	ttl      time.Duration
	recorder Recorder
}

// NewCache создает кэш слотов, recorder может быть nil
func NewCache(client redis.UniversalClient, ttl time.Duration, recorder Recorder) *Cache {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Cache{client: client, ttl: ttl, recorder: recorder}
}

func dateKey(tenantID int64, date time.Time) string {
	return fmt.Sprintf("%s%d:%s", keyPrefix, tenantID, date.Format(domain.DateFormat))
}

// Get возвращает слоты услуги на дату; found=false при промахе
func (c *Cache) Get(ctx context.Context, tenantID int64, date time.Time, serviceID int64) ([]domain.TimeSlot, bool, error) {
	raw, err := c.client.HGet(ctx, dateKey(tenantID, date), strconv.FormatInt(serviceID, 10)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.recorder.CacheMiss(cacheName)
		return nil, false, nil
	}
	if err != nil {
		c.recorder.CacheError(cacheName)
		return nil, false, fmt.Errorf("%w: Get - tenant=%d service=%d: %v", ErrCacheRead, tenantID, serviceID, err)
	}

	var cached []cachedSlot
	if err := json.Unmarshal(raw, &cached); err != nil {
		c.recorder.CacheError(cacheName)
		return nil, false, fmt.Errorf("%w: %v", ErrCacheDecode, err)
	}

	result := make([]domain.TimeSlot, 0, len(cached))
	for _, s := range cached {
		result = append(result, domain.TimeSlot{Time: types.TimeString(s.Time), Available: s.Available})
	}

	c.recorder.CacheHit(cacheName)
	return result, true, nil
}

// Set сохраняет слоты услуги на дату и продлевает TTL hash'а даты
func (c *Cache) Set(ctx context.Context, tenantID int64, date time.Time, serviceID int64, slots []domain.TimeSlot) error {
	cached := make([]cachedSlot, 0, len(slots))
	for _, s := range slots {
		cached = append(cached, cachedSlot{Time: s.Time.String(), Available: s.Available})
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("%w: Set - marshal: %v", ErrCacheWrite, err)
	}

	key := dateKey(tenantID, date)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, strconv.FormatInt(serviceID, 10), raw)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.recorder.CacheError(cacheName)
		return fmt.Errorf("%w: Set - tenant=%d service=%d: %v", ErrCacheWrite, tenantID, serviceID, err)
	}

	return nil
}

// Invalidate удаляет слоты всех услуг тенанта на дату
func (c *Cache) Invalidate(ctx context.Context, tenantID int64, date time.Time) error {
	if err := c.client.Del(ctx, dateKey(tenantID, date)).Err(); err != nil {
		c.recorder.CacheError(cacheName)
		return fmt.Errorf("%w: Invalidate - tenant=%d date=%s: %v", ErrCacheWrite, tenantID, date.Format(domain.DateFormat), err)
	}
	return nil
}

// InvalidateTenant удаляет все закэшированные даты тенанта
// Нужна при изменении рабочих часов или длительности услуги, которые влияют на любую дату.
func (c *Cache) InvalidateTenant(ctx context.Context, tenantID int64) error {
	pattern := fmt.Sprintf("%s%d:*", keyPrefix, tenantID)

	iter := c.client.Scan(ctx, 0, pattern, scanBatch).Iterator()
	keys := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.recorder.CacheError(cacheName)
		return fmt.Errorf("%w: InvalidateTenant - scan tenant=%d: %v", ErrCacheWrite, tenantID, err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.recorder.CacheError(cacheName)
		return fmt.Errorf("%w: InvalidateTenant - tenant=%d: %v", ErrCacheWrite, tenantID, err)
	}
	return nil
}

// Ping проверяет доступность redis (используется в /readyz)
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Noop кэш-заглушка, когда redis выключен в конфигурации
type Noop struct{}

func (Noop) Get(context.Context, int64, time.Time, int64) ([]domain.TimeSlot, bool, error) {
	return nil, false, nil
}

func (Noop) Set(context.Context, int64, time.Time, int64, []domain.TimeSlot) error { return nil }

func (Noop) Invalidate(context.Context, int64, time.Time) error { return nil }

func (Noop) InvalidateTenant(context.Context, int64) error { return nil }

func (Noop) Ping(context.Context) error { return nil }
