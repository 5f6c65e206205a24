package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache read-through кэш результатов availability в redis.
// Результаты быстро устаревают, поэтому TTL короткий.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache создает кэш поверх redis клиента
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func cacheKey(etablissementID, prestationID int64, dateISO string, stepMinutes int) string {
	return fmt.Sprintf("availability:slots:%d:%d:%s:%d", etablissementID, prestationID, dateISO, stepMinutes)
}

// Get возвращает закэшированный результат или nil при промахе
func (c *Cache) Get(ctx context.Context, etablissementID, prestationID int64, dateISO string, stepMinutes int) (*SlotsResult, error) {
	data, err := c.client.Get(ctx, cacheKey(etablissementID, prestationID, dateISO, stepMinutes)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result SlotsResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Set сохраняет результат с TTL
func (c *Cache) Set(ctx context.Context, result *SlotsResult, stepMinutes int) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	key := cacheKey(result.EtablissementID, result.PrestationID, result.Date, stepMinutes)
	return c.client.Set(ctx, key, data, c.ttl).Err()
}
