package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const Nil = redis.Nil

// RedisCache cachea respuestas de solo lectura (listados públicos de
// habitaciones, fechas bloqueadas). Las escrituras del dominio invalidan
// por prefijo.
type RedisCache interface {
	Save(ctx context.Context, key string, value any, ttlSeconds int) error
	Get(ctx context.Context, key string, value any) error
	Clear(ctx context.Context, prefix string) error
}

type redisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) RedisCache {
	return &redisCache{client: client}
}

func (c *redisCache) Save(ctx context.Context, key string, value any, ttlSeconds int) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error serializando valor de cache: %w", err)
	}

	if err := c.client.Set(ctx, key, data, time.Duration(ttlSeconds)*time.Second).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("no se pudo guardar en cache")
		return fmt.Errorf("error guardando en cache: %w", err)
	}
	return nil
}

func (c *redisCache) Get(ctx context.Context, key string, value any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, value)
}

func (c *redisCache) Clear(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Error().Err(err).Str("key", iter.Val()).Msg("no se pudo invalidar cache")
			return fmt.Errorf("error invalidando cache: %w", err)
		}
	}
	return iter.Err()
}

// NewClient crea el cliente de Redis y verifica conectividad.
func NewClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("error conectando a redis: %w", err)
	}
	return client, nil
}
