package cache

import (
	"fmt"
	"time"

	log "github.com/acikkaynak/reliefhub-go/pkg/logger"
	"github.com/go-redis/redis"
	"go.uber.org/zap"
)

const scanBatch = 100

// Cache stores rendered responses by key.
type Cache interface {
	Get(key string) ([]byte, bool)
	SetKey(key string, value []byte, ttl time.Duration)
	Delete(keys ...string) error
	DeletePrefix(prefix string) error
	Prune() error
}

type RedisRepository struct {
	client *redis.Client
}

func NewRedisRepository(addr, password string) *RedisRepository {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &RedisRepository{client: client}
}

func (repository *RedisRepository) SetKey(key string, value []byte, ttl time.Duration) {
	if err := repository.client.Set(key, value, ttl).Err(); err != nil {
		log.Logger().Warn("could not set cache key", zap.String("key", key), zap.Error(err))
	}
}

func (repository *RedisRepository) Get(key string) ([]byte, bool) {
	data, err := repository.client.Get(key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Logger().Warn("could not read cache key", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return data, len(data) > 0
}

func (repository *RedisRepository) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return repository.client.Del(keys...).Err()
}

// DeletePrefix removes every key starting with prefix, walking the keyspace with SCAN.
func (repository *RedisRepository) DeletePrefix(prefix string) error {
	var cursor uint64
	for {
		keys, next, err := repository.client.Scan(cursor, prefix+"*", scanBatch).Result()
		if err != nil {
			return fmt.Errorf("could not scan cache keys with prefix %s: %w", prefix, err)
		}
		if err := repository.Delete(keys...); err != nil {
			return fmt.Errorf("could not delete cache keys with prefix %s: %w", prefix, err)
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func (repository *RedisRepository) Prune() error {
	return repository.client.FlushDB().Err()
}

func (repository *RedisRepository) Close() error {
	return repository.client.Close()
}
