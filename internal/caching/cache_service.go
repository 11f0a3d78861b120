package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
)

type CacheService interface {
	// Item caching
	GetItem(ctx context.Context, organizationID, itemID uuid.UUID) (*models.Item, error)
	SetItem(ctx context.Context, organizationID uuid.UUID, item *models.Item, ttl time.Duration) error
	DeleteItem(ctx context.Context, organizationID, itemID uuid.UUID) error

	// Active organization session: which organization a signed-in user is
	// currently acting in.
	GetActiveOrganization(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	SetActiveOrganization(ctx context.Context, userID, organizationID uuid.UUID, ttl time.Duration) error
	DeleteActiveOrganization(ctx context.Context, userID uuid.UUID) error

	// Cache invalidation
	InvalidateOrganizationCache(ctx context.Context, organizationID uuid.UUID) error

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	IncrementRateLimit(ctx context.Context, key string, window time.Duration) error

	// Generic string operations for token management
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Parse Redis URL to extract host:port if protocol is included
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetItem(ctx context.Context, organizationID, itemID uuid.UUID) (*models.Item, error) {
	key := fmt.Sprintf("vriddhi:item:%s:%s", organizationID.String(), itemID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var item models.Item
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *redisCacheService) SetItem(ctx context.Context, organizationID uuid.UUID, item *models.Item, ttl time.Duration) error {
	key := fmt.Sprintf("vriddhi:item:%s:%s", organizationID.String(), item.ID.String())
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteItem(ctx context.Context, organizationID, itemID uuid.UUID) error {
	key := fmt.Sprintf("vriddhi:item:%s:%s", organizationID.String(), itemID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetActiveOrganization(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	key := fmt.Sprintf("vriddhi:active_org:%s", userID.String())
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return uuid.Nil, nil // no cached active organization
		}
		return uuid.Nil, err
	}
	return uuid.Parse(value)
}

func (r *redisCacheService) SetActiveOrganization(ctx context.Context, userID, organizationID uuid.UUID, ttl time.Duration) error {
	key := fmt.Sprintf("vriddhi:active_org:%s", userID.String())
	return r.client.Set(ctx, key, organizationID.String(), ttl).Err()
}

func (r *redisCacheService) DeleteActiveOrganization(ctx context.Context, userID uuid.UUID) error {
	key := fmt.Sprintf("vriddhi:active_org:%s", userID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) InvalidateOrganizationCache(ctx context.Context, organizationID uuid.UUID) error {
	pattern := fmt.Sprintf("vriddhi:item:%s:*", organizationID.String())
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	rateKey := fmt.Sprintf("vriddhi:ratelimit:%s", key)
	count, err := r.client.Get(ctx, rateKey).Int()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	return count >= limit, nil
}

func (r *redisCacheService) IncrementRateLimit(ctx context.Context, key string, window time.Duration) error {
	rateKey := fmt.Sprintf("vriddhi:ratelimit:%s", key)
	pipe := r.client.TxPipeline()
	pipe.Incr(ctx, rateKey)
	pipe.Expire(ctx, rateKey, window)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
