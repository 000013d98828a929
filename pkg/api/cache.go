package api

import (
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
)

const responseCacheExpiration = 30 * time.Minute

func NewResponseCache(client *redis.Client) *cache.Cache[string] {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(responseCacheExpiration))

	return cache.New[string](redisStore)
}
