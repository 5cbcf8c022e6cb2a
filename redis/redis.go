package redis

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

// RevokeToken blacklists a token id until the token would have expired
// anyway, so logged-out tokens stop working immediately.
func RevokeToken(jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return Client.Set(Ctx, "revoked:"+jti, "1", ttl).Err()
}

// IsRevoked reports whether a token id has been blacklisted.
func IsRevoked(jti string) bool {
	if Client == nil {
		return false
	}
	n, err := Client.Exists(Ctx, "revoked:"+jti).Result()
	return err == nil && n > 0
}
