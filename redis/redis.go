package redis

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

// slotCacheTTL keeps slot listings briefly cached; bookings invalidate the
// affected day, so staleness only shows up for listings raced by a booking.
const slotCacheTTL = 60 * time.Second

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis, slot caching disabled: %v", err)
		Client = nil
		return
	}
	fmt.Println("✅ Connected to Redis")
}

// SlotCacheKey identifies one dentist/service/date slot listing.
func SlotCacheKey(dentistID, serviceID uint, date string) string {
	return fmt.Sprintf("slots:%d:%d:%s", dentistID, serviceID, date)
}

// GetCachedSlots returns the cached listing payload, or "" on miss or when
// redis is unavailable.
func GetCachedSlots(key string) string {
	if Client == nil {
		return ""
	}
	payload, err := Client.Get(Ctx, key).Result()
	if err != nil {
		return ""
	}
	return payload
}

// CacheSlots stores a listing payload with the standard TTL.
func CacheSlots(key, payload string) {
	if Client == nil {
		return
	}
	if err := Client.Set(Ctx, key, payload, slotCacheTTL).Err(); err != nil {
		log.Printf("Failed to cache slots for %s: %v", key, err)
	}
}

// InvalidateSlots drops every cached listing for a dentist's date after a
// booking or schedule change touches it.
func InvalidateSlots(dentistID uint, date string) {
	if Client == nil {
		return
	}
	pattern := fmt.Sprintf("slots:%d:*:%s", dentistID, date)
	iter := Client.Scan(Ctx, 0, pattern, 0).Iterator()
	for iter.Next(Ctx) {
		Client.Del(Ctx, iter.Val())
	}
}
