package config

// This file defines the Redis client constructor.  Redis serves two
// roles here: the ticket-status cache used by the API and the cola_batch
// work queue drained by the batch worker.  If the connection cannot be
// established at startup the constructor returns nil; the API degrades
// gracefully (the cache is best-effort) while the worker treats nil as
// fatal since the queue is its whole purpose.

import (
    "context"
    "os"
    "strconv"
    "time"

    "github.com/redis/go-redis/v9"
)

// NewRedisClient instantiates a Redis client using environment variables:
//
//	REDIS_HOST and REDIS_PORT – hostname and port of the Redis server
//	REDIS_PASSWORD – optional password
//	REDIS_DB – database number (default 0)
//
// The returned client may be nil if a connection cannot be established.
func NewRedisClient() *redis.Client {
    host := os.Getenv("REDIS_HOST")
    if host == "" {
        host = "localhost"
    }
    port := os.Getenv("REDIS_PORT")
    if port == "" {
        port = "6379"
    }
    dbNum := 0
    if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
        if n, err := strconv.Atoi(dbStr); err == nil {
            dbNum = n
        }
    }
    client := redis.NewClient(&redis.Options{
        Addr:     host + ":" + port,
        Password: os.Getenv("REDIS_PASSWORD"),
        DB:       dbNum,
    })
    // Ping with a short timeout; return nil on failure so callers can
    // decide how to degrade.
    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        return nil
    }
    return client
}
