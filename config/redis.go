package config

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var rdb *redis.Client

// ConnectRedis opsional: dipakai hanya untuk sinyal revalidasi view.
// Tanpa REDIS_ADDR aplikasi tetap jalan, sinyal jadi no-op.
func ConnectRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		GetLogger().Warnf("redis tidak tersedia (%v), sinyal revalidasi dimatikan", err)
		return
	}
	rdb = client
}

func GetRedis() *redis.Client {
	return rdb
}
