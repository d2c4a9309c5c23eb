package utils

import (
	"context"
	"time"

	"github.com/fhru/sibarkumen-sub000/config"
)

// Revalidate mengirim sinyal invalidasi view ke layer UI lewat pub/sub redis.
// Fire-and-forget: dipanggil setelah commit sukses, kegagalan hanya dilog.
func Revalidate(tags ...string) {
	rdb := config.GetRedis()
	if rdb == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		for _, tag := range tags {
			if err := rdb.Publish(ctx, "revalidate", tag).Err(); err != nil {
				config.LogError(config.GetLogger(), "utils", "Revalidate", tag, nil, err)
			}
		}
	}()
}
