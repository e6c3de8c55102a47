package database

import (
	"context"
	"log"
	"time"

	"inspection-app/config"

	"github.com/redis/go-redis/v9"
)

const DashboardCacheKey = "inspection:dashboard:counts"

var rdb *redis.Client

// InitRedis membuat client redis untuk cache dashboard.
// Kalau redis tidak tersedia, aplikasi tetap jalan tanpa cache.
func InitRedis() {
	rdb = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Println("Warning: redis not reachable, dashboard cache disabled:", err)
		rdb = nil
	}
}

func GetRedis() *redis.Client {
	return rdb
}

// InvalidateDashboardCache dipanggil setiap mutasi workflow.
// Best-effort: gagal invalidate hanya di-log.
func InvalidateDashboardCache(ctx context.Context) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, DashboardCacheKey).Err(); err != nil {
		log.Println("Warning: failed to invalidate dashboard cache:", err)
	}
}
