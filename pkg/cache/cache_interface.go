package cache

import (
	"context"
	"time"
)

// Cache là contract của cache layer, dùng cho:
//   - category theo slug ("category:slug:<slug>")
//   - token đã logout ("auth:revoked:<jti>"), TTL = thời gian sống còn lại của token
//
// Redis ở production, MemoryCache trong tests hoặc khi Redis không kết nối được.
type Cache interface {
	// Get unmarshal value vào dest; found=false khi cache miss, dest giữ nguyên
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	Exists(ctx context.Context, key string) (bool, error)

	Ping(ctx context.Context) error
}
