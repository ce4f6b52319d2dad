package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist records revoked token IDs until the tokens would have expired
// anyway.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisDenylist keeps revoked token IDs as keys "<prefix>:<jti>" that
// expire together with the token.
type RedisDenylist struct {
	rdb    redis.Cmdable
	prefix string
	now    func() time.Time
}

func NewRedisDenylist(rdb redis.Cmdable, prefix string) *RedisDenylist {
	return &RedisDenylist{rdb: rdb, prefix: prefix, now: time.Now}
}

func (d *RedisDenylist) key(tokenID string) string { return d.prefix + ":" + tokenID }

// Revoke is a no-op for tokens that have already expired.
func (d *RedisDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	return d.rdb.Set(ctx, d.key(tokenID), "1", ttl).Err()
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.rdb.Exists(ctx, d.key(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
