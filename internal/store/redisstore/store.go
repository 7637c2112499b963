package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store guards the AMQP transport against redelivered messages. Keys are
// ephemeral; nothing conversation-scoped is persisted here.
type Store struct {
	rdb *redis.Client
}

func New(addr, password string, db int) *Store {
	return &Store{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func (s *Store) Close() error { return s.rdb.Close() }

// SeenMessage marks messageID as processed and reports whether it had been
// seen already. SETNX keeps the check-and-mark atomic across workers.
func (s *Store) SeenMessage(ctx context.Context, messageID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("bot:msg:%s", messageID)
	set, err := s.rdb.SetNX(ctx, key, 1, ttl).Result()
	if err != nil {
		return false, err
	}
	return !set, nil
}
