package store

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-redis/redis/v8"
	"gopkg.in/mgo.v2/bson"
)

// Sequencer hands out sibling indexes for a parent path. floor is the highest
// index the repository already holds for that parent.
type Sequencer interface {
	Next(ctx context.Context, post bson.ObjectId, prefix []int, floor int) (int, error)
}

// RedisSequencer keeps one counter per parent so concurrent writers under the
// same parent never compute the same index.
type RedisSequencer struct {
	Client *redis.Client
	Prefix string
}

func NewRedisSequencer(client *redis.Client) *RedisSequencer {
	return &RedisSequencer{Client: client, Prefix: "quorum:comments"}
}

func (s *RedisSequencer) key(post bson.ObjectId, prefix []int) string {
	parts := make([]string, len(prefix))
	for i, n := range prefix {
		parts[i] = strconv.Itoa(n)
	}
	parent := strings.Join(parts, ".")
	if parent == "" {
		parent = "root"
	}
	return s.Prefix + ":" + post.Hex() + ":" + parent
}

func (s *RedisSequencer) Next(ctx context.Context, post bson.ObjectId, prefix []int, floor int) (int, error) {
	key := s.key(post, prefix)
	if err := s.Client.SetNX(ctx, key, floor, 0).Err(); err != nil {
		return 0, err
	}
	n, err := s.Client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	// Counter fell behind the repository (flushed cache, writes without a
	// sequencer): jump past the floor.
	if int(n) <= floor {
		n = int64(floor + 1)
		if err := s.Client.Set(ctx, key, n, 0).Err(); err != nil {
			return 0, err
		}
	}
	return int(n), nil
}
