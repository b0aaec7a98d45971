package deps

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/tryanzu/quorum/board/store"
)

// IgniteCache connects the shared comment path sequencer. Without an address
// paths are allocated from the database alone.
func IgniteCache(container Deps) (Deps, error) {
	address := container.Config().Copy().Cache.Redis
	if address == "" {
		log.Info("no cache.redis configured, comment sequencer disabled")
		return container, nil
	}
	client := redis.NewClient(&redis.Options{Addr: address})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return container, err
	}
	container.CacheProvider = client
	container.SequencerProvider = store.NewRedisSequencer(client)
	return container, nil
}
