package persistence

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each record list under <Prefix>:snapshot:<kind>.
type RedisStore struct {
	Client *redis.Client
	Prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{Client: client, Prefix: prefix}
}

func (s *RedisStore) key(kind string) string {
	return s.Prefix + ":snapshot:" + kind
}

// Save writes all lists in one MULTI/EXEC so readers never see a mix of
// two saves.
func (s *RedisStore) Save(ctx context.Context, snap *Snapshot) error {
	parts, err := snap.Encode()
	if err != nil {
		return err
	}
	_, err = s.Client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for _, kind := range Kinds {
			p.Set(ctx, s.key(kind), parts[kind], 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context) (*Snapshot, error) {
	keys := make([]string, len(Kinds))
	for i, kind := range Kinds {
		keys[i] = s.key(kind)
	}
	vals, err := s.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis load: %w", err)
	}
	parts := make(map[string][]byte, len(Kinds))
	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue
		}
		parts[Kinds[i]] = []byte(str)
	}
	if len(parts) == 0 {
		return nil, ErrNoSnapshot
	}
	return Decode(parts)
}
