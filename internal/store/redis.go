package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/kaamwala/kaamwala_be/internal/models"
)

// RedisStore keeps every collection as one JSON document, the same shape the
// browser kept under its local storage keys. Updates are optimistic: the key
// is WATCHed and the write retried when another client changed it first.
type RedisStore struct {
	RDB    *redis.Client
	Prefix string
}

func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "kw"
	}
	return &RedisStore{RDB: rdb, Prefix: prefix}
}

func (s *RedisStore) key(parts ...string) string {
	k := s.Prefix
	for _, p := range parts {
		k += ":" + p
	}
	return k
}

// getter is satisfied by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func getJSON[T any](ctx context.Context, rdb getter, key string, dst *T) (bool, error) {
	raw, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func setJSON(ctx context.Context, rdb *redis.Client, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := rdb.Set(ctx, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// MaxTxRetries bounds how often an update is retried after losing a race.
var MaxTxRetries = 32

// updateJSON runs a read-modify-write of one document inside WATCH/MULTI.
func updateJSON[T any](ctx context.Context, rdb *redis.Client, key string, fn func([]T) ([]T, error)) error {
	txf := func(tx *redis.Tx) error {
		cur := []T{}
		if _, err := getJSON(ctx, tx, key, &cur); err != nil {
			return err
		}
		next, err := fn(cur)
		if err != nil {
			return err
		}
		if next == nil {
			next = []T{}
		}
		raw, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, 0)
			return nil
		})
		return err
	}

	for i := 0; i < MaxTxRetries; i++ {
		err := rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("update %s: %w", key, ErrConflict)
}

func (s *RedisStore) Users(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if _, err := getJSON(ctx, s.RDB, s.key(KeyUsers), &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *RedisStore) PutUsers(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	return setJSON(ctx, s.RDB, s.key(KeyUsers), users)
}

func (s *RedisStore) Workers(ctx context.Context) ([]models.Worker, error) {
	workers := []models.Worker{}
	if _, err := getJSON(ctx, s.RDB, s.key(KeyWorkers), &workers); err != nil {
		return nil, err
	}
	return workers, nil
}

func (s *RedisStore) PutWorkers(ctx context.Context, workers []models.Worker) error {
	if workers == nil {
		workers = []models.Worker{}
	}
	return setJSON(ctx, s.RDB, s.key(KeyWorkers), workers)
}

func (s *RedisStore) UpdateUsers(ctx context.Context, fn func([]models.User) ([]models.User, error)) error {
	return updateJSON(ctx, s.RDB, s.key(KeyUsers), fn)
}

func (s *RedisStore) UpdateWorkers(ctx context.Context, fn func([]models.Worker) ([]models.Worker, error)) error {
	return updateJSON(ctx, s.RDB, s.key(KeyWorkers), fn)
}

func (s *RedisStore) Session(ctx context.Context, clientID string) (*models.Session, error) {
	var sess models.Session
	found, err := getJSON(ctx, s.RDB, s.key(KeySession, clientID), &sess)
	if err != nil || !found {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisStore) SetSession(ctx context.Context, clientID string, sess models.Session) error {
	return setJSON(ctx, s.RDB, s.key(KeySession, clientID), sess)
}

func (s *RedisStore) ClearSession(ctx context.Context, clientID string) error {
	if err := s.RDB.Del(ctx, s.key(KeySession, clientID)).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}
