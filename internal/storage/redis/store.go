package redis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/honeycarbs/hh-vacancies/internal/domain"
	"github.com/honeycarbs/hh-vacancies/internal/domain/vacancy"
)

const defaultKeyPrefix = "vacancies"

// appendScript stores the record and its insertion position atomically.
// KEYS[1] is the hash of records by id, KEYS[2] the ordered id list.
const appendScript = `
if redis.call("HSETNX", KEYS[1], ARGV[1], ARGV[2]) == 1 then
  redis.call("RPUSH", KEYS[2], ARGV[1])
  return 1
end
return 0
`

const deleteScript = `
if redis.call("HDEL", KEYS[1], ARGV[1]) == 1 then
  redis.call("LREM", KEYS[2], 0, ARGV[1])
  return 1
end
return 0
`

// Ensure Store implements vacancy.Store
var _ vacancy.Store = (*Store)(nil)

// Config holds Redis connection settings
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Store implements vacancy.Store on a Redis hash plus an insertion order list
type Store struct {
	client    *redis.Client
	recordKey string
	orderKey  string
	appendSc  *redis.Script
	deleteSc  *redis.Script
}

// NewClient builds and pings a Redis client
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis: addr is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

// New creates a Store using the given client; keys are namespaced by keyPrefix
func New(client *redis.Client, keyPrefix string) *Store {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &Store{
		client:    client,
		recordKey: keyPrefix + ":records",
		orderKey:  keyPrefix + ":order",
		appendSc:  redis.NewScript(appendScript),
		deleteSc:  redis.NewScript(deleteScript),
	}
}

// AppendIfAbsent stores the raw record unless the id is already present
func (s *Store) AppendIfAbsent(ctx context.Context, v domain.Vacancy) (bool, error) {
	raw, err := json.Marshal(v.Raw())
	if err != nil {
		return false, &domain.StorageError{Op: "encode", Path: s.recordKey, Err: err}
	}

	n, err := s.appendSc.Run(ctx, s.client, []string{s.recordKey, s.orderKey}, v.ID, string(raw)).Int()
	if err != nil {
		return false, &domain.StorageError{Op: "append", Path: s.recordKey, Err: fmt.Errorf("redis: %w", err)}
	}
	return n == 1, nil
}

// ReadAll returns records in insertion order
func (s *Store) ReadAll(ctx context.Context) ([]domain.RawRecord, error) {
	ids, err := s.client.LRange(ctx, s.orderKey, 0, -1).Result()
	if err != nil {
		return nil, &domain.StorageError{Op: "read", Path: s.orderKey, Err: fmt.Errorf("redis: %w", err)}
	}
	if len(ids) == 0 {
		return []domain.RawRecord{}, nil
	}

	vals, err := s.client.HMGet(ctx, s.recordKey, ids...).Result()
	if err != nil {
		return nil, &domain.StorageError{Op: "read", Path: s.recordKey, Err: fmt.Errorf("redis: %w", err)}
	}

	records := make([]domain.RawRecord, 0, len(vals))
	for i, val := range vals {
		str, ok := val.(string)
		if !ok {
			// id listed without a record; skip the dangling entry
			continue
		}
		rec, err := decodeRecord(str)
		if err != nil {
			return nil, &domain.StorageError{Op: "decode", Path: s.recordKey, Err: fmt.Errorf("record %s: %w", ids[i], err)}
		}
		records = append(records, rec)
	}
	return records, nil
}

// Delete removes the record and its position
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	n, err := s.deleteSc.Run(ctx, s.client, []string{s.recordKey, s.orderKey}, id).Int()
	if err != nil {
		return false, &domain.StorageError{Op: "delete", Path: s.recordKey, Err: fmt.Errorf("redis: %w", err)}
	}
	return n == 1, nil
}

func decodeRecord(s string) (domain.RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()

	var rec map[string]any
	if err := dec.Decode(&rec); err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("not a keyed record")
	}
	return rec, nil
}
