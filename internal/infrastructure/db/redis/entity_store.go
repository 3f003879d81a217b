package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/vanguard/directory/internal/core/ports"
)

const defaultPrefix = "directory"

// indexAddScript appends ARGV[1] to the sorted set KEYS[1] with the next
// value of the counter KEYS[2], unless it is already a member.
var indexAddScript = redis.NewScript(`
if redis.call("ZSCORE", KEYS[1], ARGV[1]) then
  return 0
end
local seq = redis.call("INCR", KEYS[2])
redis.call("ZADD", KEYS[1], seq, ARGV[1])
return 1
`)

// EntityStore implements ports.EntityStore on Redis.
//
// Key layout:
//
//	<prefix>:doc:<key>    string, JSON document
//	<prefix>:idx:<index>  sorted set of ids scored by insertion sequence
//	<prefix>:seq:<index>  insertion sequence counter
type EntityStore struct {
	client *redis.Client
	prefix string
}

var _ ports.EntityStore = (*EntityStore)(nil)

// NewEntityStore wraps client. An empty prefix defaults to "directory".
func NewEntityStore(client *redis.Client, prefix string) *EntityStore {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &EntityStore{client: client, prefix: prefix}
}

func (s *EntityStore) docKey(key string) string  { return s.prefix + ":doc:" + key }
func (s *EntityStore) idxKey(name string) string { return s.prefix + ":idx:" + name }
func (s *EntityStore) seqKey(name string) string { return s.prefix + ":seq:" + name }

func (s *EntityStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, s.docKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrKeyNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return b, nil
}

func (s *EntityStore) GetMany(ctx context.Context, keys []string) ([][]byte, error) {
	out := make([][]byte, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.docKey(k)
	}
	vals, err := s.client.MGet(ctx, full...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget: %w", err)
	}
	for i, v := range vals {
		if str, ok := v.(string); ok {
			out[i] = []byte(str)
		}
	}
	return out, nil
}

func (s *EntityStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.docKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

func (s *EntityStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.docKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *EntityStore) Delete(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Del(ctx, s.docKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis del: %w", err)
	}
	return n > 0, nil
}

func (s *EntityStore) IndexAdd(ctx context.Context, index, id string) error {
	keys := []string{s.idxKey(index), s.seqKey(index)}
	if err := indexAddScript.Run(ctx, s.client, keys, id).Err(); err != nil {
		return fmt.Errorf("redis index add: %w", err)
	}
	return nil
}

func (s *EntityStore) IndexRemove(ctx context.Context, index, id string) (bool, error) {
	n, err := s.client.ZRem(ctx, s.idxKey(index), id).Result()
	if err != nil {
		return false, fmt.Errorf("redis index remove: %w", err)
	}
	return n > 0, nil
}

// IndexPage reads limit+1 members from the cursor score onwards; the extra
// member's score becomes the next cursor.
func (s *EntityStore) IndexPage(ctx context.Context, index, cursor string, limit int) (ports.IndexPage, error) {
	if limit < 1 {
		limit = 1
	}
	lower := "-inf"
	if cursor != "" {
		n, err := strconv.ParseInt(cursor, 10, 64)
		if err != nil || n < 0 {
			return ports.IndexPage{}, ports.ErrInvalidCursor
		}
		lower = strconv.FormatInt(n, 10)
	}

	res, err := s.client.ZRangeByScoreWithScores(ctx, s.idxKey(index), &redis.ZRangeBy{
		Min:   lower,
		Max:   "+inf",
		Count: int64(limit + 1),
	}).Result()
	if err != nil {
		return ports.IndexPage{}, fmt.Errorf("redis index page: %w", err)
	}

	page := ports.IndexPage{IDs: make([]string, 0, limit)}
	for i, z := range res {
		if i == limit {
			page.Next = strconv.FormatInt(int64(z.Score), 10)
			break
		}
		member, _ := z.Member.(string)
		page.IDs = append(page.IDs, member)
	}
	return page, nil
}

func (s *EntityStore) IndexLen(ctx context.Context, index string) (int64, error) {
	n, err := s.client.ZCard(ctx, s.idxKey(index)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis index len: %w", err)
	}
	return n, nil
}

func (s *EntityStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
