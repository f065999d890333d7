package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/kode4food/strand/pkg/api"
)

type (
	// Redis is a journal backed by Redis lists, one list per flow plus an
	// index set of flow ids, all under a configurable key prefix
	Redis struct {
		client *redis.Client
		prefix string
	}

	// RedisConfig connects a Redis journal
	RedisConfig struct {
		Addr     string
		Password string
		DB       int
		Prefix   string
	}
)

const DefaultPrefix = "strand"

var (
	ErrRecordEntry    = errors.New("failed to record journal entry")
	ErrDecodeEntry    = errors.New("failed to decode journal entry")
	ErrFetchEntries   = errors.New("failed to fetch journal entries")
	ErrFetchFlowIndex = errors.New("failed to fetch journal flow index")
)

// NewRedis creates a Redis-backed journal
func NewRedis(cfg *RedisConfig) *Redis {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		prefix: prefix,
	}
}

func (r *Redis) Record(ctx context.Context, entry *Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRecordEntry, err)
	}

	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, r.flowKey(entry.FlowID), data)
	pipe.SAdd(ctx, r.indexKey(), int64(entry.FlowID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrRecordEntry, err)
	}
	return nil
}

func (r *Redis) Steps(
	ctx context.Context, flowID api.ID,
) ([]*Entry, error) {
	raw, err := r.client.LRange(ctx, r.flowKey(flowID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchEntries, err)
	}

	res := make([]*Entry, 0, len(raw))
	for _, item := range raw {
		entry := &Entry{}
		if err := json.Unmarshal([]byte(item), entry); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecodeEntry, err)
		}
		res = append(res, entry)
	}
	return res, nil
}

func (r *Redis) Flows(ctx context.Context) ([]api.ID, error) {
	raw, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFlowIndex, err)
	}

	res := make([]api.ID, 0, len(raw))
	for _, item := range raw {
		id, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFetchFlowIndex, err)
		}
		res = append(res, api.ID(id))
	}
	slices.Sort(res)
	return res, nil
}

// Close releases the underlying Redis client
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) flowKey(flowID api.ID) string {
	return fmt.Sprintf("%s:flow:%d", r.prefix, int64(flowID))
}

func (r *Redis) indexKey() string {
	return r.prefix + ":flows"
}
