package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jo-hoe/fundusref/internal/common"
	"github.com/jo-hoe/fundusref/internal/reference"
)

const (
	redisKeyPrefix   = "fundusref:disease:"
	redisDiseaseList = "fundusref:diseases"
)

// RedisDatabase stores each disease as a JSON document plus an ordered id list.
type RedisDatabase struct {
	client *redis.Client
}

// NewRedisDatabase accepts a redis:// URL, e.g. redis://localhost:6379/0.
func NewRedisDatabase(connectionString string) (DatabaseService, error) {
	opts, err := redis.ParseURL(connectionString)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &RedisDatabase{client: redis.NewClient(opts)}, nil
}

func diseaseKey(id reference.DiseaseID) string {
	return redisKeyPrefix + string(id)
}

func (r *RedisDatabase) CreateDatabase(ctx context.Context) error {
	// Redis is schemaless; verify connectivity instead.
	return r.client.Ping(ctx).Err()
}

// DoesDatabaseExist reports whether the ordered disease list has been written.
func (r *RedisDatabase) DoesDatabaseExist(ctx context.Context) bool {
	n, err := r.client.Exists(ctx, redisDiseaseList).Result()
	return err == nil && n > 0
}

func (r *RedisDatabase) Close() error {
	return r.client.Close()
}

func (r *RedisDatabase) SeedDiseases(ctx context.Context, diseases []*reference.Disease) error {
	previous, err := r.client.LRange(ctx, redisDiseaseList, 0, -1).Result()
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range previous {
			pipe.Del(ctx, diseaseKey(reference.DiseaseID(id)))
		}
		pipe.Del(ctx, redisDiseaseList)
		for _, d := range diseases {
			data, err := json.Marshal(d)
			if err != nil {
				return fmt.Errorf("encode disease %s: %w", d.ID, err)
			}
			pipe.Set(ctx, diseaseKey(d.ID), data, 0)
			pipe.RPush(ctx, redisDiseaseList, string(d.ID))
		}
		return nil
	})
	return err
}

func (r *RedisDatabase) GetDisease(ctx context.Context, id reference.DiseaseID) (*reference.Disease, error) {
	data, err := r.client.Get(ctx, diseaseKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: disease %q", common.ErrUnknownSelection, id)
		}
		return nil, err
	}
	var d reference.Disease
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode disease %s: %w", id, err)
	}
	return &d, nil
}

func (r *RedisDatabase) GetDiseases(ctx context.Context) ([]*reference.Disease, error) {
	ids, err := r.client.LRange(ctx, redisDiseaseList, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	diseases := make([]*reference.Disease, 0, len(ids))
	for _, id := range ids {
		d, err := r.GetDisease(ctx, reference.DiseaseID(id))
		if err != nil {
			return nil, err
		}
		diseases = append(diseases, d)
	}
	return diseases, nil
}
