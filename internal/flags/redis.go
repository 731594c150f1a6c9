package flags

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/feyloom/attunement-tracker/internal/errors"
	redisclient "github.com/feyloom/attunement-tracker/internal/redis"
)

const flagKeyPrefix = "flags:"

type redisStore struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis flag store.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a Redis-backed flag store. Each document gets one
// hash at flags:{kind}:{id}; fields are namespace:key, values JSON.
func NewRedis(cfg *RedisConfig) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisStore{client: cfg.Client}, nil
}

func (s *redisStore) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := validateAddress(input.Scope, input.Namespace, input.Key); err != nil {
		return nil, err
	}

	key := docKey(input.Scope)
	field := input.Namespace + ":" + input.Key

	raw, err := s.client.HGet(ctx, key, field).Result()
	if err != nil {
		if err == redis.Nil {
			return &GetOutput{Found: false}, nil
		}
		return nil, errors.Wrapf(err, "failed to read flag %s on %s", field, key)
	}

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, errors.Wrapf(err, "failed to decode flag %s on %s", field, key)
	}

	return &GetOutput{Value: value, Found: true}, nil
}

func (s *redisStore) Set(ctx context.Context, input SetInput) (*SetOutput, error) {
	if err := validateAddress(input.Scope, input.Namespace, input.Key); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Value)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode flag value")
	}

	key := docKey(input.Scope)
	field := input.Namespace + ":" + input.Key

	if err := s.client.HSet(ctx, key, field, data).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to write flag %s on %s", field, key)
	}

	return &SetOutput{}, nil
}

func docKey(scope DocScope) string {
	return flagKeyPrefix + string(scope.Kind) + ":" + scope.ID
}
