package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client wraps redis.UniversalClient so storage code depends on an
// interface this package owns rather than on go-redis directly.
type Client interface {
	redis.UniversalClient
}

// Pipeliner wraps redis.Pipeliner for batch operations
type Pipeliner interface {
	redis.Pipeliner
}
