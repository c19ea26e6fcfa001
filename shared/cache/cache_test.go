package cache_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"kost/shared/cache"
)

func TestIsMiss(t *testing.T) {
	assert.True(t, cache.IsMiss(redis.Nil))
	assert.True(t, cache.IsMiss(fmt.Errorf("failed to get cache value: %w", cache.Nil)))
	assert.False(t, cache.IsMiss(errors.New("dial tcp: connection refused")))
	assert.False(t, cache.IsMiss(nil))
}
