package cache

import (
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisCacheKeyNamespace(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{"separator added", "pethaven", "pethaven:host:id:1"},
		{"separator kept", "pethaven:", "pethaven:host:id:1"},
		{"no prefix", "", "host:id:1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewRedisCache(client, tt.prefix).key("host:id:1"))
		})
	}
}
