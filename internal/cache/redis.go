package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/phamlt/guardrail/internal/safety"
)

// VerdictCache memoizes policy decisions in Redis. Classification is
// deterministic, so identical prompts always produce identical verdicts
// and a short TTL only bounds memory, not correctness.
type VerdictCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewVerdictCache(client *redis.Client, ttl time.Duration) *VerdictCache {
	return &VerdictCache{client: client, ttl: ttl}
}

// Key hashes the prompt so raw user text never appears in Redis.
func Key(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "guard:verdict:" + hex.EncodeToString(sum[:])
}

func (c *VerdictCache) Get(ctx context.Context, prompt string) (*safety.Decision, error) {
	val, err := c.client.Get(ctx, Key(prompt)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var d safety.Decision
	if err := json.Unmarshal([]byte(val), &d); err != nil {
		return nil, fmt.Errorf("unmarshal cached verdict: %w", err)
	}
	return &d, nil
}

func (c *VerdictCache) Set(ctx context.Context, prompt string, d safety.Decision) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal verdict: %w", err)
	}
	return c.client.Set(ctx, Key(prompt), data, c.ttl).Err()
}

// Flush drops all cached verdicts, used after a policy reload so stale
// decisions from the previous table cannot be served.
func (c *VerdictCache) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "guard:verdict:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("flush verdict cache: %w", err)
		}
	}
	return iter.Err()
}
