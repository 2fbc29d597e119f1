package cache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// StatsCache tracks how often each rule fires, feeding the diagnostics view
type StatsCache interface {
	IncrRuleMatch(ctx context.Context, questionnaireID, ruleID string) error
	GetRuleMatches(ctx context.Context, questionnaireID string) (map[string]int64, error)
}

type statsCache struct {
	client *redis.Client
}

// NewStatsCache creates a new stats cache
func NewStatsCache(client *redis.Client) StatsCache {
	return &statsCache{client: client}
}

func (c *statsCache) key(questionnaireID string) string {
	return fmt.Sprintf("questionnaire:%s:rulehits", questionnaireID)
}

func (c *statsCache) IncrRuleMatch(ctx context.Context, questionnaireID, ruleID string) error {
	return c.client.HIncrBy(ctx, c.key(questionnaireID), ruleID, 1).Err()
}

func (c *statsCache) GetRuleMatches(ctx context.Context, questionnaireID string) (map[string]int64, error) {
	raw, err := c.client.HGetAll(ctx, c.key(questionnaireID)).Result()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(raw))
	for ruleID, value := range raw {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			continue
		}
		counts[ruleID] = n
	}
	return counts, nil
}
