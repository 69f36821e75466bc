package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// DedupChecker guards screening submissions against double entry, backed by
// Redis. Key format: dedup:<worker>:<identity_code>:<date>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this worker already recorded an outcome for the
// identity code on the given date.
func (d *DedupChecker) IsDuplicate(ctx context.Context, worker, identityCode, date string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(worker, identityCode, date)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this outcome has been committed (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, worker, identityCode, date string) error {
	return d.client.Set(ctx, d.key(worker, identityCode, date), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(worker, identityCode, date string) string {
	return fmt.Sprintf("dedup:%s:%s:%s", worker, identityCode, date)
}
