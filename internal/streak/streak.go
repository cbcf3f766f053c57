// Package streak keeps per-user daily check-in streaks in Redis. Streaks
// are engagement sugar, not a system of record: when Redis is absent or
// down the tracker degrades to a no-op and the chat pipeline carries on.
package streak

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "streak:"

	fieldLastDay = "last_day"
	fieldCount   = "count"

	// keyTTL evicts streaks for users idle long enough that the streak is
	// dead anyway.
	keyTTL = 45 * 24 * time.Hour

	dayLayout = "2006-01-02"
)

// Commands is the slice of the Redis API the tracker uses. *redis.Client
// satisfies it.
type Commands interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// Tracker counts consecutive active days per user. A nil Client disables
// tracking.
type Tracker struct {
	Client Commands
}

// Touch records activity for a user at the given instant and returns the
// streak length after the touch. Days are bucketed in UTC. Same-day repeat
// touches keep the count, a touch on the day after the last one extends it,
// anything later resets to 1.
func (t *Tracker) Touch(ctx context.Context, userID string, now time.Time) (int, error) {
	if t == nil || t.Client == nil {
		return 0, nil
	}
	key := keyPrefix + userID
	today := now.UTC().Format(dayLayout)

	last, count, err := t.read(ctx, key)
	if err != nil {
		return 0, err
	}

	switch last {
	case today:
		return count, nil
	case now.UTC().AddDate(0, 0, -1).Format(dayLayout):
		count++
	default:
		count = 1
	}

	if err := t.Client.HSet(ctx, key, fieldLastDay, today, fieldCount, strconv.Itoa(count)).Err(); err != nil {
		return 0, fmt.Errorf("streak: write %s: %w", key, err)
	}
	if err := t.Client.Expire(ctx, key, keyTTL).Err(); err != nil {
		return 0, fmt.Errorf("streak: expire %s: %w", key, err)
	}
	return count, nil
}

// Current returns the live streak length without touching it. A streak
// whose last activity is before yesterday reads as 0.
func (t *Tracker) Current(ctx context.Context, userID string, now time.Time) (int, error) {
	if t == nil || t.Client == nil {
		return 0, nil
	}
	last, count, err := t.read(ctx, keyPrefix+userID)
	if err != nil {
		return 0, err
	}
	today := now.UTC().Format(dayLayout)
	yesterday := now.UTC().AddDate(0, 0, -1).Format(dayLayout)
	if last != today && last != yesterday {
		return 0, nil
	}
	return count, nil
}

func (t *Tracker) read(ctx context.Context, key string) (lastDay string, count int, err error) {
	vals, err := t.Client.HGetAll(ctx, key).Result()
	if err != nil {
		return "", 0, fmt.Errorf("streak: read %s: %w", key, err)
	}
	lastDay = vals[fieldLastDay]
	if raw, ok := vals[fieldCount]; ok {
		if n, convErr := strconv.Atoi(raw); convErr == nil {
			count = n
		}
	}
	return lastDay, count, nil
}
