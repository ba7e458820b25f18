package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
)

// LeaderboardCache stores full (untruncated) rankings keyed by period and day.
//
// Every day has a generation that Invalidate bumps. Get reports the
// generation it read at and Set writes under that generation, so a ranking
// computed before an invalidation lands on a key nobody reads again.
type LeaderboardCache interface {
	Get(ctx context.Context, period string, day models.CalendarDay) (entries []models.LeaderboardEntry, gen int64, hit bool, err error)
	Set(ctx context.Context, period string, day models.CalendarDay, gen int64, entries []models.LeaderboardEntry) error
	// Invalidate drops every period cached for day.
	Invalidate(ctx context.Context, day models.CalendarDay) error
	Close() error
}

var Periods = []string{"week", "all"}

const (
	keyPrefix = "langify:leaderboard"
	// generation counters outlive the day they belong to
	genTTL = 48 * time.Hour
)

func Key(period string, day models.CalendarDay, gen int64) string {
	return fmt.Sprintf("%s:%s:%s:%d", keyPrefix, period, day, gen)
}

func GenKey(day models.CalendarDay) string {
	return fmt.Sprintf("%s:gen:%s", keyPrefix, day)
}

type redisLeaderboard struct {
	log *utils.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewRedisLeaderboard connects to addr and fails if the server does not answer a ping.
func NewRedisLeaderboard(addr string, ttl time.Duration, log *utils.Logger) (LeaderboardCache, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewRedisLeaderboardWithClient(rdb, ttl, log), nil
}

func NewRedisLeaderboardWithClient(rdb *goredis.Client, ttl time.Duration, log *utils.Logger) LeaderboardCache {
	return &redisLeaderboard{
		log: log.With("service", "RedisLeaderboard"),
		rdb: rdb,
		ttl: ttl,
	}
}

func (c *redisLeaderboard) generation(ctx context.Context, day models.CalendarDay) (int64, error) {
	gen, err := c.rdb.Get(ctx, GenKey(day)).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *redisLeaderboard) Get(ctx context.Context, period string, day models.CalendarDay) ([]models.LeaderboardEntry, int64, bool, error) {
	gen, err := c.generation(ctx, day)
	if err != nil {
		return nil, 0, false, err
	}
	key := Key(period, day, gen)
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, err
	}
	var entries []models.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		c.log.Warn("dropping unreadable leaderboard entry", "period", period, "error", err)
		_ = c.rdb.Del(ctx, key).Err()
		return nil, gen, false, nil
	}
	return entries, gen, true, nil
}

func (c *redisLeaderboard) Set(ctx context.Context, period string, day models.CalendarDay, gen int64, entries []models.LeaderboardEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, Key(period, day, gen), raw, c.ttl).Err()
}

func (c *redisLeaderboard) Invalidate(ctx context.Context, day models.CalendarDay) error {
	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, GenKey(day))
	pipe.Expire(ctx, GenKey(day), genTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	// старое поколение больше не читается, чистим сразу
	prev := incr.Val() - 1
	keys := make([]string, 0, len(Periods))
	for _, p := range Periods {
		keys = append(keys, Key(p, day, prev))
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *redisLeaderboard) Close() error {
	return c.rdb.Close()
}

type nopLeaderboard struct{}

// Nop is used when REDIS_ADDR is not configured. It never hits.
func Nop() LeaderboardCache { return nopLeaderboard{} }

func (nopLeaderboard) Get(context.Context, string, models.CalendarDay) ([]models.LeaderboardEntry, int64, bool, error) {
	return nil, 0, false, nil
}

func (nopLeaderboard) Set(context.Context, string, models.CalendarDay, int64, []models.LeaderboardEntry) error {
	return nil
}

func (nopLeaderboard) Invalidate(context.Context, models.CalendarDay) error { return nil }

func (nopLeaderboard) Close() error { return nil }
