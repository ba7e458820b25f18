package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xornee/langify-your-daily-english-boost/backend/cache"
	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
	"github.com/Xornee/langify-your-daily-english-boost/backend/repository"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils/testutil"
)

func TestRankXP(t *testing.T) {
	today := models.NewCalendarDay(2024, time.March, 10)
	since := WindowStart(PeriodWeek, today)
	stats := []models.DailyStat{
		{UserID: 3, Day: today, XPEarned: 80},
		{UserID: 2, Day: today, XPEarned: 70},
		{UserID: 2, Day: today.AddDays(-6), XPEarned: 50},
		{UserID: 1, Day: today.AddDays(-1), XPEarned: 120},
		{UserID: 4, Day: today, XPEarned: 0},
		// outside the week window
		{UserID: 3, Day: today.AddDays(-7), XPEarned: 500},
	}

	first := RankXP(stats, since, today)
	require.Len(t, first, 3, "users with zero xp are dropped")
	assert.Equal(t, uint(1), first[0].UserID)
	assert.Equal(t, uint(2), first[1].UserID)
	assert.Equal(t, uint(3), first[2].UserID)
	for i, e := range first {
		assert.Equal(t, i+1, e.Rank)
	}
	assert.Equal(t, 120, first[0].Points)
	assert.Equal(t, 120, first[1].Points)
	assert.Equal(t, 80, first[2].Points)

	for i := 0; i < 20; i++ {
		assert.Equal(t, first, RankXP(stats, since, today), "tie order is deterministic")
	}

	all := RankXP(stats, models.CalendarDay{}, today)
	require.Len(t, all, 3)
	assert.Equal(t, uint(3), all[0].UserID)
	assert.Equal(t, 580, all[0].Points)
}

func TestRankXPAllTimeDominatesWeek(t *testing.T) {
	today := models.NewCalendarDay(2024, time.March, 10)
	var stats []models.DailyStat
	for u := uint(1); u <= 5; u++ {
		for d := 0; d < 20; d++ {
			stats = append(stats, models.DailyStat{UserID: u, Day: today.AddDays(-d), XPEarned: int(u) * d})
		}
	}
	week := RankXP(stats, WindowStart(PeriodWeek, today), today)
	all := RankXP(stats, WindowStart(PeriodAll, today), today)
	allByUser := map[uint]int{}
	for _, e := range all {
		allByUser[e.UserID] = e.Points
	}
	for _, e := range week {
		assert.GreaterOrEqual(t, allByUser[e.UserID], e.Points)
	}
}

// memoryCache is a LeaderboardCache backed by a map.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]models.LeaderboardEntry
	gens    map[models.CalendarDay]int64
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		entries: map[string][]models.LeaderboardEntry{},
		gens:    map[models.CalendarDay]int64{},
	}
}

func (m *memoryCache) Get(_ context.Context, period string, day models.CalendarDay) ([]models.LeaderboardEntry, int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	gen := m.gens[day]
	e, ok := m.entries[cache.Key(period, day, gen)]
	return e, gen, ok, nil
}

func (m *memoryCache) Set(_ context.Context, period string, day models.CalendarDay, gen int64, entries []models.LeaderboardEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.entries[cache.Key(period, day, gen)] = entries
	return nil
}

func (m *memoryCache) Invalidate(_ context.Context, day models.CalendarDay) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gens[day]++
	return nil
}

func (m *memoryCache) Close() error { return nil }

func TestLeaderboardService(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	now := time.Date(2024, time.March, 10, 15, 0, 0, 0, time.UTC)
	clock := NewClockFunc(testutil.FixedNow(now), time.UTC)
	today := clock.Today()

	var users []*models.User
	for i := 0; i < 55; i++ {
		u := testutil.SeedUser(t, db, fmt.Sprintf("learner%02d", i), models.RoleUser)
		users = append(users, u)
		testutil.SeedDailyStat(t, db, u.ID, today, 100+i, true)
	}
	// old xp only counts for all time
	testutil.SeedDailyStat(t, db, users[0].ID, today.AddDays(-10), 1000, true)

	mc := newMemoryCache()
	svc := NewLeaderboardService(repository.New(db, utils.NopLogger()), mc, clock, utils.NopLogger())

	top, err := svc.Top(ctx, PeriodWeek)
	require.NoError(t, err)
	require.Len(t, top, LeaderboardSize)
	assert.Equal(t, users[54].ID, top[0].UserID)
	assert.Equal(t, "learner54", top[0].UserName)
	assert.Equal(t, 1, top[0].Rank)

	me, err := svc.MyRank(ctx, users[0].ID, PeriodWeek)
	require.NoError(t, err)
	require.NotNil(t, me, "rank outside the top 50 is still found")
	assert.Equal(t, 55, me.Rank)

	me, err = svc.MyRank(ctx, users[0].ID, PeriodAll)
	require.NoError(t, err)
	assert.Equal(t, 1, me.Rank)
	assert.Equal(t, 1100, me.Points)

	stranger := testutil.SeedUser(t, db, "stranger", models.RoleUser)
	me, err = svc.MyRank(ctx, stranger.ID, PeriodWeek)
	require.NoError(t, err)
	assert.Nil(t, me)

	_, err = svc.Top(ctx, "month")
	assert.Error(t, err)
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestLeaderboardServiceUsesCache(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	clock := NewClockFunc(testutil.FixedNow(time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)), time.UTC)
	u := testutil.SeedUser(t, db, "ola", models.RoleUser)
	testutil.SeedDailyStat(t, db, u.ID, clock.Today(), 30, false)

	mc := newMemoryCache()
	svc := NewLeaderboardService(repository.New(db, utils.NopLogger()), mc, clock, utils.NopLogger())

	_, err := svc.Top(ctx, PeriodAll)
	require.NoError(t, err)
	_, err = svc.Top(ctx, PeriodAll)
	require.NoError(t, err)
	assert.Equal(t, 1, mc.sets, "second read served from cache")

	svc.Invalidate(ctx)
	_, err = svc.Top(ctx, PeriodAll)
	require.NoError(t, err)
	assert.Equal(t, 2, mc.sets)
}

func TestLeaderboardRankingBuiltBeforeInvalidationIsNotServed(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	clock := NewClockFunc(testutil.FixedNow(time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)), time.UTC)
	u := testutil.SeedUser(t, db, "ola", models.RoleUser)
	testutil.SeedDailyStat(t, db, u.ID, clock.Today(), 30, false)

	mc := newMemoryCache()
	svc := NewLeaderboardService(repository.New(db, utils.NopLogger()), mc, clock, utils.NopLogger())

	// a slow reader saw generation 0, then an xp write invalidated the day
	_, gen, _, err := mc.Get(ctx, PeriodAll, clock.Today())
	require.NoError(t, err)
	svc.Invalidate(ctx)
	require.NoError(t, mc.Set(ctx, PeriodAll, clock.Today(), gen, []models.LeaderboardEntry{{UserID: u.ID, Points: 5, Rank: 1}}))

	top, err := svc.Top(ctx, PeriodAll)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 30, top[0].Points)
}
