package services

import (
	"context"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
	"github.com/Xornee/langify-your-daily-english-boost/backend/repository"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils/testutil"
)

type gamificationFixture struct {
	db    *gorm.DB
	repo  *repository.Repository
	svc   *GamificationService
	cache *memoryCache
	clock Clock
	user  *models.User
}

func newGamificationFixture(t *testing.T, now time.Time) *gamificationFixture {
	t.Helper()
	db := testutil.DB(t)
	repo := repository.New(db, utils.NopLogger())
	clock := NewClockFunc(testutil.FixedNow(now), time.UTC)
	mc := newMemoryCache()
	lb := NewLeaderboardService(repo, mc, clock, utils.NopLogger())
	svc := NewGamificationService(repo, lb, clock, GoalDefaults{XPPerDay: 50, LessonsPerDay: 1}, utils.NopLogger())
	return &gamificationFixture{
		db:    db,
		repo:  repo,
		svc:   svc,
		cache: mc,
		clock: clock,
		user:  testutil.SeedUser(t, db, "kasia", models.RoleUser),
	}
}

func TestAddXPAccumulates(t *testing.T) {
	ctx := context.Background()
	f := newGamificationFixture(t, time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC))

	stat, err := f.svc.AddXP(ctx, f.user.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, stat.XPEarned)
	assert.False(t, stat.GoalMet)

	stat, err = f.svc.AddXP(ctx, f.user.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 15, stat.XPEarned)
	assert.Equal(t, f.clock.Today(), stat.Day)

	var count int64
	require.NoError(t, f.db.Model(&models.DailyStat{}).Where("user_id = ?", f.user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "one row per user and day")
}

func TestAddXPReachesGoal(t *testing.T) {
	ctx := context.Background()
	f := newGamificationFixture(t, time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC))
	testutil.SeedGoal(t, f.db, f.user.ID, 30, 2)

	stat, err := f.svc.AddXP(ctx, f.user.ID, 20)
	require.NoError(t, err)
	assert.False(t, stat.GoalMet)

	stat, err = f.svc.AddXP(ctx, f.user.ID, 10)
	require.NoError(t, err)
	assert.True(t, stat.GoalMet, "30 >= 30")

	stat, err = f.svc.CompleteLesson(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stat.LessonsCompleted)
	assert.Equal(t, 30, stat.XPEarned)
	assert.True(t, stat.GoalMet)
}

func TestAddXPRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	f := newGamificationFixture(t, time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC))

	_, err := f.svc.AddXP(ctx, f.user.ID, -1)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "xp", verr.Field)

	_, err = f.svc.AddXP(ctx, 9999, 10)
	assert.ErrorIs(t, err, models.ErrNotFound)

	var count int64
	require.NoError(t, f.db.Model(&models.DailyStat{}).Count(&count).Error)
	assert.Zero(t, count, "nothing committed on failure")
}

func TestAddXPConcurrentWritersDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()
	f := newGamificationFixture(t, time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.AddXP(ctx, f.user.ID, 5)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stat, err := f.repo.DailyStats.Get(ctx, nil, f.user.ID, f.clock.Today())
	require.NoError(t, err)
	assert.Equal(t, 100, stat.XPEarned)
	assert.True(t, stat.GoalMet)
}

func TestAddXPInvalidatesLeaderboardCache(t *testing.T) {
	ctx := context.Background()
	f := newGamificationFixture(t, time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC))
	require.NoError(t, f.cache.Set(ctx, PeriodWeek, f.clock.Today(), 0, []models.LeaderboardEntry{{UserID: 77}}))

	_, err := f.svc.AddXP(ctx, f.user.ID, 10)
	require.NoError(t, err)

	_, _, ok, _ := f.cache.Get(ctx, PeriodWeek, f.clock.Today())
	assert.False(t, ok)
}

func TestUpdateGoalRecomputesToday(t *testing.T) {
	ctx := context.Background()
	f := newGamificationFixture(t, time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC))

	_, err := f.svc.AddXP(ctx, f.user.ID, 40)
	require.NoError(t, err)

	goal, err := f.svc.UpdateGoal(ctx, f.user.ID, 30, 2)
	require.NoError(t, err)
	assert.Equal(t, 30, goal.TargetXPPerDay)
	assert.Equal(t, 2, goal.TargetLessonsPerDay)

	stat, err := f.repo.DailyStats.Get(ctx, nil, f.user.ID, f.clock.Today())
	require.NoError(t, err)
	assert.True(t, stat.GoalMet)

	_, err = f.svc.UpdateGoal(ctx, f.user.ID, 100, 1)
	require.NoError(t, err)
	stat, err = f.repo.DailyStats.Get(ctx, nil, f.user.ID, f.clock.Today())
	require.NoError(t, err)
	assert.False(t, stat.GoalMet)

	_, err = f.svc.UpdateGoal(ctx, f.user.ID, 0, 1)
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
	_, err = f.svc.UpdateGoal(ctx, f.user.ID, 10, -1)
	assert.ErrorAs(t, err, &verr)
}

func TestGoalDefaults(t *testing.T) {
	ctx := context.Background()
	f := newGamificationFixture(t, time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC))

	goal, err := f.svc.Goal(ctx, nil, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, goal.TargetXPPerDay)
	assert.Equal(t, 1, goal.TargetLessonsPerDay)
}

func TestStatsScenario(t *testing.T) {
	ctx := context.Background()
	f := newGamificationFixture(t, time.Date(2024, time.March, 10, 20, 0, 0, 0, time.UTC))
	today := f.clock.Today()
	testutil.SeedGoal(t, f.db, f.user.ID, 50, 1)
	for offset := -3; offset <= 0; offset++ {
		testutil.SeedDailyStat(t, f.db, f.user.ID, today.AddDays(offset), 60, true)
	}

	stats, err := f.svc.Stats(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.CurrentStreak)
	assert.Equal(t, 4, stats.LongestStreak)
	assert.Equal(t, 240, stats.TotalXP)
	assert.Equal(t, 60, stats.TodayXP)
	assert.True(t, stats.GoalMet)
	assert.False(t, stats.LessonGoalMet)
}

func TestTodayFollowsConfiguredZone(t *testing.T) {
	ctx := context.Background()
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)

	db := testutil.DB(t)
	repo := repository.New(db, utils.NopLogger())
	// 23:30 UTC is already the next day in Warsaw
	clock := NewClockFunc(testutil.FixedNow(time.Date(2024, time.March, 10, 23, 30, 0, 0, time.UTC)), warsaw)
	svc := NewGamificationService(repo, nil, clock, GoalDefaults{}, utils.NopLogger())
	user := testutil.SeedUser(t, db, "zofia", models.RoleUser)

	stat, err := svc.AddXP(ctx, user.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, models.NewCalendarDay(2024, time.March, 11), stat.Day)
}
