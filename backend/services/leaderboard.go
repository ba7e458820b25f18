package services

import (
	"context"
	"sort"

	"github.com/samber/lo"

	"github.com/Xornee/langify-your-daily-english-boost/backend/cache"
	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
	"github.com/Xornee/langify-your-daily-english-boost/backend/repository"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
)

const (
	PeriodWeek = "week"
	PeriodAll  = "all"

	LeaderboardSize = 50
	weekWindowDays  = 7
)

func ValidPeriod(period string) bool {
	return period == PeriodWeek || period == PeriodAll
}

// WindowStart is the first day counted for period; zero means no lower bound.
func WindowStart(period string, today models.CalendarDay) models.CalendarDay {
	if period == PeriodWeek {
		return today.AddDays(-(weekWindowDays - 1))
	}
	return models.CalendarDay{}
}

// RankXP sums xp per user over rows in [since, today], drops users with no
// xp and ranks the rest by position. Equal totals are ordered by user id.
// The result is not truncated.
func RankXP(stats []models.DailyStat, since, today models.CalendarDay) []models.LeaderboardEntry {
	totals := make(map[uint]int)
	for _, s := range stats {
		if s.Day.After(today) || (!since.IsZero() && s.Day.Before(since)) {
			continue
		}
		totals[s.UserID] += s.XPEarned
	}

	entries := make([]models.LeaderboardEntry, 0, len(totals))
	for userID, points := range totals {
		if points <= 0 {
			continue
		}
		entries = append(entries, models.LeaderboardEntry{UserID: userID, Points: points})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].UserID < entries[j].UserID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

type LeaderboardService struct {
	repo  *repository.Repository
	cache cache.LeaderboardCache
	clock Clock
	log   *utils.Logger
}

func NewLeaderboardService(repo *repository.Repository, lbCache cache.LeaderboardCache, clock Clock, baseLog *utils.Logger) *LeaderboardService {
	if lbCache == nil {
		lbCache = cache.Nop()
	}
	return &LeaderboardService{
		repo:  repo,
		cache: lbCache,
		clock: clock,
		log:   baseLog.With("service", "LeaderboardService"),
	}
}

// Top returns the first 50 entries for period.
func (s *LeaderboardService) Top(ctx context.Context, period string) ([]models.LeaderboardEntry, error) {
	ranking, err := s.ranking(ctx, period)
	if err != nil {
		return nil, err
	}
	if len(ranking) > LeaderboardSize {
		ranking = ranking[:LeaderboardSize]
	}
	return ranking, nil
}

// MyRank finds userID in the full ranking, so users outside the top 50 still
// get their rank. A user with no xp in the period returns nil.
func (s *LeaderboardService) MyRank(ctx context.Context, userID uint, period string) (*models.LeaderboardEntry, error) {
	ranking, err := s.ranking(ctx, period)
	if err != nil {
		return nil, err
	}
	entry, ok := lo.Find(ranking, func(e models.LeaderboardEntry) bool { return e.UserID == userID })
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

// Invalidate drops today's cached rankings after an xp write.
func (s *LeaderboardService) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, s.clock.Today()); err != nil {
		s.log.Warn("leaderboard cache invalidation failed", "error", err)
	}
}

func (s *LeaderboardService) ranking(ctx context.Context, period string) ([]models.LeaderboardEntry, error) {
	if !ValidPeriod(period) {
		return nil, models.Invalid("period", "must be week or all")
	}
	today := s.clock.Today()

	cached, gen, hit, cacheErr := s.cache.Get(ctx, period, today)
	if cacheErr != nil {
		s.log.Warn("leaderboard cache read failed", "period", period, "error", cacheErr)
	} else if hit {
		return cached, nil
	}

	since := WindowStart(period, today)
	stats, err := s.repo.DailyStats.ListSince(ctx, nil, since)
	if err != nil {
		return nil, err
	}
	ranking := RankXP(stats, since, today)

	userIDs := lo.Map(ranking, func(e models.LeaderboardEntry, _ int) uint { return e.UserID })
	users, err := s.repo.Users.ListByIDs(ctx, nil, userIDs)
	if err != nil {
		return nil, err
	}
	byID := lo.KeyBy(users, func(u models.User) uint { return u.ID })
	for i := range ranking {
		if u, ok := byID[ranking[i].UserID]; ok {
			ranking[i].UserName = u.Name
			ranking[i].AvatarURL = u.AvatarURL
		}
	}

	// without a known generation the write could resurrect a stale ranking
	if cacheErr == nil {
		if err := s.cache.Set(ctx, period, today, gen, ranking); err != nil {
			s.log.Warn("leaderboard cache write failed", "period", period, "error", err)
		}
	}
	return ranking, nil
}
