package services

import (
	"sort"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
)

// ComputeStreaks derives the current and longest goal streak from a user's
// daily rows. Rows dated after today are ignored.
//
// Today counts only once its goal is met; until then the current streak is
// carried by yesterday, so an unfinished day never zeroes it.
func ComputeStreaks(stats []models.DailyStat, today models.CalendarDay) models.StreakSummary {
	met := make(map[models.CalendarDay]bool, len(stats))
	days := make([]models.CalendarDay, 0, len(stats))
	for _, s := range stats {
		if s.Day.IsZero() || s.Day.After(today) {
			continue
		}
		if _, seen := met[s.Day]; !seen {
			days = append(days, s.Day)
		}
		met[s.Day] = met[s.Day] || s.GoalMet
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 0, 0
	var prev models.CalendarDay
	for _, d := range days {
		switch {
		case !met[d]:
			run = 0
		case run > 0 && prev.AddDays(1) == d:
			run++
		default:
			run = 1
		}
		prev = d
		if run > longest {
			longest = run
		}
	}

	cursor := today
	if !met[today] {
		cursor = today.AddDays(-1)
	}
	current := 0
	for met[cursor] {
		current++
		cursor = cursor.AddDays(-1)
	}

	return models.StreakSummary{CurrentStreak: current, LongestStreak: longest}
}
