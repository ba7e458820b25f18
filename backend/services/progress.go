package services

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
)

// TotalLessons is the course's lessons_count, or the number of its lessons when unset.
func TotalLessons(course models.Course, lessonIDs []uint) int {
	if course.LessonsCount > 0 {
		return course.LessonsCount
	}
	return len(lo.Uniq(lessonIDs))
}

// ComputeCourseProgress intersects a course's lessons with the lessons the
// user completed at least once.
func ComputeCourseProgress(course models.Course, lessonIDs, completedLessonIDs []uint) models.CourseProgress {
	completed := len(lo.Intersect(lo.Uniq(lessonIDs), lo.Uniq(completedLessonIDs)))
	total := TotalLessons(course, lessonIDs)

	return models.CourseProgress{
		CourseID:         course.ID,
		CompletedLessons: completed,
		TotalLessons:     total,
		IsStarted:        completed > 0,
		IsCompleted:      total > 0 && completed >= total,
		ProgressPercent:  percent(completed, total),
	}
}

// percent is round(part / total * 100) clamped to [0, 100]; 0 when total is 0.
func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return clampPercent(math.Round(float64(part) / float64(total) * 100))
}

func clampPercent(v float64) int {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 100:
		return 100
	}
	return int(v)
}

// DashboardInput is everything the teacher dashboard aggregates over.
type DashboardInput struct {
	Students   []models.User
	Courses    []models.Course
	Lessons    []models.Lesson
	Attempts   []models.LessonAttempt
	DailyStats []models.DailyStat
	Today      models.CalendarDay
}

// BuildTeacherDashboard computes student activity, per-course summaries and
// the per (student, course) progress table.
func BuildTeacherDashboard(in DashboardInput) models.TeacherDashboard {
	lessonsByCourse := lo.GroupBy(in.Lessons, func(l models.Lesson) uint { return l.CourseID })
	courseLessonIDs := make(map[uint][]uint, len(in.Courses))
	lessonCourse := make(map[uint]uint, len(in.Lessons))
	for _, course := range in.Courses {
		courseLessonIDs[course.ID] = lo.Map(lessonsByCourse[course.ID], func(l models.Lesson, _ int) uint { return l.ID })
	}
	for _, l := range in.Lessons {
		lessonCourse[l.ID] = l.CourseID
	}

	attemptsByUser := lo.GroupBy(in.Attempts, func(a models.LessonAttempt) uint { return a.UserID })
	statsByUser := lo.GroupBy(in.DailyStats, func(s models.DailyStat) uint { return s.UserID })

	dashboard := models.TeacherDashboard{
		Students:        make([]models.StudentActivity, 0, len(in.Students)),
		CourseStats:     make([]models.CourseStats, 0, len(in.Courses)),
		StudentProgress: []models.StudentCourseProgress{},
	}

	type courseTally struct {
		students, completed int
		progressSum         float64
	}
	tallies := make(map[uint]*courseTally, len(in.Courses))
	for _, course := range in.Courses {
		tallies[course.ID] = &courseTally{}
	}

	for _, student := range in.Students {
		attempts := attemptsByUser[student.ID]
		stats := statsByUser[student.ID]
		completedIDs := completedLessonIDs(attempts)

		activity := models.StudentActivity{
			ID:               student.ID,
			Name:             student.Name,
			Email:            student.Email,
			TotalXP:          lo.SumBy(stats, func(s models.DailyStat) int { return s.XPEarned }),
			LessonsCompleted: len(completedIDs),
			LastActive:       lastActive(stats),
			CurrentStreak:    ComputeStreaks(stats, in.Today).CurrentStreak,
		}

		known := lo.Filter(attempts, func(a models.LessonAttempt, _ int) bool {
			_, ok := lessonCourse[a.LessonID]
			return ok
		})
		attemptsByCourse := lo.GroupBy(known, func(a models.LessonAttempt) uint { return lessonCourse[a.LessonID] })

		for _, course := range in.Courses {
			lessonIDs := courseLessonIDs[course.ID]
			progress := ComputeCourseProgress(course, lessonIDs, completedIDs)
			if progress.IsStarted {
				activity.CoursesStarted++
				tally := tallies[course.ID]
				tally.students++
				if progress.TotalLessons > 0 {
					tally.progressSum += float64(progress.CompletedLessons) / float64(progress.TotalLessons) * 100
				}
				if progress.IsCompleted {
					activity.CoursesCompleted++
					tally.completed++
				}
			}

			courseAttempts, ok := attemptsByCourse[course.ID]
			if !ok {
				continue
			}
			dashboard.StudentProgress = append(dashboard.StudentProgress, models.StudentCourseProgress{
				StudentID:        student.ID,
				StudentName:      student.Name,
				CourseID:         course.ID,
				CourseTitle:      course.Title,
				CompletedLessons: progress.CompletedLessons,
				TotalLessons:     progress.TotalLessons,
				ProgressPercent:  progress.ProgressPercent,
				LastAttempt:      lastAttempt(courseAttempts),
				AvgScore:         averageScore(courseAttempts),
			})
		}

		dashboard.Students = append(dashboard.Students, activity)
	}

	for _, course := range in.Courses {
		tally := tallies[course.ID]
		avg := 0
		if tally.students > 0 {
			avg = clampPercent(math.Round(tally.progressSum / float64(tally.students)))
		}
		dashboard.CourseStats = append(dashboard.CourseStats, models.CourseStats{
			CourseID:          course.ID,
			CourseTitle:       course.Title,
			TotalStudents:     tally.students,
			CompletedStudents: tally.completed,
			AvgProgress:       avg,
			TotalLessons:      TotalLessons(course, courseLessonIDs[course.ID]),
		})
	}

	sort.SliceStable(dashboard.Students, func(i, j int) bool {
		return dashboard.Students[i].TotalXP > dashboard.Students[j].TotalXP
	})
	sort.SliceStable(dashboard.CourseStats, func(i, j int) bool {
		return dashboard.CourseStats[i].TotalStudents > dashboard.CourseStats[j].TotalStudents
	})
	sort.SliceStable(dashboard.StudentProgress, func(i, j int) bool {
		a, b := dashboard.StudentProgress[i], dashboard.StudentProgress[j]
		if a.StudentName != b.StudentName {
			return strings.ToLower(a.StudentName) < strings.ToLower(b.StudentName)
		}
		return a.ProgressPercent > b.ProgressPercent
	})

	return dashboard
}

func completedLessonIDs(attempts []models.LessonAttempt) []uint {
	return lo.Uniq(lo.FilterMap(attempts, func(a models.LessonAttempt, _ int) (uint, bool) {
		return a.LessonID, a.CompletedAt != nil
	}))
}

// averageScore is the rounded mean scorePercent over completed attempts only.
func averageScore(attempts []models.LessonAttempt) int {
	completed := lo.Filter(attempts, func(a models.LessonAttempt, _ int) bool { return a.CompletedAt != nil })
	if len(completed) == 0 {
		return 0
	}
	sum := lo.SumBy(completed, func(a models.LessonAttempt) int { return a.ScorePercent })
	return clampPercent(math.Round(float64(sum) / float64(len(completed))))
}

// lastAttempt is the latest start time over all attempts, finished or not.
func lastAttempt(attempts []models.LessonAttempt) *time.Time {
	if len(attempts) == 0 {
		return nil
	}
	latest := lo.MaxBy(attempts, func(a, b models.LessonAttempt) bool { return a.StartedAt.After(b.StartedAt) })
	started := latest.StartedAt
	return &started
}

func lastActive(stats []models.DailyStat) models.CalendarDay {
	var last models.CalendarDay
	for _, s := range stats {
		if last.IsZero() || s.Day.After(last) {
			last = s.Day
		}
	}
	return last
}
