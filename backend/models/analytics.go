package models

import "time"

type StreakSummary struct {
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
}

type UserStats struct {
	TotalXP               int  `json:"totalXp"`
	TotalLessonsCompleted int  `json:"totalLessonsCompleted"`
	CurrentStreak         int  `json:"currentStreak"`
	LongestStreak         int  `json:"longestStreak"`
	TodayXP               int  `json:"todayXp"`
	TodayLessonsCompleted int  `json:"todayLessonsCompleted"`
	GoalMet               bool `json:"goalMet"`
	LessonGoalMet         bool `json:"lessonGoalMet"`
}

type CourseProgress struct {
	CourseID         uint `json:"courseId"`
	CompletedLessons int  `json:"completedLessons"`
	TotalLessons     int  `json:"totalLessons"`
	IsStarted        bool `json:"isStarted"`
	IsCompleted      bool `json:"isCompleted"`
	ProgressPercent  int  `json:"progressPercent"`
}

type StudentActivity struct {
	ID               uint        `json:"id"`
	Name             string      `json:"name"`
	Email            string      `json:"email"`
	TotalXP          int         `json:"totalXp"`
	LessonsCompleted int         `json:"lessonsCompleted"`
	CoursesStarted   int         `json:"coursesStarted"`
	CoursesCompleted int         `json:"coursesCompleted"`
	LastActive       CalendarDay `json:"lastActive"`
	CurrentStreak    int         `json:"currentStreak"`
}

type CourseStats struct {
	CourseID          uint   `json:"courseId"`
	CourseTitle       string `json:"courseTitle"`
	TotalStudents     int    `json:"totalStudents"`
	CompletedStudents int    `json:"completedStudents"`
	AvgProgress       int    `json:"avgProgress"`
	TotalLessons      int    `json:"totalLessons"`
}

type StudentCourseProgress struct {
	StudentID        uint       `json:"studentId"`
	StudentName      string     `json:"studentName"`
	CourseID         uint       `json:"courseId"`
	CourseTitle      string     `json:"courseTitle"`
	CompletedLessons int        `json:"completedLessons"`
	TotalLessons     int        `json:"totalLessons"`
	ProgressPercent  int        `json:"progressPercent"`
	LastAttempt      *time.Time `json:"lastAttempt"`
	AvgScore         int        `json:"avgScore"`
}

type TeacherDashboard struct {
	Students        []StudentActivity       `json:"students"`
	CourseStats     []CourseStats           `json:"courseStats"`
	StudentProgress []StudentCourseProgress `json:"studentProgress"`
}

type LeaderboardEntry struct {
	UserID    uint   `json:"userId"`
	UserName  string `json:"userName"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Points    int    `json:"points"`
	Rank      int    `json:"rank"`
}

type DailyActivity struct {
	Date    CalendarDay `json:"date"`
	Users   int         `json:"users"`
	Lessons int         `json:"lessons"`
}

type AdminStats struct {
	TotalUsers            int             `json:"totalUsers"`
	TotalLessonsCompleted int             `json:"totalLessonsCompleted"`
	ActiveToday           int             `json:"activeToday"`
	AverageStreak         float64         `json:"averageStreak"`
	Last7Days             []DailyActivity `json:"last7Days"`
}
