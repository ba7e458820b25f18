package models

import (
	"time"

	"gorm.io/gorm"
)

const MaxVocabularyStrength = 5

// DailyStat is the per-user, per-day counter row. (user_id, day) is unique.
type DailyStat struct {
	ID               uint        `json:"id" gorm:"primaryKey"`
	UserID           uint        `json:"userId" gorm:"not null;uniqueIndex:idx_daily_stats_user_day"`
	Day              CalendarDay `json:"date" gorm:"not null;uniqueIndex:idx_daily_stats_user_day;index"`
	XPEarned         int         `json:"xpEarned" gorm:"column:xp_earned;not null;default:0"`
	LessonsCompleted int         `json:"lessonsCompleted" gorm:"not null;default:0"`
	GoalMet          bool        `json:"goalMet" gorm:"not null;default:false"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

func (DailyStat) TableName() string {
	return "user_daily_stats"
}

const (
	AttemptStarted   = "STARTED"
	AttemptCompleted = "COMPLETED"
)

type LessonAttempt struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	UserID         uint       `json:"userId" gorm:"not null;index"`
	LessonID       uint       `json:"lessonId" gorm:"not null;index"`
	StartedAt      time.Time  `json:"startedAt" gorm:"not null"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	ScorePercent   int        `json:"scorePercent"`
	TotalQuestions int        `json:"totalQuestions"`
	CorrectAnswers int        `json:"correctAnswers"`
	XPEarned       int        `json:"xpEarned" gorm:"column:xp_earned"`
}

func (a *LessonAttempt) Status() string {
	if a.CompletedAt != nil {
		return AttemptCompleted
	}
	return AttemptStarted
}

// AttemptResult is what a completed attempt records.
type AttemptResult struct {
	ScorePercent   int `json:"scorePercent"`
	TotalQuestions int `json:"totalQuestions"`
	CorrectAnswers int `json:"correctAnswers"`
	XPEarned       int `json:"xpEarned"`
}

type DailyGoal struct {
	ID                  uint      `json:"-" gorm:"primaryKey"`
	UserID              uint      `json:"userId" gorm:"uniqueIndex;not null"`
	TargetXPPerDay      int       `json:"targetXpPerDay" gorm:"column:target_xp_per_day;not null"`
	TargetLessonsPerDay int       `json:"targetLessonsPerDay" gorm:"not null"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type UserVocabularyItem struct {
	gorm.Model
	UserID         uint           `json:"userId" gorm:"not null;uniqueIndex:idx_user_vocabulary"`
	VocabularyID   uint           `json:"vocabularyId" gorm:"not null;uniqueIndex:idx_user_vocabulary"`
	VocabularyItem VocabularyItem `json:"vocabularyItem" gorm:"foreignKey:VocabularyID"`
	AddedManually  bool           `json:"addedManually"`
	Strength       int            `json:"strength" gorm:"not null;default:0;check:strength >= 0 AND strength <= 5"`
	LastSeenAt     *time.Time     `json:"lastSeenAt,omitempty"`
}

func (UserVocabularyItem) TableName() string {
	return "user_vocabulary"
}
