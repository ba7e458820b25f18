package services

import (
	"github.com/Xornee/langify-your-daily-english-boost/backend/cache"
	"github.com/Xornee/langify-your-daily-english-boost/backend/repository"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
)

// Services is every use case the HTTP layer needs, wired over one repository.
type Services struct {
	Accounts     *AccountService
	Gamification *GamificationService
	Leaderboard  *LeaderboardService
	Lessons      *LessonService
	Content      *ContentService
	Vocabulary   *VocabularyService
	Teacher      *TeacherService
	Admin        *AdminService
}

func New(repo *repository.Repository, lbCache cache.LeaderboardCache, clock Clock, defaults GoalDefaults, log *utils.Logger) *Services {
	leaderboard := NewLeaderboardService(repo, lbCache, clock, log)
	gamification := NewGamificationService(repo, leaderboard, clock, defaults, log)
	return &Services{
		Accounts:     NewAccountService(repo, gamification, log),
		Gamification: gamification,
		Leaderboard:  leaderboard,
		Lessons:      NewLessonService(repo, gamification, clock, log),
		Content:      NewContentService(repo, log),
		Vocabulary:   NewVocabularyService(repo, clock, log),
		Teacher:      NewTeacherService(repo, clock, log),
		Admin:        NewAdminService(repo, clock, log),
	}
}
