package repository

import (
	"context"
	"errors"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"
	"gorm.io/gorm"
)

// Repository bundles every store the services use over one *gorm.DB.
type Repository struct {
	db *gorm.DB

	Users      UserRepo
	Goals      GoalRepo
	DailyStats DailyStatRepo
	Attempts   AttemptRepo
	Content    ContentRepo
	Vocabulary VocabularyRepo
}

func New(db *gorm.DB, log *utils.Logger) *Repository {
	return &Repository{
		db:         db,
		Users:      NewUserRepo(db, log),
		Goals:      NewGoalRepo(db, log),
		DailyStats: NewDailyStatRepo(db, log),
		Attempts:   NewAttemptRepo(db, log),
		Content:    NewContentRepo(db, log),
		Vocabulary: NewVocabularyRepo(db, log),
	}
}

// Transaction runs fn in one database transaction. Repository calls made
// inside fn must be passed tx, otherwise they run outside of it.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func conn(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}

// wrap turns a gorm error into the domain taxonomy.
func wrap(op, entity string, id interface{}, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NotFound(entity, id)
	}
	var perr *models.PersistenceError
	if errors.As(err, &perr) || errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrConflict) {
		return err
	}
	return &models.PersistenceError{Op: op, Err: err}
}
