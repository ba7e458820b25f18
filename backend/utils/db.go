package utils

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Xornee/langify-your-daily-english-boost/backend/config"
	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// InitDB opens the database selected by cfg.DBDriver.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath + "?_foreign_keys=on&_busy_timeout=5000")
	default:
		dialector = postgres.Open(cfg.PostgresDSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(log.New(os.Stdout, "\r\n", log.LstdFlags), cfg.Env),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}

	if cfg.DBDriver == "sqlite" {
		// sqlite allows one writer; a single connection serializes the upserts
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// newGormLogger пишет медленные запросы и ошибки. Промахи First/Take
// ожидаемы (нет цели, проверка email), поэтому не логируются.
func newGormLogger(w gormlogger.Writer, env string) gormlogger.Interface {
	level := gormlogger.Warn
	if env == "production" {
		level = gormlogger.Error
	}
	return gormlogger.New(w, gormlogger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.DailyGoal{},
		&models.Course{},
		&models.Lesson{},
		&models.Task{},
		&models.VocabularyItem{},
		&models.UserVocabularyItem{},
		&models.LessonAttempt{},
		&models.DailyStat{},
	)
}
