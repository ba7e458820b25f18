package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
)

type recordingWriter struct {
	lines []string
}

func (w *recordingWriter) Printf(format string, args ...interface{}) {
	w.lines = append(w.lines, fmt.Sprintf(format, args...))
}

func TestGormLoggerSkipsExpectedMisses(t *testing.T) {
	w := &recordingWriter{}
	db, err := gorm.Open(sqlite.Open("file:gormlogger?mode=memory&cache=shared"), &gorm.Config{
		Logger: newGormLogger(w, "development"),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.DailyGoal{}))
	w.lines = nil

	var goal models.DailyGoal
	err = db.Where("user_id = ?", 42).First(&goal).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, w.lines, "record not found is not logged")

	err = db.Table("missing_table").First(&goal).Error
	require.Error(t, err)
	assert.NotEmpty(t, w.lines, "real failures are still logged")
}
