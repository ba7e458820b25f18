package reports

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
)

func TestWriteStudentProgress(t *testing.T) {
	last := time.Date(2024, time.March, 9, 14, 30, 0, 0, time.UTC)
	rows := []models.StudentCourseProgress{
		{StudentName: "Anna", CourseTitle: "IT English", CompletedLessons: 3, TotalLessons: 5, ProgressPercent: 60, AvgScore: 85, LastAttempt: &last},
		{StudentName: "Bartek", CourseTitle: "Finance", TotalLessons: 4},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteStudentProgress(&buf, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(ProgressSheet)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Student", got[0][0])
	assert.Equal(t, []string{"Anna", "IT English", "3", "5", "60", "85", "2024-03-09 14:30"}, got[1])
	assert.Equal(t, "Bartek", got[2][0])
	assert.Equal(t, "0", got[2][4])
}

func TestReadVocabulary(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"word", "translation", "example", "industry", "audio"},
		{" invoice ", "faktura", "Please pay the invoice.", "Finance"},
		{},
		{"deadline", ""},
		{"meeting", "spotkanie"},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := r
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	items, skipped, err := ReadVocabulary(&buf)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "invoice", items[0].EnglishWordOrPhrase)
	assert.Equal(t, "finance", items[0].IndustryTag)
	assert.Equal(t, "Please pay the invoice.", items[0].ExampleSentence)
	assert.Equal(t, "meeting", items[1].EnglishWordOrPhrase)
	require.Len(t, skipped, 1)
	assert.Equal(t, 4, skipped[0].Row)
}

func TestReadVocabularyRejectsGarbage(t *testing.T) {
	_, _, err := ReadVocabulary(bytes.NewBufferString("not a workbook"))
	assert.Error(t, err)
}
