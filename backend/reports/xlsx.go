package reports

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
)

const (
	ProgressSheet = "Progress"
	ContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var progressHeader = []interface{}{
	"Student", "Course", "Completed lessons", "Total lessons", "Progress %", "Average score %", "Last attempt",
}

// WriteStudentProgress renders the per (student, course) table as an xlsx workbook.
func WriteStudentProgress(w io.Writer, rows []models.StudentCourseProgress) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", ProgressSheet)

	if err := f.SetSheetRow(ProgressSheet, "A1", &progressHeader); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(ProgressSheet, "A1", "G1", bold); err != nil {
		return err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		last := ""
		if r.LastAttempt != nil {
			last = r.LastAttempt.UTC().Format("2006-01-02 15:04")
		}
		values := []interface{}{
			r.StudentName, r.CourseTitle, r.CompletedLessons, r.TotalLessons, r.ProgressPercent, r.AvgScore, last,
		}
		if err := f.SetSheetRow(ProgressSheet, cell, &values); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(ProgressSheet, "A", "B", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(ProgressSheet, "C", "G", 18); err != nil {
		return err
	}
	return f.Write(w)
}

// Vocabulary import layout, first sheet, header row skipped:
// A word, B translation, C example sentence, D industry tag, E audio url.
const (
	colWord = iota
	colTranslation
	colExample
	colIndustry
	colAudio
)

// RowError reports a spreadsheet row that could not be imported.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ReadVocabulary parses vocabulary items from the first sheet of an xlsx file.
// Rows without a word or a translation are reported and skipped.
func ReadVocabulary(r io.Reader) ([]models.VocabularyItem, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get rows: %w", err)
	}

	var (
		items   []models.VocabularyItem
		skipped []RowError
	)
	for i, row := range rows {
		if i == 0 {
			continue
		}
		word, translation := cellAt(row, colWord), cellAt(row, colTranslation)
		if word == "" && translation == "" {
			continue
		}
		if word == "" || translation == "" {
			skipped = append(skipped, RowError{Row: i + 1, Reason: "word and translation are required"})
			continue
		}
		items = append(items, models.VocabularyItem{
			EnglishWordOrPhrase: word,
			Translation:         translation,
			ExampleSentence:     cellAt(row, colExample),
			IndustryTag:         strings.ToLower(cellAt(row, colIndustry)),
			AudioURL:            cellAt(row, colAudio),
		})
	}
	return items, skipped, nil
}

func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
