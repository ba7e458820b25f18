package models

import "gorm.io/gorm"

const (
	TaskFlashcard      = "FLASHCARD"
	TaskMultipleChoice = "MULTIPLE_CHOICE"
	TaskGapFill        = "GAP_FILL"
)

type Course struct {
	gorm.Model
	Title            string   `json:"title" gorm:"not null"`
	Description      string   `json:"description"`
	IndustryTag      string   `json:"industryTag"` // it, finance, office, general
	Level            string   `json:"level"`       // A1..C2
	CreatedBy        uint     `json:"createdBy"`
	LessonsCount     int      `json:"lessonsCount" gorm:"default:0"`
	EstimatedMinutes int      `json:"estimatedMinutes"`
	ImageURL         string   `json:"imageUrl,omitempty"`
	IsPublished      bool     `json:"isPublished" gorm:"default:false"`
	Lessons          []Lesson `json:"lessons,omitempty"`
}

type Lesson struct {
	gorm.Model
	CourseID         uint   `json:"courseId" gorm:"index;not null"`
	Title            string `json:"title" gorm:"not null"`
	Description      string `json:"description"`
	OrderInCourse    int    `json:"orderInCourse"`
	EstimatedMinutes int    `json:"estimatedMinutes"`
	TasksCount       int    `json:"tasksCount" gorm:"default:0"`
}

// Task holds the correct answer and must never be serialized to learners.
// The learner read path uses LearnerTask.
type Task struct {
	gorm.Model
	LessonID         uint     `json:"lessonId" gorm:"index;not null"`
	Type             string   `json:"type" gorm:"default:MULTIPLE_CHOICE"`
	QuestionText     string   `json:"questionText" gorm:"not null"`
	QuestionExtra    string   `json:"questionExtra,omitempty"`
	CorrectAnswer    string   `json:"correctAnswer" gorm:"not null"`
	IncorrectAnswers []string `json:"incorrectAnswers" gorm:"serializer:json"`
	VocabularyID     *uint    `json:"vocabularyId,omitempty"`
	OrderInLesson    int      `json:"orderInLesson"`
}

type LearnerTask struct {
	ID            uint   `json:"id"`
	LessonID      uint   `json:"lessonId"`
	Type          string `json:"type"`
	QuestionText  string `json:"questionText"`
	QuestionExtra string `json:"questionExtra,omitempty"`
	VocabularyID  *uint  `json:"vocabularyId,omitempty"`
	OrderInLesson int    `json:"orderInLesson"`
}

func (t *Task) ForLearner() LearnerTask {
	return LearnerTask{
		ID:            t.ID,
		LessonID:      t.LessonID,
		Type:          t.Type,
		QuestionText:  t.QuestionText,
		QuestionExtra: t.QuestionExtra,
		VocabularyID:  t.VocabularyID,
		OrderInLesson: t.OrderInLesson,
	}
}

type AnswerCheck struct {
	IsCorrect     bool   `json:"isCorrect"`
	CorrectAnswer string `json:"correctAnswer"`
}

type VocabularyItem struct {
	gorm.Model
	EnglishWordOrPhrase string `json:"englishWordOrPhrase" gorm:"not null"`
	Translation         string `json:"translation" gorm:"not null"`
	ExampleSentence     string `json:"exampleSentence"`
	IndustryTag         string `json:"industryTag,omitempty"`
	AudioURL            string `json:"audioUrl,omitempty"`
}
