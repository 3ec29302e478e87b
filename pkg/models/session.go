package models

import (
	"database/sql"
	"time"
)

// LearningSession is one practice/quiz sitting
type LearningSession struct {
	ID               int           `json:"id" db:"id"`
	UserID           int           `json:"user_id" db:"user_id"`
	SessionType      string        `json:"session_type" db:"session_type"` // "practice", "review", "quiz"
	WordsStudied     int           `json:"words_studied" db:"words_studied"`
	CorrectAnswers   int           `json:"correct_answers" db:"correct_answers"`
	IncorrectAnswers int           `json:"incorrect_answers" db:"incorrect_answers"`
	DurationSeconds  sql.NullInt64 `json:"duration_seconds" db:"duration_seconds"`
	CategoryID       sql.NullInt64 `json:"category_id" db:"category_id"`
	StartedAt        time.Time     `json:"started_at" db:"started_at"`
	FinishedAt       sql.NullTime  `json:"finished_at" db:"finished_at"`
	CreatedAt        time.Time     `json:"created_at" db:"created_at"`
}

// SessionDetail is one answered question within a session. This is the
// historical answer log; WordProgress keeps only aggregates.
type SessionDetail struct {
	ID             int            `json:"id" db:"id"`
	SessionID      int            `json:"session_id" db:"session_id"`
	WordID         int            `json:"word_id" db:"word_id"`
	WasCorrect     bool           `json:"was_correct" db:"was_correct"`
	ResponseTimeMs sql.NullInt64  `json:"response_time_ms" db:"response_time_ms"`
	UserAnswer     sql.NullString `json:"user_answer" db:"user_answer"`
	CorrectAnswer  sql.NullString `json:"correct_answer" db:"correct_answer"`
	QuestionType   string         `json:"question_type" db:"question_type"`
	AnsweredAt     time.Time      `json:"answered_at" db:"answered_at"`
}
