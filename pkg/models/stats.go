package models

// LearningStats is the aggregate view over one user's progress records.
// Derived entirely by aggregation; nothing here is stored.
type LearningStats struct {
	TotalWords      int            `json:"total_words"`
	WordsByStatus   map[string]int `json:"words_by_status"`
	TotalSeen       int            `json:"total_seen"`
	TotalCorrect    int            `json:"total_correct"`
	AccuracyRate    float64        `json:"accuracy_rate"` // percent, 0 when nothing seen
	WordsDueReview  int            `json:"words_due_review"`
	SessionsThisWeek int           `json:"sessions_this_week"`
	CurrentStreak   int            `json:"current_streak"`
}

// CategoryProgress is the per-category rollup of a user's progress
type CategoryProgress struct {
	CategoryID     int     `json:"category_id" db:"category_id"`
	CategoryName   string  `json:"category_name" db:"category_name"`
	WordsLearning  int     `json:"words_learning" db:"words_learning"`
	WordsLearned   int     `json:"words_learned" db:"words_learned"`
	CompletionRate float64 `json:"completion_rate" db:"completion_rate"`
}
