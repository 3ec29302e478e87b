package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/kazlearn/internal/learning"
	"github.com/example/kazlearn/pkg/models"
)

// ProgressRepository handles database operations for user word progress. It
// implements learning.Store.
type ProgressRepository struct {
	db *sqlx.DB
}

// NewProgressRepository creates a new repository instance
func NewProgressRepository(db *sqlx.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Get returns progress for a specific user and word
func (r *ProgressRepository) Get(userID, wordID int) (*models.WordProgress, error) {
	var progress models.WordProgress
	err := r.db.Get(&progress,
		r.db.Rebind("SELECT * FROM user_word_progress WHERE user_id = ? AND word_id = ?"),
		userID, wordID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, learning.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get word progress: %v", err)
	}
	return &progress, nil
}

// Create inserts a new progress record. The unique constraint on
// (user_id, word_id) makes concurrent adds converge on one row; on conflict
// the existing record is returned untouched.
func (r *ProgressRepository) Create(p *models.WordProgress) (*models.WordProgress, error) {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.Exec(r.db.Rebind(`
		INSERT INTO user_word_progress (
			user_id, word_id, status, times_seen, times_correct, times_incorrect,
			repetition_interval, ease_factor, added_at, created_at, updated_at
		) VALUES (?, ?, ?, 0, 0, 0, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, word_id) DO NOTHING
	`), p.UserID, p.WordID, p.Status, p.RepetitionInterval, p.EaseFactor,
		p.AddedAt, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create word progress: %v", err)
	}

	return r.Get(p.UserID, p.WordID)
}

// UpdateWithLock applies fn to the current record inside a transaction and
// writes every mutable field back, so concurrent answer submissions for the
// same pair never lose updates
func (r *ProgressRepository) UpdateWithLock(userID, wordID int, fn func(p *models.WordProgress) error) (*models.WordProgress, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	query := "SELECT * FROM user_word_progress WHERE user_id = ? AND word_id = ?"
	if r.db.DriverName() == "postgres" {
		// SQLite serializes writers on its own
		query += " FOR UPDATE"
	}

	var progress models.WordProgress
	err = tx.Get(&progress, r.db.Rebind(query), userID, wordID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, learning.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get word progress: %v", err)
	}

	if err := fn(&progress); err != nil {
		return nil, err
	}
	progress.UpdatedAt = time.Now().UTC()

	_, err = tx.Exec(r.db.Rebind(`
		UPDATE user_word_progress SET
			status = ?,
			times_seen = ?,
			times_correct = ?,
			times_incorrect = ?,
			difficulty_rating = ?,
			repetition_interval = ?,
			ease_factor = ?,
			first_learned_at = ?,
			last_practiced_at = ?,
			next_review_at = ?,
			user_notes = ?,
			updated_at = ?
		WHERE id = ?
	`), progress.Status, progress.TimesSeen, progress.TimesCorrect, progress.TimesIncorrect,
		progress.DifficultyRating, progress.RepetitionInterval, progress.EaseFactor,
		progress.FirstLearnedAt, progress.LastPracticedAt, progress.NextReviewAt,
		progress.UserNotes, progress.UpdatedAt, progress.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update word progress: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit word progress update: %v", err)
	}
	return &progress, nil
}

// Delete removes a progress record; returns whether a row existed
func (r *ProgressRepository) Delete(userID, wordID int) (bool, error) {
	result, err := r.db.Exec(
		r.db.Rebind("DELETE FROM user_word_progress WHERE user_id = ? AND word_id = ?"),
		userID, wordID)
	if err != nil {
		return false, fmt.Errorf("failed to delete word progress: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// progressJoin joins progress rows with word, category, difficulty and a
// translation for one language
const progressJoin = `
	SELECT p.*, w.kazakh_word, w.kazakh_cyrillic,
		c.category_name, dl.level_number AS difficulty_level,
		COALESCE(t.translation, '') AS translation
	FROM user_word_progress p
	JOIN kazakh_words w ON p.word_id = w.id
	JOIN categories c ON w.category_id = c.id
	JOIN difficulty_levels dl ON w.difficulty_level_id = dl.id
	LEFT JOIN translations t ON t.word_id = w.id
		AND t.language_id = (SELECT id FROM languages WHERE language_code = ?)
`

// DueForReview returns records due for practice: next_review_at has passed and
// the status is one of the active learning statuses. Most overdue first.
func (r *ProgressRepository) DueForReview(userID int, now time.Time, limit int) ([]models.WordProgressWithWord, error) {
	query := progressJoin + `
		WHERE p.user_id = ?
			AND p.next_review_at IS NOT NULL
			AND p.next_review_at <= ?
			AND p.status IN (` + learning.ActiveStatusList() + `)
		ORDER BY p.next_review_at ASC
		LIMIT ?
	`
	var records []models.WordProgressWithWord
	err := r.db.Select(&records, r.db.Rebind(query), "en", userID, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get due words: %v", err)
	}
	return records, nil
}

// List returns the user's progress records joined with word data
func (r *ProgressRepository) List(userID int, f learning.ListFilter) ([]models.WordProgressWithWord, error) {
	lang := f.LanguageCode
	if lang == "" {
		lang = "en"
	}

	query := progressJoin + " WHERE p.user_id = ?"
	args := []interface{}{lang, userID}

	var conds []string
	if f.Status != "" {
		conds = append(conds, "p.status = ?")
		args = append(args, f.Status)
	}
	if f.CategoryID > 0 {
		conds = append(conds, "w.category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.DifficultyLevelID > 0 {
		conds = append(conds, "w.difficulty_level_id = ?")
		args = append(args, f.DifficultyLevelID)
	}
	if len(conds) > 0 {
		query += " AND " + strings.Join(conds, " AND ")
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " ORDER BY p.updated_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, f.Offset)

	var records []models.WordProgressWithWord
	err := r.db.Select(&records, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list word progress: %v", err)
	}
	return records, nil
}

// Aggregate folds the user's progress rows into stats. Pure read; only the
// progress-derived fields are filled here.
func (r *ProgressRepository) Aggregate(userID int, now time.Time) (*models.LearningStats, error) {
	stats := &models.LearningStats{
		WordsByStatus: map[string]int{
			string(models.StatusWantToLearn): 0,
			string(models.StatusLearning):    0,
			string(models.StatusLearned):     0,
			string(models.StatusMastered):    0,
			string(models.StatusReview):      0,
		},
	}

	rows, err := r.db.Queryx(r.db.Rebind(`
		SELECT status, COUNT(*) FROM user_word_progress
		WHERE user_id = ? GROUP BY status
	`), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count words by status: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %v", err)
		}
		stats.WordsByStatus[status] = count
		stats.TotalWords += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = r.db.QueryRow(r.db.Rebind(`
		SELECT COALESCE(SUM(times_seen), 0), COALESCE(SUM(times_correct), 0)
		FROM user_word_progress WHERE user_id = ?
	`), userID).Scan(&stats.TotalSeen, &stats.TotalCorrect)
	if err != nil {
		return nil, fmt.Errorf("failed to sum answer counters: %v", err)
	}
	if stats.TotalSeen > 0 {
		stats.AccuracyRate = float64(stats.TotalCorrect) / float64(stats.TotalSeen) * 100
	}

	err = r.db.Get(&stats.WordsDueReview, r.db.Rebind(`
		SELECT COUNT(*) FROM user_word_progress
		WHERE user_id = ?
			AND next_review_at IS NOT NULL
			AND next_review_at <= ?
			AND status IN (`+learning.ActiveStatusList()+`)
	`), userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to count due words: %v", err)
	}

	return stats, nil
}

// CategoryBreakdown rolls the user's progress up per category. completion_rate
// is the learned+mastered share of the category's full word count.
func (r *ProgressRepository) CategoryBreakdown(userID int) ([]models.CategoryProgress, error) {
	query := `
		SELECT c.id AS category_id, c.category_name,
			COALESCE(SUM(CASE WHEN p.status IN ('learning', 'review') THEN 1 ELSE 0 END), 0) AS words_learning,
			COALESCE(SUM(CASE WHEN p.status IN ('learned', 'mastered') THEN 1 ELSE 0 END), 0) AS words_learned,
			CASE WHEN COUNT(w.id) > 0
				THEN CAST(COALESCE(SUM(CASE WHEN p.status IN ('learned', 'mastered') THEN 1 ELSE 0 END), 0) AS FLOAT) / COUNT(w.id) * 100
				ELSE 0
			END AS completion_rate
		FROM categories c
		JOIN kazakh_words w ON w.category_id = c.id
		LEFT JOIN user_word_progress p ON p.word_id = w.id AND p.user_id = ?
		WHERE c.is_active = true
		GROUP BY c.id, c.category_name
		ORDER BY c.category_name
	`
	var breakdown []models.CategoryProgress
	err := r.db.Select(&breakdown, r.db.Rebind(query), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category breakdown: %v", err)
	}
	return breakdown, nil
}
