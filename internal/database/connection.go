package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/example/kazlearn/internal/config"
)

// Connect opens the database selected by the configuration and creates the
// schema if it does not exist yet
func Connect(cfg *config.Config) (*sqlx.DB, error) {
	var db *sqlx.DB
	var err error

	if cfg.DBType == "postgres" {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is not set")
		}
		db, err = sqlx.Connect("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %v", err)
		}
	} else {
		// Create data directory if it doesn't exist
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %v", err)
			}
		}

		db, err = sqlx.Connect("sqlite3", cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %v", err)
		}

		// Enable foreign keys
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %v", err)
		}

		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := initializeSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema(db *sqlx.DB) error {
	pk := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.DriverName() == "postgres" {
		pk = "SERIAL PRIMARY KEY"
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS languages (
			id ` + pk + `,
			language_code TEXT NOT NULL UNIQUE,
			language_name TEXT NOT NULL,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id ` + pk + `,
			category_name TEXT NOT NULL UNIQUE,
			description TEXT DEFAULT '',
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS category_translations (
			id ` + pk + `,
			category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
			language_id INTEGER NOT NULL REFERENCES languages(id),
			translated_name TEXT NOT NULL,
			translated_description TEXT DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(category_id, language_id)
		)`,
		`CREATE TABLE IF NOT EXISTS word_types (
			id ` + pk + `,
			type_name TEXT NOT NULL UNIQUE,
			description TEXT DEFAULT '',
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS difficulty_levels (
			id ` + pk + `,
			level_number INTEGER NOT NULL UNIQUE,
			level_name TEXT NOT NULL,
			description TEXT DEFAULT '',
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS kazakh_words (
			id ` + pk + `,
			kazakh_word TEXT NOT NULL,
			kazakh_cyrillic TEXT DEFAULT '',
			word_type_id INTEGER NOT NULL REFERENCES word_types(id),
			category_id INTEGER NOT NULL REFERENCES categories(id),
			difficulty_level_id INTEGER DEFAULT 1 REFERENCES difficulty_levels(id),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(kazakh_word, category_id)
		)`,
		`CREATE TABLE IF NOT EXISTS translations (
			id ` + pk + `,
			word_id INTEGER NOT NULL REFERENCES kazakh_words(id) ON DELETE CASCADE,
			language_id INTEGER NOT NULL REFERENCES languages(id),
			translation TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(word_id, language_id)
		)`,
		`CREATE TABLE IF NOT EXISTS pronunciations (
			id ` + pk + `,
			word_id INTEGER NOT NULL REFERENCES kazakh_words(id) ON DELETE CASCADE,
			language_id INTEGER NOT NULL REFERENCES languages(id),
			pronunciation TEXT NOT NULL,
			pronunciation_system TEXT DEFAULT '',
			audio_file_path TEXT DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(word_id, language_id, pronunciation_system)
		)`,
		`CREATE TABLE IF NOT EXISTS word_images (
			id ` + pk + `,
			word_id INTEGER NOT NULL REFERENCES kazakh_words(id) ON DELETE CASCADE,
			image_path TEXT NOT NULL,
			image_url TEXT DEFAULT '',
			image_type TEXT DEFAULT 'illustration',
			alt_text TEXT DEFAULT '',
			is_primary BOOLEAN DEFAULT false,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS example_sentences (
			id ` + pk + `,
			word_id INTEGER NOT NULL REFERENCES kazakh_words(id) ON DELETE CASCADE,
			kazakh_sentence TEXT NOT NULL,
			difficulty_level INTEGER DEFAULT 1,
			usage_context TEXT DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS example_sentence_translations (
			id ` + pk + `,
			example_sentence_id INTEGER NOT NULL REFERENCES example_sentences(id) ON DELETE CASCADE,
			language_id INTEGER NOT NULL REFERENCES languages(id),
			translated_sentence TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(example_sentence_id, language_id)
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id ` + pk + `,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			hashed_password TEXT NOT NULL,
			full_name TEXT DEFAULT '',
			role TEXT NOT NULL DEFAULT 'student',
			is_active BOOLEAN DEFAULT true,
			main_language_id INTEGER REFERENCES languages(id),
			telegram_chat_id BIGINT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS user_sessions (
			id ` + pk + `,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			token_jti TEXT NOT NULL UNIQUE,
			expires_at TIMESTAMP NOT NULL,
			is_revoked BOOLEAN DEFAULT false,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS user_word_progress (
			id ` + pk + `,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			word_id INTEGER NOT NULL REFERENCES kazakh_words(id) ON DELETE CASCADE,
			status TEXT NOT NULL DEFAULT 'want_to_learn',
			times_seen INTEGER DEFAULT 0,
			times_correct INTEGER DEFAULT 0,
			times_incorrect INTEGER DEFAULT 0,
			difficulty_rating TEXT,
			repetition_interval INTEGER DEFAULT 1,
			ease_factor REAL DEFAULT 2.5,
			added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			first_learned_at TIMESTAMP,
			last_practiced_at TIMESTAMP,
			next_review_at TIMESTAMP,
			user_notes TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, word_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_user_word_progress_next_review
			ON user_word_progress (next_review_at)`,
		`CREATE INDEX IF NOT EXISTS idx_user_word_progress_user
			ON user_word_progress (user_id)`,
		`CREATE TABLE IF NOT EXISTS user_learning_sessions (
			id ` + pk + `,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			session_type TEXT NOT NULL,
			words_studied INTEGER DEFAULT 0,
			correct_answers INTEGER DEFAULT 0,
			incorrect_answers INTEGER DEFAULT 0,
			duration_seconds INTEGER,
			category_id INTEGER REFERENCES categories(id),
			started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			finished_at TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS user_session_details (
			id ` + pk + `,
			session_id INTEGER NOT NULL REFERENCES user_learning_sessions(id) ON DELETE CASCADE,
			word_id INTEGER NOT NULL REFERENCES kazakh_words(id) ON DELETE CASCADE,
			was_correct BOOLEAN NOT NULL,
			response_time_ms INTEGER,
			user_answer TEXT,
			correct_answer TEXT,
			question_type TEXT DEFAULT 'practice',
			answered_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS user_learning_goals (
			id ` + pk + `,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			goal_type TEXT NOT NULL,
			target_value INTEGER NOT NULL,
			current_value INTEGER DEFAULT 0,
			category_id INTEGER REFERENCES categories(id),
			is_active BOOLEAN DEFAULT true,
			is_completed BOOLEAN DEFAULT false,
			start_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			target_date TIMESTAMP,
			completed_date TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS user_streaks (
			id ` + pk + `,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			streak_type TEXT NOT NULL DEFAULT 'daily',
			current_streak INTEGER DEFAULT 0,
			longest_streak INTEGER DEFAULT 0,
			last_activity_date TIMESTAMP,
			streak_start_date TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, streak_type)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			name := schemaObjectName(stmt)
			return fmt.Errorf("failed to create %s: %v", name, err)
		}
	}
	return nil
}

// schemaObjectName pulls the table/index name out of a DDL statement for error
// messages
func schemaObjectName(stmt string) string {
	fields := strings.Fields(stmt)
	for i, f := range fields {
		if strings.EqualFold(f, "EXISTS") && i+1 < len(fields) {
			return fields[i+1]
		}
	}
	return "schema object"
}
