package models

import "time"

// WordType is a part of speech (noun, verb, ...)
type WordType struct {
	ID          int       `json:"id" db:"id"`
	TypeName    string    `json:"type_name" db:"type_name"`
	Description string    `json:"description" db:"description"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// DifficultyLevel is a catalogue-wide difficulty scale entry (1..5)
type DifficultyLevel struct {
	ID          int       `json:"id" db:"id"`
	LevelNumber int       `json:"level_number" db:"level_number"`
	LevelName   string    `json:"level_name" db:"level_name"`
	Description string    `json:"description" db:"description"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Word is a Kazakh word to be learned
type Word struct {
	ID                int       `json:"id" db:"id"`
	KazakhWord        string    `json:"kazakh_word" db:"kazakh_word"`
	KazakhCyrillic    string    `json:"kazakh_cyrillic" db:"kazakh_cyrillic"`
	WordTypeID        int       `json:"word_type_id" db:"word_type_id"`
	CategoryID        int       `json:"category_id" db:"category_id"`
	DifficultyLevelID int       `json:"difficulty_level_id" db:"difficulty_level_id"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// WordSummary is a flat projection of a word with its category, type and one
// translation, used for list views
type WordSummary struct {
	ID              int    `json:"id" db:"id"`
	KazakhWord      string `json:"kazakh_word" db:"kazakh_word"`
	KazakhCyrillic  string `json:"kazakh_cyrillic" db:"kazakh_cyrillic"`
	CategoryName    string `json:"category_name" db:"category_name"`
	TypeName        string `json:"type_name" db:"type_name"`
	DifficultyLevel int    `json:"difficulty_level" db:"difficulty_level"`
	Translation     string `json:"translation" db:"translation"`
}

// Translation is a word translated into one language
type Translation struct {
	ID          int       `json:"id" db:"id"`
	WordID      int       `json:"word_id" db:"word_id"`
	LanguageID  int       `json:"language_id" db:"language_id"`
	Translation string    `json:"translation" db:"translation"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Pronunciation is a transcription of a word for speakers of one language
type Pronunciation struct {
	ID                  int       `json:"id" db:"id"`
	WordID              int       `json:"word_id" db:"word_id"`
	LanguageID          int       `json:"language_id" db:"language_id"`
	Pronunciation       string    `json:"pronunciation" db:"pronunciation"`
	PronunciationSystem string    `json:"pronunciation_system" db:"pronunciation_system"`
	AudioFilePath       string    `json:"audio_file_path" db:"audio_file_path"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}

// WordImage is an illustration attached to a word
type WordImage struct {
	ID        int       `json:"id" db:"id"`
	WordID    int       `json:"word_id" db:"word_id"`
	ImagePath string    `json:"image_path" db:"image_path"`
	ImageURL  string    `json:"image_url" db:"image_url"`
	ImageType string    `json:"image_type" db:"image_type"`
	AltText   string    `json:"alt_text" db:"alt_text"`
	IsPrimary bool      `json:"is_primary" db:"is_primary"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ExampleSentence is a usage example for a word
type ExampleSentence struct {
	ID              int       `json:"id" db:"id"`
	WordID          int       `json:"word_id" db:"word_id"`
	KazakhSentence  string    `json:"kazakh_sentence" db:"kazakh_sentence"`
	DifficultyLevel int       `json:"difficulty_level" db:"difficulty_level"`
	UsageContext    string    `json:"usage_context" db:"usage_context"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// ExampleSentenceTranslation is an example sentence translated into one language
type ExampleSentenceTranslation struct {
	ID                 int       `json:"id" db:"id"`
	ExampleSentenceID  int       `json:"example_sentence_id" db:"example_sentence_id"`
	LanguageID         int       `json:"language_id" db:"language_id"`
	TranslatedSentence string    `json:"translated_sentence" db:"translated_sentence"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
}
