package excel

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/kazlearn/internal/database"
	"github.com/example/kazlearn/pkg/models"
)

// ImportConfig defines which file to read and where each field lives
type ImportConfig struct {
	FilePath            string // Path to the Excel or CSV file
	WordColumn          string // Column with the Kazakh word (Latin)
	CyrillicColumn      string // Column with the Cyrillic form
	TranslationColumn   string // Column with the translation
	CategoryColumn      string // Column with the category name
	WordTypeColumn      string // Column with the part of speech
	DifficultyColumn    string // Column with the difficulty number 1..5
	PronunciationColumn string // Column with the pronunciation
	LanguageCode        string // Language of the translation column
	SheetName           string // Name of the sheet to import
	StartRow            int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		WordColumn:          "A",
		CyrillicColumn:      "B",
		TranslationColumn:   "C",
		CategoryColumn:      "D",
		WordTypeColumn:      "E",
		DifficultyColumn:    "F",
		PronunciationColumn: "G",
		LanguageCode:        "en",
		SheetName:           "Sheet1",
		StartRow:            2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed    int      `json:"total_processed"`
	CategoriesCreated int      `json:"categories_created"`
	Created           int      `json:"created"`
	Updated           int      `json:"updated"`
	Skipped           int      `json:"skipped"`
	Errors            []string `json:"errors"`
}

// Importer loads vocabulary files into the catalogue
type Importer struct {
	words      *database.WordRepository
	categories *database.CategoryRepository
	languages  *database.LanguageRepository
	lookups    *database.LookupRepository
}

// NewImporter creates an importer over the catalogue repositories
func NewImporter(words *database.WordRepository, categories *database.CategoryRepository, languages *database.LanguageRepository, lookups *database.LookupRepository) *Importer {
	return &Importer{
		words:      words,
		categories: categories,
		languages:  languages,
		lookups:    lookups,
	}
}

// ImportWords imports words from an Excel or CSV file
func (imp *Importer) ImportWords(config ImportConfig) (*ImportResult, error) {
	if config.LanguageCode == "" {
		config.LanguageCode = "en"
	}
	language, err := imp.languages.GetByCode(config.LanguageCode)
	if err != nil {
		return nil, fmt.Errorf("unknown translation language %q: %v", config.LanguageCode, err)
	}

	state, err := imp.newImportState(language.ID)
	if err != nil {
		return nil, err
	}

	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		return imp.importFromCSV(config, state)
	}
	return imp.importFromExcel(config, state)
}

// importState caches reference-table lookups for the duration of one import
type importState struct {
	languageID  int
	categoryMap map[string]int // lowercased category name -> id
	typeMap     map[string]int // lowercased type name -> id
	levelMap    map[int]int    // level number -> id
	result      *ImportResult
}

func (imp *Importer) newImportState(languageID int) (*importState, error) {
	state := &importState{
		languageID:  languageID,
		categoryMap: make(map[string]int),
		typeMap:     make(map[string]int),
		levelMap:    make(map[int]int),
		result:      &ImportResult{Errors: make([]string, 0)},
	}

	categories, err := imp.categories.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get existing categories: %v", err)
	}
	for _, c := range categories {
		state.categoryMap[strings.ToLower(c.CategoryName)] = c.ID
	}

	types, err := imp.lookups.GetWordTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to get word types: %v", err)
	}
	for _, t := range types {
		state.typeMap[strings.ToLower(t.TypeName)] = t.ID
	}

	levels, err := imp.lookups.GetDifficultyLevels()
	if err != nil {
		return nil, fmt.Errorf("failed to get difficulty levels: %v", err)
	}
	for _, l := range levels {
		state.levelMap[l.LevelNumber] = l.ID
	}

	return state, nil
}

func (imp *Importer) importFromExcel(config ImportConfig, state *importState) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		state.result.TotalProcessed++

		entry := rowEntry{
			Word:          cell(row, config.WordColumn),
			Cyrillic:      cell(row, config.CyrillicColumn),
			Translation:   cell(row, config.TranslationColumn),
			Category:      cell(row, config.CategoryColumn),
			WordType:      cell(row, config.WordTypeColumn),
			Pronunciation: cell(row, config.PronunciationColumn),
			Difficulty:    parseIntOrDefault(cell(row, config.DifficultyColumn), 1, 5, 3),
		}
		if err := imp.processEntry(entry, state); err != nil {
			state.result.Errors = append(state.result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return state.result, nil
}

func (imp *Importer) importFromCSV(config ImportConfig, state *importState) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rowNum := 0
	currentCategory := ""

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}

		rowNum++
		if rowNum < config.StartRow {
			continue
		}

		// A row with only its first field filled is a category header
		if len(row) >= 2 && strings.TrimSpace(row[0]) != "" && strings.TrimSpace(row[1]) == "" {
			currentCategory = strings.Trim(strings.TrimSpace(row[0]), "\"")
			continue
		}
		if len(row) < 3 || strings.TrimSpace(row[0]) == "" {
			state.result.Skipped++
			continue
		}

		state.result.TotalProcessed++

		entry := rowEntry{
			Word:        strings.TrimSpace(row[0]),
			Cyrillic:    strings.TrimSpace(row[1]),
			Translation: strings.TrimSpace(row[2]),
			Category:    currentCategory,
			Difficulty:  3,
		}
		if len(row) > 3 {
			entry.Pronunciation = strings.TrimSpace(row[3])
		}
		if err := imp.processEntry(entry, state); err != nil {
			state.result.Errors = append(state.result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	return state.result, nil
}

// rowEntry is one parsed vocabulary row, regardless of source format
type rowEntry struct {
	Word          string
	Cyrillic      string
	Translation   string
	Category      string
	WordType      string
	Pronunciation string
	Difficulty    int
}

// processEntry upserts one vocabulary row: word, its translation and an
// optional pronunciation
func (imp *Importer) processEntry(entry rowEntry, state *importState) error {
	if entry.Word == "" {
		return fmt.Errorf("word cannot be empty")
	}
	if entry.Translation == "" {
		return fmt.Errorf("translation cannot be empty")
	}
	if entry.Category == "" {
		return fmt.Errorf("category cannot be empty")
	}

	categoryID, err := imp.getOrCreateCategory(entry.Category, state)
	if err != nil {
		return err
	}
	typeID, err := imp.getOrCreateWordType(entry.WordType, state)
	if err != nil {
		return err
	}
	levelID, ok := state.levelMap[entry.Difficulty]
	if !ok {
		return fmt.Errorf("no difficulty level %d in the catalogue", entry.Difficulty)
	}

	word, err := imp.words.GetByKazakh(entry.Word, categoryID)
	switch {
	case err == sql.ErrNoRows:
		word = &models.Word{
			KazakhWord:        entry.Word,
			KazakhCyrillic:    entry.Cyrillic,
			WordTypeID:        typeID,
			CategoryID:        categoryID,
			DifficultyLevelID: levelID,
		}
		if err := imp.words.Create(word); err != nil {
			return fmt.Errorf("failed to create word: %v", err)
		}
		state.result.Created++
	case err != nil:
		return fmt.Errorf("failed to look up word: %v", err)
	default:
		state.result.Updated++
	}

	has, err := imp.words.HasTranslation(word.ID, state.languageID)
	if err != nil {
		return fmt.Errorf("failed to check translation: %v", err)
	}
	if !has {
		translation := &models.Translation{
			WordID:      word.ID,
			LanguageID:  state.languageID,
			Translation: entry.Translation,
		}
		if err := imp.words.AddTranslation(translation); err != nil {
			return fmt.Errorf("failed to add translation: %v", err)
		}
	}

	if entry.Pronunciation != "" {
		existing, err := imp.words.GetPronunciations(word.ID)
		if err != nil {
			return fmt.Errorf("failed to check pronunciations: %v", err)
		}
		if len(existing) == 0 {
			pronunciation := &models.Pronunciation{
				WordID:        word.ID,
				LanguageID:    state.languageID,
				Pronunciation: entry.Pronunciation,
			}
			if err := imp.words.AddPronunciation(pronunciation); err != nil {
				return fmt.Errorf("failed to add pronunciation: %v", err)
			}
		}
	}

	return nil
}

func (imp *Importer) getOrCreateCategory(name string, state *importState) (int, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if id, exists := state.categoryMap[key]; exists {
		return id, nil
	}

	category := &models.Category{CategoryName: strings.TrimSpace(name)}
	if err := imp.categories.Create(category); err != nil {
		return 0, fmt.Errorf("failed to create category: %v", err)
	}
	state.categoryMap[key] = category.ID
	state.result.CategoriesCreated++
	return category.ID, nil
}

func (imp *Importer) getOrCreateWordType(name string, state *importState) (int, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = "noun" // rows without a part of speech default to noun
	}
	if id, exists := state.typeMap[key]; exists {
		return id, nil
	}

	wt := &models.WordType{TypeName: key}
	if err := imp.lookups.CreateWordType(wt); err != nil {
		return 0, fmt.Errorf("failed to create word type: %v", err)
	}
	state.typeMap[key] = wt.ID
	return wt.ID, nil
}

// cell reads a value by Excel column letter, tolerant of short rows
func cell(row []string, column string) string {
	if column == "" {
		return ""
	}
	idx := columnToIndex(column)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// columnToIndex converts an Excel column letter to a zero-based index
func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}

func parseIntInRange(s string, min, max int) (int, error) {
	var val int
	if _, err := fmt.Sscanf(s, "%d", &val); err != nil {
		return min, err
	}
	if val < min {
		return min, nil
	}
	if val > max {
		return max, nil
	}
	return val, nil
}

func parseIntOrDefault(s string, min, max, defaultVal int) int {
	if val, err := parseIntInRange(s, min, max); err == nil {
		return val
	}
	return defaultVal
}
