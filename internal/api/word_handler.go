package api

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/kazlearn/internal/database"
	"github.com/example/kazlearn/pkg/models"
)

// WordHandler serves the word catalogue: words, reference tables, translations,
// pronunciations, images and example sentences
type WordHandler struct {
	words      *database.WordRepository
	categories *database.CategoryRepository
	languages  *database.LanguageRepository
	lookups    *database.LookupRepository
	sentences  *database.SentenceRepository
}

// NewWordHandler creates the handler
func NewWordHandler(words *database.WordRepository, categories *database.CategoryRepository, languages *database.LanguageRepository, lookups *database.LookupRepository, sentences *database.SentenceRepository) *WordHandler {
	return &WordHandler{
		words:      words,
		categories: categories,
		languages:  languages,
		lookups:    lookups,
		sentences:  sentences,
	}
}

// ListLanguages returns the active languages
func (h *WordHandler) ListLanguages(c *gin.Context) {
	languages, err := h.languages.GetAll()
	if err != nil {
		log.Printf("Failed to get languages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get languages"})
		return
	}
	c.JSON(http.StatusOK, languages)
}

type createLanguageRequest struct {
	LanguageCode string `json:"language_code" binding:"required,min=2,max=5"`
	LanguageName string `json:"language_name" binding:"required"`
}

// CreateLanguage adds a target language. Admin only.
func (h *WordHandler) CreateLanguage(c *gin.Context) {
	var req createLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.languages.GetByCode(req.LanguageCode); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "language code already exists"})
		return
	}

	language := &models.Language{LanguageCode: req.LanguageCode, LanguageName: req.LanguageName}
	if err := h.languages.Create(language); err != nil {
		log.Printf("Failed to create language: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create language"})
		return
	}
	c.JSON(http.StatusCreated, language)
}

// ListCategories returns the active categories
func (h *WordHandler) ListCategories(c *gin.Context) {
	categories, err := h.categories.GetAll()
	if err != nil {
		log.Printf("Failed to get categories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

type createCategoryRequest struct {
	CategoryName string `json:"category_name" binding:"required"`
	Description  string `json:"description"`
}

// CreateCategory adds a word category. Writer or admin.
func (h *WordHandler) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := &models.Category{CategoryName: req.CategoryName, Description: req.Description}
	if err := h.categories.Create(category); err != nil {
		log.Printf("Failed to create category: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, category)
}

// GetCategoryTranslations returns the localized names of a category
func (h *WordHandler) GetCategoryTranslations(c *gin.Context) {
	categoryID, ok := intParam(c, "id")
	if !ok {
		return
	}
	if _, err := h.categories.GetByID(categoryID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}

	translations, err := h.categories.GetTranslations(categoryID)
	if err != nil {
		log.Printf("Failed to get category translations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get translations"})
		return
	}
	c.JSON(http.StatusOK, translations)
}

type categoryTranslationRequest struct {
	LanguageCode          string `json:"language_code" binding:"required"`
	TranslatedName        string `json:"translated_name" binding:"required"`
	TranslatedDescription string `json:"translated_description"`
}

// AddCategoryTranslation localizes a category name. Writer or admin.
func (h *WordHandler) AddCategoryTranslation(c *gin.Context) {
	categoryID, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req categoryTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.categories.GetByID(categoryID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}
	language, err := h.languages.GetByCode(req.LanguageCode)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown language code"})
		return
	}

	translation := &models.CategoryTranslation{
		CategoryID:            categoryID,
		LanguageID:            language.ID,
		TranslatedName:        req.TranslatedName,
		TranslatedDescription: req.TranslatedDescription,
	}
	if err := h.categories.AddTranslation(translation); err != nil {
		log.Printf("Failed to add category translation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add translation"})
		return
	}
	c.JSON(http.StatusCreated, translation)
}

// ListWordTypes returns the parts of speech
func (h *WordHandler) ListWordTypes(c *gin.Context) {
	types, err := h.lookups.GetWordTypes()
	if err != nil {
		log.Printf("Failed to get word types: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get word types"})
		return
	}
	c.JSON(http.StatusOK, types)
}

// ListDifficultyLevels returns the difficulty scale
func (h *WordHandler) ListDifficultyLevels(c *gin.Context) {
	levels, err := h.lookups.GetDifficultyLevels()
	if err != nil {
		log.Printf("Failed to get difficulty levels: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get difficulty levels"})
		return
	}
	c.JSON(http.StatusOK, levels)
}

// ListWords returns flat word summaries with optional filters
func (h *WordHandler) ListWords(c *gin.Context) {
	filter := database.WordFilter{
		CategoryID:        intQuery(c, "category_id"),
		WordTypeID:        intQuery(c, "word_type_id"),
		DifficultyLevelID: intQuery(c, "difficulty_level_id"),
		LanguageCode:      langQuery(c),
		Limit:             intQuery(c, "limit"),
		Offset:            intQuery(c, "offset"),
	}

	words, err := h.words.GetSummaries(filter)
	if err != nil {
		log.Printf("Failed to list words: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list words"})
		return
	}
	c.JSON(http.StatusOK, words)
}

// SearchWords matches Kazakh forms and translations against a pattern
func (h *WordHandler) SearchWords(c *gin.Context) {
	pattern := c.Query("q")
	if pattern == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing q parameter"})
		return
	}

	words, err := h.words.Search(pattern, langQuery(c), intQuery(c, "limit"))
	if err != nil {
		log.Printf("Failed to search words: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search words"})
		return
	}
	c.JSON(http.StatusOK, words)
}

// RandomWords returns random summaries for practice padding
func (h *WordHandler) RandomWords(c *gin.Context) {
	filter := database.WordFilter{
		CategoryID:        intQuery(c, "category_id"),
		DifficultyLevelID: intQuery(c, "difficulty_level_id"),
		LanguageCode:      langQuery(c),
	}

	words, err := h.words.GetRandom(intQuery(c, "count"), filter)
	if err != nil {
		log.Printf("Failed to get random words: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get random words"})
		return
	}
	c.JSON(http.StatusOK, words)
}

// wordDetail is the full view of one word with all attached material
type wordDetail struct {
	*models.Word
	Translations   []models.Translation     `json:"translations"`
	Pronunciations []models.Pronunciation   `json:"pronunciations"`
	Images         []models.WordImage       `json:"images"`
	Sentences      []models.ExampleSentence `json:"example_sentences"`
}

// GetWord returns one word with translations, pronunciations, images and
// example sentences
func (h *WordHandler) GetWord(c *gin.Context) {
	wordID, ok := intParam(c, "id")
	if !ok {
		return
	}

	word, err := h.words.GetByID(wordID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "word not found"})
			return
		}
		log.Printf("Failed to get word %d: %v", wordID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get word"})
		return
	}

	detail := wordDetail{Word: word}
	if detail.Translations, err = h.words.GetTranslations(wordID); err != nil {
		log.Printf("Failed to get translations for word %d: %v", wordID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get word"})
		return
	}
	if detail.Pronunciations, err = h.words.GetPronunciations(wordID); err != nil {
		log.Printf("Failed to get pronunciations for word %d: %v", wordID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get word"})
		return
	}
	if detail.Images, err = h.words.GetImages(wordID); err != nil {
		log.Printf("Failed to get images for word %d: %v", wordID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get word"})
		return
	}
	if detail.Sentences, err = h.sentences.GetByWord(wordID); err != nil {
		log.Printf("Failed to get sentences for word %d: %v", wordID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get word"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

type createWordRequest struct {
	KazakhWord        string `json:"kazakh_word" binding:"required"`
	KazakhCyrillic    string `json:"kazakh_cyrillic"`
	WordTypeID        int    `json:"word_type_id" binding:"required"`
	CategoryID        int    `json:"category_id" binding:"required"`
	DifficultyLevelID int    `json:"difficulty_level_id" binding:"required"`
}

// CreateWord adds a word to the catalogue. Writer or admin.
func (h *WordHandler) CreateWord(c *gin.Context) {
	var req createWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.categories.GetByID(req.CategoryID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}

	word := &models.Word{
		KazakhWord:        req.KazakhWord,
		KazakhCyrillic:    req.KazakhCyrillic,
		WordTypeID:        req.WordTypeID,
		CategoryID:        req.CategoryID,
		DifficultyLevelID: req.DifficultyLevelID,
	}
	if err := h.words.Create(word); err != nil {
		log.Printf("Failed to create word: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create word"})
		return
	}
	c.JSON(http.StatusCreated, word)
}

type addTranslationRequest struct {
	LanguageCode string `json:"language_code" binding:"required"`
	Translation  string `json:"translation" binding:"required"`
}

// AddTranslation attaches a translation to a word. Writer or admin.
func (h *WordHandler) AddTranslation(c *gin.Context) {
	wordID, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req addTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if exists, err := h.words.WordExists(wordID); err != nil || !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "word not found"})
		return
	}
	language, err := h.languages.GetByCode(req.LanguageCode)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown language code"})
		return
	}
	if has, err := h.words.HasTranslation(wordID, language.ID); err == nil && has {
		c.JSON(http.StatusConflict, gin.H{"error": "translation for this language already exists"})
		return
	}

	translation := &models.Translation{
		WordID:      wordID,
		LanguageID:  language.ID,
		Translation: req.Translation,
	}
	if err := h.words.AddTranslation(translation); err != nil {
		log.Printf("Failed to add translation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add translation"})
		return
	}
	c.JSON(http.StatusCreated, translation)
}

type addPronunciationRequest struct {
	LanguageCode        string `json:"language_code" binding:"required"`
	Pronunciation       string `json:"pronunciation" binding:"required"`
	PronunciationSystem string `json:"pronunciation_system"`
	AudioFilePath       string `json:"audio_file_path"`
}

// AddPronunciation attaches a transcription to a word. Writer or admin.
func (h *WordHandler) AddPronunciation(c *gin.Context) {
	wordID, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req addPronunciationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if exists, err := h.words.WordExists(wordID); err != nil || !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "word not found"})
		return
	}
	language, err := h.languages.GetByCode(req.LanguageCode)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown language code"})
		return
	}

	pronunciation := &models.Pronunciation{
		WordID:              wordID,
		LanguageID:          language.ID,
		Pronunciation:       req.Pronunciation,
		PronunciationSystem: req.PronunciationSystem,
		AudioFilePath:       req.AudioFilePath,
	}
	if err := h.words.AddPronunciation(pronunciation); err != nil {
		log.Printf("Failed to add pronunciation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add pronunciation"})
		return
	}
	c.JSON(http.StatusCreated, pronunciation)
}

type addImageRequest struct {
	ImagePath string `json:"image_path"`
	ImageURL  string `json:"image_url"`
	ImageType string `json:"image_type"`
	AltText   string `json:"alt_text"`
	IsPrimary bool   `json:"is_primary"`
}

// AddImage attaches an illustration to a word. Writer or admin.
func (h *WordHandler) AddImage(c *gin.Context) {
	wordID, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req addImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ImagePath == "" && req.ImageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_path or image_url is required"})
		return
	}

	if exists, err := h.words.WordExists(wordID); err != nil || !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "word not found"})
		return
	}

	image := &models.WordImage{
		WordID:    wordID,
		ImagePath: req.ImagePath,
		ImageURL:  req.ImageURL,
		ImageType: req.ImageType,
		AltText:   req.AltText,
		IsPrimary: req.IsPrimary,
	}
	if err := h.words.AddImage(image); err != nil {
		log.Printf("Failed to add image: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add image"})
		return
	}
	if image.IsPrimary {
		if err := h.words.SetPrimaryImage(image.ID); err != nil {
			log.Printf("Failed to set primary image: %v", err)
		}
	}
	c.JSON(http.StatusCreated, image)
}

// SetPrimaryImage marks one image as the word's primary. Writer or admin.
func (h *WordHandler) SetPrimaryImage(c *gin.Context) {
	imageID, ok := intParam(c, "imageId")
	if !ok {
		return
	}

	if err := h.words.SetPrimaryImage(imageID); err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
			return
		}
		log.Printf("Failed to set primary image %d: %v", imageID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set primary image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "primary image updated"})
}

type addSentenceRequest struct {
	KazakhSentence  string `json:"kazakh_sentence" binding:"required"`
	DifficultyLevel int    `json:"difficulty_level"`
	UsageContext    string `json:"usage_context"`
}

// AddSentence attaches an example sentence to a word. Writer or admin.
func (h *WordHandler) AddSentence(c *gin.Context) {
	wordID, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req addSentenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if exists, err := h.words.WordExists(wordID); err != nil || !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "word not found"})
		return
	}

	sentence := &models.ExampleSentence{
		WordID:          wordID,
		KazakhSentence:  req.KazakhSentence,
		DifficultyLevel: req.DifficultyLevel,
		UsageContext:    req.UsageContext,
	}
	if err := h.sentences.Create(sentence); err != nil {
		log.Printf("Failed to add sentence: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add sentence"})
		return
	}
	c.JSON(http.StatusCreated, sentence)
}

// DeleteSentence removes an example sentence. Writer or admin.
func (h *WordHandler) DeleteSentence(c *gin.Context) {
	sentenceID, ok := intParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.sentences.Delete(sentenceID)
	if err != nil {
		log.Printf("Failed to delete sentence %d: %v", sentenceID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete sentence"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "sentence not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "sentence deleted"})
}

type sentenceTranslationRequest struct {
	LanguageCode       string `json:"language_code" binding:"required"`
	TranslatedSentence string `json:"translated_sentence" binding:"required"`
}

// AddSentenceTranslation translates an example sentence. Writer or admin.
func (h *WordHandler) AddSentenceTranslation(c *gin.Context) {
	sentenceID, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req sentenceTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.sentences.GetByID(sentenceID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "sentence not found"})
		return
	}
	language, err := h.languages.GetByCode(req.LanguageCode)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown language code"})
		return
	}

	translation := &models.ExampleSentenceTranslation{
		ExampleSentenceID:  sentenceID,
		LanguageID:         language.ID,
		TranslatedSentence: req.TranslatedSentence,
	}
	if err := h.sentences.AddTranslation(translation); err != nil {
		log.Printf("Failed to add sentence translation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add translation"})
		return
	}
	c.JSON(http.StatusCreated, translation)
}

// GetSentenceTranslations returns the translations of an example sentence
func (h *WordHandler) GetSentenceTranslations(c *gin.Context) {
	sentenceID, ok := intParam(c, "id")
	if !ok {
		return
	}
	if _, err := h.sentences.GetByID(sentenceID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "sentence not found"})
		return
	}

	translations, err := h.sentences.GetTranslations(sentenceID)
	if err != nil {
		log.Printf("Failed to get sentence translations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get translations"})
		return
	}
	c.JSON(http.StatusOK, translations)
}
