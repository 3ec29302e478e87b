package api

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/kazlearn/internal/auth"
	"github.com/example/kazlearn/internal/database"
	"github.com/example/kazlearn/internal/learning"
	"github.com/example/kazlearn/pkg/models"
)

// dailyStreak is the only streak type currently tracked
const dailyStreak = "daily"

// LearningHandler serves the per-user learning list, practice sessions,
// statistics, streaks and goals
type LearningHandler struct {
	engine   *learning.Engine
	progress *database.ProgressRepository
	sessions *database.LearningSessionRepository
	streaks  *database.StreakRepository
	goals    *database.GoalRepository
	words    *database.WordRepository
}

// NewLearningHandler creates the handler
func NewLearningHandler(engine *learning.Engine, progress *database.ProgressRepository, sessions *database.LearningSessionRepository, streaks *database.StreakRepository, goals *database.GoalRepository, words *database.WordRepository) *LearningHandler {
	return &LearningHandler{
		engine:   engine,
		progress: progress,
		sessions: sessions,
		streaks:  streaks,
		goals:    goals,
		words:    words,
	}
}

// respondEngineError maps engine errors onto HTTP statuses
func respondEngineError(c *gin.Context, err error) {
	switch err {
	case learning.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "word is not on your learning list"})
	case learning.ErrUnknownWord:
		c.JSON(http.StatusNotFound, gin.H{"error": "word not found in catalogue"})
	case learning.ErrInvalidStatus:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown learning status"})
	case learning.ErrInvalidRating:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown difficulty rating"})
	default:
		log.Printf("Learning engine error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

type addWordRequest struct {
	Status models.LearningStatus `json:"status"`
}

// AddWord puts one catalogue word on the user's learning list. Re-adding is a
// no-op returning the existing record.
func (h *LearningHandler) AddWord(c *gin.Context) {
	wordID, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req addWordRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := auth.CurrentUser(c)
	record, err := h.engine.AddToList(user.ID, wordID, req.Status)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

type addWordsRequest struct {
	WordIDs []int                 `json:"word_ids" binding:"required,min=1"`
	Status  models.LearningStatus `json:"status"`
}

// AddWords puts several words on the list at once. Every ID is validated the
// same way as a single add; an unknown word fails the whole request before
// anything is written.
func (h *LearningHandler) AddWords(c *gin.Context) {
	var req addWordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := auth.CurrentUser(c)
	for _, wordID := range req.WordIDs {
		exists, err := h.words.WordExists(wordID)
		if err != nil {
			log.Printf("Failed to check word %d: %v", wordID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if !exists {
			c.JSON(http.StatusNotFound, gin.H{"error": "word not found in catalogue", "word_id": wordID})
			return
		}
	}

	records := make([]*models.WordProgress, 0, len(req.WordIDs))
	for _, wordID := range req.WordIDs {
		record, err := h.engine.AddToList(user.ID, wordID, req.Status)
		if err != nil {
			respondEngineError(c, err)
			return
		}
		records = append(records, record)
	}
	c.JSON(http.StatusCreated, records)
}

// ListWords returns the user's learning list with optional filters
func (h *LearningHandler) ListWords(c *gin.Context) {
	user := auth.CurrentUser(c)
	filter := learning.ListFilter{
		Status:            models.LearningStatus(c.Query("status")),
		CategoryID:        intQuery(c, "category_id"),
		DifficultyLevelID: intQuery(c, "difficulty_level_id"),
		LanguageCode:      langQuery(c),
		Limit:             intQuery(c, "limit"),
		Offset:            intQuery(c, "offset"),
	}

	records, err := h.engine.List(user.ID, filter)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetWord returns the user's progress record for one word
func (h *LearningHandler) GetWord(c *gin.Context) {
	wordID, ok := intParam(c, "id")
	if !ok {
		return
	}

	user := auth.CurrentUser(c)
	record, err := h.engine.Get(user.ID, wordID)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

type setStatusRequest struct {
	Status models.LearningStatus `json:"status" binding:"required"`
}

// SetStatus moves a word to a new learning status
func (h *LearningHandler) SetStatus(c *gin.Context) {
	wordID, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := auth.CurrentUser(c)
	record, err := h.engine.SetStatus(user.ID, wordID, req.Status)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

type setRatingRequest struct {
	Rating models.DifficultyRating `json:"rating" binding:"required"`
}

// SetRating stores the user's own difficulty judgement of a word
func (h *LearningHandler) SetRating(c *gin.Context) {
	wordID, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req setRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := auth.CurrentUser(c)
	record, err := h.engine.SetDifficultyRating(user.ID, wordID, req.Rating)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

type setNotesRequest struct {
	Notes string `json:"notes"`
}

// SetNotes replaces the user's notes on a word
func (h *LearningHandler) SetNotes(c *gin.Context) {
	wordID, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req setNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := auth.CurrentUser(c)
	record, err := h.engine.SetNotes(user.ID, wordID, req.Notes)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// RemoveWord takes a word off the learning list
func (h *LearningHandler) RemoveWord(c *gin.Context) {
	wordID, ok := intParam(c, "id")
	if !ok {
		return
	}

	user := auth.CurrentUser(c)
	removed, err := h.engine.Remove(user.ID, wordID)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "word is not on your learning list"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "word removed from learning list"})
}

// DueForReview returns words whose next review has come, most overdue first.
// Reading the queue never changes the schedule.
func (h *LearningHandler) DueForReview(c *gin.Context) {
	user := auth.CurrentUser(c)
	records, err := h.engine.DueForReview(user.ID, intQuery(c, "limit"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

type answerRequest struct {
	WasCorrect *bool `json:"was_correct" binding:"required"`
}

// RecordAnswer records one standalone answer outside a session. Words not yet
// on the list are enrolled as learning first.
func (h *LearningHandler) RecordAnswer(c *gin.Context) {
	wordID, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := auth.CurrentUser(c)
	record, err := h.answer(user.ID, wordID, *req.WasCorrect)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	if _, err := h.streaks.Touch(user.ID, dailyStreak); err != nil {
		log.Printf("Failed to touch streak for user %d: %v", user.ID, err)
	}
	c.JSON(http.StatusOK, record)
}

// answer applies one answer, enrolling the word first when needed
func (h *LearningHandler) answer(userID, wordID int, wasCorrect bool) (*models.WordProgress, error) {
	record, err := h.engine.RecordAnswer(userID, wordID, wasCorrect)
	if err == learning.ErrNotFound {
		if _, err := h.engine.AddToList(userID, wordID, models.StatusLearning); err != nil {
			return nil, err
		}
		return h.engine.RecordAnswer(userID, wordID, wasCorrect)
	}
	return record, err
}

type startSessionRequest struct {
	SessionType string `json:"session_type"`
	CategoryID  int    `json:"category_id"`
}

// StartSession opens a practice session
func (h *LearningHandler) StartSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.SessionType == "" {
		req.SessionType = "practice"
	}

	var categoryID sql.NullInt64
	if req.CategoryID > 0 {
		categoryID = sql.NullInt64{Int64: int64(req.CategoryID), Valid: true}
	}

	user := auth.CurrentUser(c)
	session, err := h.sessions.Create(user.ID, req.SessionType, categoryID)
	if err != nil {
		log.Printf("Failed to start session for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
		return
	}
	c.JSON(http.StatusCreated, session)
}

type sessionAnswerRequest struct {
	WordID         int    `json:"word_id" binding:"required"`
	WasCorrect     *bool  `json:"was_correct" binding:"required"`
	ResponseTimeMs int64  `json:"response_time_ms"`
	UserAnswer     string `json:"user_answer"`
	CorrectAnswer  string `json:"correct_answer"`
	QuestionType   string `json:"question_type"`
}

// SessionAnswer logs one answered question into a session and applies it to
// the word's progress record
func (h *LearningHandler) SessionAnswer(c *gin.Context) {
	sessionID, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req sessionAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := auth.CurrentUser(c)
	session, err := h.sessions.GetByID(sessionID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		log.Printf("Failed to get session %d: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if session.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your session"})
		return
	}
	if session.FinishedAt.Valid {
		c.JSON(http.StatusConflict, gin.H{"error": "session is already finished"})
		return
	}

	record, err := h.answer(user.ID, req.WordID, *req.WasCorrect)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	detail := &models.SessionDetail{
		SessionID:    sessionID,
		WordID:       req.WordID,
		WasCorrect:   *req.WasCorrect,
		QuestionType: req.QuestionType,
	}
	if req.ResponseTimeMs > 0 {
		detail.ResponseTimeMs = sql.NullInt64{Int64: req.ResponseTimeMs, Valid: true}
	}
	if req.UserAnswer != "" {
		detail.UserAnswer = sql.NullString{String: req.UserAnswer, Valid: true}
	}
	if req.CorrectAnswer != "" {
		detail.CorrectAnswer = sql.NullString{String: req.CorrectAnswer, Valid: true}
	}
	if err := h.sessions.AddDetail(detail); err != nil {
		log.Printf("Failed to log session detail: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log answer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": record, "detail": detail})
}

type finishSessionRequest struct {
	DurationSeconds int64 `json:"duration_seconds"`
}

// FinishSession closes a session; its counters are aggregated from the logged
// answers and the daily streak is credited
func (h *LearningHandler) FinishSession(c *gin.Context) {
	sessionID, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req finishSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := auth.CurrentUser(c)
	session, err := h.sessions.GetByID(sessionID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		log.Printf("Failed to get session %d: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if session.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your session"})
		return
	}
	if session.FinishedAt.Valid {
		c.JSON(http.StatusConflict, gin.H{"error": "session is already finished"})
		return
	}

	var duration sql.NullInt64
	if req.DurationSeconds > 0 {
		duration = sql.NullInt64{Int64: req.DurationSeconds, Valid: true}
	}
	finished, err := h.sessions.Finish(sessionID, duration)
	if err != nil {
		log.Printf("Failed to finish session %d: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to finish session"})
		return
	}

	if _, err := h.streaks.Touch(user.ID, dailyStreak); err != nil {
		log.Printf("Failed to touch streak for user %d: %v", user.ID, err)
	}

	c.JSON(http.StatusOK, finished)
}

// ListSessions returns the user's practice history, newest first
func (h *LearningHandler) ListSessions(c *gin.Context) {
	user := auth.CurrentUser(c)
	sessions, err := h.sessions.ListByUser(user.ID, intQuery(c, "limit"), intQuery(c, "offset"))
	if err != nil {
		log.Printf("Failed to list sessions for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list sessions"})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// Stats returns the user's aggregate learning statistics
func (h *LearningHandler) Stats(c *gin.Context) {
	user := auth.CurrentUser(c)
	stats, err := h.engine.Stats(user.ID)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	if stats.SessionsThisWeek, err = h.sessions.CountSince(user.ID, weekAgo); err != nil {
		log.Printf("Failed to count sessions for user %d: %v", user.ID, err)
	}
	if streak, err := h.streaks.Get(user.ID, dailyStreak); err != nil {
		log.Printf("Failed to get streak for user %d: %v", user.ID, err)
	} else if streak != nil {
		stats.CurrentStreak = streak.CurrentStreak
	}

	c.JSON(http.StatusOK, stats)
}

// CategoryStats returns the per-category rollup of the user's progress
func (h *LearningHandler) CategoryStats(c *gin.Context) {
	user := auth.CurrentUser(c)
	breakdown, err := h.progress.CategoryBreakdown(user.ID)
	if err != nil {
		log.Printf("Failed to get category breakdown for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get category stats"})
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

// GetStreak returns the user's daily practice streak
func (h *LearningHandler) GetStreak(c *gin.Context) {
	user := auth.CurrentUser(c)
	streak, err := h.streaks.Get(user.ID, dailyStreak)
	if err != nil {
		log.Printf("Failed to get streak for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get streak"})
		return
	}
	if streak == nil {
		c.JSON(http.StatusOK, gin.H{"current_streak": 0, "longest_streak": 0})
		return
	}
	c.JSON(http.StatusOK, streak)
}

type createGoalRequest struct {
	GoalType    string     `json:"goal_type" binding:"required"`
	TargetValue int        `json:"target_value" binding:"required,min=1"`
	CategoryID  int        `json:"category_id"`
	TargetDate  *time.Time `json:"target_date"`
}

// CreateGoal adds a learning goal
func (h *LearningHandler) CreateGoal(c *gin.Context) {
	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := auth.CurrentUser(c)
	goal := &models.LearningGoal{
		UserID:      user.ID,
		GoalType:    req.GoalType,
		TargetValue: req.TargetValue,
	}
	if req.CategoryID > 0 {
		goal.CategoryID = sql.NullInt64{Int64: int64(req.CategoryID), Valid: true}
	}
	if req.TargetDate != nil {
		goal.TargetDate = sql.NullTime{Time: req.TargetDate.UTC(), Valid: true}
	}

	if err := h.goals.Create(goal); err != nil {
		log.Printf("Failed to create goal for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create goal"})
		return
	}
	c.JSON(http.StatusCreated, goal)
}

// ListGoals returns the user's goals
func (h *LearningHandler) ListGoals(c *gin.Context) {
	user := auth.CurrentUser(c)
	activeOnly := c.Query("active") == "true"
	goals, err := h.goals.ListByUser(user.ID, activeOnly)
	if err != nil {
		log.Printf("Failed to list goals for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list goals"})
		return
	}
	c.JSON(http.StatusOK, goals)
}

// IncrementGoal advances a goal's progress counter
func (h *LearningHandler) IncrementGoal(c *gin.Context) {
	goalID, ok := intParam(c, "id")
	if !ok {
		return
	}

	user := auth.CurrentUser(c)
	goals, err := h.goals.ListByUser(user.ID, false)
	if err != nil {
		log.Printf("Failed to list goals for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	owned := false
	for _, g := range goals {
		if g.ID == goalID {
			owned = true
			break
		}
	}
	if !owned {
		c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
		return
	}

	increment := intQuery(c, "by")
	if increment <= 0 {
		increment = 1
	}
	goal, err := h.goals.IncrementProgress(goalID, increment)
	if err != nil {
		log.Printf("Failed to increment goal %d: %v", goalID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update goal"})
		return
	}
	c.JSON(http.StatusOK, goal)
}
