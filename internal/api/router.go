package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/kazlearn/internal/auth"
	"github.com/example/kazlearn/pkg/models"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Auth     *AuthHandler
	Words    *WordHandler
	Learning *LearningHandler
	Import   *ImportHandler
}

// cors allows browser clients from any origin and exposes the token refresh
// header
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Expose-Headers", auth.NewTokenHeader)
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// NewRouter builds the gin engine with all routes mounted
func NewRouter(h Handlers, mw *auth.Middleware) *gin.Engine {
	router := gin.Default()
	router.Use(cors())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	// Public: account creation, login and catalogue reads
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	api.GET("/languages", h.Words.ListLanguages)
	api.GET("/categories", h.Words.ListCategories)
	api.GET("/categories/:id/translations", h.Words.GetCategoryTranslations)
	api.GET("/word-types", h.Words.ListWordTypes)
	api.GET("/difficulty-levels", h.Words.ListDifficultyLevels)
	api.GET("/words", h.Words.ListWords)
	api.GET("/words/search", h.Words.SearchWords)
	api.GET("/words/random", h.Words.RandomWords)
	api.GET("/words/:id", h.Words.GetWord)
	api.GET("/sentences/:id/translations", h.Words.GetSentenceTranslations)

	authed := api.Group("", mw.RequireAuth())

	// Account
	authed.POST("/auth/logout", h.Auth.Logout)
	authed.POST("/auth/logout-all", h.Auth.LogoutAll)
	authed.GET("/auth/me", h.Auth.Me)
	authed.PUT("/auth/password", h.Auth.ChangePassword)
	authed.PUT("/auth/main-language", h.Auth.SetMainLanguage)
	authed.PUT("/auth/telegram", h.Auth.LinkTelegram)

	// Catalogue writes: content authors and admins
	writer := authed.Group("", mw.RequireRole(models.RoleWriter, models.RoleAdmin))
	writer.POST("/categories", h.Words.CreateCategory)
	writer.POST("/categories/:id/translations", h.Words.AddCategoryTranslation)
	writer.POST("/words", h.Words.CreateWord)
	writer.POST("/words/:id/translations", h.Words.AddTranslation)
	writer.POST("/words/:id/pronunciations", h.Words.AddPronunciation)
	writer.POST("/words/:id/images", h.Words.AddImage)
	writer.PUT("/images/:imageId/primary", h.Words.SetPrimaryImage)
	writer.POST("/words/:id/sentences", h.Words.AddSentence)
	writer.DELETE("/sentences/:id", h.Words.DeleteSentence)
	writer.POST("/sentences/:id/translations", h.Words.AddSentenceTranslation)

	// Learning list and practice
	authed.POST("/learning/words", h.Learning.AddWords)
	authed.GET("/learning/words", h.Learning.ListWords)
	authed.POST("/learning/words/:id", h.Learning.AddWord)
	authed.GET("/learning/words/:id", h.Learning.GetWord)
	authed.PUT("/learning/words/:id/status", h.Learning.SetStatus)
	authed.PUT("/learning/words/:id/rating", h.Learning.SetRating)
	authed.PUT("/learning/words/:id/notes", h.Learning.SetNotes)
	authed.DELETE("/learning/words/:id", h.Learning.RemoveWord)
	authed.POST("/learning/words/:id/answer", h.Learning.RecordAnswer)
	authed.GET("/learning/due", h.Learning.DueForReview)

	authed.POST("/learning/sessions", h.Learning.StartSession)
	authed.GET("/learning/sessions", h.Learning.ListSessions)
	authed.POST("/learning/sessions/:id/answers", h.Learning.SessionAnswer)
	authed.POST("/learning/sessions/:id/finish", h.Learning.FinishSession)

	authed.GET("/learning/stats", h.Learning.Stats)
	authed.GET("/learning/stats/categories", h.Learning.CategoryStats)
	authed.GET("/learning/streak", h.Learning.GetStreak)
	authed.POST("/learning/goals", h.Learning.CreateGoal)
	authed.GET("/learning/goals", h.Learning.ListGoals)
	authed.POST("/learning/goals/:id/increment", h.Learning.IncrementGoal)

	// Admin
	admin := authed.Group("", mw.RequireRole(models.RoleAdmin))
	admin.POST("/languages", h.Words.CreateLanguage)
	admin.PUT("/users/:id/role", h.Auth.SetRole)
	admin.POST("/admin/import", h.Import.ImportWords)

	return router
}
