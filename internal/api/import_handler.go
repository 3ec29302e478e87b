package api

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/example/kazlearn/internal/excel"
)

// ImportHandler serves bulk vocabulary uploads. Admin only.
type ImportHandler struct {
	importer *excel.Importer
}

// NewImportHandler creates the handler
func NewImportHandler(importer *excel.Importer) *ImportHandler {
	return &ImportHandler{importer: importer}
}

// ImportWords accepts an .xlsx or .csv upload and loads it into the catalogue
func (h *ImportHandler) ImportWords(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}

	ext := filepath.Ext(file.Filename)
	if ext != ".xlsx" && ext != ".csv" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only .xlsx and .csv files are supported"})
		return
	}

	tmp, err := os.CreateTemp("", "import-*"+ext)
	if err != nil {
		log.Printf("Failed to create temp file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process upload"})
		return
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	if err := c.SaveUploadedFile(file, tmp.Name()); err != nil {
		log.Printf("Failed to save upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process upload"})
		return
	}

	config := excel.DefaultImportConfig()
	config.FilePath = tmp.Name()
	if lang := c.Query("lang"); lang != "" {
		config.LanguageCode = lang
	}
	if sheet := c.Query("sheet"); sheet != "" {
		config.SheetName = sheet
	}
	if startRow := c.Query("start_row"); startRow != "" {
		if n, err := strconv.Atoi(startRow); err == nil && n > 0 {
			config.StartRow = n
		}
	}

	result, err := h.importer.ImportWords(config)
	if err != nil {
		log.Printf("Import failed: %v", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
