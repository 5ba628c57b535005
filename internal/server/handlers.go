package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spacesedan/sentiscan/internal/analysis"
	"github.com/spacesedan/sentiscan/internal/models"
)

// Handler exposes the three analysis endpoints over the shared pipeline.
type Handler struct {
	pipeline *analysis.Pipeline
}

func NewHandler(pipeline *analysis.Pipeline) *Handler {
	return &Handler{pipeline: pipeline}
}

// AnalyzeList classifies an explicit list of strings, one result per item.
func (h *Handler) AnalyzeList(c *gin.Context) {
	var req models.ListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "items must be a list of strings"})
		return
	}

	batch, err := h.pipeline.AnalyzeList(c.Request.Context(), req.Items)
	if err != nil {
		respondPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, batch)
}

// AnalyzeBulk classifies the lines of an uploaded UTF-8 file, capped at 500
// rows.
func (h *Handler) AnalyzeBulk(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not open uploaded file"})
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}

	batch, err := h.pipeline.AnalyzeFile(c.Request.Context(), raw)
	if err != nil {
		respondPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, batch)
}

// Scrape fetches a URL and classifies its readable paragraphs.
func (h *Handler) Scrape(c *gin.Context) {
	var req models.ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	batch, err := h.pipeline.AnalyzeURL(c.Request.Context(), req.URL)
	if err != nil {
		respondPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, batch)
}

// respondPipelineError converts every pipeline failure class into a
// structured payload on a 200 response, matching what API consumers render.
// Decode failures carry no results key; everything else carries an empty
// results array.
func respondPipelineError(c *gin.Context, err error) {
	var pipelineErr *analysis.Error
	if errors.As(err, &pipelineErr) {
		if pipelineErr.Kind == analysis.KindDecode {
			c.JSON(http.StatusOK, gin.H{"error": pipelineErr.Message})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"error":   pipelineErr.Message,
			"results": []models.AnalysisResult{},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"error":   err.Error(),
		"results": []models.AnalysisResult{},
	})
}
