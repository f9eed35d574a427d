package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/balajiselvarajk/tds-solver-project-2/internal/models"
	"github.com/balajiselvarajk/tds-solver-project-2/internal/service/answer"
)

// AnswerService produces one answer per question.
type AnswerService interface {
	Answer(ctx context.Context, question string, upload *answer.Upload) (string, error)
}

// HistoryLister exposes recently served answers.
type HistoryLister interface {
	ListRecent(ctx context.Context, limit int) ([]*models.AnswerRecord, error)
}

// Handler wires HTTP routes to the answer service.
type Handler struct {
	answers AnswerService
	history HistoryLister
}

// NewHandler constructs a Handler instance. history may be nil when no
// database is configured.
func NewHandler(answers AnswerService, history HistoryLister) *Handler {
	return &Handler{answers: answers, history: history}
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.POST("/", h.answerQuestion)
	api.GET("/history", h.listHistory)
	router.GET("/healthz", h.health)
}

func (h *Handler) answerQuestion(c *gin.Context) {
	question := strings.TrimSpace(c.PostForm("question"))
	if question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "question is required"})
		return
	}

	var upload *answer.Upload
	fileHeader, err := c.FormFile("file")
	switch {
	case err == nil:
		upload = &answer.Upload{
			Name: fileHeader.Filename,
			Open: func() (io.ReadCloser, error) {
				return fileHeader.Open()
			},
		}
	case errors.Is(err, http.ErrMissingFile):
		// question-only request
	default:
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid file upload"})
		return
	}

	ans, err := h.answers.Answer(c.Request.Context(), question, upload)
	if err != nil {
		if errors.Is(err, answer.ErrInvalidFileType) || errors.Is(err, answer.ErrFileTooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": ans})
}

func (h *Handler) listHistory(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "history not enabled"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid limit"})
		return
	}
	records, err := h.history.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if len(records) == 0 {
		c.JSON(http.StatusOK, gin.H{"records": make([]*models.AnswerRecord, 0)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
