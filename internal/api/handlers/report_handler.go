package handlers

import (
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/andresuchdata/storeops/backend-go/internal/inventory"
	"github.com/andresuchdata/storeops/backend-go/internal/repository"
	"github.com/andresuchdata/storeops/backend-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ReportHandler struct {
	service *service.ReportService
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) GetAll(c *gin.Context) {
	reports, err := h.service.Generate(c.Request.Context(), inventory.KindAll)
	if err != nil {
		h.fail(c, "failed to build reports", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	reports, err := h.service.Generate(c.Request.Context(), inventory.Kind(c.Param("kind")))
	if err != nil {
		h.fail(c, "failed to build report", err)
		return
	}

	if len(reports) == 1 {
		c.JSON(http.StatusOK, reports[0])
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func (h *ReportHandler) GetReportText(c *gin.Context) {
	text, err := h.service.Render(c.Request.Context(), inventory.Kind(c.Param("kind")))
	if err != nil {
		h.fail(c, "failed to render report", err)
		return
	}

	c.String(http.StatusOK, text)
}

func (h *ReportHandler) ArchiveReport(c *gin.Context) {
	key, err := h.service.Archive(c.Request.Context(), inventory.Kind(c.Param("kind")))
	if err != nil {
		h.fail(c, "failed to archive report", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"key": key})
}

func (h *ReportHandler) ListArchive(c *gin.Context) {
	var day time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD", "details": err.Error()})
			return
		}
		day = parsed
	}

	objects, err := h.service.ListArchive(c.Request.Context(), day)
	if err != nil {
		h.fail(c, "failed to list archive", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"objects": objects})
}

func (h *ReportHandler) DownloadArchive(c *gin.Context) {
	key := c.Query("key")
	dir, err := os.MkdirTemp("", "report-archive-*")
	if err != nil {
		h.fail(c, "failed to prepare download", err)
		return
	}
	defer os.RemoveAll(dir)

	dest := filepath.Join(dir, "report.txt")
	if err := h.service.FetchArchive(c.Request.Context(), key, dest); err != nil {
		h.fail(c, "failed to download archived report", err)
		return
	}

	c.FileAttachment(dest, path.Base(key))
}

func (h *ReportHandler) GetPolicy(c *gin.Context) {
	policy := h.service.Policy()
	c.JSON(http.StatusOK, gin.H{
		"stock_low_threshold": policy.StockLowThreshold,
		"expiry_warning_days": policy.ExpiryWarningDays,
		"discount_tiers":      policy.DiscountPolicy.String(),
	})
}

func (h *ReportHandler) Commit(c *gin.Context) {
	result, err := h.service.Commit(c.Request.Context())
	if err != nil {
		h.fail(c, "failed to commit inventory", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ReportHandler) fail(c *gin.Context, message string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg(message)
	}
	c.JSON(status, gin.H{"error": message, "details": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, inventory.ErrUnknownReport):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrAlreadyCommitted):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidArchive):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrArchiveDisabled), errors.Is(err, service.ErrNoRepository):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
