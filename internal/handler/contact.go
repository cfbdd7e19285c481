package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/northpointhomes/siteworks/internal/domain"
	"github.com/northpointhomes/siteworks/internal/logger"
	"github.com/northpointhomes/siteworks/internal/storage"
)

// webhookTimeout bounds the spreadsheet forward.
const webhookTimeout = 10 * time.Second

// ContactHandler persists contact form submissions and forwards them to the
// spreadsheet webhook used by the sales team.
type ContactHandler struct {
	repo       *storage.ContentRepository
	webhookURL string
	client     *http.Client
	log        logger.Logger
}

// NewContactHandler creates a ContactHandler. An empty webhookURL disables
// forwarding.
func NewContactHandler(
	repo *storage.ContentRepository,
	webhookURL string,
	client *http.Client,
	log logger.Logger,
) *ContactHandler {
	return &ContactHandler{
		repo:       repo,
		webhookURL: webhookURL,
		client:     client,
		log:        log,
	}
}

// Submit serves POST /api/contact. The submission is persisted first; the
// webhook forward is best-effort and runs off the request path.
func (h *ContactHandler) Submit(c *gin.Context) {
	var submission domain.ContactSubmission
	if err := c.ShouldBindJSON(&submission); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "malformed submission"})
		return
	}

	if msg := validateSubmission(&submission); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
		return
	}

	if err := h.repo.SaveContactSubmission(c.Request.Context(), &submission); err != nil {
		h.log.Error("Failed to save contact submission", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "could not save submission"})
		return
	}

	go h.forward(submission)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    gin.H{"id": submission.ID},
	})
}

// validateSubmission returns an error message for the caller, or "" when the
// submission is acceptable.
func validateSubmission(s *domain.ContactSubmission) string {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Message = strings.TrimSpace(s.Message)

	switch {
	case s.Name == "":
		return "name is required"
	case s.Email == "" || !strings.Contains(s.Email, "@"):
		return "a valid email is required"
	case s.Message == "":
		return "message is required"
	}
	return ""
}

// forward posts the submission to the spreadsheet webhook. Failures are
// logged and swallowed; the lead is already persisted.
func (h *ContactHandler) forward(submission domain.ContactSubmission) {
	if h.webhookURL == "" {
		return
	}

	body, err := json.Marshal(submission)
	if err != nil {
		h.log.Warn("Failed to encode submission for webhook", logger.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), webhookTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.webhookURL, bytes.NewReader(body))
	if err != nil {
		h.log.Warn("Failed to build webhook request", logger.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		h.log.Warn("Spreadsheet webhook forward failed",
			logger.Int64("submission_id", submission.ID),
			logger.Error(err),
		)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusMultipleChoices {
		h.log.Warn("Spreadsheet webhook rejected submission",
			logger.Int64("submission_id", submission.ID),
			logger.Int("status", resp.StatusCode),
		)
	}
}
