package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/northpointhomes/siteworks/internal/content"
	"github.com/northpointhomes/siteworks/internal/logger"
	"github.com/northpointhomes/siteworks/internal/resolver"
)

// secretHeader carries the shared revalidation secret.
const secretHeader = "X-Revalidate-Secret"

// RevalidateHandler refreshes the static content snapshots on demand. The
// dashboard calls it after publishing so static-mode deployments pick up new
// content without a rebuild.
type RevalidateHandler struct {
	snapshotter *resolver.Snapshotter
	secret      string
	log         logger.Logger
}

// NewRevalidateHandler creates a RevalidateHandler guarded by secret.
func NewRevalidateHandler(
	snapshotter *resolver.Snapshotter,
	secret string,
	log logger.Logger,
) *RevalidateHandler {
	return &RevalidateHandler{
		snapshotter: snapshotter,
		secret:      secret,
		log:         log,
	}
}

// Revalidate serves POST /api/revalidate. An optional kind query parameter
// limits the refresh to one content kind; otherwise all kinds are refreshed.
func (h *RevalidateHandler) Revalidate(c *gin.Context) {
	provided := c.GetHeader(secretHeader)
	if subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid secret"})
		return
	}

	var kinds []content.Kind
	if kindStr := c.Query("kind"); kindStr != "" {
		kind, err := content.ParseKind(kindStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unknown content kind"})
			return
		}
		kinds = append(kinds, kind)
	}

	refreshed, err := h.snapshotter.Refresh(c.Request.Context(), kinds...)
	if err != nil {
		h.log.Error("Snapshot refresh failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "snapshot refresh failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"refreshed": refreshed,
	})
}
