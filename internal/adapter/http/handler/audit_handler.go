package handler

import (
	"strconv"

	"wallet-checkout/internal/adapter/http/dto"
	"wallet-checkout/internal/adapter/http/middleware"
	"wallet-checkout/internal/core/ports"
	"wallet-checkout/pkg/apperror"
	"wallet-checkout/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	defaultAuditPage = 50
	maxAuditPage     = 200
)

// AuditHandler exposes the merchant's recent checkout calls.
type AuditHandler struct {
	repo ports.AuditRepository
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(repo ports.AuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// ListRecent handles GET /api/v1/audit-logs?limit=N.
func (h *AuditHandler) ListRecent(c *gin.Context) {
	merchant := middleware.MerchantIdentifier(c)
	if merchant == "" {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	limit := defaultAuditPage
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.Error(c, apperror.Validation("limit must be a positive integer"))
			return
		}
		limit = min(n, maxAuditPage)
	}

	logs, err := h.repo.ListRecent(c.Request.Context(), merchant, limit)
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}

	response.OK(c, dto.ToAuditLogList(logs))
}
