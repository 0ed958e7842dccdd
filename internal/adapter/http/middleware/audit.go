package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"wallet-checkout/internal/core/domain"
	"wallet-checkout/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog records every completed checkout call, successful or not, so
// rejected validations and declined payments stay traceable.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method != http.MethodPost {
			return
		}
		action, resourceType := mapPathToAction(c.FullPath())
		if action == "" {
			return
		}

		status := c.Writer.Status()
		details, _ := json.Marshal(map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"request_id": c.GetString(CtxRequestID),
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:                 uuid.New(),
			MerchantIdentifier: MerchantIdentifier(c),
			Action:             action,
			ResourceType:       resourceType,
			ResourceID:         c.GetString(CtxResourceID),
			IPAddress:          c.ClientIP(),
			Details:            string(details),
			CreatedAt:          time.Now(),
		})
	}
}

func mapPathToAction(path string) (domain.AuditAction, string) {
	switch path {
	case "/api/v1/merchant-validation":
		return domain.AuditActionMerchantValidation, "merchant_session"
	case "/api/v1/authorize-payment":
		return domain.AuditActionAuthorizePayment, "payment"
	}
	return "", ""
}
