package handler

import (
	"net/url"
	"time"

	"wallet-checkout/internal/adapter/http/dto"
	"wallet-checkout/internal/adapter/http/middleware"
	"wallet-checkout/internal/core/ports"
	"wallet-checkout/pkg/apperror"
	"wallet-checkout/pkg/response"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler serves the two calls the payment sheet depends on.
type CheckoutHandler struct {
	validationSvc ports.MerchantValidationService
	authSvc       ports.AuthorizationService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(validationSvc ports.MerchantValidationService, authSvc ports.AuthorizationService) *CheckoutHandler {
	return &CheckoutHandler{validationSvc: validationSvc, authSvc: authSvc}
}

// ValidateMerchant handles POST /api/v1/merchant-validation.
// The operator payload is returned byte for byte; the session token travels
// in response headers.
func (h *CheckoutHandler) ValidateMerchant(c *gin.Context) {
	var req dto.MerchantValidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrInvalidValidationURL(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)
	if u, err := url.Parse(req.ValidationURL); err == nil {
		c.Set(middleware.CtxResourceID, u.Host)
	}

	result, err := h.validationSvc.Validate(c.Request.Context(), req.ToDomain())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Set(middleware.CtxMerchantIdentifier, result.MerchantIdentifier)

	c.Header(middleware.HeaderSessionToken, result.SessionToken)
	c.Header(middleware.HeaderSessionExpiresAt, result.ExpiresAt.UTC().Format(time.RFC3339))
	response.Raw(c, result.Payload)
}

// AuthorizePayment handles POST /api/v1/authorize-payment.
// Requires SessionAuth.
func (h *CheckoutHandler) AuthorizePayment(c *gin.Context) {
	merchant := middleware.MerchantIdentifier(c)
	if merchant == "" {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.AuthorizePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)
	if req.TokenData.Header.TransactionID != "" {
		c.Set(middleware.CtxResourceID, req.TokenData.Header.TransactionID)
	}

	result, err := h.authSvc.Authorize(c.Request.Context(), merchant, req.ToDomain())
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.PaymentID != "" {
		c.Set(middleware.CtxResourceID, result.PaymentID)
	}

	response.JSON(c, result)
}
