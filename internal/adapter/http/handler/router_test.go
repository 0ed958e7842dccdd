package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wallet-checkout/internal/adapter/http/middleware"
	"wallet-checkout/internal/core/domain"
	"wallet-checkout/internal/core/ports"
	"wallet-checkout/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type routerMocks struct {
	validation *mocks.MockMerchantValidationService
	auth       *mocks.MockAuthorizationService
	tokens     *mocks.MockTokenService
	auditRepo  *mocks.MockAuditRepository
	auditSvc   *mocks.MockAuditService
}

func setupRouter(t *testing.T) (*routerMocks, http.Handler) {
	ctrl := gomock.NewController(t)
	m := &routerMocks{
		validation: mocks.NewMockMerchantValidationService(ctrl),
		auth:       mocks.NewMockAuthorizationService(ctrl),
		tokens:     mocks.NewMockTokenService(ctrl),
		auditRepo:  mocks.NewMockAuditRepository(ctrl),
		auditSvc:   mocks.NewMockAuditService(ctrl),
	}
	r := SetupRouter(RouterDeps{
		ValidationSvc:    m.validation,
		AuthorizationSvc: m.auth,
		TokenSvc:         m.tokens,
		AuditRepo:        m.auditRepo,
		AuditSvc:         m.auditSvc,
		AllowedOrigins:   []string{"https://shop.example.com"},
		Mode:             "test",
		Logger:           zerolog.Nop(),
	})
	return m, r
}

func TestRouter_CheckoutFlow(t *testing.T) {
	m, r := setupRouter(t)

	m.validation.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(&ports.MerchantValidation{
		MerchantIdentifier: "merchant.com.shop",
		Payload:            json.RawMessage(operatorPayload),
		SessionToken:       "tok",
		ExpiresAt:          time.Now().Add(15 * time.Minute),
	}, nil)
	m.tokens.EXPECT().Validate("tok").Return(&ports.SessionClaims{MerchantIdentifier: "merchant.com.shop", SessionID: "sid"}, nil)
	m.auth.EXPECT().Authorize(gomock.Any(), "merchant.com.shop", gomock.Any()).
		Return(&domain.AuthorizationResult{Approved: true, Status: "Authorized", PaymentID: "pay_1"}, nil)

	var actions []domain.AuditAction
	m.auditSvc.EXPECT().Log(gomock.Any(), gomock.Any()).Times(2).Do(func(_ context.Context, e *domain.AuditLog) {
		actions = append(actions, e.Action)
		assert.Equal(t, "merchant.com.shop", e.MerchantIdentifier)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/merchant-validation",
		bytes.NewReader([]byte(`{"validationURL":"https://apple-pay-gateway.apple.com/paymentservices/startSession"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://shop.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, operatorPayload, w.Body.String())
	token := w.Header().Get(middleware.HeaderSessionToken)
	require.Equal(t, "tok", token)
	assert.Equal(t, "https://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	body, _ := json.Marshal(testAuthorizeBody())
	req = httptest.NewRequest(http.MethodPost, "/api/v1/authorize-payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderSessionToken, token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"approved":true`)
	assert.Equal(t, []domain.AuditAction{domain.AuditActionMerchantValidation, domain.AuditActionAuthorizePayment}, actions)
}

func TestRouter_AuthorizeRequiresSession(t *testing.T) {
	m, r := setupRouter(t)
	m.auditSvc.EXPECT().Log(gomock.Any(), gomock.Any())

	body, _ := json.Marshal(testAuthorizeBody())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/authorize-payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_RejectsNonJSON(t *testing.T) {
	m, r := setupRouter(t)
	m.auditSvc.EXPECT().Log(gomock.Any(), gomock.Any())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/merchant-validation", bytes.NewReader([]byte(`validationURL=x`)))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestRouter_AuditLogsRequireSession(t *testing.T) {
	m, r := setupRouter(t)
	m.tokens.EXPECT().Validate("tok").Return(&ports.SessionClaims{MerchantIdentifier: "merchant.com.shop"}, nil)
	m.auditRepo.EXPECT().ListRecent(gomock.Any(), "merchant.com.shop", defaultAuditPage).Return(nil, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/audit-logs", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/audit-logs", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_Health(t *testing.T) {
	_, r := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
