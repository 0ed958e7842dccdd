package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"wallet-checkout/internal/core/domain"
	"wallet-checkout/internal/core/ports"
	"wallet-checkout/internal/core/ports/mocks"
	"wallet-checkout/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testMerchant = "merchant.com.example.sandbox"

type authorizationTestDeps struct {
	svc       ports.AuthorizationService
	processor *mocks.MockProcessorClient
	cache     *mocks.MockAuthorizationCache
	claims    *mocks.MockTokenClaimStore
	encSvc    *mocks.MockEncryptionService
	notifier  *mocks.MockOutcomeNotifier
	ctrl      *gomock.Controller
}

func setupAuthorizationService(t *testing.T) *authorizationTestDeps {
	ctrl := gomock.NewController(t)
	d := &authorizationTestDeps{
		processor: mocks.NewMockProcessorClient(ctrl),
		cache:     mocks.NewMockAuthorizationCache(ctrl),
		claims:    mocks.NewMockTokenClaimStore(ctrl),
		encSvc:    mocks.NewMockEncryptionService(ctrl),
		notifier:  mocks.NewMockOutcomeNotifier(ctrl),
		ctrl:      ctrl,
	}
	d.svc = NewAuthorizationService(
		d.processor, d.cache, d.claims, d.encSvc, d.notifier,
		AuthorizationConfig{ProcessingChannelID: "pc_123"},
		zerolog.Nop(),
	)
	return d
}

func testAuthRequest() domain.AuthorizationRequest {
	return domain.AuthorizationRequest{
		TokenData: domain.PaymentToken{
			Version:   "EC_v1",
			Data:      "ZW5jcnlwdGVk",
			Signature: "c2ln",
			Header: domain.PaymentTokenHeader{
				EphemeralPublicKey: "ZXBr",
				PublicKeyHash:      "aGFzaA==",
				TransactionID:      "tx-1",
			},
		},
		Amount:          100,
		CurrencyCode:    "USD",
		CountryCode:     "US",
		DeviceSessionID: "dsid_1",
	}
}

var referencePattern = regexp.MustCompile(`^applepay-[0-9a-f]{8}$`)

func TestAuthorize_Approved(t *testing.T) {
	d := setupAuthorizationService(t)
	defer d.ctrl.Finish()
	req := testAuthRequest()

	d.cache.EXPECT().Get(gomock.Any(), testMerchant+":tx-1").Return(nil, nil).Times(2)
	d.claims.EXPECT().Claim(gomock.Any(), "tx-1", DefaultClaimTTL).Return(true, nil)
	d.processor.EXPECT().Tokenize(gomock.Any(), "applepay", req.TokenData).Return("tok_abc", nil)
	d.processor.EXPECT().RequestPayment(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p ports.ProcessorPaymentRequest) (*ports.ProcessorPayment, error) {
			assert.Equal(t, "tok_abc", p.SourceToken)
			assert.Equal(t, "US", p.BillingCountry)
			assert.Equal(t, int64(100), p.Amount)
			assert.Equal(t, "USD", p.Currency)
			assert.Equal(t, "pc_123", p.ProcessingChannelID)
			assert.Equal(t, "dsid_1", p.DeviceSessionID)
			assert.Regexp(t, referencePattern, p.Reference)
			assert.Equal(t, "tx-1", p.IdempotencyKey)
			return &ports.ProcessorPayment{ID: "pay_1", Status: "Authorized"}, nil
		})
	d.encSvc.EXPECT().Encrypt(`{"approved":true,"status":"Authorized","paymentId":"pay_1"}`).Return("sealed", nil)
	d.cache.EXPECT().Set(gomock.Any(), testMerchant+":tx-1", []byte("sealed"), DefaultResultTTL).Return(nil)
	d.claims.EXPECT().Release(gomock.Any(), "tx-1").Return(nil)
	d.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n domain.OutcomeNotification) error {
			assert.Equal(t, domain.EventPaymentAuthorized, n.EventType)
			assert.Equal(t, "pay_1", n.PaymentID)
			assert.Equal(t, "tx-1", n.TransactionID)
			assert.True(t, n.Approved)
			assert.Equal(t, int64(100), n.Amount)
			return nil
		})

	res, err := d.svc.Authorize(context.Background(), testMerchant, req)
	require.NoError(t, err)
	assert.Equal(t, &domain.AuthorizationResult{Approved: true, Status: "Authorized", PaymentID: "pay_1"}, res)
}

func TestAuthorize_StatusMapping(t *testing.T) {
	tests := []struct {
		status   string
		approved bool
	}{
		{"Authorized", true},
		{"Captured", true},
		{"Declined", false},
		{"Pending", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			d := setupAuthorizationService(t)
			defer d.ctrl.Finish()

			d.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
			d.claims.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
			d.claims.EXPECT().Release(gomock.Any(), gomock.Any()).Return(nil)
			d.processor.EXPECT().Tokenize(gomock.Any(), gomock.Any(), gomock.Any()).Return("tok", nil)
			d.processor.EXPECT().RequestPayment(gomock.Any(), gomock.Any()).Return(&ports.ProcessorPayment{ID: "pay", Status: tt.status}, nil)
			d.encSvc.EXPECT().Encrypt(gomock.Any()).Return("sealed", nil)
			d.cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			d.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil)

			res, err := d.svc.Authorize(context.Background(), testMerchant, testAuthRequest())
			require.NoError(t, err)
			assert.Equal(t, tt.approved, res.Approved)
			assert.Equal(t, tt.status, res.Status)
		})
	}
}

func TestAuthorize_ReplaysCachedResult(t *testing.T) {
	d := setupAuthorizationService(t)
	defer d.ctrl.Finish()

	d.cache.EXPECT().Get(gomock.Any(), testMerchant+":tx-1").Return([]byte("sealed"), nil)
	d.encSvc.EXPECT().Decrypt("sealed").Return(`{"approved":false,"status":"Declined","paymentId":"pay_9"}`, nil)
	// no claim, no processor call, no notification

	res, err := d.svc.Authorize(context.Background(), testMerchant, testAuthRequest())
	require.NoError(t, err)
	assert.False(t, res.Approved)
	assert.Equal(t, "pay_9", res.PaymentID)
}

func TestAuthorize_ReplaysResultStoredWhileClaiming(t *testing.T) {
	d := setupAuthorizationService(t)
	defer d.ctrl.Finish()

	gomock.InOrder(
		d.cache.EXPECT().Get(gomock.Any(), testMerchant+":tx-1").Return(nil, nil),
		d.claims.EXPECT().Claim(gomock.Any(), "tx-1", gomock.Any()).Return(true, nil),
		d.cache.EXPECT().Get(gomock.Any(), testMerchant+":tx-1").Return([]byte("sealed"), nil),
		d.encSvc.EXPECT().Decrypt("sealed").Return(`{"approved":true,"status":"Authorized","paymentId":"pay_1"}`, nil),
		d.claims.EXPECT().Release(gomock.Any(), "tx-1").Return(nil),
	)
	// no processor call, no notification

	res, err := d.svc.Authorize(context.Background(), testMerchant, testAuthRequest())
	require.NoError(t, err)
	assert.Equal(t, &domain.AuthorizationResult{Approved: true, Status: "Authorized", PaymentID: "pay_1"}, res)
}

func TestAuthorize_CorruptCacheIsMiss(t *testing.T) {
	d := setupAuthorizationService(t)
	defer d.ctrl.Finish()

	d.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return([]byte("sealed"), nil)
	d.encSvc.EXPECT().Decrypt("sealed").Return("", errors.New("decrypting: message authentication failed"))
	d.claims.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

	_, err := d.svc.Authorize(context.Background(), testMerchant, testAuthRequest())
	assert.True(t, errors.Is(err, apperror.ErrDuplicateAuthorization()))
}

func TestAuthorize_DuplicateInFlight(t *testing.T) {
	d := setupAuthorizationService(t)
	defer d.ctrl.Finish()

	d.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)
	d.claims.EXPECT().Claim(gomock.Any(), "tx-1", gomock.Any()).Return(false, nil)

	_, err := d.svc.Authorize(context.Background(), testMerchant, testAuthRequest())
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PAY_003", appErr.Code)
}

func TestAuthorize_ClaimStoreDown(t *testing.T) {
	d := setupAuthorizationService(t)
	defer d.ctrl.Finish()

	d.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))
	d.claims.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))

	_, err := d.svc.Authorize(context.Background(), testMerchant, testAuthRequest())
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SYS_001", appErr.Code)
}

func TestAuthorize_TokenizationFails(t *testing.T) {
	d := setupAuthorizationService(t)
	defer d.ctrl.Finish()

	d.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	d.claims.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	d.processor.EXPECT().Tokenize(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", apperror.Rejected("processor.tokenize", 422, errors.New("token_data_invalid")))
	d.claims.EXPECT().Release(gomock.Any(), "tx-1").Return(nil)

	_, err := d.svc.Authorize(context.Background(), testMerchant, testAuthRequest())
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PAY_004", appErr.Code)
}

func TestAuthorize_PaymentFails(t *testing.T) {
	d := setupAuthorizationService(t)
	defer d.ctrl.Finish()

	d.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	d.claims.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	d.processor.EXPECT().Tokenize(gomock.Any(), gomock.Any(), gomock.Any()).Return("tok", nil)
	d.processor.EXPECT().RequestPayment(gomock.Any(), gomock.Any()).
		Return(nil, apperror.Timeout("processor.payment", context.DeadlineExceeded))
	d.claims.EXPECT().Release(gomock.Any(), gomock.Any()).Return(nil)

	_, err := d.svc.Authorize(context.Background(), testMerchant, testAuthRequest())
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PAY_005", appErr.Code)
	assert.Equal(t, apperror.KindTimeout, apperror.KindOf(err))
}

func TestAuthorize_CacheAndNotifyFailuresDoNotFail(t *testing.T) {
	d := setupAuthorizationService(t)
	defer d.ctrl.Finish()

	d.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	d.claims.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	d.processor.EXPECT().Tokenize(gomock.Any(), gomock.Any(), gomock.Any()).Return("tok", nil)
	d.processor.EXPECT().RequestPayment(gomock.Any(), gomock.Any()).Return(&ports.ProcessorPayment{ID: "pay", Status: "Authorized"}, nil)
	d.encSvc.EXPECT().Encrypt(gomock.Any()).Return("sealed", nil)
	d.cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
	d.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(errors.New("marshal"))
	d.claims.EXPECT().Release(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	res, err := d.svc.Authorize(context.Background(), testMerchant, testAuthRequest())
	require.NoError(t, err)
	assert.True(t, res.Approved)
}

func TestAuthorize_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *domain.AuthorizationRequest)
		code   string
	}{
		{"zero amount", func(r *domain.AuthorizationRequest) { r.Amount = 0 }, "PAY_002"},
		{"negative amount", func(r *domain.AuthorizationRequest) { r.Amount = -5 }, "PAY_002"},
		{"above currency max", func(r *domain.AuthorizationRequest) { r.Amount = domain.DefaultMaxMinorUnits + 1 }, "PAY_002"},
		{"unknown wallet", func(r *domain.AuthorizationRequest) { r.WalletType = "samsungpay" }, "PAY_002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupAuthorizationService(t)
			defer d.ctrl.Finish()

			req := testAuthRequest()
			tt.mutate(&req)

			_, err := d.svc.Authorize(context.Background(), testMerchant, req)
			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestAuthorize_GooglePayWithoutTransactionID(t *testing.T) {
	d := setupAuthorizationService(t)
	defer d.ctrl.Finish()

	req := testAuthRequest()
	req.WalletType = domain.WalletTypeGooglePay
	req.TokenData.Header.TransactionID = ""
	key := domain.TokenKey(req.TokenData)
	assert.Len(t, key, 64)

	d.cache.EXPECT().Get(gomock.Any(), testMerchant+":"+key).Return(nil, nil).Times(2)
	d.claims.EXPECT().Claim(gomock.Any(), key, gomock.Any()).Return(true, nil)
	d.processor.EXPECT().Tokenize(gomock.Any(), "googlepay", gomock.Any()).Return("tok", nil)
	d.processor.EXPECT().RequestPayment(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p ports.ProcessorPaymentRequest) (*ports.ProcessorPayment, error) {
			assert.Regexp(t, `^googlepay-[0-9a-f]{8}$`, p.Reference)
			return &ports.ProcessorPayment{ID: "pay", Status: "Captured"}, nil
		})
	d.encSvc.EXPECT().Encrypt(gomock.Any()).Return("sealed", nil)
	d.cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	d.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil)
	d.claims.EXPECT().Release(gomock.Any(), key).Return(nil)

	res, err := d.svc.Authorize(context.Background(), testMerchant, req)
	require.NoError(t, err)
	assert.True(t, res.Approved)
}

func TestNewAuthorizationService_CustomTTLs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	cache := mocks.NewMockAuthorizationCache(ctrl)
	claims := mocks.NewMockTokenClaimStore(ctrl)

	svc := NewAuthorizationService(nil, cache, claims, nil, nil,
		AuthorizationConfig{ClaimTTL: 5 * time.Second}, zerolog.Nop())

	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)
	claims.EXPECT().Claim(gomock.Any(), "tx-1", 5*time.Second).Return(false, nil)

	_, err := svc.Authorize(context.Background(), testMerchant, testAuthRequest())
	assert.Error(t, err)
}
