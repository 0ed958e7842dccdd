package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsWhitespace(t *testing.T) {
	req := MerchantValidationRequest{
		ValidationURL:      "  https://apple-pay-gateway.apple.com/paymentservices/startSession  ",
		MerchantIdentifier: " merchant.com.shop ",
		DisplayName:        " My Shop ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "https://apple-pay-gateway.apple.com/paymentservices/startSession", req.ValidationURL)
	assert.Equal(t, "merchant.com.shop", req.MerchantIdentifier)
	assert.Equal(t, "My Shop", req.DisplayName)
}

func TestSanitizeStruct_KeepsMarkupCharacters(t *testing.T) {
	req := MerchantValidationRequest{
		ValidationURL: "https://apple-pay-gateway.apple.com/startSession?a=1&b=2",
		DisplayName:   " Tom & Jerry's <Shop> ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "Tom & Jerry's <Shop>", req.DisplayName)
	assert.Equal(t, "https://apple-pay-gateway.apple.com/startSession?a=1&b=2", req.ValidationURL)
}

type sanitizeNested struct {
	Label string
}

type sanitizeSample struct {
	Name    string
	Nested  sanitizeNested
	Skipped sanitizeNested `sanitize:"-"`
}

func TestSanitizeStruct_RecursesIntoNestedStructs(t *testing.T) {
	s := sanitizeSample{Name: " a ", Nested: sanitizeNested{Label: " b "}, Skipped: sanitizeNested{Label: " c "}}
	SanitizeStruct(&s)

	assert.Equal(t, "a", s.Name)
	assert.Equal(t, "b", s.Nested.Label)
	assert.Equal(t, " c ", s.Skipped.Label)
}

func TestSanitizeStruct_LeavesPaymentTokenUntouched(t *testing.T) {
	req := AuthorizePaymentRequest{
		TokenData: PaymentToken{
			Version:   " EC_v1 ",
			Data:      "ZW5jcnlwdGVk\n",
			Signature: " c2ln",
			Header:    PaymentTokenHeader{TransactionID: " abc "},
		},
		DeviceSessionID: " dsid_1 ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, " EC_v1 ", req.TokenData.Version)
	assert.Equal(t, "ZW5jcnlwdGVk\n", req.TokenData.Data)
	assert.Equal(t, " c2ln", req.TokenData.Signature)
	assert.Equal(t, " abc ", req.TokenData.Header.TransactionID)
	assert.Equal(t, "dsid_1", req.DeviceSessionID)
}

func TestSanitizeStruct_IgnoresNonPointer(t *testing.T) {
	req := MerchantValidationRequest{DisplayName: "  x  "}
	SanitizeStruct(req)
	assert.Equal(t, "  x  ", req.DisplayName)
}

// --- binding tests ---

func validAuthorizeRequest() AuthorizePaymentRequest {
	return AuthorizePaymentRequest{
		TokenData: PaymentToken{
			Version:   "EC_v1",
			Data:      "ZW5jcnlwdGVk",
			Signature: "c2ln",
			Header: PaymentTokenHeader{
				EphemeralPublicKey: "ZXBr",
				PublicKeyHash:      "aGFzaA==",
				TransactionID:      "4b0d0b2e9a",
			},
		},
		Amount:          100,
		CurrencyCode:    "USD",
		CountryCode:     "US",
		DeviceSessionID: "dsid_0123",
	}
}

func TestAuthorizePaymentRequest_Binding(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *AuthorizePaymentRequest)
		wantErr bool
	}{
		{"valid", func(r *AuthorizePaymentRequest) {}, false},
		{"googlepay", func(r *AuthorizePaymentRequest) { r.WalletType = "googlepay" }, false},
		{"zero amount", func(r *AuthorizePaymentRequest) { r.Amount = 0 }, true},
		{"negative amount", func(r *AuthorizePaymentRequest) { r.Amount = -1 }, true},
		{"unknown currency", func(r *AuthorizePaymentRequest) { r.CurrencyCode = "XYZ" }, true},
		{"lowercase currency", func(r *AuthorizePaymentRequest) { r.CurrencyCode = "usd" }, true},
		{"unknown country", func(r *AuthorizePaymentRequest) { r.CountryCode = "ZZ" }, true},
		{"missing token data", func(r *AuthorizePaymentRequest) { r.TokenData.Data = "" }, true},
		{"missing signature", func(r *AuthorizePaymentRequest) { r.TokenData.Signature = "" }, true},
		{"bad device session", func(r *AuthorizePaymentRequest) { r.DeviceSessionID = "a b" }, true},
		{"unknown wallet", func(r *AuthorizePaymentRequest) { r.WalletType = "samsungpay" }, true},
		{"bad ephemeral key", func(r *AuthorizePaymentRequest) { r.TokenData.Header.EphemeralPublicKey = "%%%" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validAuthorizeRequest()
			tt.mutate(&req)
			err := binding.Validator.ValidateStruct(&req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMerchantValidationRequest_Binding(t *testing.T) {
	tests := []struct {
		name    string
		req     MerchantValidationRequest
		wantErr bool
	}{
		{"valid", MerchantValidationRequest{ValidationURL: "https://apple-pay-gateway.apple.com/paymentservices/startSession"}, false},
		{"with identity", MerchantValidationRequest{
			ValidationURL:      "https://apple-pay-gateway.apple.com/paymentservices/startSession",
			InitiativeContext:  "shop.example.com",
			MerchantIdentifier: "merchant.com.shop",
			DisplayName:        "Shop",
		}, false},
		{"missing url", MerchantValidationRequest{}, true},
		{"relative url", MerchantValidationRequest{ValidationURL: "/paymentservices/startSession"}, true},
		{"ftp url", MerchantValidationRequest{ValidationURL: "ftp://apple-pay-gateway.apple.com/x"}, true},
		{"bad context", MerchantValidationRequest{ValidationURL: "https://a.apple.com/x", InitiativeContext: "not a host"}, true},
		{"bad merchant id", MerchantValidationRequest{ValidationURL: "https://a.apple.com/x", MerchantIdentifier: "merchant/../x"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthorizePaymentRequest_ToDomain(t *testing.T) {
	req := validAuthorizeRequest()
	req.WalletType = "applepay"

	d := req.ToDomain()
	assert.Equal(t, "EC_v1", d.TokenData.Version)
	assert.Equal(t, "4b0d0b2e9a", d.TokenData.Header.TransactionID)
	assert.Equal(t, int64(100), d.Amount)
	assert.Equal(t, "dsid_0123", d.DeviceSessionID)
	assert.Equal(t, "applepay", d.WalletType)
}

func TestMerchantValidationRequest_ToDomain(t *testing.T) {
	d := MerchantValidationRequest{ValidationURL: "https://x.apple.com", DisplayName: "Shop"}.ToDomain()
	require.Equal(t, "https://x.apple.com", d.ValidationURL)
	assert.Equal(t, "Shop", d.DisplayName)
}
