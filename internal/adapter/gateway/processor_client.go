package gateway

import (
	"context"
	"errors"
	"time"

	"wallet-checkout/internal/core/domain"
	"wallet-checkout/internal/core/ports"
	"wallet-checkout/pkg/apperror"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

var _ ports.ProcessorClient = (*ProcessorClient)(nil)

// ProcessorClient calls the payment processor's token and payment APIs.
type ProcessorClient struct {
	client *resty.Client
	log    zerolog.Logger
}

// NewProcessorClient creates a ProcessorClient authenticated with secretKey.
func NewProcessorClient(baseURL, secretKey string, timeout time.Duration, log zerolog.Logger) *ProcessorClient {
	log = log.With().Str("component", "processor_client").Logger()
	return &ProcessorClient{
		client: newClient(baseURL, timeout, log).SetAuthToken(secretKey),
		log:    log,
	}
}

type tokenRequest struct {
	Type      string              `json:"type"`
	TokenData domain.PaymentToken `json:"token_data"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresOn string `json:"expires_on,omitempty"`
}

// Tokenize exchanges a wallet token for a single-use processor token.
func (p *ProcessorClient) Tokenize(ctx context.Context, walletType string, token domain.PaymentToken) (string, error) {
	const op = "processor.tokenize"

	var out tokenResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(tokenRequest{Type: walletType, TokenData: token}).
		SetResult(&out).
		Post("/tokens")
	if err := checkResponse(op, resp, err); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", apperror.Rejected(op, resp.StatusCode(), errors.New("token missing from response"))
	}
	return out.Token, nil
}

type paymentSource struct {
	Type           string          `json:"type"`
	Token          string          `json:"token"`
	BillingAddress *billingAddress `json:"billing_address,omitempty"`
}

type billingAddress struct {
	Country string `json:"country"`
}

type paymentRisk struct {
	Enabled         bool   `json:"enabled"`
	DeviceSessionID string `json:"device_session_id,omitempty"`
}

type paymentRequest struct {
	Source              paymentSource `json:"source"`
	Amount              int64         `json:"amount"`
	Currency            string        `json:"currency"`
	Reference           string        `json:"reference"`
	ProcessingChannelID string        `json:"processing_channel_id,omitempty"`
	Risk                *paymentRisk  `json:"risk,omitempty"`
}

// RequestPayment requests a card payment funded by a processor token.
func (p *ProcessorClient) RequestPayment(ctx context.Context, req ports.ProcessorPaymentRequest) (*ports.ProcessorPayment, error) {
	const op = "processor.request_payment"

	body := paymentRequest{
		Source:              paymentSource{Type: "token", Token: req.SourceToken},
		Amount:              req.Amount,
		Currency:            req.Currency,
		Reference:           req.Reference,
		ProcessingChannelID: req.ProcessingChannelID,
	}
	if req.BillingCountry != "" {
		body.Source.BillingAddress = &billingAddress{Country: req.BillingCountry}
	}
	if req.DeviceSessionID != "" {
		body.Risk = &paymentRisk{Enabled: true, DeviceSessionID: req.DeviceSessionID}
	}

	idempotencyKey := req.IdempotencyKey
	if idempotencyKey == "" {
		idempotencyKey = req.Reference
	}

	var out ports.ProcessorPayment
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Cko-Idempotency-Key", idempotencyKey).
		SetBody(body).
		SetResult(&out).
		Post("/payments")
	if err := checkResponse(op, resp, err); err != nil {
		return nil, err
	}
	if out.ID == "" || out.Status == "" {
		return nil, apperror.Rejected(op, resp.StatusCode(), errors.New("payment id or status missing from response"))
	}

	p.log.Info().
		Str("payment_id", out.ID).
		Str("status", out.Status).
		Str("reference", req.Reference).
		Msg("processor payment")
	return &out, nil
}
