package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wallet-checkout/internal/core/domain"
	"wallet-checkout/internal/core/ports"
	"wallet-checkout/pkg/apperror"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

var (
	_ ports.MerchantValidator = (*BackendClient)(nil)
	_ ports.PaymentAuthorizer = (*BackendClient)(nil)
)

// BackendConfig points the storefront at the checkout backend.
type BackendConfig struct {
	BaseURL           string
	ValidationPath    string
	AuthorizationPath string
	Timeout           time.Duration
}

// BackendClient is the storefront's view of the checkout backend.
type BackendClient struct {
	client *resty.Client
	cfg    BackendConfig
	log    zerolog.Logger
}

// NewBackendClient creates a BackendClient. Per-call deadlines come from the
// caller's context; Timeout is only an upper bound.
func NewBackendClient(cfg BackendConfig, log zerolog.Logger) *BackendClient {
	log = log.With().Str("component", "backend_client").Logger()
	return &BackendClient{
		client: newClient(cfg.BaseURL, cfg.Timeout, log),
		cfg:    cfg,
		log:    log,
	}
}

// ValidateMerchant posts the validation URL to the backend and returns the
// operator payload untouched, with the session token from the response header.
func (b *BackendClient) ValidateMerchant(ctx context.Context, req domain.ValidationRequest) (domain.ValidationPayload, error) {
	const op = "backend.merchant_validation"

	resp, err := b.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(b.cfg.ValidationPath)
	if err := checkResponse(op, resp, err); err != nil {
		return domain.ValidationPayload{}, err
	}

	body := bytes.TrimSpace(resp.Body())
	if len(body) == 0 || !json.Valid(body) {
		return domain.ValidationPayload{}, apperror.Rejected(op, resp.StatusCode(), errors.New("response is not a JSON merchant session"))
	}

	b.log.Debug().Int("bytes", len(body)).Msg("merchant session received")
	return domain.ValidationPayload{
		Raw:          json.RawMessage(append([]byte(nil), body...)),
		SessionToken: resp.Header().Get(HeaderSessionToken),
	}, nil
}

type authorizationResponse struct {
	Approved  *bool  `json:"approved"`
	Status    string `json:"status"`
	PaymentID string `json:"paymentId"`
}

// Authorize submits the payment token. A decline is a successful call with
// Approved false.
func (b *BackendClient) Authorize(ctx context.Context, sessionToken string, req domain.AuthorizationRequest) (domain.AuthorizationResult, error) {
	const op = "backend.authorize_payment"

	r := b.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req)
	if sessionToken != "" {
		r.SetAuthToken(sessionToken)
	}

	resp, err := r.Post(b.cfg.AuthorizationPath)
	if err := checkResponse(op, resp, err); err != nil {
		return domain.AuthorizationResult{}, err
	}
	// Decoded by hand: resty skips decoding when the backend omits the JSON
	// content type, and a missing approved field must not read as a decline.
	var wire authorizationResponse
	if err := json.Unmarshal(resp.Body(), &wire); err != nil {
		return domain.AuthorizationResult{}, apperror.Rejected(op, resp.StatusCode(), fmt.Errorf("response is not a JSON authorization result: %w", err))
	}
	if wire.Approved == nil {
		return domain.AuthorizationResult{}, apperror.Rejected(op, resp.StatusCode(), errors.New("approved missing from authorization result"))
	}
	result := domain.AuthorizationResult{
		Approved:  *wire.Approved,
		Status:    wire.Status,
		PaymentID: wire.PaymentID,
	}

	b.log.Debug().Bool("approved", result.Approved).Str("status", result.Status).Msg("authorization received")
	return result, nil
}
