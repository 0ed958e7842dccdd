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

var _ ports.RiskCollector = (*RiskClient)(nil)

// DeviceInfo describes the device the telemetry is published for.
type DeviceInfo struct {
	UserAgent string `json:"user_agent"`
	Platform  string `json:"platform"`
	Timezone  string `json:"timezone"`
	Locale    string `json:"locale"`
}

// RiskClient talks to the anti-fraud device session service.
type RiskClient struct {
	client *resty.Client
	device DeviceInfo
}

// NewRiskClient creates a RiskClient.
func NewRiskClient(baseURL string, timeout time.Duration, device DeviceInfo, log zerolog.Logger) *RiskClient {
	log = log.With().Str("component", "risk_client").Logger()
	return &RiskClient{client: newClient(baseURL, timeout, log), device: device}
}

// RiskCollector publishes device telemetry for one merchant public key.
type RiskCollector struct {
	client    *resty.Client
	publicKey string
	device    DeviceInfo
}

// Create binds a collector to publicKey.
func (r *RiskClient) Create(publicKey string) (*RiskCollector, error) {
	if publicKey == "" {
		return nil, errors.New("risk public key is required")
	}
	return &RiskCollector{client: r.client, publicKey: publicKey, device: r.device}, nil
}

type deviceSessionResponse struct {
	DeviceSessionID string `json:"device_session_id"`
}

// PublishRiskData sends the device fingerprint and returns the device session id.
func (c *RiskCollector) PublishRiskData(ctx context.Context) (string, error) {
	const op = "risk.collect"

	var out deviceSessionResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", c.publicKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{"channel": "web", "device": c.device}).
		SetResult(&out).
		Post("/device-sessions")
	if err := checkResponse(op, resp, err); err != nil {
		return "", err
	}
	if out.DeviceSessionID == "" {
		return "", apperror.Rejected(op, resp.StatusCode(), errors.New("device_session_id missing from response"))
	}
	return out.DeviceSessionID, nil
}

// CollectDeviceSignal implements ports.RiskCollector.
func (r *RiskClient) CollectDeviceSignal(ctx context.Context, publicKey string) (domain.DeviceSignal, error) {
	collector, err := r.Create(publicKey)
	if err != nil {
		return domain.DeviceSignal{}, apperror.Transport("risk.create", err)
	}
	id, err := collector.PublishRiskData(ctx)
	if err != nil {
		return domain.DeviceSignal{}, err
	}
	return domain.DeviceSignal{DeviceSessionID: id}, nil
}
