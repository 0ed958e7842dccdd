package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"wallet-checkout/internal/core/domain"
	"wallet-checkout/internal/core/ports"

	canonicaljson "github.com/gibson042/canonicaljson-go"
	"github.com/rs/zerolog"
)

// DefaultNotifyRetryIntervals is the wait before each redelivery attempt.
var DefaultNotifyRetryIntervals = []time.Duration{
	15 * time.Second,
	60 * time.Second,
	2 * time.Minute,
	5 * time.Minute,
	10 * time.Minute,
}

// Notification headers.
const (
	HeaderSignature = "X-Wallet-Signature"
	HeaderTimestamp = "X-Wallet-Timestamp"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type notificationService struct {
	url        string
	sigSvc     ports.SignatureService
	httpClient HTTPClient
	intervals  []time.Duration
	log        zerolog.Logger
}

// NewNotificationService creates the outcome notifier. An empty url turns
// Notify into a no-op. A nil intervals slice uses DefaultNotifyRetryIntervals.
func NewNotificationService(
	url string,
	sigSvc ports.SignatureService,
	httpClient HTTPClient,
	intervals []time.Duration,
	log zerolog.Logger,
) ports.OutcomeNotifier {
	if intervals == nil {
		intervals = DefaultNotifyRetryIntervals
	}
	return &notificationService{
		url:        url,
		sigSvc:     sigSvc,
		httpClient: httpClient,
		intervals:  intervals,
		log:        log,
	}
}

// Notify signs the notification and delivers it asynchronously with retries.
func (s *notificationService) Notify(ctx context.Context, n domain.OutcomeNotification) error {
	if s.url == "" {
		s.log.Debug().Str("payment_id", n.PaymentID).Msg("notify: no url configured, skipping")
		return nil
	}

	body, err := canonicalBody(n)
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}

	ts := time.Now().UTC()
	signature := s.sigSvc.Sign(s.sigSvc.BuildSigningPayload(ts, body))

	go s.deliverWithRetries(body, ts, signature, n.PaymentID)

	return nil
}

// deliverWithRetries posts the notification until a 2xx answer or the
// retry intervals run out.
func (s *notificationService) deliverWithRetries(body []byte, ts time.Time, signature, paymentID string) {
	for attempt := 0; attempt <= len(s.intervals); attempt++ {
		if attempt > 0 {
			time.Sleep(s.intervals[attempt-1])
		}

		req, err := http.NewRequest(http.MethodPost, s.url, bytes.NewReader(body))
		if err != nil {
			s.log.Error().Err(err).Str("payment_id", paymentID).Msg("notify: failed to create request")
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(HeaderSignature, signature)
		req.Header.Set(HeaderTimestamp, ts.Format(time.RFC3339Nano))

		resp, err := s.httpClient.Do(req)
		if err != nil {
			s.log.Warn().Err(err).Str("payment_id", paymentID).Int("attempt", attempt+1).Msg("notify: delivery failed")
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			s.log.Info().Str("payment_id", paymentID).Int("attempt", attempt+1).Int("status", resp.StatusCode).Msg("notify: delivered")
			return
		}

		s.log.Warn().Str("payment_id", paymentID).Int("attempt", attempt+1).Int("status", resp.StatusCode).Msg("notify: non-2xx response, retrying")
	}

	s.log.Error().Str("payment_id", paymentID).Msg("notify: all retry attempts exhausted")
}

// canonicalBody renders v as canonical JSON: sorted keys, no insignificant whitespace.
func canonicalBody(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	return canonicaljson.Marshal(generic)
}
