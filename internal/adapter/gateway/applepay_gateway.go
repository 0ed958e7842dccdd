package gateway

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wallet-checkout/internal/core/ports"
	"wallet-checkout/pkg/apperror"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

var _ ports.MerchantSessionGateway = (*MerchantSessionGateway)(nil)

// LoadMerchantCertificate reads the merchant identity certificate and key.
func LoadMerchantCertificate(certFile, keyFile string) (tls.Certificate, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("load merchant identity certificate: %w", err)
	}
	return cert, nil
}

// MerchantSessionGateway requests merchant sessions from the wallet operator
// over mutual TLS.
type MerchantSessionGateway struct {
	client *resty.Client
	log    zerolog.Logger
}

// NewMerchantSessionGateway creates a gateway presenting cert as the client
// certificate. rootCAs may be nil to use the system pool.
func NewMerchantSessionGateway(cert tls.Certificate, rootCAs *x509.CertPool, timeout time.Duration, log zerolog.Logger) *MerchantSessionGateway {
	log = log.With().Str("component", "merchant_session_gateway").Logger()
	client := newClient("", timeout, log).SetTLSClientConfig(&tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      rootCAs,
		MinVersion:   tls.VersionTLS12,
	})
	return &MerchantSessionGateway{
		client: client,
		log:    log,
	}
}

// RequestSession posts body to validationURL and returns the operator's
// JSON exactly as received.
func (g *MerchantSessionGateway) RequestSession(ctx context.Context, validationURL string, body ports.MerchantSessionBody) (json.RawMessage, error) {
	const op = "wallet_operator.start_session"

	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(validationURL)
	if err := checkResponse(op, resp, err); err != nil {
		g.log.Warn().Err(err).Str("merchant_identifier", body.MerchantIdentifier).Msg("merchant session request failed")
		return nil, err
	}

	raw := resp.Body()
	if !json.Valid(raw) {
		return nil, apperror.Rejected(op, resp.StatusCode(), errors.New("merchant session is not valid JSON"))
	}
	return json.RawMessage(append([]byte(nil), raw...)), nil
}
