// Package gateway holds the outbound HTTP adapters: the checkout backend
// seen from the storefront, the risk collector, the payment processor and
// the wallet operator's merchant validation endpoint.
package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"wallet-checkout/pkg/apperror"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// HeaderSessionToken carries the session token issued with a merchant validation.
const HeaderSessionToken = "X-Session-Token"

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 512
)

// newClient builds a resty client with the settings every adapter shares.
func newClient(baseURL string, timeout time.Duration, log zerolog.Logger) *resty.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return resty.New().
		SetLogger(restyLogger{log}).
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "wallet-checkout/1").
		SetRedirectPolicy(resty.NoRedirectPolicy())
}

// checkResponse maps a resty outcome onto an apperror.CallError.
func checkResponse(op string, resp *resty.Response, err error) error {
	if err != nil {
		return apperror.FromTransport(op, err)
	}
	if resp.IsError() {
		return apperror.Rejected(op, resp.StatusCode(), errors.New(errorSummary(resp.Body())))
	}
	return nil
}

// errorSummary prefers the usual error fields of a JSON body and falls back
// to the truncated raw text.
func errorSummary(body []byte) string {
	var fields struct {
		ErrorCode  string   `json:"error_code"`
		ErrorType  string   `json:"error_type"`
		Message    string   `json:"message"`
		ErrorCodes []string `json:"error_codes"`
	}
	if json.Unmarshal(body, &fields) == nil {
		code := fields.ErrorCode
		if code == "" {
			code = fields.ErrorType
		}
		switch {
		case code != "" && fields.Message != "":
			return fmt.Sprintf("%s: %s", code, fields.Message)
		case code != "" && len(fields.ErrorCodes) > 0:
			return fmt.Sprintf("%s: %s", code, strings.Join(fields.ErrorCodes, ","))
		case code != "":
			return code
		}
	}
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "empty response body"
	}
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return s
}

// restyLogger routes resty's own diagnostics into zerolog.
type restyLogger struct {
	log zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.log.Error().Msgf(strings.TrimSpace(format), v...)
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.log.Warn().Msgf(strings.TrimSpace(format), v...)
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.log.Debug().Msgf(strings.TrimSpace(format), v...)
}
