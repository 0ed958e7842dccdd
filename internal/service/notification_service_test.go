package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"wallet-checkout/internal/core/domain"
	"wallet-checkout/internal/core/ports/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// mockHTTPClient implements HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func okResponse(status int) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(""))}
}

// assertCanonical checks keys appear in sorted order with no whitespace.
func assertCanonical(t *testing.T, body string) {
	t.Helper()
	assert.NotContains(t, body, " ")
	assert.NotContains(t, body, "\n")
	keys := []string{`"amount"`, `"approved"`, `"currency"`, `"event_type"`, `"payment_id"`, `"reference"`, `"status"`, `"transaction_id"`, `"wallet_type"`}
	last := -1
	for _, k := range keys {
		i := strings.Index(body, k)
		require.Greater(t, i, last, "key %s out of order in %s", k, body)
		last = i
	}
}

func testNotification() domain.OutcomeNotification {
	return domain.OutcomeNotification{
		EventType:     domain.EventPaymentAuthorized,
		PaymentID:     "pay_1",
		Reference:     "applepay-1a2b3c4d",
		TransactionID: "tx-1",
		WalletType:    "applepay",
		Status:        "Authorized",
		Approved:      true,
		Amount:        100,
		Currency:      "USD",
	}
}

func TestNotificationService_Notify_SignedCanonicalBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	sigSvc := mocks.NewMockSignatureService(ctrl)

	type captured struct {
		body      string
		signature string
		timestamp string
	}
	delivered := make(chan captured, 1)
	httpClient := &mockHTTPClient{doFunc: func(req *http.Request) (*http.Response, error) {
		body, _ := io.ReadAll(req.Body)
		delivered <- captured{string(body), req.Header.Get(HeaderSignature), req.Header.Get(HeaderTimestamp)}
		return okResponse(http.StatusOK), nil
	}}

	sigSvc.EXPECT().BuildSigningPayload(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ts time.Time, body []byte) string { return "payload" })
	sigSvc.EXPECT().Sign("payload").Return("sig-hex")

	svc := NewNotificationService("https://merchant.example.com/hooks", sigSvc, httpClient, []time.Duration{}, newTestLogger())
	require.NoError(t, svc.Notify(context.Background(), testNotification()))

	select {
	case got := <-delivered:
		assertCanonical(t, got.body)
		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(got.body), &decoded))
		assert.Equal(t, "pay_1", decoded["payment_id"])
		assert.Equal(t, true, decoded["approved"])
		assert.Equal(t, "PAYMENT_AUTHORIZED", decoded["event_type"])
		assert.Equal(t, "sig-hex", got.signature)
		_, err := time.Parse(time.RFC3339Nano, got.timestamp)
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("notification not delivered in time")
	}
}

func TestNotificationService_Notify_VerifiableWithRealSigner(t *testing.T) {
	signer := NewHMACSignatureService([]byte("notify-key"))

	delivered := make(chan *http.Request, 1)
	var body string
	httpClient := &mockHTTPClient{doFunc: func(req *http.Request) (*http.Response, error) {
		b, _ := io.ReadAll(req.Body)
		body = string(b)
		delivered <- req
		return okResponse(http.StatusNoContent), nil
	}}

	svc := NewNotificationService("https://merchant.example.com/hooks", signer, httpClient, []time.Duration{}, newTestLogger())
	require.NoError(t, svc.Notify(context.Background(), testNotification()))

	select {
	case req := <-delivered:
		ts, err := time.Parse(time.RFC3339Nano, req.Header.Get(HeaderTimestamp))
		require.NoError(t, err)
		assert.True(t, signer.Verify(signer.BuildSigningPayload(ts, []byte(body)), req.Header.Get(HeaderSignature)))
	case <-time.After(2 * time.Second):
		t.Fatal("notification not delivered in time")
	}
}

func TestNotificationService_Notify_NoURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := &mockHTTPClient{doFunc: func(req *http.Request) (*http.Response, error) {
		t.Error("should not deliver without a url")
		return nil, nil
	}}

	svc := NewNotificationService("", mocks.NewMockSignatureService(ctrl), httpClient, nil, newTestLogger())
	assert.NoError(t, svc.Notify(context.Background(), testNotification()))
	time.Sleep(20 * time.Millisecond)
}

func TestNotificationService_Retries(t *testing.T) {
	signer := NewHMACSignatureService([]byte("k"))

	var attempts int32
	done := make(chan struct{})
	httpClient := &mockHTTPClient{doFunc: func(req *http.Request) (*http.Response, error) {
		n := atomic.AddInt32(&attempts, 1)
		switch n {
		case 1:
			return nil, errors.New("connection refused")
		case 2:
			return okResponse(http.StatusInternalServerError), nil
		default:
			close(done)
			return okResponse(http.StatusOK), nil
		}
	}}

	intervals := []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}
	svc := NewNotificationService("https://merchant.example.com/hooks", signer, httpClient, intervals, newTestLogger())
	require.NoError(t, svc.Notify(context.Background(), testNotification()))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notification not retried")
	}
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts), "delivery stops after first 2xx")
}

func TestNotificationService_GivesUp(t *testing.T) {
	signer := NewHMACSignatureService([]byte("k"))

	var attempts int32
	httpClient := &mockHTTPClient{doFunc: func(req *http.Request) (*http.Response, error) {
		atomic.AddInt32(&attempts, 1)
		return okResponse(http.StatusBadGateway), nil
	}}

	svc := NewNotificationService("https://merchant.example.com/hooks", signer, httpClient, []time.Duration{time.Millisecond, time.Millisecond}, newTestLogger())
	require.NoError(t, svc.Notify(context.Background(), testNotification()))

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&attempts) == 3 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}
