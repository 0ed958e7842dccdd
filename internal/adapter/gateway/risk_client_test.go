package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wallet-checkout/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRisk(t *testing.T, h http.HandlerFunc) *RiskClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewRiskClient(srv.URL, time.Second, DeviceInfo{UserAgent: "walletctl", Platform: "linux"}, zerolog.Nop())
}

func TestRiskClient_CollectDeviceSignal(t *testing.T) {
	client := newRisk(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/device-sessions", r.URL.Path)
		assert.Equal(t, "pk_sbox_risk", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "web", body["channel"])
		device := body["device"].(map[string]interface{})
		assert.Equal(t, "walletctl", device["user_agent"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"device_session_id":"dsid_abc"}`)
	})

	signal, err := client.CollectDeviceSignal(context.Background(), "pk_sbox_risk")
	require.NoError(t, err)
	assert.Equal(t, "dsid_abc", signal.DeviceSessionID)
}

func TestRiskClient_CreateRequiresKey(t *testing.T) {
	client := NewRiskClient("http://localhost", time.Second, DeviceInfo{}, zerolog.Nop())

	_, err := client.Create("")
	assert.Error(t, err)

	_, err = client.CollectDeviceSignal(context.Background(), "")
	assert.Equal(t, apperror.KindTransport, apperror.KindOf(err))
}

func TestRiskClient_MissingDeviceSession(t *testing.T) {
	client := newRisk(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{}`)
	})

	_, err := client.CollectDeviceSignal(context.Background(), "pk")
	assert.Equal(t, apperror.KindRejected, apperror.KindOf(err))
}

func TestRiskClient_Unauthorized(t *testing.T) {
	client := newRisk(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	collector, err := client.Create("pk_wrong")
	require.NoError(t, err)
	_, err = collector.PublishRiskData(context.Background())

	var ce *apperror.CallError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "risk.collect", ce.Op)
	assert.Equal(t, http.StatusUnauthorized, ce.StatusCode)
}
