package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// HMACSignatureService implements ports.SignatureService using HMAC-SHA256
// with a key bound at construction.
type HMACSignatureService struct {
	key []byte
}

// NewHMACSignatureService creates a new HMAC-SHA256 signature service.
func NewHMACSignatureService(key []byte) *HMACSignatureService {
	return &HMACSignatureService{key: key}
}

// Sign computes HMAC-SHA256 of payload.
// Returns lowercase hex-encoded signature.
func (s *HMACSignatureService) Sign(payload string) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks if signature matches HMAC-SHA256(payload) in constant time.
func (s *HMACSignatureService) Verify(payload string, signature string) bool {
	expected := s.Sign(payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// BuildSigningPayload constructs the string that is signed.
// Format: RFC3339Nano(timestamp) + "." + canonical JSON body
func (s *HMACSignatureService) BuildSigningPayload(timestamp time.Time, canonicalBody []byte) string {
	return timestamp.UTC().Format(time.RFC3339Nano) + "." + string(canonicalBody)
}
