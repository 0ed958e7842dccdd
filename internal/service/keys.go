package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Keys are the purpose-bound keys derived from the configured master key.
type Keys struct {
	Encryption []byte // AES-256 key sealing cached authorization results
	Signing    []byte // HMAC key for outcome notifications
	Session    []byte // HS256 key for session tokens
}

const keyLen = 32

// DeriveKeys expands a 32-byte hex master key into independent keys with HKDF-SHA256.
func DeriveKeys(masterHex string) (*Keys, error) {
	master, err := hex.DecodeString(masterHex)
	if err != nil {
		return nil, fmt.Errorf("decoding master key: %w", err)
	}
	if len(master) != keyLen {
		return nil, fmt.Errorf("master key must be %d bytes, got %d", keyLen, len(master))
	}

	keys := &Keys{}
	for _, k := range []struct {
		info string
		dst  *[]byte
	}{
		{"wallet-checkout/encryption", &keys.Encryption},
		{"wallet-checkout/signing", &keys.Signing},
		{"wallet-checkout/session", &keys.Session},
	} {
		buf := make([]byte, keyLen)
		if _, err := io.ReadFull(hkdf.New(sha256.New, master, nil, []byte(k.info)), buf); err != nil {
			return nil, fmt.Errorf("deriving %s key: %w", k.info, err)
		}
		*k.dst = buf
	}
	return keys, nil
}
