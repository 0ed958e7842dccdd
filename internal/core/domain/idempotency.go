package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// TokenKey identifies a wallet token for replay protection. It is the wallet
// transaction id, or a digest of the encrypted data when the header lacks one.
func TokenKey(token PaymentToken) string {
	if token.Header.TransactionID != "" {
		return token.Header.TransactionID
	}
	sum := sha256.Sum256([]byte(token.Data))
	return hex.EncodeToString(sum[:])
}

// BuildAuthorizationKey constructs the cache key for a decided token.
// Format: "merchant_identifier:token_key"
func BuildAuthorizationKey(merchantIdentifier, tokenKey string) string {
	return merchantIdentifier + ":" + tokenKey
}
