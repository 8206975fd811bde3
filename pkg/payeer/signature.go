package payeer

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// Sign joins fields with ':' and returns the uppercase hex SHA-256 of the result.
// Field order is significant; the secret key is always passed as the last field.
func Sign(fields ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(fields, ":")))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// VerifySignature recomputes the signature over fields and compares it with
// supplied in constant time.
func VerifySignature(supplied string, fields ...string) bool {
	expected := Sign(fields...)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(supplied)) == 1
}

// checkoutSignature is the m_sign of an outgoing merchant request.
func checkoutSignature(merchantID, orderID, amount, currency, encodedDesc, secret string) string {
	return Sign(merchantID, orderID, amount, currency, encodedDesc, secret)
}
