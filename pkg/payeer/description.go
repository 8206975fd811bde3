package payeer

import "encoding/base64"

// EncodeDescription base64-encodes an order description for m_desc.
func EncodeDescription(description string) string {
	return base64.StdEncoding.EncodeToString([]byte(description))
}
