// Package base64util implements the url_safe_base64_encode/decode
// external collaborator: standard URL-safe base64 without padding.
package base64util

import "encoding/base64"

// Encode returns the URL-safe, unpadded base64 encoding of s.
func Encode(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

// Decode decodes a URL-safe base64 string, tolerating both padded and
// unpadded input (subscription links in the wild emit both).
func Decode(s string) string {
	if decoded, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		return string(decoded)
	}
	if decoded, err := base64.URLEncoding.DecodeString(s); err == nil {
		return string(decoded)
	}
	return ""
}
