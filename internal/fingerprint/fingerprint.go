// Package fingerprint derives a low-entropy client identifier from request
// headers. It is used only for abuse rate-limiting, never authentication:
// users sharing a NAT and browser configuration collide by design.
package fingerprint

import (
	"encoding/base64"
	"net"
	"net/http"
	"strings"
)

const (
	unknown = "unknown"
	length  = 16
)

// FromValues builds the identifier from the raw header triple. Absent values
// are replaced by the literal "unknown". Identical triples always yield the
// identical fingerprint.
func FromValues(ip, userAgent, language string) string {
	if ip == "" {
		ip = unknown
	}
	if userAgent == "" {
		userAgent = unknown
	}
	if language == "" {
		language = unknown
	}
	joined := ip + "|" + userAgent + "|" + language
	encoded := base64.StdEncoding.EncodeToString([]byte(joined))
	if len(encoded) > length {
		return encoded[:length]
	}
	return encoded
}

// FromRequest extracts the triple from an incoming request, preferring the
// first X-Forwarded-For hop over the socket address.
func FromRequest(r *http.Request) string {
	return FromValues(clientIP(r), r.Header.Get("User-Agent"), r.Header.Get("Accept-Language"))
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
