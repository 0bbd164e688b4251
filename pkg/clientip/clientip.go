package clientip

import (
	"net"
	"net/http"
	"strings"
)

// FromRequest returns the client's IP address for an HTTP request,
// preferring proxy headers over the socket address:
//
//  1. CF-Connecting-IP (CDN edge)
//  2. X-Forwarded-For (standard proxy chain, first valid entry)
//  3. X-Real-IP (reverse proxy)
//  4. RemoteAddr (direct connection)
//
// Every candidate is parsed and normalized; unparseable values are
// skipped so a spoofed garbage header cannot poison rate-limit keys.
// The return value may be empty when nothing parses.
func FromRequest(r *http.Request) string {
	if ip := parseIP(r.Header.Get("CF-Connecting-IP")); ip != "" {
		return ip
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		for part := range strings.SplitSeq(forwarded, ",") {
			if ip := parseIP(part); ip != "" {
				return ip
			}
		}
	}

	if ip := parseIP(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr without a port is already a bare IP.
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// parseIP validates and normalizes a candidate address, returning ""
// when it is not a valid IP.
func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}
