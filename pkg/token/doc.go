// Package token creates and verifies HMAC-signed, time-limited session
// tokens embedded in form URLs (and their QR codes). Tokens are opaque
// and content-free by construction — an identifier and an expiry, no
// patient data — so a leaked link discloses nothing.
package token
