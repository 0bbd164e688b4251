// Package qrcode renders QR codes for form-session links. The encoded
// content is a URL with an opaque session token; no patient data ever
// enters a QR code.
package qrcode
