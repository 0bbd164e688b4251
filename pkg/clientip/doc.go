// Package clientip extracts the real client IP address from an HTTP
// request behind CDNs and reverse proxies. The gateway feeds the result
// straight into hashid.Hash; the raw address is never stored or logged.
package clientip
