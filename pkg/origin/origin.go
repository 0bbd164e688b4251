package origin

import "strings"

// Validator matches request origins against a configured allow-list.
// Entries are either exact strings or contain a single wildcard segment
// ("https://*.example.com"). Matching is pure string comparison; no
// network lookups are performed.
type Validator struct {
	allowed []string
}

// New creates a Validator from the given allow-list. Blank entries are
// ignored so sloppy configuration ("a,,b") does not open the gate.
func New(allowList []string) *Validator {
	allowed := make([]string, 0, len(allowList))
	for _, entry := range allowList {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			allowed = append(allowed, entry)
		}
	}
	return &Validator{allowed: allowed}
}

// IsAllowed reports whether the declared origin matches any allow-list
// entry. A missing or empty origin is always rejected.
func (v *Validator) IsAllowed(origin string) bool {
	if origin == "" {
		return false
	}
	for _, entry := range v.allowed {
		if match(entry, origin) {
			return true
		}
	}
	return false
}

// match compares origin against a single allow-list entry. A wildcard
// stands for any non-empty run of characters anchored to the literal
// remainder, so "https://*.example.com" accepts "https://a.example.com"
// but not "https://example.com" (empty segment) or
// "https://a.example.com.evil.net" (suffix not anchored).
func match(pattern, origin string) bool {
	star := strings.IndexByte(pattern, '*')
	if star < 0 {
		return pattern == origin
	}
	// A second wildcard makes the entry invalid rather than permissive.
	if strings.IndexByte(pattern[star+1:], '*') >= 0 {
		return false
	}

	prefix, suffix := pattern[:star], pattern[star+1:]
	if len(origin) <= len(prefix)+len(suffix) {
		return false
	}
	return strings.HasPrefix(origin, prefix) && strings.HasSuffix(origin, suffix)
}
