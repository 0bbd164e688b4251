// Package origin validates the Origin header of cross-site submissions
// against a configured allow-list, supporting exact entries and entries
// with a single wildcard segment.
package origin
