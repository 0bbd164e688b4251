// Package sanitize neutralizes untrusted submission payloads by
// HTML-entity-encoding every string value and object key in a decoded
// JSON structure, recursing through nested sequences and mappings.
//
// The gateway applies exactly one sanitization pass per request, after
// validation and before rendering. The encoder itself does not attempt
// to detect pre-encoded input; idempotence is a pipeline property (one
// designed pass), not an encoder property.
package sanitize
