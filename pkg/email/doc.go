// Package email provides a provider-agnostic interface for delivering
// one rendered message pair (HTML + plain text) to a single recipient.
//
// Three implementations cover the deployment spectrum:
//   - Postmark client for production delivery (returns the
//     transport-assigned MessageID, tracking disabled because bodies
//     carry patient data)
//   - DevSender for local development (writes messages to disk)
//   - Unconfigured sender that fails every send with ErrNotConfigured,
//     used when transport credentials are missing so the service fails
//     closed per request rather than crashing at startup
//
// All implementations validate parameters before sending and surface
// sentinel errors checkable with errors.Is.
package email
