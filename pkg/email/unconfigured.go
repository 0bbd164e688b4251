package email

import "context"

type unconfiguredSender struct{}

// NewUnconfigured returns a Sender whose Send always fails with
// ErrNotConfigured. The gateway falls back to it when transport
// credentials are absent, so a misconfigured deployment serves requests
// and fails each delivery closed instead of refusing to start.
func NewUnconfigured() Sender {
	return unconfiguredSender{}
}

func (unconfiguredSender) Send(ctx context.Context, params SendParams) (string, error) {
	return "", ErrNotConfigured
}
