package email

import (
	"context"
	"fmt"
	"regexp"
)

// Sender delivers one rendered message pair and returns the
// transport-assigned message identifier.
type Sender interface {
	Send(ctx context.Context, params SendParams) (messageID string, err error)
}

// SendParams carries one message. BodyHTML and BodyText must contain
// the same informational content; the transport decides which one the
// recipient's client shows.
type SendParams struct {
	SendTo   string `json:"send_to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	BodyText string `json:"body_text"`
	Tag      string `json:"tag,omitempty"`
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Validate checks that the parameters are deliverable.
func (p SendParams) Validate() error {
	if p.SendTo == "" || !emailRegex.MatchString(p.SendTo) {
		return fmt.Errorf("%w: SendTo must be a valid email address", ErrInvalidParams)
	}
	if p.Subject == "" {
		return fmt.Errorf("%w: Subject is required", ErrInvalidParams)
	}
	if p.BodyHTML == "" && p.BodyText == "" {
		return fmt.Errorf("%w: at least one body is required", ErrInvalidParams)
	}
	return nil
}
