package email

// Config holds mail transport configuration. The Postmark tokens are
// optional at load time so a misconfigured deployment starts up and
// fails closed per request instead of crash-looping; NewPostmarkClient
// enforces their presence when the real transport is constructed.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL"`
	RecipientEmail       string `env:"RECIPIENT_EMAIL"`
}
