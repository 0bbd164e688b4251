// Command qrgen mints a time-limited form-session token, embeds it in
// the form URL, and writes the QR code for printing. The token payload
// is an opaque identifier plus expiry; no patient data is ever encoded.
package main

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/rxrelay/rxrelay/pkg/config"
	"github.com/rxrelay/rxrelay/pkg/qrcode"
	"github.com/rxrelay/rxrelay/pkg/token"
)

type qrgenConfig struct {
	FormURL       string        `env:"FORM_URL,required"`
	SessionSecret string        `env:"SESSION_SECRET,required"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
}

func main() {
	out := flag.String("out", "qrcode.png", "output PNG path ('-' prints a base64 data URL instead)")
	size := flag.Int("size", 256, "QR code size in pixels")
	flag.Parse()

	var cfg qrgenConfig
	config.MustLoad(&cfg)

	claims := token.NewSession(cfg.SessionTTL)
	tok, err := token.Generate(claims, cfg.SessionSecret)
	if err != nil {
		fmt.Fprintf(os.Stderr, "qrgen: failed to generate session token: %v\n", err)
		os.Exit(1)
	}

	formURL, err := url.Parse(cfg.FormURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "qrgen: invalid form URL: %v\n", err)
		os.Exit(1)
	}
	q := formURL.Query()
	q.Set("t", tok)
	formURL.RawQuery = q.Encode()

	if *out == "-" {
		dataURL, err := qrcode.GenerateDataURL(formURL.String(), *size)
		if err != nil {
			fmt.Fprintf(os.Stderr, "qrgen: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(dataURL)
		return
	}

	png, err := qrcode.Generate(formURL.String(), *size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "qrgen: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, png, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "qrgen: failed to write %s: %v\n", *out, err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s (session %s, expires %s)\n",
		*out, claims.ID, time.Unix(claims.ExpiresAt, 0).Format(time.RFC3339))
}
