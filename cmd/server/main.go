package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/rxrelay/rxrelay/internal/gateway"
	"github.com/rxrelay/rxrelay/pkg/config"
	"github.com/rxrelay/rxrelay/pkg/email"
	"github.com/rxrelay/rxrelay/pkg/httpserver"
	"github.com/rxrelay/rxrelay/pkg/logger"
	"github.com/rxrelay/rxrelay/pkg/ratelimit"
)

type serverConfig struct {
	Addr       string `env:"ADDR" envDefault:":8080"`
	LogFormat  string `env:"LOG_FORMAT" envDefault:"json"`
	MailDevDir string `env:"MAIL_DEV_DIR"`
}

func main() {
	var srvCfg serverConfig
	config.MustLoad(&srvCfg)

	var gwCfg gateway.Config
	config.MustLoad(&gwCfg)

	var mailCfg email.Config
	config.MustLoad(&mailCfg)

	log := logger.New(
		logger.WithService("rxrelay"),
		logger.WithFormat(logger.Format(srvCfg.LogFormat)),
	)

	// Missing transport credentials must not crash the service; every
	// submission fails closed with a server error instead.
	sender := newSender(srvCfg, mailCfg, log)

	limiter, err := ratelimit.NewSlidingWindow(ratelimit.NewMemoryStore(), gwCfg.RateLimitMax, gwCfg.RateLimitWindow)
	if err != nil {
		log.Error("invalid rate limit configuration", logger.Error(err))
		os.Exit(1)
	}

	gw := gateway.New(gwCfg, log, limiter, sender, mailCfg.RecipientEmail)

	srv := httpserver.New(
		httpserver.WithAddr(srvCfg.Addr),
		httpserver.WithLogger(log),
	)
	if err := srv.Run(context.Background(), gw.Router()); err != nil {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func newSender(srvCfg serverConfig, mailCfg email.Config, log *slog.Logger) email.Sender {
	if srvCfg.MailDevDir != "" {
		log.Info("using development mail sender", logger.Component("mailer"))
		return email.NewDevSender(srvCfg.MailDevDir)
	}

	sender, err := email.NewPostmarkClient(mailCfg)
	if err != nil {
		log.Error("mail transport misconfigured, submissions will fail closed",
			logger.Component("mailer"),
			logger.Error(err),
		)
		return email.NewUnconfigured()
	}
	return sender
}
