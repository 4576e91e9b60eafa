package config

import "github.com/urfave/cli/v3"

// Telegram holds Telegram API configuration
type Telegram struct {
	APIBase string
}

// Flags returns CLI flags for Telegram configuration
func (c *Telegram) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "telegram-api-base",
			Usage:       "Telegram Bot API base URL (for local API servers)",
			Value:       "https://api.telegram.org",
			Destination: &c.APIBase,
			Sources:     cli.EnvVars("GHWH_TELEGRAM_API_BASE"),
		},
	}
}
