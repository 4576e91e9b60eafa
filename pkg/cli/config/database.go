package config

import "github.com/urfave/cli/v3"

// Database holds SQLite database configuration
type Database struct {
	Path string
}

// Flags returns CLI flags for database configuration
func (c *Database) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "db-path",
			Usage:       "Path to SQLite database file",
			Value:       "gh-weebhooks.db",
			Destination: &c.Path,
			Sources:     cli.EnvVars("GHWH_DB_PATH"),
		},
	}
}
