package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"
)

// Server holds the status API settings
type Server struct {
	Addr     string
	APIToken string
}

// Flags returns CLI flags for Server configuration
func (s *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Listen address of the status API, disabled when empty",
			Category:    "Server",
			Sources:     cli.EnvVars("ODKPULSE_ADDR"),
			Destination: &s.Addr,
		},
		&cli.StringFlag{
			Name:        "api-token",
			Usage:       "Bearer token required to trigger runs over HTTP",
			Category:    "Server",
			Sources:     cli.EnvVars("ODKPULSE_API_TOKEN"),
			Destination: &s.APIToken,
		},
	}
}

// IsConfigured checks if the status API is enabled
func (s *Server) IsConfigured() bool {
	return s.Addr != ""
}

// LogValue returns structured log value
func (s Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", s.Addr),
		slog.Bool("has_api_token", s.APIToken != ""),
	)
}
