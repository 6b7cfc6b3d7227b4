package config

import (
	"log/slog"

	"github.com/secmon-lab/odkpulse/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds the Slack notification settings
type Slack struct {
	OAuthToken string
	ChannelID  string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack bot token used to post the summary",
			Category:    "Slack",
			Sources:     cli.EnvVars("ODKPULSE_SLACK_OAUTH_TOKEN"),
			Destination: &s.OAuthToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID to post the summary to",
			Category:    "Slack",
			Sources:     cli.EnvVars("ODKPULSE_SLACK_CHANNEL"),
			Destination: &s.ChannelID,
		},
	}
}

// IsConfigured checks if Slack notification is enabled
func (s *Slack) IsConfigured() bool {
	return s.OAuthToken != "" || s.ChannelID != ""
}

// Configure creates the Slack notifier, or nil when Slack is not configured
func (s *Slack) Configure() (*slack.Service, error) {
	if !s.IsConfigured() {
		return nil, nil
	}
	return slack.New(s.OAuthToken, s.ChannelID)
}

// LogValue returns structured log value
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_oauth_token", s.OAuthToken != ""),
		slog.String("channel", s.ChannelID),
	)
}
