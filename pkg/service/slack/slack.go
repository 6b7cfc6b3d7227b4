package slack

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/slack-go/slack"
)

// Service posts report summaries to a Slack channel
type Service struct {
	client    *slack.Client
	channelID string
	builder   *BlockBuilder
}

// New creates a new Slack service posting to channelID. Options are passed to
// the slack-go client, e.g. slack.OptionAPIURL.
func New(token, channelID string, options ...slack.Option) (*Service, error) {
	if token == "" || channelID == "" {
		return nil, goerr.New("Slack token and channel are required", goerr.T(model.ErrTagConfig))
	}
	return &Service{
		client:    slack.New(token, options...),
		channelID: channelID,
		builder:   NewBlockBuilder(),
	}, nil
}

// Name implements interfaces.Notifier
func (s *Service) Name() string {
	return "slack"
}

// Notify implements interfaces.Notifier. Recipients are ignored; the message
// goes to the configured channel.
func (s *Service) Notify(ctx context.Context, n *model.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	channel, timestamp, err := s.PostMessage(ctx, s.channelID,
		slack.MsgOptionText(n.Subject, false),
		slack.MsgOptionBlocks(s.builder.BuildSummaryBlocks(n)...),
	)
	if err != nil {
		return err
	}

	ctxlog.From(ctx).Info("Summary posted to Slack",
		"channel", channel,
		"ts", timestamp)
	return nil
}

// PostMessage sends a message to a Slack channel
func (s *Service) PostMessage(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	channel, timestamp, err := s.client.PostMessageContext(ctx, channelID, options...)
	if err != nil {
		return "", "", goerr.Wrap(err, "failed to post message to Slack",
			goerr.T(model.ErrTagTransport),
			goerr.V("channel", channelID))
	}
	return channel, timestamp, nil
}

// AuthTestContext tests authentication and returns basic information about the team and bot
func (s *Service) AuthTestContext(ctx context.Context) (*slack.AuthTestResponse, error) {
	resp, err := s.client.AuthTestContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to authenticate with Slack", goerr.T(model.ErrTagTransport))
	}
	return resp, nil
}
