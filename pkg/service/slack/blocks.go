package slack

import (
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/slack-go/slack"
)

// maxSectionText is Slack's limit for the text of a section block
const maxSectionText = 3000

// BlockBuilder provides methods to build Slack message blocks
type BlockBuilder struct{}

// NewBlockBuilder creates a new BlockBuilder instance
func NewBlockBuilder() *BlockBuilder {
	return &BlockBuilder{}
}

// BuildSummaryBlocks renders a notification as a header and one or more
// section blocks
func (b *BlockBuilder) BuildSummaryBlocks(n *model.Notification) []slack.Block {
	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, n.Subject, true, false),
		),
	}

	for _, chunk := range splitText(n.Body, maxSectionText) {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, chunk, false, false),
			nil,
			nil,
		))
	}
	return blocks
}

// splitText cuts text into chunks of at most limit runes, preferring line
// breaks as cut points
func splitText(text string, limit int) []string {
	runes := []rune(text)
	var chunks []string
	for len(runes) > limit {
		cut := limit
		for i := limit - 1; i > 0; i-- {
			if runes[i] == '\n' {
				cut = i + 1
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}
