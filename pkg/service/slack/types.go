package slack

import (
	"context"

	"github.com/slack-go/slack"
)

// Service provides the narrow Slack API surface the workflows post
// through. All outbound calls are context-bound.
type Service interface {
	// PostMessage posts a plain text message to a channel, anchored to a
	// thread when threadTS is non-empty. Returns the message timestamp.
	PostMessage(ctx context.Context, channelID, text, threadTS string) (string, error)

	// PostBlocks posts a Block Kit message to a channel. The text
	// parameter is used as a fallback for notifications.
	PostBlocks(ctx context.Context, channelID string, blocks []slack.Block, text, threadTS string) (string, error)

	// DownloadFile fetches a file from its private download URL using
	// the bot credentials.
	DownloadFile(ctx context.Context, downloadURL string) ([]byte, error)
}
