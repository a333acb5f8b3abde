package slack

import (
	"bytes"
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// maxFileSize caps downloaded policy documents at 20MB
const maxFileSize = 20 * 1024 * 1024

// ErrFileTooLarge is returned when a download exceeds the size cap
var ErrFileTooLarge = goerr.New("file exceeds download size cap")

// limitWriter stops accepting bytes once the cap would be exceeded, so
// an oversized file aborts the transfer instead of being buffered whole.
type limitWriter struct {
	buf   bytes.Buffer
	limit int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	if w.buf.Len()+len(p) > w.limit {
		return 0, goerr.Wrap(ErrFileTooLarge, "download aborted", goerr.V("limit", w.limit))
	}
	return w.buf.Write(p)
}

func (w *limitWriter) Bytes() []byte {
	return w.buf.Bytes()
}

// client implements Service interface
type client struct {
	api         *slack.Client
	maxFileSize int
}

// Option is a functional option for client configuration
type Option func(*client)

// WithMaxFileSize overrides the download size cap
func WithMaxFileSize(size int) Option {
	return func(c *client) {
		c.maxFileSize = size
	}
}

// New creates a new Slack service with the provided bot token
func New(token string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	c := &client{
		api:         slack.New(token),
		maxFileSize: maxFileSize,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// PostMessage posts a plain text message into the given thread
func (c *client) PostMessage(ctx context.Context, channelID, text, threadTS string) (string, error) {
	opts := []slack.MsgOption{
		slack.MsgOptionText(text, false),
	}
	if threadTS != "" {
		opts = append(opts, slack.MsgOptionTS(threadTS))
	}

	_, ts, err := c.api.PostMessageContext(ctx, channelID, opts...)
	if err != nil {
		return "", goerr.Wrap(err, "failed to post message", goerr.V("channel_id", channelID))
	}
	return ts, nil
}

// PostBlocks posts a Block Kit message into the given thread
func (c *client) PostBlocks(ctx context.Context, channelID string, blocks []slack.Block, text, threadTS string) (string, error) {
	opts := []slack.MsgOption{
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(text, false),
	}
	if threadTS != "" {
		opts = append(opts, slack.MsgOptionTS(threadTS))
	}

	_, ts, err := c.api.PostMessageContext(ctx, channelID, opts...)
	if err != nil {
		return "", goerr.Wrap(err, "failed to post blocks", goerr.V("channel_id", channelID))
	}
	return ts, nil
}

// DownloadFile fetches a private Slack file with the bot credentials
func (c *client) DownloadFile(ctx context.Context, downloadURL string) ([]byte, error) {
	if downloadURL == "" {
		return nil, goerr.New("download URL is required")
	}

	w := &limitWriter{limit: c.maxFileSize}
	if err := c.api.GetFileContext(ctx, downloadURL, w); err != nil {
		return nil, goerr.Wrap(err, "failed to download file", goerr.V("url", downloadURL))
	}

	return w.Bytes(), nil
}
