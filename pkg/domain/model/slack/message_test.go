package slack_test

import (
	"context"
	"testing"
	"time"

	"github.com/finops-lab/compliancebot/pkg/domain/model/slack"
	"github.com/m-mizutani/gt"
	"github.com/slack-go/slack/slackevents"
)

func TestNewMessage_MessageEvent(t *testing.T) {
	ctx := context.Background()

	event := &slackevents.EventsAPIEvent{
		Type:   slackevents.CallbackEvent,
		TeamID: "T123456",
		InnerEvent: slackevents.EventsAPIInnerEvent{
			Type: "message",
			Data: &slackevents.MessageEvent{
				Type:           "message",
				User:           "U123456",
				Text:           "run fraud detection",
				TimeStamp:      "1234567890.123456",
				Channel:        "C123456",
				EventTimeStamp: "1234567890.123456",
			},
		},
	}

	msg := slack.NewMessage(ctx, event, nil)
	gt.Value(t, msg).NotNil().Required()

	gt.Value(t, msg.ID()).Equal("1234567890.123456")
	gt.Value(t, msg.ChannelID()).Equal("C123456")
	gt.Value(t, msg.TeamID()).Equal("T123456")
	gt.Value(t, msg.UserID()).Equal("U123456")
	gt.Value(t, msg.Text()).Equal("run fraud detection")
	gt.Value(t, msg.ThreadTS()).Equal("")
	gt.Bool(t, msg.FromBot()).False()
	gt.Bool(t, msg.HasFiles()).False()
}

func TestNewMessage_FilesFromRawBody(t *testing.T) {
	ctx := context.Background()

	event := &slackevents.EventsAPIEvent{
		Type:   slackevents.CallbackEvent,
		TeamID: "T123456",
		InnerEvent: slackevents.EventsAPIInnerEvent{
			Type: "message",
			Data: &slackevents.MessageEvent{
				Type:      "message",
				User:      "U123456",
				Text:      "validate this policy",
				TimeStamp: "1234567890.123456",
				Channel:   "C123456",
			},
		},
	}

	rawBody := []byte(`{
		"event": {
			"type": "message",
			"files": [
				{
					"id": "F001",
					"name": "policy.pdf",
					"mimetype": "application/pdf",
					"filetype": "pdf",
					"size": 2048,
					"url_private": "https://files.slack.com/private/policy.pdf",
					"url_private_download": "https://files.slack.com/download/policy.pdf"
				}
			]
		}
	}`)

	msg := slack.NewMessage(ctx, event, rawBody)
	gt.Value(t, msg).NotNil().Required()

	gt.Bool(t, msg.HasFiles()).True()
	gt.Array(t, msg.Files()).Length(1).Required()

	file := msg.Files()[0]
	gt.Value(t, file.ID()).Equal("F001")
	gt.Value(t, file.Name()).Equal("policy.pdf")
	gt.Value(t, file.Mimetype()).Equal("application/pdf")
	gt.Value(t, file.Size()).Equal(2048)
	gt.Value(t, file.DownloadURL()).Equal("https://files.slack.com/download/policy.pdf")
}

func TestMessage_ThreadAnchor(t *testing.T) {
	t.Run("reply anchors to its thread", func(t *testing.T) {
		msg := slack.NewMessageFromData(
			"1700000001.000200", "C1", "1700000000.000100", "T1", "U1",
			"run fraud detection", "1700000001.000200", nil, time.Now(),
		)
		gt.Value(t, msg.ThreadID().AnchorTS).Equal("1700000000.000100")
		gt.Value(t, msg.ReplyTS()).Equal("1700000000.000100")
	})

	t.Run("thread starter anchors to itself", func(t *testing.T) {
		msg := slack.NewMessageFromData(
			"1700000001.000200", "C1", "", "T1", "U1",
			"audit", "1700000001.000200", nil, time.Now(),
		)
		gt.Value(t, msg.ThreadID().AnchorTS).Equal("1700000001.000200")
		gt.Value(t, msg.ReplyTS()).Equal("1700000001.000200")
	})
}

func TestNewMessage_BotMessage(t *testing.T) {
	ctx := context.Background()

	event := &slackevents.EventsAPIEvent{
		Type:   slackevents.CallbackEvent,
		TeamID: "T123456",
		InnerEvent: slackevents.EventsAPIInnerEvent{
			Type: "message",
			Data: &slackevents.MessageEvent{
				Type:      "message",
				BotID:     "B999",
				Text:      "📊 Starting compliance audit...",
				TimeStamp: "1234567890.123456",
				Channel:   "C123456",
			},
		},
	}

	msg := slack.NewMessage(ctx, event, nil)
	gt.Value(t, msg).NotNil().Required()
	gt.Bool(t, msg.FromBot()).True()
}

func TestNewMessage_UnsupportedEvent(t *testing.T) {
	ctx := context.Background()

	event := &slackevents.EventsAPIEvent{
		Type: slackevents.CallbackEvent,
		InnerEvent: slackevents.EventsAPIInnerEvent{
			Type: "reaction_added",
			Data: &slackevents.ReactionAddedEvent{},
		},
	}

	gt.Value(t, slack.NewMessage(ctx, event, nil)).Nil()
}
