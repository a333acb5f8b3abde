package slack

import (
	"context"
	"encoding/json"
	"time"

	"github.com/finops-lab/compliancebot/pkg/domain/types"
	"github.com/slack-go/slack/slackevents"
)

// Message represents an inbound Slack message domain model
type Message struct {
	id        string
	channelID string
	threadTS  string
	teamID    string
	userID    string
	botID     string
	subType   string
	text      string
	eventTS   string
	files     []File
	createdAt time.Time
}

// eventEnvelope is the subset of the raw Events API payload that the
// typed slackevents structs do not expose (file attachments).
type eventEnvelope struct {
	Event struct {
		Files []fileData `json:"files"`
	} `json:"event"`
}

// NewMessage creates a new Message from a Slack Events API event.
// rawBody is the original request payload; file attachments are read
// from it directly because the typed inner event omits them.
// Returns nil for unsupported event types.
func NewMessage(ctx context.Context, ev *slackevents.EventsAPIEvent, rawBody []byte) *Message {
	if ev.Type != slackevents.CallbackEvent {
		return nil
	}

	now := time.Now()

	var msg *Message
	switch evt := ev.InnerEvent.Data.(type) {
	case *slackevents.AppMentionEvent:
		msg = &Message{
			id:        evt.TimeStamp,
			channelID: evt.Channel,
			threadTS:  evt.ThreadTimeStamp,
			teamID:    ev.TeamID,
			userID:    evt.User,
			botID:     evt.BotID,
			text:      evt.Text,
			eventTS:   evt.EventTimeStamp,
			createdAt: now,
		}
	case *slackevents.MessageEvent:
		threadTS := ""
		if evt.ThreadTimeStamp != "" && evt.ThreadTimeStamp != evt.TimeStamp {
			threadTS = evt.ThreadTimeStamp
		}
		msg = &Message{
			id:        evt.TimeStamp,
			channelID: evt.Channel,
			threadTS:  threadTS,
			teamID:    ev.TeamID,
			userID:    evt.User,
			botID:     evt.BotID,
			subType:   evt.SubType,
			text:      evt.Text,
			eventTS:   evt.EventTimeStamp,
			createdAt: now,
		}
	default:
		return nil
	}

	if len(rawBody) > 0 {
		var envelope eventEnvelope
		if err := json.Unmarshal(rawBody, &envelope); err == nil {
			for _, f := range envelope.Event.Files {
				msg.files = append(msg.files, NewFileFromData(
					f.ID, f.Name, f.Mimetype, f.Filetype, f.Size,
					f.URLPrivate, f.URLPrivateDownload,
				))
			}
		}
	}

	return msg
}

// Getters to maintain immutability
func (m *Message) ID() string {
	return m.id
}

func (m *Message) ChannelID() string {
	return m.channelID
}

func (m *Message) ThreadTS() string {
	return m.threadTS
}

func (m *Message) TeamID() string {
	return m.teamID
}

func (m *Message) UserID() string {
	return m.userID
}

func (m *Message) Text() string {
	return m.text
}

func (m *Message) EventTS() string {
	return m.eventTS
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

// Files returns the attached files
func (m *Message) Files() []File {
	return m.files
}

// HasFiles reports whether the message carries at least one attachment
func (m *Message) HasFiles() bool {
	return len(m.files) > 0
}

// FromBot reports whether the message was produced by a bot (including
// this bot's own outbound messages, which must not re-trigger workflows).
func (m *Message) FromBot() bool {
	return m.botID != "" || m.subType == "bot_message"
}

// ThreadID returns the conversation thread identifier for this message.
// The anchor is the thread timestamp when the message is a reply,
// otherwise the message's own timestamp.
func (m *Message) ThreadID() types.ThreadID {
	return types.NewThreadID(m.channelID, m.threadTS, m.id)
}

// ReplyTS returns the timestamp outbound replies should anchor to so the
// whole workflow stays in one thread.
func (m *Message) ReplyTS() string {
	if m.threadTS != "" {
		return m.threadTS
	}
	return m.id
}

// NewMessageFromData creates a Message from raw data (for tests and
// repository reconstruction)
func NewMessageFromData(id, channelID, threadTS, teamID, userID, text, eventTS string, files []File, createdAt time.Time) *Message {
	return &Message{
		id:        id,
		channelID: channelID,
		threadTS:  threadTS,
		teamID:    teamID,
		userID:    userID,
		text:      text,
		eventTS:   eventTS,
		files:     files,
		createdAt: createdAt,
	}
}
