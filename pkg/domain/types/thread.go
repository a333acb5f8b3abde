package types

// ThreadID identifies a conversation thread by its channel and the
// timestamp of the message that anchors the thread.
type ThreadID struct {
	ChannelID string
	AnchorTS  string
}

// NewThreadID builds a thread identifier. The anchor is the thread
// timestamp when the message belongs to a thread, otherwise the
// message's own timestamp (the message starts the thread).
func NewThreadID(channelID, threadTS, eventTS string) ThreadID {
	anchor := threadTS
	if anchor == "" {
		anchor = eventTS
	}
	return ThreadID{
		ChannelID: channelID,
		AnchorTS:  anchor,
	}
}

// String returns the string representation of the thread ID
func (x ThreadID) String() string {
	return x.ChannelID + "/" + x.AnchorTS
}
