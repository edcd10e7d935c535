package models

// ChannelMessage is appended under channelMessages/{channelId}.
type ChannelMessage struct {
	UID   string `json:"uid"`
	Owner string `json:"owner"`
	Text  string `json:"text"`
	// CreatedOn is an RFC 3339 timestamp taken from the sender's clock.
	CreatedOn string `json:"createdOn"`
}

// ChannelMessageEntry is a ChannelMessage together with its generated key.
type ChannelMessageEntry struct {
	ID string `json:"id"`
	ChannelMessage
}

// Record is a free-form stored object.
type Record map[string]interface{}

// String returns the string stored under key, or "".
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// PrivateMessage is stored at privateMessage/{messageId}.
type PrivateMessage struct {
	MessageID string `json:"messageId"`
	Data      Record `json:"data"`
}

// FieldPrecedence decides which side wins when caller data and the session
// identity both set uid or username on a private message.
type FieldPrecedence string

const (
	// PrecedenceIdentity keeps the session's uid and username.
	PrecedenceIdentity FieldPrecedence = "identity"
	// PrecedenceCaller lets caller supplied fields overwrite the identity fields.
	PrecedenceCaller FieldPrecedence = "caller"
)
