package fluxcrystal

// MessageReference points at another message, used either to reply to it
// (ReferenceTypeReply) or forward it to another channel
// (ReferenceTypeForward).
type MessageReference struct {
	Type      int    `json:"type"`
	MessageID string `json:"message_id"`
	ChannelID string `json:"channel_id"`
}

// Reference type constants for MessageReference.Type.
const (
	ReferenceTypeReply   = 0
	ReferenceTypeForward = 1
)

// EmbedField is one field of a received Embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// EmbedFooter, EmbedImage, EmbedAuthor, etc. are loosely typed on the wire;
// the library decodes them as opaque JSON the caller can re-marshal if it
// cares about a specific embed provider's extra fields.

// Embed is a rich embed as received on an inbound Message. To build an
// outbound embed, use RichEmbed (embed.go) instead — this type is a passive
// decode target, not a builder.
type Embed struct {
	Title       string                 `json:"title,omitempty"`
	Type        string                 `json:"type,omitempty"`
	Description string                 `json:"description,omitempty"`
	URL         string                 `json:"url,omitempty"`
	Timestamp   string                 `json:"timestamp,omitempty"`
	Color       int                    `json:"color,omitempty"`
	Footer      map[string]interface{} `json:"footer,omitempty"`
	Image       map[string]interface{} `json:"image,omitempty"`
	Thumbnail   map[string]interface{} `json:"thumbnail,omitempty"`
	Video       map[string]interface{} `json:"video,omitempty"`
	Provider    map[string]interface{} `json:"provider,omitempty"`
	Author      map[string]interface{} `json:"author,omitempty"`
	Fields      []EmbedField           `json:"fields,omitempty"`
}

// Message is a chat message.
type Message struct {
	ID              string       `json:"id"`
	ChannelID       string       `json:"channel_id"`
	GuildID         string       `json:"guild_id,omitempty"`
	Author          User         `json:"author"`
	Content         string       `json:"content,omitempty"`
	Timestamp       string       `json:"timestamp"`
	EditedTimestamp string       `json:"edited_timestamp,omitempty"`
	Type            int          `json:"type,omitempty"`
	TTS             bool         `json:"tts,omitempty"`
	MentionEveryone bool         `json:"mention_everyone,omitempty"`
	Pinned          bool         `json:"pinned,omitempty"`
	Nonce           string       `json:"nonce,omitempty"`
	WebhookID       string       `json:"webhook_id,omitempty"`
	Flags           int          `json:"flags,omitempty"`
	Attachments     []Attachment `json:"attachments,omitempty"`
	Embeds          []Embed      `json:"embeds,omitempty"`
}

// IsWebhook reports whether this message was sent by a webhook rather than
// a user or bot account.
func (m Message) IsWebhook() bool {
	return m.WebhookID != ""
}

// IntoReply builds a MessageReference that, when passed as
// CreateMessageParams.MessageReference, replies to this message.
func (m Message) IntoReply() MessageReference {
	return MessageReference{Type: ReferenceTypeReply, MessageID: m.ID, ChannelID: m.ChannelID}
}

// IntoForward builds a MessageReference that, when passed as
// CreateMessageParams.MessageReference, forwards this message to another
// channel.
func (m Message) IntoForward() MessageReference {
	return MessageReference{Type: ReferenceTypeForward, MessageID: m.ID, ChannelID: m.ChannelID}
}
