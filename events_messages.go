package fluxcrystal

import "encoding/json"

// MessageCreateEvent is dispatched for every new message the bot can see,
// including its own.
type MessageCreateEvent struct {
	Message
}

// EventName implements Event.
func (MessageCreateEvent) EventName() string { return eventMessageCreate }

// IsBot reports whether the author is a bot account.
func (e MessageCreateEvent) IsBot() bool { return e.Author.Bot }

// IsHuman reports whether the author is neither a bot nor a webhook.
func (e MessageCreateEvent) IsHuman() bool { return !e.Author.Bot && !e.IsWebhook() }

// MessageUpdateEvent is dispatched when a message's content, embeds, or
// pinned state changes. Fields the server did not include in the update
// (e.g. an embed-only edit) decode to their zero value, not the message's
// prior value — callers needing the full prior state should consult a
// Cache-backed store of their own.
type MessageUpdateEvent struct {
	Message
}

// EventName implements Event.
func (MessageUpdateEvent) EventName() string { return eventMessageUpdate }

// MessageDeleteEvent is dispatched when a message is deleted. Only
// identifiers are guaranteed; the deleted content is not included.
type MessageDeleteEvent struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
	GuildID   string `json:"guild_id,omitempty"`
}

// EventName implements Event.
func (MessageDeleteEvent) EventName() string { return eventMessageDelete }

func init() {
	registerEvent(eventMessageCreate, func(raw json.RawMessage) (Event, error) {
		var ev MessageCreateEvent
		if err := json.Unmarshal(raw, &ev.Message); err != nil {
			return nil, err
		}
		return &ev, nil
	})
	registerEvent(eventMessageUpdate, func(raw json.RawMessage) (Event, error) {
		var ev MessageUpdateEvent
		if err := json.Unmarshal(raw, &ev.Message); err != nil {
			return nil, err
		}
		return &ev, nil
	})
	registerEvent(eventMessageDelete, func(raw json.RawMessage) (Event, error) {
		var ev MessageDeleteEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return &ev, nil
	})
}
