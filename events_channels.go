package fluxcrystal

import "encoding/json"

// ChannelCreateEvent is dispatched when a channel is created or becomes
// visible to the bot.
type ChannelCreateEvent struct {
	Channel
}

// EventName implements Event.
func (ChannelCreateEvent) EventName() string { return eventChannelCreate }

// ChannelUpdateEvent is dispatched when a channel's settings change.
type ChannelUpdateEvent struct {
	Channel
}

// EventName implements Event.
func (ChannelUpdateEvent) EventName() string { return eventChannelUpdate }

// ChannelDeleteEvent is dispatched when a channel is deleted.
type ChannelDeleteEvent struct {
	ID      string `json:"id"`
	GuildID string `json:"guild_id,omitempty"`
}

// EventName implements Event.
func (ChannelDeleteEvent) EventName() string { return eventChannelDelete }

// TypingStartEvent is dispatched when a user starts typing in a channel.
type TypingStartEvent struct {
	ChannelID string `json:"channel_id"`
	GuildID   string `json:"guild_id,omitempty"`
	UserID    string `json:"user_id"`
	Timestamp int64  `json:"timestamp"`
}

// EventName implements Event.
func (TypingStartEvent) EventName() string { return eventTypingStart }

func init() {
	registerEvent(eventChannelCreate, func(raw json.RawMessage) (Event, error) {
		var ev ChannelCreateEvent
		if err := json.Unmarshal(raw, &ev.Channel); err != nil {
			return nil, err
		}
		return &ev, nil
	})
	registerEvent(eventChannelUpdate, func(raw json.RawMessage) (Event, error) {
		var ev ChannelUpdateEvent
		if err := json.Unmarshal(raw, &ev.Channel); err != nil {
			return nil, err
		}
		return &ev, nil
	})
	registerEvent(eventChannelDelete, func(raw json.RawMessage) (Event, error) {
		var ev ChannelDeleteEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return &ev, nil
	})
	registerEvent(eventTypingStart, func(raw json.RawMessage) (Event, error) {
		var ev TypingStartEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return &ev, nil
	})
}
