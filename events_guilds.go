package fluxcrystal

import "encoding/json"

// GuildCreateEvent is dispatched when the bot joins a guild, and once per
// guild during the initial gateway handshake for guilds it was already in.
type GuildCreateEvent struct {
	Guild
}

// EventName implements Event.
func (GuildCreateEvent) EventName() string { return eventGuildCreate }

// GuildUpdateEvent is dispatched when a guild's settings change.
type GuildUpdateEvent struct {
	Guild
}

// EventName implements Event.
func (GuildUpdateEvent) EventName() string { return eventGuildUpdate }

// GuildDeleteEvent is dispatched when the bot is removed from a guild, or
// when a guild becomes temporarily unavailable (Unavailable is true in the
// latter case — that is not a removal and membership should be retained).
type GuildDeleteEvent struct {
	ID          string `json:"id"`
	Unavailable bool   `json:"unavailable,omitempty"`
}

// EventName implements Event.
func (GuildDeleteEvent) EventName() string { return eventGuildDelete }

// GuildMemberAddEvent is dispatched when a user joins a guild.
type GuildMemberAddEvent struct {
	GuildID string `json:"guild_id"`
	GuildMember
}

// EventName implements Event.
func (GuildMemberAddEvent) EventName() string { return eventGuildMemberAdd }

// GuildMemberRemoveEvent is dispatched when a user leaves or is removed
// from a guild.
type GuildMemberRemoveEvent struct {
	GuildID string `json:"guild_id"`
	User    User   `json:"user"`
}

// EventName implements Event.
func (GuildMemberRemoveEvent) EventName() string { return eventGuildMemberRemove }

// GuildMemberUpdateEvent is dispatched when a member's nickname, roles, or
// timeout changes.
type GuildMemberUpdateEvent struct {
	GuildID string `json:"guild_id"`
	GuildMember
}

// EventName implements Event.
func (GuildMemberUpdateEvent) EventName() string { return eventGuildMemberUpdate }

// GuildBanAddEvent is dispatched when a user is banned from a guild.
type GuildBanAddEvent struct {
	GuildID string `json:"guild_id"`
	User    User   `json:"user"`
}

// EventName implements Event.
func (GuildBanAddEvent) EventName() string { return eventGuildBanAdd }

// GuildBanRemoveEvent is dispatched when a ban is lifted.
type GuildBanRemoveEvent struct {
	GuildID string `json:"guild_id"`
	User    User   `json:"user"`
}

// EventName implements Event.
func (GuildBanRemoveEvent) EventName() string { return eventGuildBanRemove }

func init() {
	registerEvent(eventGuildCreate, func(raw json.RawMessage) (Event, error) {
		var ev GuildCreateEvent
		if err := json.Unmarshal(raw, &ev.Guild); err != nil {
			return nil, err
		}
		return &ev, nil
	})
	registerEvent(eventGuildUpdate, func(raw json.RawMessage) (Event, error) {
		var ev GuildUpdateEvent
		if err := json.Unmarshal(raw, &ev.Guild); err != nil {
			return nil, err
		}
		return &ev, nil
	})
	registerEvent(eventGuildDelete, func(raw json.RawMessage) (Event, error) {
		var ev GuildDeleteEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return &ev, nil
	})
	registerEvent(eventGuildMemberAdd, func(raw json.RawMessage) (Event, error) {
		var ev GuildMemberAddEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &ev.GuildMember); err != nil {
			return nil, err
		}
		return &ev, nil
	})
	registerEvent(eventGuildMemberRemove, func(raw json.RawMessage) (Event, error) {
		var ev GuildMemberRemoveEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return &ev, nil
	})
	registerEvent(eventGuildMemberUpdate, func(raw json.RawMessage) (Event, error) {
		var ev GuildMemberUpdateEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &ev.GuildMember); err != nil {
			return nil, err
		}
		return &ev, nil
	})
	registerEvent(eventGuildBanAdd, func(raw json.RawMessage) (Event, error) {
		var ev GuildBanAddEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return &ev, nil
	})
	registerEvent(eventGuildBanRemove, func(raw json.RawMessage) (Event, error) {
		var ev GuildBanRemoveEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return &ev, nil
	})
}
