package fluxcrystal

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Cache holds the in-memory gateway state: guilds, channels, and users the
// connection has observed since the Bot was created; reconnects and a fresh
// IDENTIFY do not clear it. It carries no TTL or
// eviction — entries live until a DELETE event removes them or the process
// exits.
type Cache struct {
	mu       sync.RWMutex
	guilds   map[string]Guild
	channels map[string]Channel
	users    map[string]User
	me       *User
	logger   *slog.Logger
}

func newCache(logger *slog.Logger) *Cache {
	return &Cache{
		guilds:   make(map[string]Guild),
		channels: make(map[string]Channel),
		users:    make(map[string]User),
		logger:   logger,
	}
}

// GetGuild returns the cached guild by ID, if known.
func (c *Cache) GetGuild(id string) (Guild, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	g, ok := c.guilds[id]
	return g, ok
}

// GetChannel returns the cached channel by ID, if known.
func (c *Cache) GetChannel(id string) (Channel, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ch, ok := c.channels[id]
	return ch, ok
}

// GetUser returns the cached user by ID, if known.
func (c *Cache) GetUser(id string) (User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.users[id]
	return u, ok
}

// Me returns the authenticated user, populated once READY has been
// received.
func (c *Cache) Me() (User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.me == nil {
		return User{}, false
	}
	return *c.me, true
}

// update applies one dispatch event's effect on the cache. Failures are
// logged and swallowed — a malformed payload for one event must never
// block the dispatch of sibling updates or the handler fan-out.
func (c *Cache) update(eventName string, raw json.RawMessage) {
	if err := c.apply(eventName, raw); err != nil {
		c.logger.Warn("cache update failed", "event", eventName, "error", err)
	}
}

func (c *Cache) apply(eventName string, raw json.RawMessage) error {
	switch eventName {
	case eventReady:
		var payload struct {
			User   User    `json:"user"`
			Guilds []Guild `json:"guilds"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return err
		}
		c.mu.Lock()
		c.me = &payload.User
		c.users[payload.User.ID] = payload.User
		for _, g := range payload.Guilds {
			if g.Unavailable {
				continue
			}
			c.guilds[g.ID] = g
		}
		c.mu.Unlock()

	case eventGuildCreate, eventGuildUpdate:
		var payload struct {
			Guild
			Channels []Channel     `json:"channels"`
			Members  []GuildMember `json:"members"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return err
		}
		c.mu.Lock()
		c.guilds[payload.ID] = payload.Guild
		for _, ch := range payload.Channels {
			ch.GuildID = payload.ID
			c.channels[ch.ID] = ch
		}
		for _, m := range payload.Members {
			c.users[m.User.ID] = m.User
		}
		c.mu.Unlock()

	case eventGuildDelete:
		var payload struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return err
		}
		c.mu.Lock()
		delete(c.guilds, payload.ID)
		c.mu.Unlock()

	case eventChannelCreate, eventChannelUpdate:
		var ch Channel
		if err := json.Unmarshal(raw, &ch); err != nil {
			return err
		}
		c.mu.Lock()
		c.channels[ch.ID] = ch
		c.mu.Unlock()

	case eventChannelDelete:
		var payload struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return err
		}
		c.mu.Lock()
		delete(c.channels, payload.ID)
		c.mu.Unlock()

	case eventMessageCreate, eventMessageUpdate:
		var m Message
		if err := json.Unmarshal(raw, &m); err != nil {
			return err
		}
		c.mu.Lock()
		c.users[m.Author.ID] = m.Author
		c.mu.Unlock()

	case eventGuildMemberAdd, eventGuildMemberUpdate:
		var gm GuildMember
		if err := json.Unmarshal(raw, &gm); err != nil {
			return err
		}
		c.mu.Lock()
		c.users[gm.User.ID] = gm.User
		c.mu.Unlock()
	}
	return nil
}
