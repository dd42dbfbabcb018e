package fluxcrystal

import (
	"encoding/json"
	"log/slog"
	"testing"
)

func newTestCache() *Cache {
	return newCache(slog.Default())
}

func TestCache_ReadyPopulatesSelfAndGuilds(t *testing.T) {
	c := newTestCache()
	raw := json.RawMessage(`{
		"user": {"id": "u1", "username": "bot"},
		"guilds": [{"id": "g1", "name": "Guild One"}, {"id": "g2", "unavailable": true}]
	}`)
	c.update(eventReady, raw)

	me, ok := c.Me()
	if !ok || me.ID != "u1" {
		t.Fatalf("expected self user u1, got %+v ok=%v", me, ok)
	}
	g1, ok := c.GetGuild("g1")
	if !ok || g1.Name != "Guild One" {
		t.Fatalf("expected guild g1 cached, got %+v ok=%v", g1, ok)
	}
	if g2, ok := c.GetGuild("g2"); ok {
		t.Fatalf("expected unavailable guild g2 to be skipped by READY, got %+v", g2)
	}
}

func TestCache_GuildCreateThenDelete(t *testing.T) {
	c := newTestCache()
	c.update(eventGuildCreate, json.RawMessage(`{"id":"g1","name":"Guild"}`))
	if _, ok := c.GetGuild("g1"); !ok {
		t.Fatalf("expected guild g1 present after create")
	}
	c.update(eventGuildDelete, json.RawMessage(`{"id":"g1"}`))
	if _, ok := c.GetGuild("g1"); ok {
		t.Fatalf("expected guild g1 removed after delete")
	}
}

func TestCache_GuildCreateBackfillsChannelsAndMembers(t *testing.T) {
	c := newTestCache()
	c.update(eventGuildCreate, json.RawMessage(`{
		"id": "g1", "name": "Guild",
		"channels": [{"id": "c1", "name": "general"}],
		"members": [{"user": {"id": "u1", "username": "alice"}, "joined_at": "2024-01-01T00:00:00Z"}]
	}`))

	ch, ok := c.GetChannel("c1")
	if !ok || ch.GuildID != "g1" {
		t.Fatalf("expected channel c1 cached with guild_id backfilled to g1, got %+v ok=%v", ch, ok)
	}
	u, ok := c.GetUser("u1")
	if !ok || u.Username != "alice" {
		t.Fatalf("expected member user u1 cached, got %+v ok=%v", u, ok)
	}
}

func TestCache_ChannelCreateUpdateDelete(t *testing.T) {
	c := newTestCache()
	c.update(eventChannelCreate, json.RawMessage(`{"id":"c1","name":"general"}`))
	ch, ok := c.GetChannel("c1")
	if !ok || ch.Name != "general" {
		t.Fatalf("expected channel c1 cached, got %+v ok=%v", ch, ok)
	}

	c.update(eventChannelUpdate, json.RawMessage(`{"id":"c1","name":"renamed"}`))
	ch, ok = c.GetChannel("c1")
	if !ok || ch.Name != "renamed" {
		t.Fatalf("expected channel c1 renamed, got %+v", ch)
	}

	c.update(eventChannelDelete, json.RawMessage(`{"id":"c1"}`))
	if _, ok := c.GetChannel("c1"); ok {
		t.Fatalf("expected channel c1 removed after delete")
	}
}

func TestCache_MessageCreateCachesAuthor(t *testing.T) {
	c := newTestCache()
	c.update(eventMessageCreate, json.RawMessage(`{
		"id": "m1", "channel_id": "c1", "timestamp": "2024-01-01T00:00:00Z",
		"author": {"id": "u9", "username": "alice"}
	}`))
	u, ok := c.GetUser("u9")
	if !ok || u.Username != "alice" {
		t.Fatalf("expected author cached, got %+v ok=%v", u, ok)
	}
}

func TestCache_MalformedPayloadIsSwallowed(t *testing.T) {
	c := newTestCache()
	c.update(eventGuildCreate, json.RawMessage(`not json`))
	if _, ok := c.GetGuild("anything"); ok {
		t.Fatalf("expected no guild cached from malformed payload")
	}
	// Sibling updates must still work after a malformed one.
	c.update(eventGuildCreate, json.RawMessage(`{"id":"g1"}`))
	if _, ok := c.GetGuild("g1"); !ok {
		t.Fatalf("expected g1 cached after malformed sibling update")
	}
}

func TestCache_UnknownEventIsNoop(t *testing.T) {
	c := newTestCache()
	c.update("SOME_FUTURE_EVENT", json.RawMessage(`{"id":"x"}`))
	if _, ok := c.GetGuild("x"); ok {
		t.Fatalf("unknown event should not populate any cache")
	}
}
