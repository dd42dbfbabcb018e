package fluxcrystal

// Channel is any type of channel: guild text channel, category, or DM.
type Channel struct {
	ID               string `json:"id"`
	Type             int    `json:"type"`
	GuildID          string `json:"guild_id,omitempty"`
	Name             string `json:"name,omitempty"`
	Topic            string `json:"topic,omitempty"`
	NSFW             bool   `json:"nsfw,omitempty"`
	LastMessageID    string `json:"last_message_id,omitempty"`
	Position         int    `json:"position,omitempty"`
	ParentID         string `json:"parent_id,omitempty"`
	RateLimitPerUser int    `json:"rate_limit_per_user,omitempty"`
}
