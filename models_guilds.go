package fluxcrystal

// Role is a guild permission role.
type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       int    `json:"color,omitempty"`
	Hoist       bool   `json:"hoist,omitempty"`
	Position    int    `json:"position,omitempty"`
	Permissions string `json:"permissions,omitempty"`
	Mentionable bool   `json:"mentionable,omitempty"`
}

// Guild is a Fluxer guild (also called a "server" in some clients).
//
// Unavailable guilds — sent in the READY payload before the full state has
// loaded — only carry ID and Unavailable; every other field decodes to its
// zero value. Callers should check Unavailable before trusting Name, etc.
type Guild struct {
	ID                          string   `json:"id"`
	Name                        string   `json:"name,omitempty"`
	Icon                        string   `json:"icon,omitempty"`
	OwnerID                     string   `json:"owner_id,omitempty"`
	Features                    []string `json:"features,omitempty"`
	VerificationLevel           int      `json:"verification_level,omitempty"`
	DefaultMessageNotifications int      `json:"default_message_notifications,omitempty"`
	ExplicitContentFilter       int      `json:"explicit_content_filter,omitempty"`
	MFALevel                    int      `json:"mfa_level,omitempty"`
	SystemChannelID             string   `json:"system_channel_id,omitempty"`
	RulesChannelID              string   `json:"rules_channel_id,omitempty"`
	Unavailable                 bool     `json:"unavailable,omitempty"`
}

// GuildMember is a user's membership in a guild.
type GuildMember struct {
	User                        User   `json:"user"`
	Nick                        string `json:"nick,omitempty"`
	Roles                       []string `json:"roles,omitempty"`
	JoinedAt                    string `json:"joined_at"`
	Deaf                        bool   `json:"deaf,omitempty"`
	Mute                        bool   `json:"mute,omitempty"`
	CommunicationDisabledUntil  string `json:"communication_disabled_until,omitempty"`
}

// DisplayName is the name shown for this member: Nick if set, otherwise the
// user's DisplayName.
func (m GuildMember) DisplayName() string {
	if m.Nick != "" {
		return m.Nick
	}
	return m.User.DisplayName()
}

// Invite is a guild invite link.
type Invite struct {
	Code      string `json:"code"`
	GuildID   string `json:"guild_id"`
	ChannelID string `json:"channel_id,omitempty"`
	CreatorID string `json:"creator_id,omitempty"`
	MaxUses   int    `json:"max_uses,omitempty"`
	Uses      int    `json:"uses,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty"`
}
