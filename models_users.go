package fluxcrystal

// User is a Fluxer account, either a person or a bot.
type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	GlobalName    string `json:"global_name,omitempty"`
	Avatar        string `json:"avatar,omitempty"`
	AvatarColor   int    `json:"avatar_color,omitempty"`
	Bot           bool   `json:"bot,omitempty"`
	System        bool   `json:"system,omitempty"`
	Flags         int    `json:"flags,omitempty"`
}

// DisplayName is what the UI shows for this user: GlobalName if set,
// otherwise Username.
func (u User) DisplayName() string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}
