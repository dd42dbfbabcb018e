package fluxcrystal

import "time"

// ParseTimestamp parses a wire timestamp string (RFC3339, as sent for
// Message.Timestamp, Message.EditedTimestamp, Invite.CreatedAt, etc.) into
// a time.Time. Models carry timestamps as strings rather than eagerly
// parsing them at decode time, so a malformed timestamp on a field the
// caller never reads doesn't fail the whole decode.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
