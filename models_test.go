package fluxcrystal

import "testing"

func TestUser_DisplayName(t *testing.T) {
	u := User{Username: "alice"}
	if u.DisplayName() != "alice" {
		t.Fatalf("expected username fallback, got %q", u.DisplayName())
	}
	u.GlobalName = "Alice W."
	if u.DisplayName() != "Alice W." {
		t.Fatalf("expected global_name to win, got %q", u.DisplayName())
	}
}

func TestGuildMember_DisplayName(t *testing.T) {
	m := GuildMember{User: User{Username: "bob", GlobalName: "Bobby"}}
	if m.DisplayName() != "Bobby" {
		t.Fatalf("expected user display name fallback, got %q", m.DisplayName())
	}
	m.Nick = "The Bobinator"
	if m.DisplayName() != "The Bobinator" {
		t.Fatalf("expected nick to win, got %q", m.DisplayName())
	}
}

func TestMessage_IsWebhook(t *testing.T) {
	m := Message{}
	if m.IsWebhook() {
		t.Fatal("expected no webhook_id to mean not a webhook")
	}
	m.WebhookID = "wh1"
	if !m.IsWebhook() {
		t.Fatal("expected webhook_id set to mean a webhook message")
	}
}

func TestMessage_IntoReplyAndForward(t *testing.T) {
	m := Message{ID: "m1", ChannelID: "c1"}
	reply := m.IntoReply()
	if reply.Type != ReferenceTypeReply || reply.MessageID != "m1" || reply.ChannelID != "c1" {
		t.Fatalf("unexpected reply reference: %+v", reply)
	}
	fwd := m.IntoForward()
	if fwd.Type != ReferenceTypeForward || fwd.MessageID != "m1" {
		t.Fatalf("unexpected forward reference: %+v", fwd)
	}
}

func TestAttachment_IsImageIsVideo(t *testing.T) {
	img := Attachment{ContentType: "image/png"}
	if !img.IsImage() || img.IsVideo() {
		t.Fatalf("expected image/png to be classified as image only")
	}
	vid := Attachment{ContentType: "video/mp4"}
	if !vid.IsVideo() || vid.IsImage() {
		t.Fatalf("expected video/mp4 to be classified as video only")
	}
	other := Attachment{ContentType: "application/pdf"}
	if other.IsImage() || other.IsVideo() {
		t.Fatalf("expected application/pdf to be neither image nor video")
	}
}

func TestParseTimestamp(t *testing.T) {
	ts, err := ParseTimestamp("2024-01-15T10:30:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts.Year() != 2024 || ts.Month() != 1 || ts.Day() != 15 {
		t.Fatalf("unexpected parsed timestamp: %v", ts)
	}
	if _, err := ParseTimestamp("not a timestamp"); err == nil {
		t.Fatal("expected an error for a malformed timestamp")
	}
}
