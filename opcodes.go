package fluxcrystal

import "encoding/json"

// Gateway opcodes, per the Fluxer gateway protocol.
const (
	OpDispatch      = 0  // S->C: a named event, carries t/s/d
	OpHeartbeat     = 1  // both: liveness, d is last sequence
	OpIdentify      = 2  // C->S: authenticate a new session
	OpResume        = 6  // C->S: resume an existing session
	OpReconnect     = 7  // S->C: server asks for reconnect
	OpInvalidSession = 9 // S->C: d true=resumable, false=start fresh
	OpHello         = 10 // S->C: d.heartbeat_interval in ms
	OpHeartbeatAck  = 11 // S->C: ack of a prior heartbeat
)

// gatewayVersion is appended to the gateway URL when the URL carries no
// query string of its own.
const gatewayVersion = 1

// fatalCloseCodes classifies WebSocket close codes that must never trigger
// a reconnect attempt.
var fatalCloseCodes = map[int]string{
	4004: "authentication failed",
	4010: "invalid shard",
	4011: "sharding required",
	4012: "invalid api version",
}

// gatewayMessage is the envelope for every WebSocket frame, in both
// directions.
type gatewayMessage struct {
	Op   int             `json:"op"`
	Type string          `json:"t,omitempty"`
	Seq  *int64          `json:"s,omitempty"`
	Data json.RawMessage `json:"d,omitempty"`
}

type helloPayload struct {
	HeartbeatInterval int64 `json:"heartbeat_interval"`
}

type identifyProperties struct {
	OS      string `json:"os"`
	Browser string `json:"browser"`
	Device  string `json:"device"`
}

type identifyPayload struct {
	Token      string             `json:"token"`
	Properties identifyProperties `json:"properties"`
}

type resumePayload struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	Seq       int64  `json:"seq"`
}

// Dispatch event names. These are the keys used by the event registry
// (see events.go) and are the values of gatewayMessage.Type on OpDispatch
// frames.
const (
	eventReady              = "READY"
	eventMessageCreate      = "MESSAGE_CREATE"
	eventMessageUpdate      = "MESSAGE_UPDATE"
	eventMessageDelete      = "MESSAGE_DELETE"
	eventGuildCreate        = "GUILD_CREATE"
	eventGuildUpdate        = "GUILD_UPDATE"
	eventGuildDelete        = "GUILD_DELETE"
	eventGuildMemberAdd     = "GUILD_MEMBER_ADD"
	eventGuildMemberUpdate  = "GUILD_MEMBER_UPDATE"
	eventGuildMemberRemove  = "GUILD_MEMBER_REMOVE"
	eventGuildBanAdd        = "GUILD_BAN_ADD"
	eventGuildBanRemove     = "GUILD_BAN_REMOVE"
	eventChannelCreate      = "CHANNEL_CREATE"
	eventChannelUpdate      = "CHANNEL_UPDATE"
	eventChannelDelete      = "CHANNEL_DELETE"
	eventTypingStart        = "TYPING_START"
)
