package fluxcrystal

import "encoding/json"

// ReadyEvent is dispatched once the gateway has finished identifying a new
// session. SessionID must be retained to resume the session after a
// disconnect.
type ReadyEvent struct {
	User              User    `json:"user"`
	Guilds            []Guild `json:"guilds"`
	SessionID         string  `json:"session_id"`
	ResumeGatewayURL  string  `json:"resume_gateway_url"`
}

// EventName implements Event.
func (ReadyEvent) EventName() string { return eventReady }

func init() {
	registerEvent(eventReady, func(raw json.RawMessage) (Event, error) {
		var ev ReadyEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return &ev, nil
	})
}
