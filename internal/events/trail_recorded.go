package events

import (
	"encoding/json"
	"time"
)

const TrailRecordedTopic = "noassets.audit.v1"

// Trail actions. Every state-changing operation emits exactly one event after
// its transaction commits; the consumer turns events into trail rows.
const (
	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionLogin  = "login"
	ActionLogout = "logout"
)

type TrailRecordedEvent struct {
	EventType  string          `json:"event_type"`
	RequestID  string          `json:"request_id"`
	ActorID    string          `json:"actor_id"`
	Action     string          `json:"action"`
	Entity     string          `json:"entity"`
	EntityID   string          `json:"entity_id"`
	Details    json.RawMessage `json:"details,omitempty"`
	IP         string          `json:"ip,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}
