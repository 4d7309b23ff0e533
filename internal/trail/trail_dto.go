package trail

import "encoding/json"

type TrailResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id,omitempty"`
	Action    string          `json:"action"`
	Entity    string          `json:"entity"`
	EntityID  string          `json:"entity_id,omitempty"`
	Details   json.RawMessage `json:"details,omitempty"`
	IP        string          `json:"ip,omitempty"`
	Timestamp string          `json:"timestamp"`
}

// QueryFilter mirrors the supported query parameters of GET /api/trails.
type QueryFilter struct {
	Entity      string
	UserID      string
	Action      string
	StartDate   string
	EndDate     string
	SearchQuery string
	Limit       int
}
