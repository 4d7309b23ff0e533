package issuance

import "time"

type CreateIssuanceRequest struct {
	Date      *time.Time `json:"date"`
	ItemID    string     `json:"item_id" binding:"required,uuid"`
	RoomID    string     `json:"room_id" binding:"required,uuid"`
	Remarks   *string    `json:"remarks"`
	Signature *string    `json:"signature"`
}

// ChangeStatusRequest drives PUT /:id/status. room_id is required for
// TRANSFERRED, ignored otherwise.
type ChangeStatusRequest struct {
	Status  string  `json:"status" binding:"required,oneof=TRANSFERRED SURRENDERED"`
	RoomID  string  `json:"room_id" binding:"omitempty,uuid"`
	Remarks *string `json:"remarks"`
}

type DeleteIssuanceRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ItemRef struct {
	ID       string `json:"id"`
	ItemName string `json:"item_name"`
	SerialNo string `json:"serial_no"`
	Type     string `json:"type,omitempty"`
	Status   string `json:"status"`
}

type AreaRef struct {
	ID   string `json:"id"`
	Area string `json:"area"`
}

type IssuanceResponse struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	ItemID     string    `json:"item_id"`
	Item       *ItemRef  `json:"item,omitempty"`
	RoomID     string    `json:"room_id"`
	Room       *AreaRef  `json:"room,omitempty"`
	AssignedBy string    `json:"assigned_by"`
	Remarks    *string   `json:"remarks,omitempty"`
	Signature  *string   `json:"signature,omitempty"`
	Status     string    `json:"status"`
}
