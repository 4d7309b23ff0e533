package repair

import "time"

type CreateRepairRequest struct {
	Date    *time.Time `json:"date"`
	ItemID  string     `json:"item_id" binding:"required,uuid"`
	Problem string     `json:"problem" binding:"required"`
}

type CompleteRepairRequest struct {
	Diagnosis string `json:"diagnosis" binding:"required"`
	CheckedBy string `json:"checked_by" binding:"omitempty,uuid"`
}

type MarkDefectiveRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type DeleteRepairRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ItemRef struct {
	ID       string `json:"id"`
	ItemName string `json:"item_name"`
	SerialNo string `json:"serial_no"`
	Type     string `json:"type,omitempty"`
	Status   string `json:"status"`
}

type RepairResponse struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	ItemID    string    `json:"item_id"`
	Item      *ItemRef  `json:"item,omitempty"`
	Problem   string    `json:"problem"`
	Diagnosis *string   `json:"diagnosis,omitempty"`
	ReportBy  string    `json:"report_by"`
	CheckedBy *string   `json:"checked_by,omitempty"`
	Status    string    `json:"status"`
}
