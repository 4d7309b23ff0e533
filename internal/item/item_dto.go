package item

type CreateItemRequest struct {
	TypeID       string  `json:"type_id" binding:"required,uuid"`
	ItemName     string  `json:"item_name" binding:"required"`
	Brand        string  `json:"brand"`
	SerialNo     string  `json:"serial_no" binding:"required"`
	BarcodeID    string  `json:"barcode_id"`
	OtherDetails *string `json:"other_details"`
	Photo        *string `json:"photo"`
}

// UpdateItemRequest deliberately excludes status: status only moves through
// lifecycle operations (issue, surrender, repair, delete).
type UpdateItemRequest struct {
	TypeID       string  `json:"type_id" binding:"required,uuid"`
	ItemName     string  `json:"item_name" binding:"required"`
	Brand        string  `json:"brand"`
	SerialNo     string  `json:"serial_no" binding:"required"`
	BarcodeID    string  `json:"barcode_id"`
	OtherDetails *string `json:"other_details"`
	Photo        *string `json:"photo"`
}

type DeleteItemRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ItemTypeRef struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type ItemResponse struct {
	ID           string       `json:"id"`
	TypeID       string       `json:"type_id"`
	Type         *ItemTypeRef `json:"type,omitempty"`
	ItemName     string       `json:"item_name"`
	Brand        string       `json:"brand,omitempty"`
	SerialNo     string       `json:"serial_no"`
	BarcodeID    string       `json:"barcode_id,omitempty"`
	OtherDetails *string      `json:"other_details,omitempty"`
	Photo        *string      `json:"photo,omitempty"`
	Status       string       `json:"status"`
}
