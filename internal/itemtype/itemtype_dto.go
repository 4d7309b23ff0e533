package itemtype

type CreateItemTypeRequest struct {
	Type string `json:"type" binding:"required"`
}

type ItemTypeResponse struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}
