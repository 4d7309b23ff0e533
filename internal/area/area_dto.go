package area

type CreateAreaRequest struct {
	Area string `json:"area" binding:"required"`
}

type UpdateAreaRequest struct {
	Area string `json:"area" binding:"required"`
}

type DeleteAreaRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type AreaResponse struct {
	ID     string `json:"id"`
	Area   string `json:"area"`
	Status string `json:"status"`
}
