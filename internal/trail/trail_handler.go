package trail

import (
	"net/http"
	"strconv"
	"strings"

	"noassets/internal/shared/apperror"
	"noassets/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("trail.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("trail.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Query(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "200"))

	filter := QueryFilter{
		Entity:      strings.TrimSpace(c.Query("entity")),
		UserID:      strings.TrimSpace(c.Query("userId")),
		Action:      strings.TrimSpace(c.Query("action")),
		StartDate:   strings.TrimSpace(c.Query("startDate")),
		EndDate:     strings.TrimSpace(c.Query("endDate")),
		SearchQuery: strings.TrimSpace(c.Query("searchQuery")),
		Limit:       limit,
	}

	resp, err := h.service.Query(c.Request.Context(), filter)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("trail query failed",
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
