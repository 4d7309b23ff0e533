package issuance

import (
	"encoding/json"
	"net/http"
	"time"

	"noassets/internal/shared/apperror"
	"noassets/internal/shared/listquery"
	"noassets/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("issuance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("issuance.handler")
	}
	return &Handler{service: service, logger: l}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.rdb = rdb
	return h
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("issuance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func projectIssuance(is IssuanceResponse) listquery.Fields {
	fields := listquery.Fields{
		"date":   is.Date.Format("2006-01-02"),
		"status": is.Status,
	}
	if is.Item != nil {
		fields["item_name"] = is.Item.ItemName
		fields["serial_no"] = is.Item.SerialNo
		fields["type"] = is.Item.Type
	}
	if is.Room != nil {
		fields["room"] = is.Room.Area
	}
	return fields
}

func (h *Handler) Create(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)

	var req CreateIssuanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResponse(c, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	if h.rdb == nil {
		return
	}
	if lk := c.GetString("idempotency_lock_key"); lk != "" {
		h.rdb.Del(c.Request.Context(), lk)
	}
}

func (h *Handler) cacheIdempotentResponse(c *gin.Context, resp any) {
	if h.rdb == nil {
		return
	}
	ck := c.GetString("idempotency_cache_key")
	if ck == "" {
		return
	}
	if payload, err := json.Marshal(resp); err == nil {
		_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
	}
}

func (h *Handler) GetAll(c *gin.Context) {
	issuances, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	params := listquery.FromQuery(c, "date", "status", "room")
	page := listquery.Apply(issuances, params, projectIssuance)

	meta := response.NewPaginationMeta(page.Total, params.Page, params.PageSize)
	response.Success(c, http.StatusOK, page.Items, &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ChangeStatus(c *gin.Context) {
	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.ChangeStatus(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	var req DeleteIssuanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Deletion reason is required", err.Error())
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req.Reason); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
