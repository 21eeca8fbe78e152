package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cosmoport/internal/dto"
	"cosmoport/internal/service"
	apperrors "cosmoport/pkg/errors"
	"cosmoport/pkg/response"
)

// ShipHandler 飞船目录 HTTP 处理器
type ShipHandler struct {
	shipSvc service.ShipService
}

// NewShipHandler 创建 ShipHandler
func NewShipHandler(shipSvc service.ShipService) *ShipHandler {
	return &ShipHandler{shipSvc: shipSvc}
}

// ListShips 筛选、排序、分页后的飞船列表
// GET /rest/ships
func (h *ShipHandler) ListShips(c *gin.Context) {
	var req dto.ShipListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	ships, err := h.shipSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleShipError(c, err)
		return
	}

	response.OK(c, ships)
}

// CountShips 符合筛选条件的飞船数量
// GET /rest/ships/count
func (h *ShipHandler) CountShips(c *gin.Context) {
	var req dto.ShipFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	n, err := h.shipSvc.Count(c.Request.Context(), &req)
	if err != nil {
		h.handleShipError(c, err)
		return
	}

	response.OK(c, dto.ShipCountResponse{Count: n})
}

// GetShip 获取飞船详情
// GET /rest/ships/:id
func (h *ShipHandler) GetShip(c *gin.Context) {
	id, ok := parseShipID(c)
	if !ok {
		return
	}

	ship, err := h.shipSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleShipError(c, err)
		return
	}

	response.OK(c, ship)
}

// CreateShip 创建飞船
// POST /rest/ships
func (h *ShipHandler) CreateShip(c *gin.Context) {
	var req dto.CreateShipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	ship, err := h.shipSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleShipError(c, err)
		return
	}

	response.Created(c, ship)
}

// UpdateShip 部分更新飞船，空请求体视为无变更
// POST /rest/ships/:id
func (h *ShipHandler) UpdateShip(c *gin.Context) {
	id, ok := parseShipID(c)
	if !ok {
		return
	}

	var req dto.UpdateShipRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	ship, err := h.shipSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleShipError(c, err)
		return
	}

	response.OK(c, ship)
}

// DeleteShip 删除飞船
// DELETE /rest/ships/:id
func (h *ShipHandler) DeleteShip(c *gin.Context) {
	id, ok := parseShipID(c)
	if !ok {
		return
	}

	if err := h.shipSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleShipError(c, err)
		return
	}

	response.OK(c, nil)
}

// parseShipID 解析路径中的 id；非整数直接返回 400，正负校验交给业务层
func parseShipID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, 20002, "飞船 ID 必须为整数")
		return 0, false
	}
	return id, true
}

// handleShipError 统一处理飞船模块业务错误
func (h *ShipHandler) handleShipError(c *gin.Context, err error) {
	switch {
	case apperrors.IsNotFound(err):
		response.NotFound(c, 20001, "飞船不存在")
	case apperrors.IsInvalidArgument(err):
		response.ErrorWithDetails(c, http.StatusBadRequest, 20002, "参数无效", err.Error())
	case apperrors.IsOutOfRange(err):
		response.ErrorWithDetails(c, http.StatusBadRequest, 20003, "页码超出范围", err.Error())
	default:
		response.InternalError(c)
	}
}
