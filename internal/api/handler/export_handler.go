package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"cosmoport/internal/dto"
	"cosmoport/internal/service"
	apperrors "cosmoport/pkg/errors"
	"cosmoport/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportShips 导出飞船目录（筛选与排序参数同列表接口，忽略分页）
// GET /rest/ships/export
func (h *ExportHandler) ExportShips(c *gin.Context) {
	var req dto.ShipListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	buf, filename, err := h.exportSvc.ExportShips(c.Request.Context(), &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportEmpty):
		response.NotFound(c, 20101, "没有符合条件的飞船")
	case apperrors.IsInvalidArgument(err):
		response.ErrorWithDetails(c, http.StatusBadRequest, 20002, "参数无效", err.Error())
	default:
		response.InternalError(c)
	}
}
