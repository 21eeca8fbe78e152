package handler

import "cosmoport/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Ship   *ShipHandler
	Export *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Ship:   NewShipHandler(svc.Ship),
		Export: NewExportHandler(svc.Export),
	}
}
