package service

import (
	"go.uber.org/zap"

	"cosmoport/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Ship   ShipService
	Export ExportService
}

// NewService 创建 Service 聚合
func NewService(repo *repository.Repository, logger *zap.Logger) *Service {
	return &Service{
		Ship:   NewShipService(repo, logger.Named("ship")),
		Export: NewExportService(repo, logger.Named("export")),
	}
}
