package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"cosmoport/internal/catalog"
	"cosmoport/internal/dto"
	"cosmoport/internal/repository"
	apperrors "cosmoport/pkg/errors"
)

// ── 导出模块业务错误 ──

var (
	ErrExportEmpty        = fmt.Errorf("没有符合条件的飞船: %w", apperrors.ErrNotFound)
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 导出与列表共用筛选和排序，但不分页；结果以 bytes.Buffer 返回，由 Handler 设置响应头。
type ExportService interface {
	ExportShips(ctx context.Context, req *dto.ShipListRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

const exportSheet = "Ships"

var exportHeaders = []string{"ID", "Name", "Planet", "Type", "Production year", "Used", "Speed", "Crew", "Rating"}

// ExportShips 导出符合条件的飞船目录为 Excel
func (s *exportService) ExportShips(ctx context.Context, req *dto.ShipListRequest) (*bytes.Buffer, string, error) {
	query, err := buildQuery(req)
	if err != nil {
		return nil, "", err
	}

	all, err := s.repo.Ship.FindAll(ctx)
	if err != nil {
		s.logger.Error("加载飞船目录失败", zap.Error(err))
		return nil, "", err
	}

	ships := catalog.Sort(catalog.Filter(all, query.Filter), query.Order)
	if len(ships) == 0 {
		return nil, "", ErrExportEmpty
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, "", s.generateFailed(err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, "", s.generateFailed(err)
	}

	header := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, "", s.generateFailed(err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(exportHeaders))
	_ = f.SetCellStyle(exportSheet, "A1", lastCol+"1", headerStyle)
	_ = f.SetColWidth(exportSheet, "B", "C", 24)

	for i, ship := range ships {
		row := []interface{}{
			ship.ID,
			ship.Name,
			ship.Planet,
			string(ship.ShipType),
			catalog.YearOf(ship.ProdDate),
			ship.IsUsed,
			roundSpeed(ship.Speed),
			ship.CrewSize,
			ship.Rating,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, "", s.generateFailed(err)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", s.generateFailed(err)
	}

	s.logger.Info("飞船目录已导出", zap.Int("rows", len(ships)))
	return buf, "ships.xlsx", nil
}

func (s *exportService) generateFailed(err error) error {
	s.logger.Error("写入 Excel 失败", zap.Error(err))
	return ErrExportGenerateFail
}
