package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"cosmoport/internal/catalog"
	"cosmoport/internal/dto"
	"cosmoport/internal/model"
	"cosmoport/internal/repository"
	apperrors "cosmoport/pkg/errors"
)

// ── 飞船模块业务错误 ──

var (
	ErrShipNotFound  = fmt.Errorf("飞船%w", apperrors.ErrNotFound)
	ErrInvalidShipID = fmt.Errorf("飞船 ID %w", apperrors.ErrInvalidArgument)
	ErrInvalidShip   = fmt.Errorf("飞船记录不满足字段约束: %w", apperrors.ErrInvalidArgument)
)

// ShipService 飞船目录业务接口
type ShipService interface {
	List(ctx context.Context, req *dto.ShipListRequest) ([]dto.ShipResponse, error)
	Count(ctx context.Context, req *dto.ShipFilterRequest) (int, error)
	GetByID(ctx context.Context, id int64) (*dto.ShipResponse, error)
	Create(ctx context.Context, req *dto.CreateShipRequest) (*dto.ShipResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateShipRequest) (*dto.ShipResponse, error)
	Delete(ctx context.Context, id int64) error
}

type shipService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewShipService 创建 ShipService 实例
func NewShipService(repo *repository.Repository, logger *zap.Logger) ShipService {
	return &shipService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *shipService) List(ctx context.Context, req *dto.ShipListRequest) ([]dto.ShipResponse, error) {
	query, err := buildQuery(req)
	if err != nil {
		return nil, err
	}

	ships, err := s.repo.Ship.FindAll(ctx)
	if err != nil {
		s.logger.Error("加载飞船目录失败", zap.Error(err))
		return nil, err
	}

	page, err := catalog.Run(ships, query)
	if err != nil {
		return nil, err
	}

	return toShipResponses(page), nil
}

// ────────────────────── Count ──────────────────────

func (s *shipService) Count(ctx context.Context, req *dto.ShipFilterRequest) (int, error) {
	filter, err := buildFilter(req)
	if err != nil {
		return 0, err
	}

	ships, err := s.repo.Ship.FindAll(ctx)
	if err != nil {
		s.logger.Error("加载飞船目录失败", zap.Error(err))
		return 0, err
	}

	return len(catalog.Filter(ships, filter)), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *shipService) GetByID(ctx context.Context, id int64) (*dto.ShipResponse, error) {
	ship, err := s.findShip(ctx, id)
	if err != nil {
		return nil, err
	}
	return toShipResponse(ship), nil
}

// ────────────────────── Create ──────────────────────

func (s *shipService) Create(ctx context.Context, req *dto.CreateShipRequest) (*dto.ShipResponse, error) {
	patch, err := toShipPatch(req.Name, req.Planet, req.ShipType, req.ProdDate, req.IsUsed, req.Speed, req.CrewSize)
	if err != nil {
		return nil, err
	}

	ship, err := catalog.NewShip(patch)
	if err != nil {
		return nil, err
	}

	if !catalog.IsShipValid(&ship) {
		return nil, ErrInvalidShip
	}

	if err := s.repo.Ship.Save(ctx, &ship); err != nil {
		s.logger.Error("创建飞船失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("飞船已创建", zap.Int64("id", ship.ID), zap.String("name", ship.Name))
	return toShipResponse(&ship), nil
}

// ────────────────────── Update ──────────────────────

// Update 先整体校验变更集，全部合法后才合并并保存；任一字段不合法时记录保持原样。
// 空变更集不写存储，直接返回当前记录。
func (s *shipService) Update(ctx context.Context, id int64, req *dto.UpdateShipRequest) (*dto.ShipResponse, error) {
	current, err := s.findShip(ctx, id)
	if err != nil {
		return nil, err
	}

	patch, err := toShipPatch(req.Name, req.Planet, req.ShipType, req.ProdDate, req.IsUsed, req.Speed, req.CrewSize)
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return toShipResponse(current), nil
	}

	updated := patch.Apply(*current)
	if !catalog.IsShipValid(&updated) {
		s.logger.Warn("合并后的飞船记录不合法", zap.Int64("id", id))
		return nil, ErrInvalidShip
	}
	if err := s.repo.Ship.Save(ctx, &updated); err != nil {
		s.logger.Error("更新飞船失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return toShipResponse(&updated), nil
}

// ────────────────────── Delete ──────────────────────

func (s *shipService) Delete(ctx context.Context, id int64) error {
	ship, err := s.findShip(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Ship.Delete(ctx, ship); err != nil {
		s.logger.Error("删除飞船失败", zap.Int64("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("飞船已删除", zap.Int64("id", id))
	return nil
}

// ── 内部辅助方法 ──

func (s *shipService) findShip(ctx context.Context, id int64) (*model.Ship, error) {
	if id <= 0 {
		return nil, ErrInvalidShipID
	}

	ship, err := s.repo.Ship.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShipNotFound
		}
		s.logger.Error("查询飞船失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return ship, nil
}

func toShipPatch(name, planet, shipType *string, prodDate *int64, isUsed *bool, speed *float64, crewSize *int) (catalog.ShipPatch, error) {
	patch := catalog.ShipPatch{
		Name:     name,
		Planet:   planet,
		IsUsed:   isUsed,
		Speed:    speed,
		CrewSize: crewSize,
	}
	if shipType != nil {
		t, err := parseShipType(*shipType)
		if err != nil {
			return catalog.ShipPatch{}, err
		}
		patch.ShipType = &t
	}
	if prodDate != nil {
		d := time.UnixMilli(*prodDate).UTC()
		patch.ProdDate = &d
	}
	return patch, nil
}

func parseShipType(s string) (model.ShipType, error) {
	t := model.ShipType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: 未知的飞船类型 %q", apperrors.ErrInvalidArgument, s)
	}
	return t, nil
}

func buildFilter(req *dto.ShipFilterRequest) (catalog.ShipFilter, error) {
	f := catalog.ShipFilter{
		Name:        req.Name,
		Planet:      req.Planet,
		Before:      req.Before,
		After:       req.After,
		IsUsed:      req.IsUsed,
		MinSpeed:    req.MinSpeed,
		MaxSpeed:    req.MaxSpeed,
		MinCrewSize: req.MinCrewSize,
		MaxCrewSize: req.MaxCrewSize,
		MinRating:   req.MinRating,
		MaxRating:   req.MaxRating,
	}
	if req.ShipType != nil {
		t, err := parseShipType(*req.ShipType)
		if err != nil {
			return catalog.ShipFilter{}, err
		}
		f.ShipType = &t
	}
	return f, nil
}

func buildQuery(req *dto.ShipListRequest) (catalog.Query, error) {
	filter, err := buildFilter(&req.ShipFilterRequest)
	if err != nil {
		return catalog.Query{}, err
	}
	order, err := catalog.ParseSortKey(req.Order)
	if err != nil {
		return catalog.Query{}, err
	}
	return catalog.Query{
		Filter:     filter,
		Order:      order,
		PageNumber: req.PageNumber,
		PageSize:   req.PageSize,
	}, nil
}

// roundSpeed 展示用的两位小数，存储值保持原精度
func roundSpeed(v float64) float64 {
	return math.Round(v*100) / 100
}

func toShipResponse(ship *model.Ship) *dto.ShipResponse {
	return &dto.ShipResponse{
		ID:       ship.ID,
		Name:     ship.Name,
		Planet:   ship.Planet,
		ShipType: string(ship.ShipType),
		ProdDate: ship.ProdDate.UnixMilli(),
		IsUsed:   ship.IsUsed,
		Speed:    roundSpeed(ship.Speed),
		CrewSize: ship.CrewSize,
		Rating:   ship.Rating,
	}
}

func toShipResponses(ships []model.Ship) []dto.ShipResponse {
	result := make([]dto.ShipResponse, 0, len(ships))
	for i := range ships {
		result = append(result, *toShipResponse(&ships[i]))
	}
	return result
}
