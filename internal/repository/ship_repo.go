package repository

import (
	"context"

	"gorm.io/gorm"

	"cosmoport/internal/model"
)

// ShipRepository 飞船数据访问接口
//
// 目录层只依赖这四个操作：筛选、排序、分页均在内存中完成，不下推到 SQL。
type ShipRepository interface {
	// Save 首次保存时分配 ID，之后覆盖写入
	Save(ctx context.Context, ship *model.Ship) error
	// FindByID 不存在时返回 gorm.ErrRecordNotFound
	FindByID(ctx context.Context, id int64) (*model.Ship, error)
	FindAll(ctx context.Context) ([]model.Ship, error)
	Delete(ctx context.Context, ship *model.Ship) error
}

// shipRepo ShipRepository 的 GORM 实现
type shipRepo struct {
	db *gorm.DB
}

// NewShipRepo 创建 ShipRepository 实例
func NewShipRepo(db *gorm.DB) ShipRepository {
	return &shipRepo{db: db}
}

func (r *shipRepo) Save(ctx context.Context, ship *model.Ship) error {
	return r.db.WithContext(ctx).Save(ship).Error
}

func (r *shipRepo) FindByID(ctx context.Context, id int64) (*model.Ship, error) {
	var ship model.Ship
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ship).Error
	if err != nil {
		return nil, err
	}
	return &ship, nil
}

// FindAll 按主键顺序返回全表，作为未排序查询的稳定基准顺序
func (r *shipRepo) FindAll(ctx context.Context) ([]model.Ship, error) {
	var ships []model.Ship
	err := r.db.WithContext(ctx).Order("id ASC").Find(&ships).Error
	return ships, err
}

// Delete 物理删除
func (r *shipRepo) Delete(ctx context.Context, ship *model.Ship) error {
	return r.db.WithContext(ctx).Delete(&model.Ship{}, ship.ID).Error
}
