package catalog

import (
	"fmt"
	"time"

	"cosmoport/internal/model"
	apperrors "cosmoport/pkg/errors"
)

// ShipPatch 一组待提交的字段变更，nil 表示未提供。
//
// 先 Validate 整体校验，全部通过后再 Apply；Apply 返回新记录，不修改入参，
// 因此校验失败时目标记录保持原样。
type ShipPatch struct {
	Name     *string
	Planet   *string
	ShipType *model.ShipType
	ProdDate *time.Time
	IsUsed   *bool
	Speed    *float64
	CrewSize *int
}

// Empty 是否没有任何字段
func (p ShipPatch) Empty() bool {
	return p.Name == nil && p.Planet == nil && p.ShipType == nil && p.ProdDate == nil &&
		p.IsUsed == nil && p.Speed == nil && p.CrewSize == nil
}

// Validate 逐项校验已提供的字段，返回第一个不合法字段对应的错误
func (p ShipPatch) Validate() error {
	if p.Name != nil && !IsStringValid(*p.Name) {
		return invalidField("name", *p.Name)
	}
	if p.Planet != nil && !IsStringValid(*p.Planet) {
		return invalidField("planet", *p.Planet)
	}
	if p.ShipType != nil && !p.ShipType.Valid() {
		return invalidField("shipType", *p.ShipType)
	}
	if p.ProdDate != nil && !IsDateValid(*p.ProdDate) {
		return invalidField("prodDate", p.ProdDate.UTC().Format(time.RFC3339))
	}
	if p.Speed != nil && !IsSpeedValid(*p.Speed) {
		return invalidField("speed", *p.Speed)
	}
	if p.CrewSize != nil && !IsCrewSizeValid(*p.CrewSize) {
		return invalidField("crewSize", *p.CrewSize)
	}
	return nil
}

// ValidateComplete 创建时使用：除 isUsed 外所有字段必须提供，且全部合法
func (p ShipPatch) ValidateComplete() error {
	switch {
	case p.Name == nil:
		return missingField("name")
	case p.Planet == nil:
		return missingField("planet")
	case p.ShipType == nil:
		return missingField("shipType")
	case p.ProdDate == nil:
		return missingField("prodDate")
	case p.Speed == nil:
		return missingField("speed")
	case p.CrewSize == nil:
		return missingField("crewSize")
	}
	return p.Validate()
}

// Apply 将变更合并到 base 的副本上并重新计算评分。
// 调用前须先通过 Validate；未提供的字段沿用 base 的旧值参与评分计算。
func (p ShipPatch) Apply(base model.Ship) model.Ship {
	out := base
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Planet != nil {
		out.Planet = *p.Planet
	}
	if p.ShipType != nil {
		out.ShipType = *p.ShipType
	}
	if p.ProdDate != nil {
		out.ProdDate = *p.ProdDate
	}
	if p.IsUsed != nil {
		out.IsUsed = *p.IsUsed
	}
	if p.Speed != nil {
		out.Speed = *p.Speed
	}
	if p.CrewSize != nil {
		out.CrewSize = *p.CrewSize
	}
	out.Rating = ComputeRating(out.Speed, out.IsUsed, YearOf(out.ProdDate))
	return out
}

// NewShip 校验完整变更集并构建新记录（ID 由存储分配，isUsed 缺省为 false）
func NewShip(p ShipPatch) (model.Ship, error) {
	if err := p.ValidateComplete(); err != nil {
		return model.Ship{}, err
	}
	return p.Apply(model.Ship{}), nil
}

func invalidField(field string, value any) error {
	return fmt.Errorf("%w: 字段 %s 不合法 (%v)", apperrors.ErrInvalidArgument, field, value)
}

func missingField(field string) error {
	return fmt.Errorf("%w: 缺少字段 %s", apperrors.ErrInvalidArgument, field)
}
