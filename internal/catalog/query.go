package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"cosmoport/internal/model"
	apperrors "cosmoport/pkg/errors"
)

// ShipFilter 查询谓词，nil 字段不构成约束，所有已提供的条件按 AND 组合。
//
// Before / After 的方向与字面含义相反，保持原有约定：
// prodDate 晚于 After 的记录被丢弃，早于 Before 的记录被丢弃。
type ShipFilter struct {
	Name        *string
	Planet      *string
	ShipType    *model.ShipType
	Before      *int64 // epoch millis
	After       *int64 // epoch millis
	IsUsed      *bool
	MinSpeed    *float64
	MaxSpeed    *float64
	MinCrewSize *int
	MaxCrewSize *int
	MinRating   *float64
	MaxRating   *float64
}

// Match 判断单条记录是否满足全部条件
func (f ShipFilter) Match(s *model.Ship) bool {
	if f.Name != nil && !strings.Contains(s.Name, *f.Name) {
		return false
	}
	if f.Planet != nil && !strings.Contains(s.Planet, *f.Planet) {
		return false
	}
	if f.ShipType != nil && s.ShipType != *f.ShipType {
		return false
	}
	prod := s.ProdDate.UnixMilli()
	if f.After != nil && prod > *f.After {
		return false
	}
	if f.Before != nil && prod < *f.Before {
		return false
	}
	if f.IsUsed != nil && s.IsUsed != *f.IsUsed {
		return false
	}
	if f.MinSpeed != nil && s.Speed < *f.MinSpeed {
		return false
	}
	if f.MaxSpeed != nil && s.Speed > *f.MaxSpeed {
		return false
	}
	if f.MinCrewSize != nil && s.CrewSize < *f.MinCrewSize {
		return false
	}
	if f.MaxCrewSize != nil && s.CrewSize > *f.MaxCrewSize {
		return false
	}
	if f.MinRating != nil && s.Rating < *f.MinRating {
		return false
	}
	if f.MaxRating != nil && s.Rating > *f.MaxRating {
		return false
	}
	return true
}

// Filter 全量扫描，返回满足条件的子序列（保持原有顺序）
func Filter(ships []model.Ship, f ShipFilter) []model.Ship {
	out := make([]model.Ship, 0, len(ships))
	for i := range ships {
		if f.Match(&ships[i]) {
			out = append(out, ships[i])
		}
	}
	return out
}

// ── 排序 ──

// SortKey 排序字段（封闭集合），零值表示不排序
type SortKey int

const (
	SortUnset SortKey = iota
	ByID
	BySpeed
	ByDate
	ByRating
)

var sortKeyNames = map[SortKey]string{
	ByID:     "ID",
	BySpeed:  "SPEED",
	ByDate:   "DATE",
	ByRating: "RATING",
}

func (k SortKey) String() string {
	if name, ok := sortKeyNames[k]; ok {
		return name
	}
	return ""
}

// ParseSortKey 解析 order 参数（ID / SPEED / DATE / RATING），空串表示不排序
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortUnset, nil
	}
	for k, name := range sortKeyNames {
		if name == s {
			return k, nil
		}
	}
	return SortUnset, fmt.Errorf("%w: 未知的排序字段 %q", apperrors.ErrInvalidArgument, s)
}

var comparators = map[SortKey]func(a, b model.Ship) int{
	ByID:     func(a, b model.Ship) int { return cmp.Compare(a.ID, b.ID) },
	BySpeed:  func(a, b model.Ship) int { return cmp.Compare(a.Speed, b.Speed) },
	ByDate:   func(a, b model.Ship) int { return a.ProdDate.Compare(b.ProdDate) },
	ByRating: func(a, b model.Ship) int { return cmp.Compare(a.Rating, b.Rating) },
}

// Sort 按字段升序稳定排序，返回新切片；SortUnset 原样返回
func Sort(ships []model.Ship, key SortKey) []model.Ship {
	compare, ok := comparators[key]
	if !ok {
		return ships
	}
	out := slices.Clone(ships)
	slices.SortStableFunc(out, compare)
	return out
}

// ── 分页 ──

const (
	DefaultPageNumber = 0
	DefaultPageSize   = 3
)

// Page 返回 [page*size, min(page*size+size, len)) 区间。
// 起始位置超过长度（或页码、页大小为负）返回 ErrOutOfRange；
// 起始位置恰好等于长度、或 size 为 0 时返回空页。
func Page(ships []model.Ship, pageNumber, pageSize *int) ([]model.Ship, error) {
	page := DefaultPageNumber
	if pageNumber != nil {
		page = *pageNumber
	}
	size := DefaultPageSize
	if pageSize != nil {
		size = *pageSize
	}

	if page < 0 || size < 0 {
		return nil, fmt.Errorf("%w: pageNumber=%d pageSize=%d", apperrors.ErrOutOfRange, page, size)
	}
	if size == 0 {
		return ships[:0], nil
	}
	// 先比较页码再相乘，page*size 不会溢出
	if page > len(ships)/size {
		return nil, fmt.Errorf("%w: pageNumber=%d pageSize=%d，共 %d 条", apperrors.ErrOutOfRange, page, size, len(ships))
	}

	from := page * size
	to := from + min(size, len(ships)-from)
	return ships[from:to], nil
}

// Query 一次目录查询的全部参数
type Query struct {
	Filter     ShipFilter
	Order      SortKey
	PageNumber *int
	PageSize   *int
}

// Run 依次执行筛选、排序、分页
func Run(ships []model.Ship, q Query) ([]model.Ship, error) {
	return Page(Sort(Filter(ships, q.Filter), q.Order), q.PageNumber, q.PageSize)
}
