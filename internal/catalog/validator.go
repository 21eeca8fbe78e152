// Package catalog 飞船目录的纯领域逻辑：字段校验、评分计算，以及对内存快照的筛选、排序、分页。
//
// 包内所有函数均无副作用，不持有跨调用的状态，也不访问存储。
package catalog

import (
	"time"
	"unicode/utf8"

	"cosmoport/internal/model"
)

// 字段约束
const (
	MaxStringLen = 50

	MinProdYear = 2800
	MaxProdYear = 3019

	MinCrewSize = 1
	MaxCrewSize = 9999

	MinSpeed = 0.01
	MaxSpeed = 0.99
)

// YearOf 返回日期的公历年份（按 UTC 计算）
func YearOf(date time.Time) int {
	return date.UTC().Year()
}

// IsStringValid 名称/星球：非空且不超过 50 个字符
func IsStringValid(s string) bool {
	return s != "" && utf8.RuneCountInString(s) <= MaxStringLen
}

// IsDateValid 生产日期年份须在 [2800, 3019]，零值视为缺失
func IsDateValid(d time.Time) bool {
	if d.IsZero() {
		return false
	}
	year := YearOf(d)
	return year >= MinProdYear && year <= MaxProdYear
}

// IsCrewSizeValid 船员数须在 [1, 9999]
func IsCrewSizeValid(n int) bool {
	return n >= MinCrewSize && n <= MaxCrewSize
}

// IsSpeedValid 速度须在 [0.01, 0.99]，NaN 不合法
func IsSpeedValid(v float64) bool {
	return v >= MinSpeed && v <= MaxSpeed
}

// IsShipValid 校验整条记录。
// shipType 与 isUsed 没有独立约束，这里不检查。
func IsShipValid(s *model.Ship) bool {
	return s != nil &&
		IsStringValid(s.Name) &&
		IsStringValid(s.Planet) &&
		IsDateValid(s.ProdDate) &&
		IsCrewSizeValid(s.CrewSize) &&
		IsSpeedValid(s.Speed)
}
