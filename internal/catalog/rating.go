package catalog

import "math"

// CurrentYear 领域内的“当前年份”，与系统时钟无关
const CurrentYear = 3019

// ComputeRating 根据速度、是否二手、生产年份计算评分，保留两位小数（四舍五入）。
// 入参须已通过校验：prodYear <= CurrentYear 保证分母 >= 1。
func ComputeRating(speed float64, isUsed bool, prodYear int) float64 {
	k := 1.0
	if isUsed {
		k = 0.5
	}
	rating := 80 * speed * k / float64(CurrentYear-prodYear+1)
	return math.Floor(rating*100+0.5) / 100
}
