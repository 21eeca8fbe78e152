package dto

// ── 飞船模块 DTO ──
//
// prodDate 在传输层统一使用 epoch 毫秒；字段取值范围由目录层校验，这里不做 binding 约束。

// CreateShipRequest 创建飞船请求，除 isUsed 外均为必填
type CreateShipRequest struct {
	Name     *string  `json:"name"`
	Planet   *string  `json:"planet"`
	ShipType *string  `json:"shipType"`
	ProdDate *int64   `json:"prodDate"`
	IsUsed   *bool    `json:"isUsed"`
	Speed    *float64 `json:"speed"`
	CrewSize *int     `json:"crewSize"`
}

// UpdateShipRequest 更新飞船请求，只覆盖显式提供的字段
type UpdateShipRequest struct {
	Name     *string  `json:"name"`
	Planet   *string  `json:"planet"`
	ShipType *string  `json:"shipType"`
	ProdDate *int64   `json:"prodDate"`
	IsUsed   *bool    `json:"isUsed"`
	Speed    *float64 `json:"speed"`
	CrewSize *int     `json:"crewSize"`
}

// ShipFilterRequest 目录筛选参数
//
// after / before 沿用原有语义：after 为上界，before 为下界。
type ShipFilterRequest struct {
	Name        *string  `form:"name"`
	Planet      *string  `form:"planet"`
	ShipType    *string  `form:"shipType"`
	After       *int64   `form:"after"`
	Before      *int64   `form:"before"`
	IsUsed      *bool    `form:"isUsed"`
	MinSpeed    *float64 `form:"minSpeed"`
	MaxSpeed    *float64 `form:"maxSpeed"`
	MinCrewSize *int     `form:"minCrewSize"`
	MaxCrewSize *int     `form:"maxCrewSize"`
	MinRating   *float64 `form:"minRating"`
	MaxRating   *float64 `form:"maxRating"`
}

// ShipListRequest 目录列表查询参数：筛选 + 排序 + 分页（页码从 0 开始）
type ShipListRequest struct {
	ShipFilterRequest
	Order      string `form:"order"`
	PageNumber *int   `form:"pageNumber"`
	PageSize   *int   `form:"pageSize"`
}

// ShipResponse 飞船信息响应
type ShipResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Planet   string  `json:"planet"`
	ShipType string  `json:"shipType"`
	ProdDate int64   `json:"prodDate"`
	IsUsed   bool    `json:"isUsed"`
	Speed    float64 `json:"speed"` // 展示值，保留两位小数
	CrewSize int     `json:"crewSize"`
	Rating   float64 `json:"rating"`
}

// ShipCountResponse 符合条件的飞船数量
type ShipCountResponse struct {
	Count int `json:"count"`
}
