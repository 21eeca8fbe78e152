package model

import "time"

// ShipType 飞船分类（封闭集合）
type ShipType string

const (
	ShipTypeTransport ShipType = "TRANSPORT"
	ShipTypeMilitary  ShipType = "MILITARY"
	ShipTypeMerchant  ShipType = "MERCHANT"
)

// ShipTypes 全部合法分类，顺序即展示顺序
var ShipTypes = []ShipType{ShipTypeTransport, ShipTypeMilitary, ShipTypeMerchant}

// Valid 判断分类是否属于封闭集合
func (t ShipType) Valid() bool {
	switch t {
	case ShipTypeTransport, ShipTypeMilitary, ShipTypeMerchant:
		return true
	}
	return false
}

// Ship 飞船表 — 对应 ships
//
// Rating 为派生字段：只由 speed / is_used / prod_date 计算得出，调用方不可直接设置。
type Ship struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name     string    `gorm:"type:varchar(50);not null"   json:"name"`
	Planet   string    `gorm:"type:varchar(50);not null"   json:"planet"`
	ShipType ShipType  `gorm:"type:varchar(16);not null"   json:"shipType"`
	ProdDate time.Time `gorm:"not null"                    json:"prodDate"`
	IsUsed   bool      `gorm:"not null;default:false"      json:"isUsed"`
	Speed    float64   `gorm:"not null"                    json:"speed"`
	CrewSize int       `gorm:"not null"                    json:"crewSize"`
	Rating   float64   `gorm:"not null"                    json:"rating"`
	BaseModel
}

// TableName 指定表名
func (Ship) TableName() string { return "ships" }
