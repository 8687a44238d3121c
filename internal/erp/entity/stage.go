package entity

import (
	"time"
)

// ProductionStage 生产工序
// 工序按 sort_order 排序构成标准生产流水线，运行期只读。
// is_terminal 标记成品入库工序（到达该工序的批次数量转为成品库存）。
type ProductionStage struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name       string    `json:"name" gorm:"size:64;not null;uniqueIndex"`
	SortOrder  int       `json:"sort_order" gorm:"not null;default:0"`
	IsActive   bool      `json:"is_active" gorm:"not null;default:true"`
	IsTerminal bool      `json:"is_terminal" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (ProductionStage) TableName() string {
	return "production_stages"
}

// DefaultStages 默认工序列表，首次启动时写入
func DefaultStages() []ProductionStage {
	return []ProductionStage{
		{Name: "Cutting", SortOrder: 1, IsActive: true},
		{Name: "Schiving", SortOrder: 2, IsActive: true},
		{Name: "Initial Stitching", SortOrder: 3, IsActive: true},
		{Name: "Final Assembly", SortOrder: 4, IsActive: true},
		{Name: "Binding", SortOrder: 5, IsActive: true},
		{Name: "Polishing & Painting", SortOrder: 6, IsActive: true},
		{Name: "Quality Inspection", SortOrder: 7, IsActive: true},
		{Name: "Goods at Inventory", SortOrder: 8, IsActive: true, IsTerminal: true},
		{Name: "WIP", SortOrder: 9, IsActive: true},
		{Name: "Rework", SortOrder: 10, IsActive: true},
	}
}
