package entity

import (
	"time"
)

// Product 产品（皮具成品型号）
// consumption_formula 为耗料公式文本，formula 模式下从中解析单件皮革用量。
type Product struct {
	ID                 string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TenantID           string     `json:"tenant_id" gorm:"type:uuid;not null;index"`
	ProductName        string     `json:"product_name" gorm:"size:255;not null"`
	Color              string     `json:"color" gorm:"size:255"`
	SKU                string     `json:"sku" gorm:"size:255;index"`
	WeightKg           float64    `json:"weight_kg" gorm:"type:decimal(10,2);default:0"`
	UnitPrice          float64    `json:"unit_price" gorm:"type:decimal(12,2);default:0"`
	ConsumptionFormula string     `json:"consumption_formula" gorm:"type:text"`
	Description        string     `json:"description" gorm:"type:text"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	DeletedAt          *time.Time `json:"deleted_at" gorm:"index"`
}

func (Product) TableName() string {
	return "products"
}

// ProductCost 产品成本核算结果（开单价优先取成本价）
type ProductCost struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TenantID  string    `json:"tenant_id" gorm:"type:uuid;not null;index"`
	ProductID string    `json:"product_id" gorm:"type:uuid;not null;index"`
	Cost      float64   `json:"cost" gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (ProductCost) TableName() string {
	return "product_costs"
}
