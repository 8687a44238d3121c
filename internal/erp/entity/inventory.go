package entity

import (
	"time"
)

// ConsumptionMode 皮革耗料模式（租户级配置）
const (
	ConsumptionModeFormula = "formula" // 按产品耗料公式自动计算
	ConsumptionModeManual  = "manual"  // 人工录入
	ConsumptionModeHybrid  = "hybrid"  // 公式计算 + 人工校正
)

// DefaultLowStockThreshold 未配置预警线时的默认值 (sqft)
const DefaultLowStockThreshold = 500

// LeatherInventory 皮革库存批次（按采购日期 FIFO 消耗）
// consumption_reduction 为累计已消耗量，可用量 = quantity_sqft - consumption_reduction。
type LeatherInventory struct {
	ID                   string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TenantID             string     `json:"tenant_id" gorm:"type:uuid;not null;index"`
	LeatherName          string     `json:"leather_name" gorm:"size:255;not null"`
	BrandMake            string     `json:"brand_make" gorm:"size:255"`
	SupplierID           *string    `json:"supplier_id" gorm:"type:uuid"`
	PurchaseDate         time.Time  `json:"purchase_date" gorm:"not null;index"`
	QuantitySqft         float64    `json:"quantity_sqft" gorm:"type:decimal(12,2);not null"`
	ConsumptionReduction float64    `json:"consumption_reduction" gorm:"type:decimal(12,2);not null;default:0"`
	LowStockThreshold    *float64   `json:"low_stock_threshold" gorm:"type:decimal(12,2)"`
	SubmittedBy          *string    `json:"submitted_by" gorm:"type:uuid"`
	ReceivedBy           *string    `json:"received_by" gorm:"type:uuid"`
	DeliveredTo          string     `json:"delivered_to" gorm:"size:255"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
	DeletedAt            *time.Time `json:"deleted_at" gorm:"index"`

	Supplier        *Supplier                    `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	ConsumptionLogs []LeatherConsumptionLog      `json:"consumption_logs,omitempty" gorm:"foreignKey:LeatherInventoryID"`
	Adjustments     []LeatherInventoryAdjustment `json:"adjustments,omitempty" gorm:"foreignKey:LeatherInventoryID"`
}

func (LeatherInventory) TableName() string {
	return "leather_inventories"
}

// Available 当前可用量 (sqft)
func (l *LeatherInventory) Available() float64 {
	return l.QuantitySqft - l.ConsumptionReduction
}

// LeatherConsumptionLog 皮革消耗流水（只追加）
type LeatherConsumptionLog struct {
	ID                 string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TenantID           string    `json:"tenant_id" gorm:"type:uuid;not null;index"`
	BatchID            string    `json:"batch_id" gorm:"type:uuid;not null;index"`
	LeatherInventoryID string    `json:"leather_inventory_id" gorm:"type:uuid;not null;index"`
	QuantityConsumed   float64   `json:"quantity_consumed" gorm:"type:decimal(12,2);not null"`
	ConsumptionType    string    `json:"consumption_type" gorm:"size:20;not null"`
	Notes              string    `json:"notes" gorm:"type:text"`
	CreatedAt          time.Time `json:"created_at"`

	LeatherInventory *LeatherInventory `json:"leather_inventory,omitempty" gorm:"foreignKey:LeatherInventoryID"`
}

func (LeatherConsumptionLog) TableName() string {
	return "leather_consumption_logs"
}

// LeatherInventoryAdjustment 皮革库存手工调整记录
type LeatherInventoryAdjustment struct {
	ID                 string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TenantID           string    `json:"tenant_id" gorm:"type:uuid;not null;index"`
	LeatherInventoryID string    `json:"leather_inventory_id" gorm:"type:uuid;not null;index"`
	AdjustmentType     string    `json:"adjustment_type" gorm:"size:10;not null"`
	QuantitySqft       float64   `json:"quantity_sqft" gorm:"type:decimal(12,2);not null"`
	Reason             string    `json:"reason" gorm:"type:text"`
	AdjustedBy         string    `json:"adjusted_by" gorm:"type:uuid;not null"`
	AdjustedAt         time.Time `json:"adjusted_at" gorm:"not null"`
	CreatedAt          time.Time `json:"created_at"`

	AdjustedByUser *User `json:"adjusted_by_user,omitempty" gorm:"foreignKey:AdjustedBy"`
}

func (LeatherInventoryAdjustment) TableName() string {
	return "leather_inventory_adjustments"
}

// AccessoriesInventory 辅料库存（拉链、五金件等，单库位直接扣减，不做 FIFO 拆分）
type AccessoriesInventory struct {
	ID                  string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TenantID            string     `json:"tenant_id" gorm:"type:uuid;not null;index"`
	Name                string     `json:"name" gorm:"size:255;not null"`
	Quantity            float64    `json:"quantity" gorm:"type:decimal(12,2);not null;default:0"`
	Unit                string     `json:"unit" gorm:"size:20;not null;default:pcs"`
	ImportInvoiceNumber string     `json:"import_invoice_number" gorm:"size:255"`
	LowStockThreshold   *float64   `json:"low_stock_threshold" gorm:"type:decimal(12,2)"`
	SubmittedBy         *string    `json:"submitted_by" gorm:"type:uuid"`
	ReceivedBy          *string    `json:"received_by" gorm:"type:uuid"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	DeletedAt           *time.Time `json:"deleted_at" gorm:"index"`

	ConsumptionLogs []AccessoriesConsumptionLog `json:"consumption_logs,omitempty" gorm:"foreignKey:AccessoryInventoryID"`
}

func (AccessoriesInventory) TableName() string {
	return "accessories_inventories"
}

// AccessoriesConsumptionLog 辅料消耗流水（只追加）
type AccessoriesConsumptionLog struct {
	ID                   string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TenantID             string    `json:"tenant_id" gorm:"type:uuid;not null;index"`
	BatchID              string    `json:"batch_id" gorm:"type:uuid;not null;index"`
	AccessoryInventoryID string    `json:"accessory_inventory_id" gorm:"type:uuid;not null;index"`
	QuantityConsumed     float64   `json:"quantity_consumed" gorm:"type:decimal(12,2);not null"`
	Notes                string    `json:"notes" gorm:"type:text"`
	CreatedAt            time.Time `json:"created_at"`

	AccessoryInventory *AccessoriesInventory `json:"accessory_inventory,omitempty" gorm:"foreignKey:AccessoryInventoryID"`
}

func (AccessoriesConsumptionLog) TableName() string {
	return "accessories_consumption_logs"
}
