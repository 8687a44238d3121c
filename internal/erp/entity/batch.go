package entity

import (
	"time"
)

// BatchStatus 批次状态
const (
	BatchStatusPending    = "pending"
	BatchStatusInProgress = "in_progress"
	BatchStatusOnHold     = "on_hold"
	BatchStatusCompleted  = "completed"
	BatchStatusRework     = "rework"
)

// Batch 生产批次
// 一个订单生成一个批次，批次沿工序流水线移动。
// current_quantity 表示仍在流水线内的数量，成品入库时递减。
// materials_deducted 标记原料是否已扣减（整个批次生命周期内只扣一次）。
type Batch struct {
	ID                string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TenantID          string     `json:"tenant_id" gorm:"type:uuid;not null;index"`
	OrderID           string     `json:"order_id" gorm:"type:uuid;not null;index"`
	BatchCode         string     `json:"batch_code" gorm:"size:50;not null;uniqueIndex"`
	CurrentStageID    *string    `json:"current_stage_id" gorm:"type:uuid"`
	Status            string     `json:"status" gorm:"size:20;not null;default:pending"`
	TotalQuantity     int        `json:"total_quantity" gorm:"not null"`
	CurrentQuantity   int        `json:"current_quantity" gorm:"not null"`
	MaterialsDeducted bool       `json:"materials_deducted" gorm:"not null;default:false"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	DeletedAt         *time.Time `json:"deleted_at" gorm:"index"`

	Order          *Order               `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	CurrentStage   *ProductionStage     `json:"current_stage,omitempty" gorm:"foreignKey:CurrentStageID"`
	StageMovements []BatchStageMovement `json:"stage_movements,omitempty" gorm:"foreignKey:BatchID"`
	WipInventories []WipInventory       `json:"wip_inventories,omitempty" gorm:"foreignKey:BatchID"`
	FinishedGoods  []FinishedGood       `json:"finished_goods,omitempty" gorm:"foreignKey:BatchID"`
}

func (Batch) TableName() string {
	return "batches"
}

// BatchStageMovement 批次工序流转记录（只追加，构成批次完整履历）
// from_stage_id 为空表示批次从流水线外进入第一道工序。
type BatchStageMovement struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TenantID     string    `json:"tenant_id" gorm:"type:uuid;not null;index"`
	BatchID      string    `json:"batch_id" gorm:"type:uuid;not null;index"`
	FromStageID  *string   `json:"from_stage_id" gorm:"type:uuid"`
	ToStageID    string    `json:"to_stage_id" gorm:"type:uuid;not null"`
	Quantity     int       `json:"quantity" gorm:"not null"`
	SupervisorID string    `json:"supervisor_id" gorm:"type:uuid;not null"`
	Notes        string    `json:"notes" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`

	FromStage  *ProductionStage `json:"from_stage,omitempty" gorm:"foreignKey:FromStageID"`
	ToStage    *ProductionStage `json:"to_stage,omitempty" gorm:"foreignKey:ToStageID"`
	Supervisor *User            `json:"supervisor,omitempty" gorm:"foreignKey:SupervisorID"`
}

func (BatchStageMovement) TableName() string {
	return "batch_stage_movements"
}

// WipInventory 在制品库存：批次在某道工序上的当前数量
// 每个 (batch_id, stage_id) 一行，数量归零即删除。
type WipInventory struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TenantID  string    `json:"tenant_id" gorm:"type:uuid;not null;index"`
	BatchID   string    `json:"batch_id" gorm:"type:uuid;not null;uniqueIndex:uniq_wip_batch_stage"`
	StageID   string    `json:"stage_id" gorm:"type:uuid;not null;uniqueIndex:uniq_wip_batch_stage"`
	Quantity  int       `json:"quantity" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Stage *ProductionStage `json:"stage,omitempty" gorm:"foreignKey:StageID"`
}

func (WipInventory) TableName() string {
	return "wip_inventories"
}

// FinishedGood 成品库存记录
// 每次批次到达终点工序生成一条（同一批次可能分多次入库）。
type FinishedGood struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TenantID    string    `json:"tenant_id" gorm:"type:uuid;not null;index"`
	BatchID     string    `json:"batch_id" gorm:"type:uuid;not null;index"`
	ProductID   string    `json:"product_id" gorm:"type:uuid;not null;index"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	CompletedAt time.Time `json:"completed_at" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Batch       *Batch                    `json:"batch,omitempty" gorm:"foreignKey:BatchID"`
	Product     *Product                  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Adjustments []FinishedGoodsAdjustment `json:"adjustments,omitempty" gorm:"foreignKey:FinishedGoodID"`
}

func (FinishedGood) TableName() string {
	return "finished_goods"
}

// AdjustmentType 库存调整类型
const (
	AdjustmentTypeAdd    = "add"
	AdjustmentTypeDeduct = "deduct"
)

// FinishedGoodsAdjustment 成品库存手工调整记录
type FinishedGoodsAdjustment struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TenantID        string    `json:"tenant_id" gorm:"type:uuid;not null;index"`
	FinishedGoodID  string    `json:"finished_good_id" gorm:"type:uuid;not null;index"`
	AdjustmentType  string    `json:"adjustment_type" gorm:"size:10;not null"`
	Quantity        int       `json:"quantity" gorm:"not null"`
	Reason          string    `json:"reason" gorm:"type:text"`
	ExportReference string    `json:"export_reference" gorm:"size:255"`
	AdjustedBy      string    `json:"adjusted_by" gorm:"type:uuid;not null"`
	AdjustedAt      time.Time `json:"adjusted_at" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at"`

	AdjustedByUser *User `json:"adjusted_by_user,omitempty" gorm:"foreignKey:AdjustedBy"`
}

func (FinishedGoodsAdjustment) TableName() string {
	return "finished_goods_adjustments"
}
