package entity

import (
	"time"

	"gorm.io/datatypes"
)

// OrderStatus 订单状态
const (
	OrderStatusPending      = "pending"
	OrderStatusInProduction = "in_production"
	OrderStatusCompleted    = "completed"
	OrderStatusCancelled    = "cancelled"
)

// OrderType 订单类型
const (
	OrderTypeOnline    = "online_order"
	OrderTypeCorporate = "corporate_order"
	OrderTypeSample    = "sample"
)

// Order 生产订单，批次由订单生成
type Order struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TenantID  string     `json:"tenant_id" gorm:"type:uuid;not null;index"`
	ProductID string     `json:"product_id" gorm:"type:uuid;not null;index"`
	OrderType string     `json:"order_type" gorm:"size:30"`
	Quantity  int        `json:"quantity" gorm:"not null"`
	Color     string     `json:"color" gorm:"size:255"`
	SKU       string     `json:"sku" gorm:"size:255"`
	Status    string     `json:"status" gorm:"size:20;not null;default:pending"`
	Notes     string     `json:"notes" gorm:"type:text"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at" gorm:"index"`

	Product  *Product            `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Batches  []Batch             `json:"batches,omitempty" gorm:"foreignKey:OrderID"`
	Invoices []CommercialInvoice `json:"commercial_invoices,omitempty" gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string {
	return "orders"
}

// CommercialInvoice 商业发票（随订单/批次自动生成，product_details 存行项目快照）
type CommercialInvoice struct {
	ID             string         `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TenantID       string         `json:"tenant_id" gorm:"type:uuid;not null;index"`
	OrderID        string         `json:"order_id" gorm:"type:uuid;not null;index"`
	BatchID        *string        `json:"batch_id" gorm:"type:uuid;index"`
	InvoiceNumber  string         `json:"invoice_number" gorm:"size:50;not null;uniqueIndex"`
	ProductDetails datatypes.JSON `json:"product_details" gorm:"type:jsonb"`
	TotalAmount    float64        `json:"total_amount" gorm:"type:decimal(14,2);not null;default:0"`
	InvoiceDate    time.Time      `json:"invoice_date" gorm:"not null"`
	Notes          string         `json:"notes" gorm:"type:text"`
	CreatedBy      string         `json:"created_by" gorm:"type:uuid"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`

	Attachments []InvoiceAttachment `json:"attachments,omitempty" gorm:"foreignKey:InvoiceID"`
}

func (CommercialInvoice) TableName() string {
	return "commercial_invoices"
}

// InvoiceAttachment 发票附件，文件存 MinIO，file_path 为对象键
type InvoiceAttachment struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TenantID   string    `json:"tenant_id" gorm:"type:uuid;not null;index"`
	InvoiceID  string    `json:"invoice_id" gorm:"type:uuid;not null;index"`
	FileName   string    `json:"file_name" gorm:"size:256;not null"`
	FilePath   string    `json:"file_path" gorm:"size:512;not null"`
	FileSize   int64     `json:"file_size" gorm:"not null"`
	MimeType   string    `json:"mime_type" gorm:"size:128"`
	UploadedBy string    `json:"uploaded_by" gorm:"type:uuid;not null"`
	CreatedAt  time.Time `json:"created_at"`
}

func (InvoiceAttachment) TableName() string {
	return "invoice_attachments"
}
