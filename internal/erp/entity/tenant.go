package entity

import (
	"time"
)

// Tenant 租户（一个皮具工厂）
// leather_consumption_mode 决定批次首次流转时皮革扣减方式。
type Tenant struct {
	ID                     string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name                   string    `json:"name" gorm:"size:255;not null"`
	LeatherConsumptionMode string    `json:"leather_consumption_mode" gorm:"size:20;not null;default:formula"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

func (Tenant) TableName() string {
	return "tenants"
}

// User 用户（车间主管、管理员等）
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TenantID  string    `json:"tenant_id" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"size:128;not null"`
	Email     string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Supplier 供应商
type Supplier struct {
	ID            string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TenantID      string     `json:"tenant_id" gorm:"type:uuid;not null;index"`
	Name          string     `json:"name" gorm:"size:255;not null"`
	ContactPerson string     `json:"contact_person" gorm:"size:128"`
	Phone         string     `json:"phone" gorm:"size:50"`
	Email         string     `json:"email" gorm:"size:255"`
	Address       string     `json:"address" gorm:"type:text"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at" gorm:"index"`
}

func (Supplier) TableName() string {
	return "suppliers"
}
