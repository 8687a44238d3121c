package repository

import (
	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(inv *entity.CommercialInvoice) error {
	return r.db.Create(inv).Error
}

func (r *InvoiceRepository) GetByID(tenantID, id string) (*entity.CommercialInvoice, error) {
	var inv entity.CommercialInvoice
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).
		Preload("Attachments").
		First(&inv).Error
	return &inv, err
}

func (r *InvoiceRepository) List(tenantID string) ([]entity.CommercialInvoice, error) {
	var invoices []entity.CommercialInvoice
	err := r.db.Where("tenant_id = ?", tenantID).
		Preload("Attachments").
		Order("invoice_date DESC").
		Find(&invoices).Error
	return invoices, err
}

// FindUnbatchedByOrder 订单下尚未关联批次的发票
func (r *InvoiceRepository) FindUnbatchedByOrder(tenantID, orderID string) (*entity.CommercialInvoice, error) {
	var inv entity.CommercialInvoice
	err := r.db.Where("tenant_id = ? AND order_id = ? AND batch_id IS NULL", tenantID, orderID).
		First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepository) Update(inv *entity.CommercialInvoice) error {
	return r.db.Save(inv).Error
}

func (r *InvoiceRepository) CreateAttachment(att *entity.InvoiceAttachment) error {
	return r.db.Create(att).Error
}
