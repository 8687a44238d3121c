package repository

import "gorm.io/gorm"

// Repositories 仓库集合
type Repositories struct {
	Stage        *StageRepository
	Batch        *BatchRepository
	Wip          *WipRepository
	Leather      *LeatherRepository
	Accessories  *AccessoriesRepository
	FinishedGood *FinishedGoodRepository
	Order        *OrderRepository
	Product      *ProductRepository
	Supplier     *SupplierRepository
	Invoice      *InvoiceRepository
	Tenant       *TenantRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Stage:        NewStageRepository(db),
		Batch:        NewBatchRepository(db),
		Wip:          NewWipRepository(db),
		Leather:      NewLeatherRepository(db),
		Accessories:  NewAccessoriesRepository(db),
		FinishedGood: NewFinishedGoodRepository(db),
		Order:        NewOrderRepository(db),
		Product:      NewProductRepository(db),
		Supplier:     NewSupplierRepository(db),
		Invoice:      NewInvoiceRepository(db),
		Tenant:       NewTenantRepository(db),
	}
}
