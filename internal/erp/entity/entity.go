package entity

import "gorm.io/gorm"

// AutoMigrate 自动迁移所有表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// 基础数据
		&Tenant{},
		&User{},
		&Supplier{},
		&Product{},
		&ProductCost{},

		// 订单 / 发票
		&Order{},
		&CommercialInvoice{},
		&InvoiceAttachment{},

		// 生产
		&ProductionStage{},
		&Batch{},
		&BatchStageMovement{},
		&WipInventory{},
		&FinishedGood{},
		&FinishedGoodsAdjustment{},

		// 原料库存
		&LeatherInventory{},
		&LeatherConsumptionLog{},
		&LeatherInventoryAdjustment{},
		&AccessoriesInventory{},
		&AccessoriesConsumptionLog{},
	)
}

// SeedDefaultStages 写入默认工序（按名称幂等）
func SeedDefaultStages(db *gorm.DB) error {
	for _, stage := range DefaultStages() {
		var count int64
		if err := db.Model(&ProductionStage{}).Where("name = ?", stage.Name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			s := stage
			if err := db.Create(&s).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
