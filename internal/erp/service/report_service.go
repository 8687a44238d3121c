package service

import (
	"fmt"
	"time"

	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"github.com/abrhamtibebu/lp-ERP/internal/erp/repository"
	"github.com/xuri/excelize/v2"
)

// FinishedGoodsAgingDays 成品滞库报表的滞库天数阈值
const FinishedGoodsAgingDays = 30

// ReportService 生产/库存报表
type ReportService struct {
	batchRepo       *repository.BatchRepository
	leatherRepo     *repository.LeatherRepository
	accessoriesRepo *repository.AccessoriesRepository
	fgRepo          *repository.FinishedGoodRepository
}

func NewReportService(
	batchRepo *repository.BatchRepository,
	leatherRepo *repository.LeatherRepository,
	accessoriesRepo *repository.AccessoriesRepository,
	fgRepo *repository.FinishedGoodRepository,
) *ReportService {
	return &ReportService{
		batchRepo:       batchRepo,
		leatherRepo:     leatherRepo,
		accessoriesRepo: accessoriesRepo,
		fgRepo:          fgRepo,
	}
}

// WipTracker 在制品追踪：全部批次及各工序在制品分布
func (s *ReportService) WipTracker(tenantID string) ([]entity.Batch, error) {
	return s.batchRepo.ListAllWithWip(tenantID)
}

// MaterialLevel 按名称汇总的库存水位
type MaterialLevel struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// InventoryLevels 原料库存水位：皮革按名称合并可用量，辅料按名称合并数量
type InventoryLevels struct {
	Leather     []MaterialLevel `json:"leather"`
	Accessories []MaterialLevel `json:"accessories"`
}

func (s *ReportService) InventoryLevels(tenantID string) (*InventoryLevels, error) {
	lots, err := s.leatherRepo.ListWithRelations(tenantID)
	if err != nil {
		return nil, fmt.Errorf("读取皮革库存失败: %w", err)
	}
	accessories, err := s.accessoriesRepo.List(tenantID)
	if err != nil {
		return nil, fmt.Errorf("读取辅料库存失败: %w", err)
	}

	levels := &InventoryLevels{}

	leatherByName := make(map[string]float64)
	var leatherNames []string
	for i := range lots {
		name := lots[i].LeatherName
		if _, seen := leatherByName[name]; !seen {
			leatherNames = append(leatherNames, name)
		}
		leatherByName[name] += lots[i].Available()
	}
	for _, name := range leatherNames {
		levels.Leather = append(levels.Leather, MaterialLevel{Name: name, Quantity: leatherByName[name], Unit: "sqft"})
	}

	accByName := make(map[string]*MaterialLevel)
	var accNames []string
	for i := range accessories {
		item := &accessories[i]
		if lvl, seen := accByName[item.Name]; seen {
			lvl.Quantity += item.Quantity
		} else {
			accByName[item.Name] = &MaterialLevel{Name: item.Name, Quantity: item.Quantity, Unit: item.Unit}
			accNames = append(accNames, item.Name)
		}
	}
	for _, name := range accNames {
		levels.Accessories = append(levels.Accessories, *accByName[name])
	}

	return levels, nil
}

// ExportInventoryLevels 导出库存水位为 xlsx
func (s *ReportService) ExportInventoryLevels(tenantID string) (*excelize.File, error) {
	levels, err := s.InventoryLevels(tenantID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Inventory Levels"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Material", "Type", "Quantity", "Unit"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	writeRow := func(name, kind string, qty float64, unit string) {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), kind)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), qty)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), unit)
		row++
	}
	for _, lvl := range levels.Leather {
		writeRow(lvl.Name, "leather", lvl.Quantity, lvl.Unit)
	}
	for _, lvl := range levels.Accessories {
		writeRow(lvl.Name, "accessory", lvl.Quantity, lvl.Unit)
	}

	return f, nil
}

// FinishedGoodsAging 成品滞库报表：入库超过 30 天仍未出库的成品
func (s *ReportService) FinishedGoodsAging(tenantID string) ([]entity.FinishedGood, error) {
	cutoff := time.Now().AddDate(0, 0, -FinishedGoodsAgingDays)
	return s.fgRepo.ListAgedBefore(tenantID, cutoff)
}
