package service

import (
	"errors"
	"fmt"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("记录不存在")

// ValidationError 调用方输入非法（工序不存在、数量不合法等），无副作用
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InsufficientStockError 原料库存不足
// 首次流转扣料遇到缺口时返回，整个工序流转事务回滚。
type InsufficientStockError struct {
	Material  string  // leather | accessory | finished_good
	Shortfall float64 // 缺口数量
	Unit      string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s库存不足: 还需 %.2f %s", materialLabel(e.Material), e.Shortfall, e.Unit)
}

func materialLabel(material string) string {
	switch material {
	case "leather":
		return "皮革"
	case "accessory":
		return "辅料"
	case "finished_good":
		return "成品"
	}
	return material
}
