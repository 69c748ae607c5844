package models

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrQuantityTooSmall is returned for item quantities below 1.
	ErrQuantityTooSmall = errors.New("quantity must be at least 1")
	// ErrUnitPriceNegative is returned when an item's unit price is below zero.
	ErrUnitPriceNegative = errors.New("unit price must not be negative")
)

// OrderItem is a single line of an order. ProductName and UnitPrice are
// snapshots copied from the product on first save, so later catalog edits do
// not alter orders that were already placed. The product reference itself
// stays, which is why a referenced product cannot be deleted.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey"`
	OrderID     uint            `gorm:"not null;index"`
	ProductID   uint            `gorm:"not null;index"`
	ProductName string          `gorm:"size:150;not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity    int             `gorm:"not null;default:1"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (i *OrderItem) TableName() string {
	return "order_items"
}

// BeforeSave validates the line, copies the product snapshot when missing,
// and recomputes the line total.
func (i *OrderItem) BeforeSave(tx *gorm.DB) error {
	if i.Quantity < 1 {
		return ErrQuantityTooSmall
	}
	if i.UnitPrice.IsNegative() {
		return ErrUnitPriceNegative
	}

	if i.ProductName == "" || i.UnitPrice.IsZero() {
		var product Product
		if err := tx.First(&product, i.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		if i.ProductName == "" {
			i.ProductName = product.Name
		}
		if i.UnitPrice.IsZero() {
			i.UnitPrice = product.Price
		}
	}

	i.LineTotal = i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
	return nil
}

// AfterSave keeps the parent order's aggregates in sync after every item
// create or update.
func (i *OrderItem) AfterSave(tx *gorm.DB) error {
	return i.refreshOrderTotals(tx)
}

// AfterDelete keeps the parent order's aggregates in sync after an item is
// removed.
func (i *OrderItem) AfterDelete(tx *gorm.DB) error {
	return i.refreshOrderTotals(tx)
}

func (i *OrderItem) refreshOrderTotals(tx *gorm.DB) error {
	var order Order
	if err := tx.First(&order, i.OrderID).Error; err != nil {
		return err
	}
	_, err := order.UpdateTotals(tx)
	return err
}
