package models

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrdersRepository struct {
	db *gorm.DB
}

var (
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderItemNotFound is returned when an item does not belong to the order.
	ErrOrderItemNotFound = errors.New("order item not found")
	// ErrInvalidStatusChange is returned for a transition the order lifecycle
	// does not allow.
	ErrInvalidStatusChange = errors.New("invalid order status change")
)

type OrderFilters struct {
	Status OrderStatus
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		db: db,
	}
}

// CreateOrder persists the order together with its initial items in a single
// transaction. Item hooks snapshot product data and settle the order totals,
// so the returned order carries the final aggregates.
func (r *OrdersRepository) CreateOrder(order *Order) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		return err
	}
	return r.db.Preload("Items").First(order, order.ID).Error
}

func (r *OrdersRepository) GetByNumber(number string) (*Order, error) {
	var order Order
	if err := r.db.
		Preload("Items").
		Where("number = ?", number).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrdersRepository) GetFilteredOrders(offset, limit int, filters OrderFilters) ([]Order, int64, error) {
	var orders []Order
	var total int64

	query := r.db.Model(&Order{}).Preload("Items")

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// AddItem attaches a new line to the order. The whole read-modify-write,
// including the totals recomputation in the item hooks, runs inside one
// transaction.
func (r *OrdersRepository) AddItem(number string, item *OrderItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		order, err := findOrderForUpdate(tx, number)
		if err != nil {
			return err
		}
		item.OrderID = order.ID
		return tx.Create(item).Error
	})
}

// UpdateItemQuantity changes the quantity of an existing line. The line total
// and the order aggregates follow via the item hooks.
func (r *OrdersRepository) UpdateItemQuantity(number string, itemID uint, quantity int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		item, err := findOrderItem(tx, number, itemID)
		if err != nil {
			return err
		}
		item.Quantity = quantity
		return tx.Save(item).Error
	})
}

// RemoveItem deletes a line from the order and lets the item hooks settle the
// remaining aggregates.
func (r *OrdersRepository) RemoveItem(number string, itemID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		item, err := findOrderItem(tx, number, itemID)
		if err != nil {
			return err
		}
		return tx.Delete(item).Error
	})
}

// UpdateStatus moves the order along its lifecycle, rejecting transitions the
// state machine does not allow.
func (r *OrdersRepository) UpdateStatus(number string, next OrderStatus) error {
	if !next.Valid() {
		return ErrInvalidStatus
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		order, err := findOrderForUpdate(tx, number)
		if err != nil {
			return err
		}
		if !order.Status.CanTransitionTo(next) {
			return ErrInvalidStatusChange
		}
		return tx.Model(&Order{}).Where("id = ?", order.ID).Update("status", next).Error
	})
}

// RecalculateTotals re-derives the order aggregates from its current items.
// Exposed for direct invocation; item mutations already trigger the same
// recomputation through their hooks.
func (r *OrdersRepository) RecalculateTotals(number string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Transaction(func(tx *gorm.DB) error {
		order, err := findOrderForUpdate(tx, number)
		if err != nil {
			return err
		}
		total, err = order.UpdateTotals(tx)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func findOrderForUpdate(tx *gorm.DB, number string) (*Order, error) {
	var order Order
	if err := tx.Where("number = ?", number).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func findOrderItem(tx *gorm.DB, number string, itemID uint) (*OrderItem, error) {
	order, err := findOrderForUpdate(tx, number)
	if err != nil {
		return nil, err
	}
	var item OrderItem
	if err := tx.Where("id = ? AND order_id = ?", itemID, order.ID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderItemNotFound
		}
		return nil, err
	}
	return &item, nil
}
