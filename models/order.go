package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus enumerates the order lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the linear progression
// pending -> confirmed -> shipped -> delivered allows moving to next.
// Cancelled is reachable from any non-terminal state.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch next {
	case OrderStatusConfirmed:
		return s == OrderStatusPending
	case OrderStatusShipped:
		return s == OrderStatusConfirmed
	case OrderStatusDelivered:
		return s == OrderStatusShipped
	case OrderStatusCancelled:
		return s != OrderStatusDelivered && s != OrderStatusCancelled
	}
	return false
}

// PaymentMethod enumerates accepted payment methods.
type PaymentMethod string

// PaymentCashOnDelivery is currently the only accepted method.
const PaymentCashOnDelivery PaymentMethod = "cod"

func (m PaymentMethod) Valid() bool {
	return m == PaymentCashOnDelivery
}

var (
	// ErrFullNameRequired is returned when an order is created without a recipient name.
	ErrFullNameRequired = errors.New("full name is required")
	// ErrPhoneNumberRequired is returned when an order is created without a phone number.
	ErrPhoneNumberRequired = errors.New("phone number is required")
	// ErrCityRequired is returned when an order is created without a city.
	ErrCityRequired = errors.New("city is required")
	// ErrAddressRequired is returned when an order is created without an address.
	ErrAddressRequired = errors.New("address is required")
	// ErrDeliveryFeeNegative is returned when the delivery fee is below zero.
	ErrDeliveryFeeNegative = errors.New("delivery fee must not be negative")
	// ErrInvalidStatus is returned for a status outside the known set.
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrInvalidPaymentMethod is returned for an unknown payment method.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// Order represents a customer order. Monetary invariant:
// total_amount == subtotal + delivery_fee, where subtotal is the sum of the
// line totals of all attached items.
type Order struct {
	ID            uint            `gorm:"primaryKey"`
	Number        string          `gorm:"size:36;uniqueIndex;not null"`
	FullName      string          `gorm:"size:150;not null"`
	PhoneNumber   string          `gorm:"size:20;not null"`
	City          string          `gorm:"size:100;not null"`
	Address       string          `gorm:"type:text;not null"`
	PostalCode    string          `gorm:"size:20"`
	Notes         string          `gorm:"type:text"`
	Status        OrderStatus     `gorm:"size:20;not null;default:'pending'"`
	PaymentMethod PaymentMethod   `gorm:"size:20;not null;default:'cod'"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DeliveryFee   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (o *Order) TableName() string {
	return "orders"
}

// BeforeCreate validates the shipping fields, fills in defaults, and seeds
// the totals so the invariant holds even for an order created without items.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.FullName == "" {
		return ErrFullNameRequired
	}
	if o.PhoneNumber == "" {
		return ErrPhoneNumberRequired
	}
	if o.City == "" {
		return ErrCityRequired
	}
	if o.Address == "" {
		return ErrAddressRequired
	}
	if o.DeliveryFee.IsNegative() {
		return ErrDeliveryFeeNegative
	}

	if o.Number == "" {
		o.Number = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = OrderStatusPending
	} else if !o.Status.Valid() {
		return ErrInvalidStatus
	}
	if o.PaymentMethod == "" {
		o.PaymentMethod = PaymentCashOnDelivery
	} else if !o.PaymentMethod.Valid() {
		return ErrInvalidPaymentMethod
	}

	o.TotalAmount = o.Subtotal.Add(o.DeliveryFee)
	return nil
}

// UpdateTotals recomputes the subtotal from all items currently attached to
// the order and persists subtotal, total_amount and the update timestamp.
// The recomputation is idempotent: with no intervening item change a second
// call yields the same totals.
func (o *Order) UpdateTotals(tx *gorm.DB) (decimal.Decimal, error) {
	var items []OrderItem
	if err := tx.Where("order_id = ?", o.ID).Find(&items).Error; err != nil {
		return decimal.Zero, err
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal)
	}
	o.Subtotal = subtotal
	o.TotalAmount = subtotal.Add(o.DeliveryFee)

	err := tx.Model(&Order{}).Where("id = ?", o.ID).Updates(map[string]any{
		"subtotal":     o.Subtotal,
		"total_amount": o.TotalAmount,
		"updated_at":   time.Now(),
	}).Error
	if err != nil {
		return decimal.Zero, err
	}
	return o.TotalAmount, nil
}
