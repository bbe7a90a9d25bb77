package model

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is the immutable line-item snapshot taken at checkout time.
type CartItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
}

// SaleItem is a persisted cart line. Product name and prices are snapshots;
// later product edits never rewrite history.
type SaleItem struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	SaleID      uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	ProductID   uuid.UUID `gorm:"type:uuid;index;not null" json:"productId"`
	ProductName string    `gorm:"type:varchar(255);not null" json:"productName"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	UnitPrice   float64   `gorm:"type:numeric(12,2);not null" json:"unitPrice"`
	TotalPrice  float64   `gorm:"type:numeric(12,2);not null" json:"totalPrice"`
}

// Sale is append-only: created once at checkout, never mutated or deleted.
type Sale struct {
	BaseModel
	OwnerID         string     `gorm:"type:varchar(64);index;not null" json:"ownerId"`
	Date            time.Time  `gorm:"index;not null" json:"date"`
	Items           []SaleItem `gorm:"foreignKey:SaleID" json:"items"`
	Subtotal        float64    `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	DiscountApplied float64    `gorm:"type:numeric(5,2);default:0" json:"discountApplied"` // percentage
	DiscountAmount  float64    `gorm:"type:numeric(12,2);default:0" json:"discountAmount"`
	TotalAmount     float64    `gorm:"type:numeric(12,2);not null" json:"totalAmount"`
	InvoiceNumber   string     `gorm:"type:varchar(30);index;not null" json:"invoiceNumber"`

	// Customer reference, denormalized at sale time
	CustomerID      *uuid.UUID `gorm:"type:uuid;index" json:"customerId,omitempty"`
	CustomerName    string     `gorm:"type:varchar(255)" json:"customerName,omitempty"`
	CustomerEmail   string     `gorm:"type:varchar(255)" json:"customerEmail,omitempty"`
	CustomerPhone   string     `gorm:"type:varchar(30)" json:"customerPhone,omitempty"`
	CustomerAddress string     `gorm:"type:text" json:"customerAddress,omitempty"`
}
