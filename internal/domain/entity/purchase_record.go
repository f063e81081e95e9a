package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/stockmate/stockmate-api/internal/domain/enum"
	"gorm.io/gorm"
)

// PurchaseRecord is the durable record of a submitted purchase order
type PurchaseRecord struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseNo   string           `gorm:"size:100;unique;not null" json:"purchase_no"`
	SupplierName string           `gorm:"size:255;not null" json:"supplier_name"`
	Date         time.Time        `gorm:"type:date;not null" json:"date"`
	PaymentMode  enum.PaymentMode `gorm:"size:50;default:'Cash'" json:"payment_mode"`
	TotalAmount  float64          `gorm:"type:decimal(15,2);default:0" json:"total_amount"`
	PaidAmount   *float64         `gorm:"type:decimal(15,2)" json:"paid_amount,omitempty"`
	Notes        string           `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Items []PurchaseRecordItem `gorm:"foreignKey:PurchaseID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase record
func (p *PurchaseRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseRecord model
func (PurchaseRecord) TableName() string {
	return "purchase_records"
}

// PurchaseRecordItem is a line item within a recorded purchase
type PurchaseRecordItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"purchase_id"`
	ProductName string         `gorm:"size:255;not null" json:"product_name"`
	MRP         *float64       `gorm:"type:decimal(15,2)" json:"mrp,omitempty"`
	Quantity    float64        `gorm:"type:decimal(15,3);not null" json:"quantity"`
	UnitCost    float64        `gorm:"type:decimal(15,2);not null" json:"unit_cost"`
	Total       float64        `gorm:"type:decimal(15,2);not null" json:"total"`
	BatchNo     string         `gorm:"size:100" json:"batch_no,omitempty"`
	ExpiryDate  *time.Time     `gorm:"type:date" json:"expiry_date,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Purchase PurchaseRecord `gorm:"foreignKey:PurchaseID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new purchase record item
func (i *PurchaseRecordItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseRecordItem model
func (PurchaseRecordItem) TableName() string {
	return "purchase_record_items"
}
