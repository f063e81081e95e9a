package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockmate/stockmate-api/internal/domain/enum"
)

// ItemField names an editable field on a purchase line item. The values match
// the form's field names, which are also the keys inline errors are filed
// under.
type ItemField string

const (
	ItemFieldProductName ItemField = "productName"
	ItemFieldMRP         ItemField = "mrp"
	ItemFieldQuantity    ItemField = "quantity"
	ItemFieldCostPrice   ItemField = "costPrice"
	ItemFieldBatchNo     ItemField = "batchNo"
	ItemFieldExpiryDate  ItemField = "expiryDate"
)

// MetadataField names an editable field on the order metadata
type MetadataField string

const (
	MetadataFieldSupplierName MetadataField = "supplierName"
	MetadataFieldPurchaseDate MetadataField = "purchaseDate"
	MetadataFieldPaymentMode  MetadataField = "paymentMode"
	MetadataFieldPaidAmount   MetadataField = "paidAmount"
	MetadataFieldNotes        MetadataField = "notes"
)

// DateLayout is the wire format for date-valued form fields
const DateLayout = "2006-01-02"

var (
	ErrUnknownItemField     = errors.New("unknown line item field")
	ErrUnknownMetadataField = errors.New("unknown metadata field")
	ErrInvalidDate          = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidPaymentMode   = errors.New("invalid payment mode")
)

// LineItem is one product line within a purchase order. Numeric fields hold
// the raw text the user typed; they are coerced to numbers only when totals
// are computed or the order is validated. The ID is assigned at creation and
// never changes.
type LineItem struct {
	ID          uuid.UUID  `json:"id"`
	ProductName string     `json:"product_name"`
	MRP         string     `json:"mrp"`
	Quantity    string     `json:"quantity"`
	CostPrice   string     `json:"cost_price"`
	BatchNo     string     `json:"batch_no"`
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
}

// NewLineItem creates a blank line item with a fresh id
func NewLineItem() LineItem {
	return LineItem{ID: uuid.New()}
}

// SetField replaces one field's value. Date fields accept YYYY-MM-DD, or an
// empty value to clear.
func (i *LineItem) SetField(field ItemField, value string) error {
	switch field {
	case ItemFieldProductName:
		i.ProductName = value
	case ItemFieldMRP:
		i.MRP = value
	case ItemFieldQuantity:
		i.Quantity = value
	case ItemFieldCostPrice:
		i.CostPrice = value
	case ItemFieldBatchNo:
		i.BatchNo = value
	case ItemFieldExpiryDate:
		if strings.TrimSpace(value) == "" {
			i.ExpiryDate = nil
			return nil
		}
		date, err := time.Parse(DateLayout, value)
		if err != nil {
			return ErrInvalidDate
		}
		i.ExpiryDate = &date
	default:
		return ErrUnknownItemField
	}
	return nil
}

// LineTotal is quantity x cost price, never negative
func (i *LineItem) LineTotal() decimal.Decimal {
	total := ParseAmount(i.Quantity).Mul(ParseAmount(i.CostPrice))
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// OrderMetadata holds the supplier, date and payment details of an order
type OrderMetadata struct {
	SupplierName string           `json:"supplier_name"`
	PurchaseDate time.Time        `json:"purchase_date"`
	PaymentMode  enum.PaymentMode `json:"payment_mode"`
	PaidAmount   string           `json:"paid_amount"`
	Notes        string           `json:"notes"`
}

// NewOrderMetadata returns the defaults a fresh form starts with
func NewOrderMetadata() OrderMetadata {
	return OrderMetadata{
		PurchaseDate: time.Now(),
		PaymentMode:  enum.PaymentModeCash,
	}
}

// SetField replaces one metadata field's value
func (m *OrderMetadata) SetField(field MetadataField, value string) error {
	switch field {
	case MetadataFieldSupplierName:
		m.SupplierName = value
	case MetadataFieldPurchaseDate:
		date, err := time.Parse(DateLayout, value)
		if err != nil {
			return ErrInvalidDate
		}
		m.PurchaseDate = date
	case MetadataFieldPaymentMode:
		mode := enum.PaymentMode(value)
		if !mode.IsValid() {
			return ErrInvalidPaymentMode
		}
		m.PaymentMode = mode
	case MetadataFieldPaidAmount:
		m.PaidAmount = value
	case MetadataFieldNotes:
		m.Notes = value
	default:
		return ErrUnknownMetadataField
	}
	return nil
}

// Order is the in-progress purchase transaction: metadata plus an ordered
// sequence of line items. The sequence never goes empty; removing the last
// remaining item is a no-op.
type Order struct {
	Metadata OrderMetadata `json:"metadata"`
	Items    []LineItem    `json:"items"`
}

// NewOrder creates a fresh order with default metadata and one blank item
func NewOrder() *Order {
	return &Order{
		Metadata: NewOrderMetadata(),
		Items:    []LineItem{NewLineItem()},
	}
}

// AddItem appends a blank line item and returns its id
func (o *Order) AddItem() uuid.UUID {
	item := NewLineItem()
	o.Items = append(o.Items, item)
	return item.ID
}

// RemoveItem removes the item with the given id. Returns false without
// modifying the order when the id is unknown or the item is the only one
// left.
func (o *Order) RemoveItem(id uuid.UUID) bool {
	if len(o.Items) <= 1 {
		return false
	}
	for idx, item := range o.Items {
		if item.ID == id {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			return true
		}
	}
	return false
}

// ItemIndex returns the display position of the item with the given id, or -1
func (o *Order) ItemIndex(id uuid.UUID) int {
	for idx, item := range o.Items {
		if item.ID == id {
			return idx
		}
	}
	return -1
}

// SetItemField updates one field of the item with the given id and returns the
// item's display position. An unknown id is a silent no-op reported as -1.
func (o *Order) SetItemField(id uuid.UUID, field ItemField, value string) (int, error) {
	idx := o.ItemIndex(id)
	if idx < 0 {
		return -1, nil
	}
	if err := o.Items[idx].SetField(field, value); err != nil {
		return idx, err
	}
	return idx, nil
}

// Total is the sum of every item's line total, recomputed on each call
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].LineTotal())
	}
	return total
}

// Balance describes the difference between the order total and the paid
// amount
type Balance struct {
	Kind   enum.BalanceKind `json:"kind"`
	Amount decimal.Decimal  `json:"amount"`
}

// Balance compares the paid amount against the order total. Returns nil when
// no paid amount has been entered.
func (o *Order) Balance() *Balance {
	if strings.TrimSpace(o.Metadata.PaidAmount) == "" {
		return nil
	}
	paid := ParseAmount(o.Metadata.PaidAmount)
	total := o.Total()

	kind := enum.BalanceKindDue
	if paid.GreaterThanOrEqual(total) {
		kind = enum.BalanceKindExcess
	}
	return &Balance{Kind: kind, Amount: total.Sub(paid).Abs()}
}

// Snapshot returns a deep copy of the order together with its computed total,
// suitable for handing to the submission gateway while editing continues.
func (o *Order) Snapshot() *OrderSnapshot {
	items := make([]LineItem, len(o.Items))
	copy(items, o.Items)
	for i := range items {
		if items[i].ExpiryDate != nil {
			date := *items[i].ExpiryDate
			items[i].ExpiryDate = &date
		}
	}
	return &OrderSnapshot{
		Metadata:   o.Metadata,
		Items:      items,
		OrderTotal: o.Total(),
	}
}

// OrderSnapshot is an immutable copy of a validated order handed to the
// submission gateway
type OrderSnapshot struct {
	Metadata   OrderMetadata   `json:"metadata"`
	Items      []LineItem      `json:"items"`
	OrderTotal decimal.Decimal `json:"order_total"`
}
