package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stockmate/stockmate-api/internal/domain/entity"
	"github.com/stockmate/stockmate-api/internal/domain/enum"
	"github.com/stockmate/stockmate-api/pkg/pagination"
)

// PurchaseRecordRepository defines the interface for recorded-purchase data
// operations
type PurchaseRecordRepository interface {
	Create(ctx context.Context, record *entity.PurchaseRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseRecord, error)
	GetByPurchaseNo(ctx context.Context, purchaseNo string) (*entity.PurchaseRecord, error)
	List(ctx context.Context, params *PurchaseRecordFilterParams) ([]entity.PurchaseRecord, int64, error)
	Stats(ctx context.Context, monthStart time.Time) (*PurchaseStats, error)
}

// PurchaseRecordFilterParams contains filtering parameters for recorded-purchase
// queries
type PurchaseRecordFilterParams struct {
	Pagination  *pagination.PaginationParams
	Search      string // matches purchase number or supplier name
	PaymentMode *enum.PaymentMode
	StartDate   *time.Time
	EndDate     *time.Time
	SortBy      string
	SortOrder   string
}

var sortableColumns = map[string]bool{
	"created_at":    true,
	"date":          true,
	"purchase_no":   true,
	"supplier_name": true,
	"total_amount":  true,
}

// OrderColumn returns the requested sort column. Anything outside the sortable
// set falls back to created_at, so the value is safe to place in an ORDER BY.
func (p *PurchaseRecordFilterParams) OrderColumn() string {
	if sortableColumns[p.SortBy] {
		return p.SortBy
	}
	return "created_at"
}

// Ascending reports the requested sort direction; the default is descending
// (newest first)
func (p *PurchaseRecordFilterParams) Ascending() bool {
	return strings.EqualFold(p.SortOrder, "asc")
}

// PurchaseStats aggregates recorded purchases for the dashboard
type PurchaseStats struct {
	TotalPurchases int64              `json:"total_purchases"`
	TotalSpend     float64            `json:"total_spend"`
	MonthSpend     float64            `json:"month_spend"`
	ByPaymentMode  []PaymentModeSpend `json:"by_payment_mode"`
}

// PaymentModeSpend is the spend recorded against one payment mode
type PaymentModeSpend struct {
	PaymentMode enum.PaymentMode `json:"payment_mode"`
	Purchases   int64            `json:"purchases"`
	Spend       float64          `json:"spend"`
}
