package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stockmate/stockmate-api/internal/domain/entity"
	"github.com/stockmate/stockmate-api/internal/domain/enum"
	domainRepo "github.com/stockmate/stockmate-api/internal/domain/repository"
)

// memoryPurchaseRecordRepository keeps recorded purchases in process memory.
// It is the default store driver, letting the service run without a database;
// records do not survive a restart.
type memoryPurchaseRecordRepository struct {
	mu      sync.RWMutex
	records []entity.PurchaseRecord
}

// NewMemoryPurchaseRecordRepository creates an in-memory purchase record
// repository
func NewMemoryPurchaseRecordRepository() domainRepo.PurchaseRecordRepository {
	return &memoryPurchaseRecordRepository{}
}

func (r *memoryPurchaseRecordRepository) Create(ctx context.Context, record *entity.PurchaseRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	for i := range record.Items {
		if record.Items[i].ID == uuid.Nil {
			record.Items[i].ID = uuid.New()
		}
		record.Items[i].PurchaseID = record.ID
		record.Items[i].CreatedAt = now
		record.Items[i].UpdatedAt = now
	}

	r.records = append(r.records, cloneRecord(record))
	return nil
}

func (r *memoryPurchaseRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.records {
		if r.records[i].ID == id {
			record := cloneRecord(&r.records[i])
			return &record, nil
		}
	}
	return nil, nil
}

func (r *memoryPurchaseRecordRepository) GetByPurchaseNo(ctx context.Context, purchaseNo string) (*entity.PurchaseRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.records {
		if r.records[i].PurchaseNo == purchaseNo {
			record := cloneRecord(&r.records[i])
			return &record, nil
		}
	}
	return nil, nil
}

func (r *memoryPurchaseRecordRepository) List(ctx context.Context, params *domainRepo.PurchaseRecordFilterParams) ([]entity.PurchaseRecord, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]entity.PurchaseRecord, 0, len(r.records))
	for i := range r.records {
		record := &r.records[i]
		if !matchesFilter(record, params) {
			continue
		}
		matched = append(matched, cloneRecord(record))
	}

	// Same sortable columns and newest-first default as the database driver
	column := params.OrderColumn()
	ascending := params.Ascending()
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := &matched[i], &matched[j]
		if !ascending {
			a, b = b, a
		}
		switch column {
		case "date":
			return a.Date.Before(b.Date)
		case "purchase_no":
			return a.PurchaseNo < b.PurchaseNo
		case "supplier_name":
			return a.SupplierName < b.SupplierName
		case "total_amount":
			return a.TotalAmount < b.TotalAmount
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})

	total := int64(len(matched))

	params.Pagination.Validate()
	offset := params.Pagination.Offset()
	if offset >= len(matched) {
		return []entity.PurchaseRecord{}, total, nil
	}
	end := offset + params.Pagination.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *memoryPurchaseRecordRepository) Stats(ctx context.Context, monthStart time.Time) (*domainRepo.PurchaseStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &domainRepo.PurchaseStats{}
	byMode := make(map[enum.PaymentMode]*domainRepo.PaymentModeSpend)

	for i := range r.records {
		record := &r.records[i]
		stats.TotalPurchases++
		stats.TotalSpend += record.TotalAmount
		if !record.Date.Before(monthStart) {
			stats.MonthSpend += record.TotalAmount
		}

		modeStats, ok := byMode[record.PaymentMode]
		if !ok {
			modeStats = &domainRepo.PaymentModeSpend{PaymentMode: record.PaymentMode}
			byMode[record.PaymentMode] = modeStats
		}
		modeStats.Purchases++
		modeStats.Spend += record.TotalAmount
	}

	stats.ByPaymentMode = make([]domainRepo.PaymentModeSpend, 0, len(byMode))
	for _, modeStats := range byMode {
		stats.ByPaymentMode = append(stats.ByPaymentMode, *modeStats)
	}
	sort.Slice(stats.ByPaymentMode, func(i, j int) bool {
		return stats.ByPaymentMode[i].Spend > stats.ByPaymentMode[j].Spend
	})

	return stats, nil
}

func matchesFilter(record *entity.PurchaseRecord, params *domainRepo.PurchaseRecordFilterParams) bool {
	if params.Search != "" {
		search := strings.ToLower(params.Search)
		if !strings.Contains(strings.ToLower(record.PurchaseNo), search) &&
			!strings.Contains(strings.ToLower(record.SupplierName), search) {
			return false
		}
	}
	if params.PaymentMode != nil && record.PaymentMode != *params.PaymentMode {
		return false
	}
	if params.StartDate != nil && record.Date.Before(*params.StartDate) {
		return false
	}
	if params.EndDate != nil && record.Date.After(*params.EndDate) {
		return false
	}
	return true
}

func cloneRecord(record *entity.PurchaseRecord) entity.PurchaseRecord {
	clone := *record
	clone.Items = append([]entity.PurchaseRecordItem(nil), record.Items...)
	return clone
}
