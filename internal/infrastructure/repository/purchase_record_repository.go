package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stockmate/stockmate-api/internal/domain/entity"
	"github.com/stockmate/stockmate-api/internal/domain/enum"
	domainRepo "github.com/stockmate/stockmate-api/internal/domain/repository"
	"gorm.io/gorm"
)

type purchaseRecordRepository struct {
	db *gorm.DB
}

// NewPurchaseRecordRepository creates a new purchase record repository backed
// by the database
func NewPurchaseRecordRepository(db *gorm.DB) domainRepo.PurchaseRecordRepository {
	return &purchaseRecordRepository{db: db}
}

func (r *purchaseRecordRepository) Create(ctx context.Context, record *entity.PurchaseRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *purchaseRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseRecord, error) {
	var record entity.PurchaseRecord
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *purchaseRecordRepository) GetByPurchaseNo(ctx context.Context, purchaseNo string) (*entity.PurchaseRecord, error) {
	var record entity.PurchaseRecord
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&record, "purchase_no = ?", purchaseNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *purchaseRecordRepository) List(ctx context.Context, params *domainRepo.PurchaseRecordFilterParams) ([]entity.PurchaseRecord, int64, error) {
	var records []entity.PurchaseRecord
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PurchaseRecord{})

	if params.Search != "" {
		query = query.Where("purchase_no ILIKE ? OR supplier_name ILIKE ?", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.PaymentMode != nil {
		query = query.Where("payment_mode = ?", *params.PaymentMode)
	}

	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// OrderColumn only ever yields an allowlisted column name
	order := params.OrderColumn() + " DESC"
	if params.Ascending() {
		order = params.OrderColumn() + " ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items").
		Order(order).
		Find(&records).Error

	return records, total, err
}

func (r *purchaseRecordRepository) Stats(ctx context.Context, monthStart time.Time) (*domainRepo.PurchaseStats, error) {
	stats := &domainRepo.PurchaseStats{}

	base := r.db.WithContext(ctx).Model(&entity.PurchaseRecord{})

	if err := base.Session(&gorm.Session{}).Count(&stats.TotalPurchases).Error; err != nil {
		return nil, err
	}

	if err := base.Session(&gorm.Session{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Row().Scan(&stats.TotalSpend); err != nil {
		return nil, err
	}

	if err := base.Session(&gorm.Session{}).
		Where("date >= ?", monthStart).
		Select("COALESCE(SUM(total_amount), 0)").
		Row().Scan(&stats.MonthSpend); err != nil {
		return nil, err
	}

	rows := []struct {
		PaymentMode string
		Purchases   int64
		Spend       float64
	}{}
	if err := base.Session(&gorm.Session{}).
		Select("payment_mode, COUNT(*) AS purchases, COALESCE(SUM(total_amount), 0) AS spend").
		Group("payment_mode").
		Order("spend DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats.ByPaymentMode = make([]domainRepo.PaymentModeSpend, 0, len(rows))
	for _, row := range rows {
		stats.ByPaymentMode = append(stats.ByPaymentMode, domainRepo.PaymentModeSpend{
			PaymentMode: enum.PaymentMode(row.PaymentMode),
			Purchases:   row.Purchases,
			Spend:       row.Spend,
		})
	}

	return stats, nil
}
