package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stockmate/stockmate-api/internal/domain/entity"
	"github.com/stockmate/stockmate-api/internal/domain/repository"
	"github.com/stockmate/stockmate-api/pkg/apperror"
	"github.com/stockmate/stockmate-api/pkg/pagination"
)

// PurchaseLogService exposes the recorded purchases for listing and dashboard
// statistics
type PurchaseLogService struct {
	recordRepo repository.PurchaseRecordRepository
}

// NewPurchaseLogService creates a new purchase log service
func NewPurchaseLogService(recordRepo repository.PurchaseRecordRepository) *PurchaseLogService {
	return &PurchaseLogService{recordRepo: recordRepo}
}

// ListPurchases lists recorded purchases with filtering
func (s *PurchaseLogService) ListPurchases(ctx context.Context, params *repository.PurchaseRecordFilterParams) (*pagination.PaginatedResult[entity.PurchaseRecord], error) {
	records, total, err := s.recordRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(records, pag), nil
}

// GetPurchase retrieves a recorded purchase by ID
func (s *PurchaseLogService) GetPurchase(ctx context.Context, id uuid.UUID) (*entity.PurchaseRecord, error) {
	record, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	return record, nil
}

// DashboardStats returns purchase statistics for the dashboard. Month-to-date
// spend is computed from the first day of the current month.
func (s *PurchaseLogService) DashboardStats(ctx context.Context) (*repository.PurchaseStats, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return s.recordRepo.Stats(ctx, monthStart)
}
