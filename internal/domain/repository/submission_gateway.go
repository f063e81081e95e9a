package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockmate/stockmate-api/internal/domain/entity"
)

// SubmissionAck acknowledges a durably recorded purchase order
type SubmissionAck struct {
	RecordID   uuid.UUID `json:"record_id"`
	PurchaseNo string    `json:"purchase_no"`
}

// SubmissionGateway is the outbound port through which a validated order is
// durably recorded. Submit blocks until the backend resolves; failures come
// back as error values, never panics, so the caller can keep the user's data
// intact and surface the failure.
type SubmissionGateway interface {
	Submit(ctx context.Context, snapshot *entity.OrderSnapshot) (*SubmissionAck, error)
}
