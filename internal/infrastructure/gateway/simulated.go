package gateway

import (
	"context"
	"strings"
	"time"

	"github.com/stockmate/stockmate-api/internal/domain/entity"
	domainRepo "github.com/stockmate/stockmate-api/internal/domain/repository"
	"github.com/stockmate/stockmate-api/pkg/utils"
)

// SimulatedGateway records submitted orders through the purchase-record
// repository after a configurable latency that stands in for the round trip
// to a real procurement backend. The latency window honors context
// cancellation, so a caller-imposed timeout aborts the submission before
// anything is written.
type SimulatedGateway struct {
	recordRepo domainRepo.PurchaseRecordRepository
	latency    time.Duration
}

// NewSimulatedGateway creates a new simulated submission gateway
func NewSimulatedGateway(recordRepo domainRepo.PurchaseRecordRepository, latency time.Duration) *SimulatedGateway {
	return &SimulatedGateway{
		recordRepo: recordRepo,
		latency:    latency,
	}
}

// Submit waits out the simulated latency, then durably records the order
func (g *SimulatedGateway) Submit(ctx context.Context, snapshot *entity.OrderSnapshot) (*domainRepo.SubmissionAck, error) {
	if g.latency > 0 {
		timer := time.NewTimer(g.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	record := recordFromSnapshot(snapshot)
	if err := g.recordRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &domainRepo.SubmissionAck{
		RecordID:   record.ID,
		PurchaseNo: record.PurchaseNo,
	}, nil
}

// recordFromSnapshot converts an order snapshot into its durable form.
// Amounts are coerced with the same leniency the form uses.
func recordFromSnapshot(snapshot *entity.OrderSnapshot) *entity.PurchaseRecord {
	record := &entity.PurchaseRecord{
		PurchaseNo:   utils.GeneratePurchaseNo(),
		SupplierName: strings.TrimSpace(snapshot.Metadata.SupplierName),
		Date:         snapshot.Metadata.PurchaseDate,
		PaymentMode:  snapshot.Metadata.PaymentMode,
		TotalAmount:  snapshot.OrderTotal.InexactFloat64(),
		Notes:        snapshot.Metadata.Notes,
	}
	if strings.TrimSpace(snapshot.Metadata.PaidAmount) != "" {
		paid := entity.ParseAmount(snapshot.Metadata.PaidAmount).InexactFloat64()
		record.PaidAmount = &paid
	}

	record.Items = make([]entity.PurchaseRecordItem, 0, len(snapshot.Items))
	for i := range snapshot.Items {
		item := &snapshot.Items[i]
		recordItem := entity.PurchaseRecordItem{
			ProductName: strings.TrimSpace(item.ProductName),
			Quantity:    entity.ParseAmount(item.Quantity).InexactFloat64(),
			UnitCost:    entity.ParseAmount(item.CostPrice).InexactFloat64(),
			Total:       item.LineTotal().InexactFloat64(),
			BatchNo:     item.BatchNo,
			ExpiryDate:  item.ExpiryDate,
		}
		if strings.TrimSpace(item.MRP) != "" {
			mrp := entity.ParseAmount(item.MRP).InexactFloat64()
			recordItem.MRP = &mrp
		}
		record.Items = append(record.Items, recordItem)
	}
	return record
}
