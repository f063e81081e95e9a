package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stockmate/stockmate-api/internal/domain/entity"
	"github.com/stockmate/stockmate-api/internal/domain/enum"
	"github.com/stockmate/stockmate-api/internal/domain/repository"
	"github.com/stockmate/stockmate-api/pkg/apperror"
)

// FormSession is one screen session's purchase-order form: the order being
// edited, the current violation set, and the lifecycle state. Each session
// owns exactly one order; commands are serialized by the session mutex.
type FormSession struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu              sync.Mutex
	order           *entity.Order
	errors          entity.FieldErrors
	state           enum.FormState
	lastSubmitError string
}

// reset replaces the order with a fresh one and clears all transient state.
// Caller must hold the session mutex.
func (s *FormSession) reset() {
	s.order = entity.NewOrder()
	s.errors = entity.FieldErrors{}
	s.state = enum.FormStateEditing
	s.lastSubmitError = ""
}

// OrderFormService drives purchase-order entry: it manages form sessions,
// applies edit commands, runs validation and orchestrates submission through
// the gateway.
type OrderFormService struct {
	gateway repository.SubmissionGateway

	mu       sync.RWMutex
	sessions map[uuid.UUID]*FormSession
}

// NewOrderFormService creates a new order form service
func NewOrderFormService(gateway repository.SubmissionGateway) *OrderFormService {
	return &OrderFormService{
		gateway:  gateway,
		sessions: make(map[uuid.UUID]*FormSession),
	}
}

// CreateSession opens a new form session holding a fresh order with one blank
// line item
func (s *OrderFormService) CreateSession() *FormSession {
	session := &FormSession{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
	}
	session.reset()

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session
}

func (s *OrderFormService) session(id uuid.UUID) (*FormSession, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, apperror.NewNotFoundError("Session")
	}
	return session, nil
}

// lockForEdit acquires the session mutex and rejects the edit when a
// submission is outstanding. The returned unlock must be called when done.
func (s *OrderFormService) lockForEdit(id uuid.UUID) (*FormSession, func(), error) {
	session, err := s.session(id)
	if err != nil {
		return nil, nil, err
	}
	session.mu.Lock()
	if session.state == enum.FormStateSubmitting {
		session.mu.Unlock()
		return nil, nil, apperror.ErrSubmissionInFlight
	}
	return session, session.mu.Unlock, nil
}

// AddItem appends a blank line item to the session's order and returns its id
func (s *OrderFormService) AddItem(sessionID uuid.UUID) (uuid.UUID, error) {
	session, unlock, err := s.lockForEdit(sessionID)
	if err != nil {
		return uuid.Nil, err
	}
	defer unlock()

	return session.order.AddItem(), nil
}

// RemoveItem removes a line item. Removing the last remaining item or an
// unknown id is a silent no-op.
func (s *OrderFormService) RemoveItem(sessionID, itemID uuid.UUID) error {
	session, unlock, err := s.lockForEdit(sessionID)
	if err != nil {
		return err
	}
	defer unlock()

	session.order.RemoveItem(itemID)
	return nil
}

// UpdateItem replaces one field of a line item. The field's error entry at the
// item's current position is cleared immediately, whether or not the new value
// is valid; the order is re-validated in full at submit time. An unknown item
// id is a silent no-op.
func (s *OrderFormService) UpdateItem(sessionID, itemID uuid.UUID, field entity.ItemField, value string) error {
	session, unlock, err := s.lockForEdit(sessionID)
	if err != nil {
		return err
	}
	defer unlock()

	idx, err := session.order.SetItemField(itemID, field, value)
	if errors.Is(err, entity.ErrUnknownItemField) {
		return apperror.ErrUnknownFormField
	}
	if err != nil {
		return apperror.ErrInvalidFieldValue
	}
	if idx >= 0 {
		delete(session.errors, entity.ItemKey(field, idx))
	}
	return nil
}

// UpdateMetadata replaces one order metadata field, clearing its error entry
// the same way UpdateItem does
func (s *OrderFormService) UpdateMetadata(sessionID uuid.UUID, field entity.MetadataField, value string) error {
	session, unlock, err := s.lockForEdit(sessionID)
	if err != nil {
		return err
	}
	defer unlock()

	if err := session.order.Metadata.SetField(field, value); err != nil {
		if errors.Is(err, entity.ErrUnknownMetadataField) {
			return apperror.ErrUnknownFormField
		}
		return apperror.ErrInvalidFieldValue
	}
	delete(session.errors, entity.MetadataKey(field))
	return nil
}

// SubmitResult reports the outcome of a submit command
type SubmitResult struct {
	Submitted bool                      `json:"submitted"`
	Errors    map[string]string         `json:"errors,omitempty"`
	Ack       *repository.SubmissionAck `json:"ack,omitempty"`
	Total     string                    `json:"total,omitempty"`
}

// Submit validates the order and, if clean, records it through the gateway.
// With violations present the session stays in editing with the errors stored
// for display and the gateway is never called. While the gateway call is
// outstanding the session is in submitting and every further command is
// rejected. On success the session resets to a fresh order; on gateway
// failure the order survives untouched and the failure is surfaced.
func (s *OrderFormService) Submit(ctx context.Context, sessionID uuid.UUID) (*SubmitResult, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	if session.state == enum.FormStateSubmitting {
		session.mu.Unlock()
		return nil, apperror.ErrSubmissionInFlight
	}

	session.state = enum.FormStateValidating
	errs := ValidateOrder(session.order)
	if len(errs) > 0 {
		session.errors = errs
		session.state = enum.FormStateEditing
		session.mu.Unlock()
		return &SubmitResult{Submitted: false, Errors: errs.Flatten()}, nil
	}

	session.errors = entity.FieldErrors{}
	session.state = enum.FormStateSubmitting
	snapshot := session.order.Snapshot()
	session.mu.Unlock()

	// The only suspension point: the session stays in submitting until the
	// gateway resolves.
	ack, gatewayErr := s.gateway.Submit(ctx, snapshot)

	session.mu.Lock()
	defer session.mu.Unlock()

	if gatewayErr != nil {
		session.state = enum.FormStateEditing
		session.lastSubmitError = gatewayErr.Error()
		return nil, apperror.NewSubmissionFailedError(gatewayErr)
	}

	total := entity.FormatAmount(snapshot.OrderTotal)
	session.reset()
	return &SubmitResult{Submitted: true, Ack: ack, Total: total}, nil
}

// Cancel discards the session's order and starts over with a fresh one. The
// gateway is never called. This is the committed action; the confirmation
// step belongs to the presentation layer.
func (s *OrderFormService) Cancel(sessionID uuid.UUID) error {
	session, unlock, err := s.lockForEdit(sessionID)
	if err != nil {
		return err
	}
	defer unlock()

	session.reset()
	return nil
}

// BalanceView is the rendered balance figure of the form
type BalanceView struct {
	Kind   enum.BalanceKind `json:"kind"`
	Amount string           `json:"amount"`
}

// FormView is the full form state the presentation layer reads on every
// render. Monetary figures are formatted with two fractional digits.
type FormView struct {
	SessionID       uuid.UUID         `json:"session_id"`
	State           enum.FormState    `json:"state"`
	Order           *entity.Order     `json:"order"`
	Errors          map[string]string `json:"errors"`
	LineTotals      []string          `json:"line_totals"`
	OrderTotal      string            `json:"order_total"`
	Balance         *BalanceView      `json:"balance,omitempty"`
	LastSubmitError string            `json:"last_submit_error,omitempty"`
}

// State returns the session's current form state with freshly computed
// aggregates
func (s *OrderFormService) State(sessionID uuid.UUID) (*FormView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	order := &entity.Order{
		Metadata: session.order.Metadata,
		Items:    append([]entity.LineItem(nil), session.order.Items...),
	}

	lineTotals := make([]string, len(order.Items))
	for i := range order.Items {
		lineTotals[i] = entity.FormatAmount(order.Items[i].LineTotal())
	}

	view := &FormView{
		SessionID:       session.ID,
		State:           session.state,
		Order:           order,
		Errors:          session.errors.Flatten(),
		LineTotals:      lineTotals,
		OrderTotal:      entity.FormatAmount(order.Total()),
		LastSubmitError: session.lastSubmitError,
	}
	if balance := order.Balance(); balance != nil {
		view.Balance = &BalanceView{
			Kind:   balance.Kind,
			Amount: entity.FormatAmount(balance.Amount),
		}
	}
	return view, nil
}
