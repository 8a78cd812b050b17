package refund

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/birchwood/internal/apperr"
	"github.com/example/birchwood/internal/models"
)

// Service owns the refund lifecycle. Every mutating operation wraps its
// read-validate-write sequence in one transaction holding a row lock on the
// parent order, so concurrent requests against the same order cannot push
// the committed refund sum past the order total.
type Service struct {
	db *gorm.DB
}

// NewService constructs a Service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateParams carries a refund request.
type CreateParams struct {
	OrderID uuid.UUID
	Amount  int64
	Reason  string
	Method  string
}

// Create validates and persists a new pending refund for an order.
// Structural rules are checked by ValidateRefund; on top of that the
// requested amount must fit within what the order's refund history still
// leaves refundable.
func (s *Service) Create(ctx context.Context, params CreateParams) (*models.Refund, error) {
	method := params.Method
	if method == "" {
		method = models.RefundMethodOriginal
	}
	if method != models.RefundMethodOriginal && method != models.RefundMethodManual && method != models.RefundMethodCash {
		return nil, apperr.NewValidation([]string{"unknown refund method: " + method})
	}

	var created *models.Refund
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := lockOrder(tx, params.OrderID)
		if err != nil {
			return err
		}

		var existing []models.Refund
		if err := tx.Where("order_id = ?", order.ID).Find(&existing).Error; err != nil {
			return err
		}

		result := ValidateRefund(order, params.Amount)
		errs := result.Errors
		if params.Amount > 0 && params.Amount > RefundableAmount(order.TotalAmount, existing) {
			errs = append(errs, "refund amount exceeds refundable amount")
		}
		if len(errs) > 0 {
			return apperr.NewValidation(errs)
		}

		refund := models.Refund{
			OrderID: order.ID,
			Amount:  params.Amount,
			Reason:  params.Reason,
			Method:  method,
			Status:  models.RefundPending,
		}
		if err := tx.Create(&refund).Error; err != nil {
			return err
		}

		created = &refund
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Approve moves a pending refund to approved and recomputes the order's
// aggregate refund status in the same transaction.
func (s *Service) Approve(ctx context.Context, refundID uuid.UUID) (*models.Refund, error) {
	return s.transition(ctx, refundID, models.RefundPending, models.RefundApproved,
		"refund must be pending before approval")
}

// Process moves an approved refund to processed and recomputes the order's
// aggregate refund status. This is the point where money would leave a real
// payment processor; here the observable effect is the state transition.
func (s *Service) Process(ctx context.Context, refundID uuid.UUID) (*models.Refund, error) {
	return s.transition(ctx, refundID, models.RefundApproved, models.RefundProcessed,
		"refund must be approved before processing")
}

func (s *Service) transition(ctx context.Context, refundID uuid.UUID, from, to, message string) (*models.Refund, error) {
	var updated *models.Refund
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refund models.Refund
		if err := tx.First(&refund, "id = ?", refundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("refund", refundID.String())
			}
			return err
		}

		if refund.Status != from {
			return apperr.NewInvalidState(refund.Status, message)
		}

		order, err := lockOrder(tx, refund.OrderID)
		if err != nil {
			return err
		}

		var all []models.Refund
		if err := tx.Where("order_id = ?", order.ID).Find(&all).Error; err != nil {
			return err
		}

		// Pending refunds reserve nothing, so two of them can together
		// exceed the order total. Approval is where an amount becomes
		// committed money; re-check it against the other refunds' committed
		// sum here or the approved+processed total could oversubscribe.
		if to == models.RefundApproved {
			others := make([]models.Refund, 0, len(all))
			for _, r := range all {
				if r.ID != refund.ID {
					others = append(others, r)
				}
			}
			if refund.Amount > RefundableAmount(order.TotalAmount, others) {
				return apperr.NewValidation([]string{"refund amount exceeds refundable amount"})
			}
		}

		if err := tx.Model(&models.Refund{}).
			Where("id = ?", refund.ID).
			Update("status", to).Error; err != nil {
			return err
		}
		refund.Status = to
		for i := range all {
			if all[i].ID == refund.ID {
				all[i].Status = to
			}
		}

		if err := tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("refund_status", aggregateStatus(order.TotalAmount, all)).Error; err != nil {
			return err
		}

		updated = &refund
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// List returns refunds newest-first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]models.Refund, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Refund{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var refunds []models.Refund
	if err := s.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&refunds).Error; err != nil {
		return nil, 0, err
	}

	return refunds, total, nil
}

// ListByOrder returns an order's refunds newest-first.
func (s *Service) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Refund, error) {
	var refunds []models.Refund
	if err := s.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at desc").
		Find(&refunds).Error; err != nil {
		return nil, err
	}
	return refunds, nil
}

// lockOrder loads the order under a FOR UPDATE row lock. SQLite has no row
// locks; its single-writer transaction already serializes, so the clause is
// only applied on Postgres.
func lockOrder(tx *gorm.DB, orderID uuid.UUID) (*models.Order, error) {
	query := tx
	if tx.Dialector.Name() == "postgres" {
		query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var order models.Order
	if err := query.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("order", orderID.String())
		}
		return nil, err
	}
	return &order, nil
}
