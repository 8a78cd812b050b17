// Package refund implements the refund financial workflow: structural
// validation of requested amounts, the refundable-amount arithmetic over an
// order's refund history, and the pending -> approved -> processed
// lifecycle service.
package refund

import (
	"github.com/example/birchwood/internal/models"
)

// ValidationResult reports every violated rule, not only the first.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateRefund checks a proposed refund amount against the order's
// current state. Pure; refund history is checked separately by the service
// via RefundableAmount. Amounts are integer minor currency units.
func ValidateRefund(order *models.Order, amount int64) ValidationResult {
	var errs []string

	if order.Status == models.OrderStatusCancelled {
		errs = append(errs, "cannot refund a cancelled order")
	}
	if amount < 0 {
		errs = append(errs, "refund amount cannot be negative")
	}
	if amount > order.TotalAmount {
		errs = append(errs, "refund amount exceeds order total")
	}
	if amount == 0 {
		errs = append(errs, "refund amount must be greater than zero")
	}
	if order.RefundStatus == models.RefundStatusFull {
		errs = append(errs, "order is already fully refunded")
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// RefundableAmount returns how much of the order total is still refundable
// given the existing refunds. Only approved and processed refunds count;
// pending requests do not reserve any amount.
func RefundableAmount(orderTotal int64, existing []models.Refund) int64 {
	var committed int64
	for _, r := range existing {
		if r.Status == models.RefundApproved || r.Status == models.RefundProcessed {
			committed += r.Amount
		}
	}

	remaining := orderTotal - committed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// WouldBeFullRefund reports whether granting amount on top of the existing
// refunds would leave nothing refundable.
func WouldBeFullRefund(orderTotal, amount int64, existing []models.Refund) bool {
	return amount >= RefundableAmount(orderTotal, existing)
}

// aggregateStatus derives the order-level refund status from the committed
// refund sum. Equal-to-total means full.
func aggregateStatus(orderTotal int64, refunds []models.Refund) string {
	var committed int64
	for _, r := range refunds {
		if r.Status == models.RefundApproved || r.Status == models.RefundProcessed {
			committed += r.Amount
		}
	}

	switch {
	case committed <= 0:
		return models.RefundStatusNone
	case committed >= orderTotal:
		return models.RefundStatusFull
	default:
		return models.RefundStatusPartial
	}
}
