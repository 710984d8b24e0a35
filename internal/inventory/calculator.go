// backend-go/internal/inventory/calculator.go

// Package inventory holds the pure stock-adjustment arithmetic. It computes
// outcomes over an already-fetched InventoryState snapshot and never touches
// storage itself.
package inventory

import "github.com/rcabanilla/schoolclinic/backend-go/internal/domain"

// PresentBatchQuantity derives the standing quantity of a single batch from
// its receipt quantity, disposal total and adjustment totals.
//
// When the disposal total is nonzero the adjustment totals are ignored.
// That mirrors the behavior the clinic staff have been working with and has
// been flagged for product-owner review; do not fold the totals in here
// without that sign-off.
func PresentBatchQuantity(state domain.InventoryState) int {
	if state.BatchDisposalTotal == 0 {
		if state.BatchAdditionAdjustment == 0 && state.BatchSubtractionAdjustment == 0 {
			return state.BatchInQuantity
		}
		return abs(state.BatchInQuantity + state.BatchAdditionAdjustment -
			state.BatchSubtractionAdjustment - state.BatchDisposalTotal)
	}

	return abs(state.BatchInQuantity - state.BatchDisposalTotal)
}

// ComputeAdjustment validates a requested adjustment against the fetched
// state and returns the accepted outcome. Rejections come back as
// *domain.RejectedError with the computed quantities in the message.
func ComputeAdjustment(state domain.InventoryState, req domain.AdjustmentRequest) (domain.AdjustmentOutcome, error) {
	if req.Quantity <= 0 {
		return domain.AdjustmentOutcome{}, domain.Rejectedf("Adjustment quantity must be greater than zero")
	}

	outcome := domain.AdjustmentOutcome{
		ItemID:               req.ItemID,
		BatchID:              req.BatchID,
		PresentBatchQuantity: PresentBatchQuantity(state),
	}

	switch req.Type {
	case domain.AdjustmentAddition:
		// No upper bound on additions.
		outcome.NewOverallQuantity = state.ItemOverallQuantity + req.Quantity
		return outcome, nil

	case domain.AdjustmentSubtraction:
		if req.Quantity > outcome.PresentBatchQuantity {
			return domain.AdjustmentOutcome{}, domain.Rejectedf(
				"Disposal Quantity (%d) > Batch Quantity (%d)",
				req.Quantity, outcome.PresentBatchQuantity)
		}
		outcome.NewOverallQuantity = abs(req.Quantity - state.ItemOverallQuantity)
		return outcome, nil
	}

	return domain.AdjustmentOutcome{}, domain.Rejectedf("Adjustment options must be Addition and Subtraction")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
