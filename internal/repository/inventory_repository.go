// backend-go/internal/repository/inventory_repository.go
package repository

import (
	"context"

	"github.com/rcabanilla/schoolclinic/backend-go/internal/domain"
)

// InventoryRepository is the storage surface the inventory service works
// against.
type InventoryRepository interface {
	GetItem(ctx context.Context, itemID string) (*domain.MedicineItem, error)
	GetBatchIn(ctx context.Context, batchID string) (*domain.MedicineIn, error)
	GetDisposalTotal(ctx context.Context, batchID string) (int, error)
	GetAdjustmentTotals(ctx context.Context, batchID string) (domain.AdjustmentTotals, error)

	// ApplyAdjustment persists the item's new overall quantity and the
	// adjustment record as one transaction. Either both writes land or
	// neither does.
	ApplyAdjustment(ctx context.Context, req domain.AdjustmentRequest, newOverallQuantity int) (*domain.Adjustment, error)

	GetItemSummaries(ctx context.Context, filter domain.SummaryFilter) ([]domain.ItemStockSummary, error)
}
