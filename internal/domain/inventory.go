// backend-go/internal/domain/inventory.go
package domain

import (
	"strings"
	"time"
)

// AdjustmentType is the direction of a stock adjustment.
type AdjustmentType string

const (
	AdjustmentAddition    AdjustmentType = "Addition"
	AdjustmentSubtraction AdjustmentType = "Subtraction"
)

// ParseAdjustmentType normalizes an adjustment type string (case-insensitive).
func ParseAdjustmentType(s string) (AdjustmentType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "addition":
		return AdjustmentAddition, true
	case "subtraction":
		return AdjustmentSubtraction, true
	}
	return AdjustmentType(s), false
}

// MedicineItem is an inventory item with its aggregate stock count across
// all batches.
type MedicineItem struct {
	ID              string    `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Category        string    `json:"category" db:"category"`
	Unit            string    `json:"unit" db:"unit"`
	OverallQuantity int       `json:"overall_quantity" db:"overall_quantity"`
	Archived        bool      `json:"archived" db:"archived"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// MedicineIn is the receipt record of a batch: the quantity that entered
// stock for a specific lot of an item.
type MedicineIn struct {
	BatchID        string    `json:"batch_id" db:"batch_id"`
	ItemID         string    `json:"item_id" db:"item_id"`
	Quantity       int       `json:"quantity" db:"quantity"`
	ExpirationDate time.Time `json:"expiration_date" db:"expiration_date"`
	ReceiptID      string    `json:"receipt_id" db:"receipt_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// AdjustmentTotals aggregates prior adjustments against a batch, split by
// direction.
type AdjustmentTotals struct {
	Addition    int `json:"addition_total" db:"addition_total"`
	Subtraction int `json:"subtraction_total" db:"subtraction_total"`
}

// InventoryState is the snapshot of item and batch quantities the stock
// adjustment calculator works against. Read-only to the calculator; all
// quantities are non-negative.
type InventoryState struct {
	ItemOverallQuantity        int `json:"item_overall_quantity"`
	BatchInQuantity            int `json:"batch_in_quantity"`
	BatchDisposalTotal         int `json:"batch_disposal_total"`
	BatchAdditionAdjustment    int `json:"batch_addition_adjustment_total"`
	BatchSubtractionAdjustment int `json:"batch_subtraction_adjustment_total"`
}

// AdjustmentRequest is a single requested stock correction against a batch.
type AdjustmentRequest struct {
	ItemID   string         `json:"item_id"`
	BatchID  string         `json:"batch_id"`
	Type     AdjustmentType `json:"type"`
	Quantity int            `json:"quantity"`
	Reason   string         `json:"reason"`
}

// Adjustment is a persisted stock correction record.
type Adjustment struct {
	ID        int64          `json:"id" db:"id"`
	ItemID    string         `json:"item_id" db:"item_id"`
	BatchID   string         `json:"batch_id" db:"batch_id"`
	Type      AdjustmentType `json:"type" db:"type"`
	Quantity  int            `json:"quantity" db:"quantity"`
	Reason    string         `json:"reason" db:"reason"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}

// AdjustmentOutcome is the accepted result of an adjustment computation.
type AdjustmentOutcome struct {
	ItemID               string `json:"item_id"`
	BatchID              string `json:"batch_id"`
	PresentBatchQuantity int    `json:"present_batch_quantity"`
	NewOverallQuantity   int    `json:"new_overall_quantity"`
}

// ItemStockSummary is a per-item stock rollup for the inventory dashboard.
type ItemStockSummary struct {
	ItemID          string `json:"item_id" db:"item_id"`
	Name            string `json:"name" db:"name"`
	Category        string `json:"category" db:"category"`
	OverallQuantity int    `json:"overall_quantity" db:"overall_quantity"`
	BatchCount      int    `json:"batch_count" db:"batch_count"`
}

// SummaryFilter narrows the inventory summary query.
type SummaryFilter struct {
	Category        string `json:"category"`
	IncludeArchived bool   `json:"include_archived"`
}
