// backend-go/internal/repository/postgres/inventory_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/rcabanilla/schoolclinic/backend-go/internal/domain"
	"github.com/rcabanilla/schoolclinic/backend-go/internal/repository"
)

type inventoryRepository struct {
	db *DB
}

// NewInventoryRepository wraps the shared DB handle in an
// repository.InventoryRepository.
func NewInventoryRepository(db *DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) GetItem(ctx context.Context, itemID string) (*domain.MedicineItem, error) {
	query := `
		SELECT id, name, category, unit, overall_quantity, archived, created_at, updated_at
		FROM medicine_items
		WHERE id = $1
	`

	var item domain.MedicineItem
	if err := r.db.GetContext(ctx, &item, query, itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Resource: "Item", ID: itemID}
		}
		return nil, fmt.Errorf("error getting medicine item: %w", err)
	}

	return &item, nil
}

func (r *inventoryRepository) GetBatchIn(ctx context.Context, batchID string) (*domain.MedicineIn, error) {
	query := `
		SELECT batch_id, item_id, quantity, expiration_date, receipt_id, created_at
		FROM medicine_ins
		WHERE batch_id = $1
	`

	var in domain.MedicineIn
	if err := r.db.GetContext(ctx, &in, query, batchID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Resource: "Batch", ID: batchID}
		}
		return nil, fmt.Errorf("error getting batch in record: %w", err)
	}

	return &in, nil
}

func (r *inventoryRepository) GetDisposalTotal(ctx context.Context, batchID string) (int, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM medicine_disposals
		WHERE batch_id = $1
	`

	var total int
	if err := r.db.GetContext(ctx, &total, query, batchID); err != nil {
		return 0, fmt.Errorf("error getting disposal total: %w", err)
	}

	return total, nil
}

func (r *inventoryRepository) GetAdjustmentTotals(ctx context.Context, batchID string) (domain.AdjustmentTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(quantity) FILTER (WHERE type = $2), 0) AS addition_total,
			COALESCE(SUM(quantity) FILTER (WHERE type = $3), 0) AS subtraction_total
		FROM medicine_adjustments
		WHERE batch_id = $1
	`

	var totals domain.AdjustmentTotals
	err := r.db.GetContext(ctx, &totals, query, batchID,
		domain.AdjustmentAddition, domain.AdjustmentSubtraction)
	if err != nil {
		return domain.AdjustmentTotals{}, fmt.Errorf("error getting adjustment totals: %w", err)
	}

	return totals, nil
}

func (r *inventoryRepository) ApplyAdjustment(ctx context.Context, req domain.AdjustmentRequest, newOverallQuantity int) (*domain.Adjustment, error) {
	var adj domain.Adjustment

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE medicine_items
			SET overall_quantity = $2, updated_at = NOW()
			WHERE id = $1
		`, req.ItemID, newOverallQuantity)
		if err != nil {
			return fmt.Errorf("error updating item quantity: %w", err)
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("error checking item update: %w", err)
		}
		if rows == 0 {
			return &domain.NotFoundError{Resource: "Item", ID: req.ItemID}
		}

		err = tx.QueryRowxContext(ctx, `
			INSERT INTO medicine_adjustments (item_id, batch_id, type, quantity, reason)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, item_id, batch_id, type, quantity, reason, created_at
		`, req.ItemID, req.BatchID, req.Type, req.Quantity, req.Reason).StructScan(&adj)
		if err != nil {
			return fmt.Errorf("error inserting adjustment record: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &adj, nil
}

func (r *inventoryRepository) GetItemSummaries(ctx context.Context, filter domain.SummaryFilter) ([]domain.ItemStockSummary, error) {
	query := `
		SELECT
			i.id AS item_id,
			i.name,
			i.category,
			i.overall_quantity,
			COUNT(m.batch_id) AS batch_count
		FROM medicine_items i
		LEFT JOIN medicine_ins m ON m.item_id = i.id
		WHERE 1=1
	`

	var args []interface{}
	var conditions []string
	argCounter := 1

	if !filter.IncludeArchived {
		conditions = append(conditions, "i.archived = FALSE")
	}

	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("i.category = $%d", argCounter))
		args = append(args, filter.Category)
		argCounter++
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	query += `
		GROUP BY i.id, i.name, i.category, i.overall_quantity
		ORDER BY i.name
	`

	var summaries []domain.ItemStockSummary
	if err := r.db.SelectContext(ctx, &summaries, query, args...); err != nil {
		return nil, fmt.Errorf("error getting item summaries: %w", err)
	}

	return summaries, nil
}
