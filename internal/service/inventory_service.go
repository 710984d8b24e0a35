// backend-go/internal/service/inventory_service.go
package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/rcabanilla/schoolclinic/backend-go/internal/cache"
	"github.com/rcabanilla/schoolclinic/backend-go/internal/domain"
	"github.com/rcabanilla/schoolclinic/backend-go/internal/inventory"
	"github.com/rcabanilla/schoolclinic/backend-go/internal/repository"
)

// InventoryService coordinates fetch, computation and persistence for stock
// adjustments. The arithmetic itself lives in the inventory package; this
// service only supplies state and commits accepted outcomes.
type InventoryService struct {
	repo  repository.InventoryRepository
	cache cache.InventoryCache
}

func NewInventoryService(repo repository.InventoryRepository, cacheImpl cache.InventoryCache) *InventoryService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopInventoryCache()
	}
	return &InventoryService{repo: repo, cache: cacheImpl}
}

func (s *InventoryService) GetItem(ctx context.Context, itemID string) (*domain.MedicineItem, error) {
	return s.repo.GetItem(ctx, itemID)
}

func (s *InventoryService) GetBatchIn(ctx context.Context, batchID string) (*domain.MedicineIn, error) {
	return s.repo.GetBatchIn(ctx, batchID)
}

func (s *InventoryService) GetDisposalTotal(ctx context.Context, batchID string) (int, error) {
	return s.repo.GetDisposalTotal(ctx, batchID)
}

func (s *InventoryService) GetAdjustmentTotals(ctx context.Context, batchID string) (domain.AdjustmentTotals, error) {
	return s.repo.GetAdjustmentTotals(ctx, batchID)
}

// LoadState assembles the inventory snapshot an adjustment is computed
// against. Item and batch lookups surface NotFoundError distinguishing
// which ID failed.
func (s *InventoryService) LoadState(ctx context.Context, itemID, batchID string) (domain.InventoryState, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return domain.InventoryState{}, err
	}

	batch, err := s.repo.GetBatchIn(ctx, batchID)
	if err != nil {
		return domain.InventoryState{}, err
	}

	disposalTotal, err := s.repo.GetDisposalTotal(ctx, batchID)
	if err != nil {
		return domain.InventoryState{}, err
	}

	adjTotals, err := s.repo.GetAdjustmentTotals(ctx, batchID)
	if err != nil {
		return domain.InventoryState{}, err
	}

	return domain.InventoryState{
		ItemOverallQuantity:        item.OverallQuantity,
		BatchInQuantity:            batch.Quantity,
		BatchDisposalTotal:         disposalTotal,
		BatchAdditionAdjustment:    adjTotals.Addition,
		BatchSubtractionAdjustment: adjTotals.Subtraction,
	}, nil
}

// PreviewAdjustment computes the outcome of a request without persisting
// anything.
func (s *InventoryService) PreviewAdjustment(ctx context.Context, req domain.AdjustmentRequest) (domain.AdjustmentOutcome, error) {
	state, err := s.LoadState(ctx, req.ItemID, req.BatchID)
	if err != nil {
		return domain.AdjustmentOutcome{}, err
	}

	return inventory.ComputeAdjustment(state, req)
}

// ApplyAdjustment computes and, when accepted, persists an adjustment. The
// item quantity update and the adjustment record land in one transaction.
func (s *InventoryService) ApplyAdjustment(ctx context.Context, req domain.AdjustmentRequest) (domain.AdjustmentOutcome, error) {
	state, err := s.LoadState(ctx, req.ItemID, req.BatchID)
	if err != nil {
		return domain.AdjustmentOutcome{}, err
	}

	outcome, err := inventory.ComputeAdjustment(state, req)
	if err != nil {
		return domain.AdjustmentOutcome{}, err
	}

	if _, err := s.repo.ApplyAdjustment(ctx, req, outcome.NewOverallQuantity); err != nil {
		return domain.AdjustmentOutcome{}, err
	}

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("inventory: cache invalidation failed")
	}

	return outcome, nil
}

// GetSummary returns per-item stock rollups through the cache.
func (s *InventoryService) GetSummary(ctx context.Context, filter domain.SummaryFilter) ([]domain.ItemStockSummary, error) {
	if summaries, ok, err := s.cache.GetSummary(ctx, filter); err == nil && ok {
		return summaries, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("inventory: cache get summary failed")
	}

	summaries, err := s.repo.GetItemSummaries(ctx, filter)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetSummary(ctx, filter, summaries); err != nil {
		log.Warn().Err(err).Msg("inventory: cache set summary failed")
	}

	return summaries, nil
}
