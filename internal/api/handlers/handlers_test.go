package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/rcabanilla/schoolclinic/backend-go/internal/domain"
	"github.com/rcabanilla/schoolclinic/backend-go/internal/reference"
	"github.com/rcabanilla/schoolclinic/backend-go/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubInventoryRepo backs the inventory handler tests with fixed state.
type stubInventoryRepo struct {
	item        *domain.MedicineItem
	batch       *domain.MedicineIn
	disposal    int
	adjTotals   domain.AdjustmentTotals
	adjustments []domain.Adjustment
}

func (r *stubInventoryRepo) GetItem(_ context.Context, itemID string) (*domain.MedicineItem, error) {
	if r.item == nil || r.item.ID != itemID {
		return nil, &domain.NotFoundError{Resource: "Item", ID: itemID}
	}
	return r.item, nil
}

func (r *stubInventoryRepo) GetBatchIn(_ context.Context, batchID string) (*domain.MedicineIn, error) {
	if r.batch == nil || r.batch.BatchID != batchID {
		return nil, &domain.NotFoundError{Resource: "Batch", ID: batchID}
	}
	return r.batch, nil
}

func (r *stubInventoryRepo) GetDisposalTotal(_ context.Context, _ string) (int, error) {
	return r.disposal, nil
}

func (r *stubInventoryRepo) GetAdjustmentTotals(_ context.Context, _ string) (domain.AdjustmentTotals, error) {
	return r.adjTotals, nil
}

func (r *stubInventoryRepo) ApplyAdjustment(_ context.Context, req domain.AdjustmentRequest, newOverallQuantity int) (*domain.Adjustment, error) {
	r.item.OverallQuantity = newOverallQuantity
	adj := domain.Adjustment{
		ID:        int64(len(r.adjustments) + 1),
		ItemID:    req.ItemID,
		BatchID:   req.BatchID,
		Type:      req.Type,
		Quantity:  req.Quantity,
		Reason:    req.Reason,
		CreatedAt: time.Now(),
	}
	r.adjustments = append(r.adjustments, adj)
	return &adj, nil
}

func (r *stubInventoryRepo) GetItemSummaries(_ context.Context, _ domain.SummaryFilter) ([]domain.ItemStockSummary, error) {
	if r.item == nil {
		return nil, nil
	}
	return []domain.ItemStockSummary{{
		ItemID:          r.item.ID,
		Name:            r.item.Name,
		Category:        r.item.Category,
		OverallQuantity: r.item.OverallQuantity,
		BatchCount:      1,
	}}, nil
}

func newStubRepo() *stubInventoryRepo {
	return &stubInventoryRepo{
		item: &domain.MedicineItem{
			ID:              "MED-0001",
			Name:            "Paracetamol 500mg Tablet",
			Category:        "Analgesic",
			OverallQuantity: 50,
		},
		batch: &domain.MedicineIn{
			BatchID:  "BATCH-2026-001",
			ItemID:   "MED-0001",
			Quantity: 100,
		},
	}
}

func testBands() *reference.Tables {
	return reference.NewTables(
		[]domain.BMIBand{{
			AgeMonths: 72, Gender: domain.GenderMale,
			WastedFrom: 13, WastedTo: 14,
			NormalFrom: 14, NormalTo: 18,
			OverweightFrom: 18, OverweightTo: 20,
		}},
		[]domain.HeightForAgeBand{{
			AgeMonths: 72, Gender: domain.GenderMale,
			SeverelyStunted: 99.9,
			StuntedStart:    100.0, StuntedEnd: 104.9,
			NormalStart: 105.0, NormalEnd: 123.9,
			Tall: 124.0,
		}},
	)
}

func newInventoryRouter(repo *stubInventoryRepo) *gin.Engine {
	h := NewInventoryHandler(service.NewInventoryService(repo, nil))

	router := gin.New()
	router.GET("/inventory/items/:id", h.GetItem)
	router.GET("/inventory/batches/:id/in", h.GetBatchIn)
	router.GET("/inventory/summary", h.GetSummary)
	router.POST("/inventory/adjustments/preview", h.PreviewAdjustment)
	router.POST("/inventory/adjustments", h.ApplyAdjustment)
	return router
}

func newNutritionRouter(tables *reference.Tables) *gin.Engine {
	h := NewNutritionHandler(service.NewNutritionService(tables))

	router := gin.New()
	router.POST("/nutrition/classify", h.Classify)
	router.GET("/nutrition/bands", h.GetBands)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
