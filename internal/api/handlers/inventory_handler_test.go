package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetItem(t *testing.T) {
	router := newInventoryRouter(newStubRepo())

	rec := doJSON(t, router, http.MethodGet, "/inventory/items/MED-0001", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "MED-0001", body["id"])
	assert.Equal(t, float64(50), body["overall_quantity"])
}

func TestGetItem_NotFound(t *testing.T) {
	router := newInventoryRouter(newStubRepo())

	rec := doJSON(t, router, http.MethodGet, "/inventory/items/MED-9999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Item ID mismatch: MED-9999", body["error"])
}

func TestGetBatchIn_NotFound(t *testing.T) {
	router := newInventoryRouter(newStubRepo())

	rec := doJSON(t, router, http.MethodGet, "/inventory/batches/BATCH-9999/in", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Batch ID mismatch: BATCH-9999", body["error"])
}

func TestApplyAdjustment_Subtraction(t *testing.T) {
	repo := newStubRepo()
	router := newInventoryRouter(repo)

	rec := doJSON(t, router, http.MethodPost, "/inventory/adjustments", map[string]interface{}{
		"item_id":  "MED-0001",
		"batch_id": "BATCH-2026-001",
		"type":     "Subtraction",
		"quantity": 30,
		"reason":   "damaged stock",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(100), body["present_batch_quantity"])
	assert.Equal(t, float64(20), body["new_overall_quantity"])

	require.Len(t, repo.adjustments, 1)
	assert.Equal(t, 20, repo.item.OverallQuantity)
}

func TestApplyAdjustment_RejectedWithQuantitiesInMessage(t *testing.T) {
	repo := newStubRepo()
	router := newInventoryRouter(repo)

	rec := doJSON(t, router, http.MethodPost, "/inventory/adjustments", map[string]interface{}{
		"item_id":  "MED-0001",
		"batch_id": "BATCH-2026-001",
		"type":     "Subtraction",
		"quantity": 150,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Disposal Quantity (150) > Batch Quantity (100)", body["error"])
	assert.Empty(t, repo.adjustments)
}

func TestApplyAdjustment_InvalidType(t *testing.T) {
	router := newInventoryRouter(newStubRepo())

	rec := doJSON(t, router, http.MethodPost, "/inventory/adjustments", map[string]interface{}{
		"item_id":  "MED-0001",
		"batch_id": "BATCH-2026-001",
		"type":     "Transfer",
		"quantity": 5,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Adjustment options must be Addition and Subtraction", body["error"])
}

func TestApplyAdjustment_ValidationErrors(t *testing.T) {
	router := newInventoryRouter(newStubRepo())

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing ids", map[string]interface{}{"type": "Addition", "quantity": 5}},
		{"zero quantity", map[string]interface{}{
			"item_id": "MED-0001", "batch_id": "BATCH-2026-001", "type": "Addition", "quantity": 0,
		}},
		{"negative quantity", map[string]interface{}{
			"item_id": "MED-0001", "batch_id": "BATCH-2026-001", "type": "Addition", "quantity": -3,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/inventory/adjustments", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestPreviewAdjustment_DoesNotPersist(t *testing.T) {
	repo := newStubRepo()
	router := newInventoryRouter(repo)

	rec := doJSON(t, router, http.MethodPost, "/inventory/adjustments/preview", map[string]interface{}{
		"item_id":  "MED-0001",
		"batch_id": "BATCH-2026-001",
		"type":     "Addition",
		"quantity": 25,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(75), body["new_overall_quantity"])

	assert.Empty(t, repo.adjustments)
	assert.Equal(t, 50, repo.item.OverallQuantity)
}

func TestGetSummary(t *testing.T) {
	router := newInventoryRouter(newStubRepo())

	rec := doJSON(t, router, http.MethodGet, "/inventory/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	items, ok := body["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
}
