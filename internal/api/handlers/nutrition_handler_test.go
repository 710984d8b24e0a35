package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	router := newNutritionRouter(testBands())

	rec := doJSON(t, router, http.MethodPost, "/nutrition/classify", map[string]interface{}{
		"height_cm":     120,
		"weight_kg":     22,
		"gender":        "Male",
		"birth_date":    "2019-09-01",
		"measured_date": "2025-09-01",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(72), body["age_months"])
	assert.InDelta(t, 15.28, body["bmi"].(float64), 1e-9)
	assert.Equal(t, "Normal", body["bmi_category"])
	assert.Equal(t, "Normal", body["height_for_age_category"])
	assert.Equal(t, false, body["feeding_eligible"])
}

func TestClassify_UnknownBandStillSucceeds(t *testing.T) {
	router := newNutritionRouter(testBands())

	// Female bands are absent from the fixture table.
	rec := doJSON(t, router, http.MethodPost, "/nutrition/classify", map[string]interface{}{
		"height_cm":     120,
		"weight_kg":     22,
		"gender":        "Female",
		"birth_date":    "2019-09-01",
		"measured_date": "2025-09-01",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Unknown", body["bmi_category"])
	assert.Equal(t, "Unknown", body["height_for_age_category"])
}

func TestClassify_NoTablesStillSucceeds(t *testing.T) {
	router := newNutritionRouter(nil)

	rec := doJSON(t, router, http.MethodPost, "/nutrition/classify", map[string]interface{}{
		"height_cm":     120,
		"weight_kg":     22,
		"gender":        "Male",
		"birth_date":    "2019-09-01",
		"measured_date": "2025-09-01",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Unknown", body["bmi_category"])
}

func TestClassify_BadDates(t *testing.T) {
	router := newNutritionRouter(testBands())

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"unparseable birth date", map[string]interface{}{
			"height_cm": 120, "weight_kg": 22, "gender": "Male",
			"birth_date": "09/01/2019", "measured_date": "2025-09-01",
		}},
		{"measured before birth", map[string]interface{}{
			"height_cm": 120, "weight_kg": 22, "gender": "Male",
			"birth_date": "2025-09-01", "measured_date": "2019-09-01",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/nutrition/classify", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestClassify_BadGender(t *testing.T) {
	router := newNutritionRouter(testBands())

	rec := doJSON(t, router, http.MethodPost, "/nutrition/classify", map[string]interface{}{
		"height_cm": 120, "weight_kg": 22, "gender": "other",
		"birth_date": "2019-09-01", "measured_date": "2025-09-01",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetBands(t *testing.T) {
	router := newNutritionRouter(testBands())

	rec := doJSON(t, router, http.MethodGet, "/nutrition/bands?age_months=72&gender=Male", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	bmiBand, ok := body["bmi_band"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(14), bmiBand["normal_from"])

	rec = doJSON(t, router, http.MethodGet, "/nutrition/bands?age_months=99&gender=Male", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.Nil(t, body["bmi_band"])
}

func TestGetBands_BadQuery(t *testing.T) {
	router := newNutritionRouter(testBands())

	rec := doJSON(t, router, http.MethodGet, "/nutrition/bands?age_months=abc&gender=Male", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/nutrition/bands?age_months=72&gender=x", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
