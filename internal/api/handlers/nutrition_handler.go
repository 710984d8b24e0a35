// backend-go/internal/api/handlers/nutrition_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rcabanilla/schoolclinic/backend-go/internal/domain"
	"github.com/rcabanilla/schoolclinic/backend-go/internal/service"
)

const dateLayout = "2006-01-02"

type NutritionHandler struct {
	service *service.NutritionService
}

func NewNutritionHandler(service *service.NutritionService) *NutritionHandler {
	return &NutritionHandler{service: service}
}

type classifyRequest struct {
	HeightCm     float64 `json:"height_cm"`
	WeightKg     float64 `json:"weight_kg"`
	Gender       string  `json:"gender"`
	BirthDate    string  `json:"birth_date"`
	MeasuredDate string  `json:"measured_date"`
}

func (h *NutritionHandler) Classify(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	gender, ok := domain.ParseGender(req.Gender)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "gender must be Male or Female"})
		return
	}

	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid birth_date", "details": err.Error()})
		return
	}

	measuredDate, err := parseDate(req.MeasuredDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid measured_date", "details": err.Error()})
		return
	}

	result, err := h.service.Classify(domain.Measurement{
		HeightCm:     req.HeightCm,
		WeightKg:     req.WeightKg,
		Gender:       gender,
		BirthDate:    birthDate,
		MeasuredDate: measuredDate,
	})
	if err != nil {
		var dateErr *domain.InvalidDateError
		if errors.As(err, &dateErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": dateErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "classification failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *NutritionHandler) GetBands(c *gin.Context) {
	ageMonths, err := strconv.Atoi(strings.TrimSpace(c.Query("age_months")))
	if err != nil || ageMonths < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "age_months must be a non-negative integer"})
		return
	}

	gender, ok := domain.ParseGender(c.Query("gender"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "gender must be Male or Female"})
		return
	}

	bmiBand, heightBand := h.service.Bands(ageMonths, gender)
	c.JSON(http.StatusOK, gin.H{
		"bmi_band":            bmiBand,
		"height_for_age_band": heightBand,
	})
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(s))
}
