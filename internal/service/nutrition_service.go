// backend-go/internal/service/nutrition_service.go
package service

import (
	"github.com/rs/zerolog/log"

	"github.com/rcabanilla/schoolclinic/backend-go/internal/domain"
	"github.com/rcabanilla/schoolclinic/backend-go/internal/nutrition"
	"github.com/rcabanilla/schoolclinic/backend-go/internal/reference"
)

// NutritionService classifies measurements against the reference tables
// loaded at startup. A nil table set is tolerated: every classification
// comes back Unknown and the caller can still proceed.
type NutritionService struct {
	tables *reference.Tables
}

func NewNutritionService(tables *reference.Tables) *NutritionService {
	if tables == nil {
		log.Warn().Msg("nutrition: no reference tables loaded, classifications will be Unknown")
	}
	return &NutritionService{tables: tables}
}

// Classify derives the nutritional status for one measurement.
func (s *NutritionService) Classify(m domain.Measurement) (domain.ClassificationResult, error) {
	return nutrition.Classify(m, s.tables)
}

// Bands returns the raw band rows for an (ageMonths, gender) pair so the
// console can show the thresholds behind a classification.
func (s *NutritionService) Bands(ageMonths int, gender domain.Gender) (*domain.BMIBand, *domain.HeightForAgeBand) {
	var bmiBand *domain.BMIBand
	var heightBand *domain.HeightForAgeBand

	if band, ok := s.tables.BMIBand(ageMonths, gender); ok {
		bmiBand = &band
	}
	if band, ok := s.tables.HeightForAgeBand(ageMonths, gender); ok {
		heightBand = &band
	}

	return bmiBand, heightBand
}
