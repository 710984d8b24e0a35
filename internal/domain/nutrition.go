// backend-go/internal/domain/nutrition.go
package domain

import (
	"strings"
	"time"
)

// Gender identifies which reference band set applies to a pupil.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// ParseGender normalizes a gender string (case-insensitive).
func ParseGender(s string) (Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale, true
	case "female", "f":
		return GenderFemale, true
	}
	return "", false
}

// BMICategory is the nutritional status derived from BMI-for-age.
type BMICategory string

const (
	BMISeverelyWasted BMICategory = "Severely Wasted"
	BMIWasted         BMICategory = "Wasted"
	BMINormal         BMICategory = "Normal"
	BMIOverweight     BMICategory = "Overweight"
	BMIObese          BMICategory = "Obese"
	BMIUnknown        BMICategory = "Unknown"
)

// HeightForAgeCategory is the stunting status derived from height-for-age.
type HeightForAgeCategory string

const (
	HFASeverelyStunted HeightForAgeCategory = "Severely Stunted"
	HFAStunted         HeightForAgeCategory = "Stunted"
	HFANormal          HeightForAgeCategory = "Normal"
	HFATall            HeightForAgeCategory = "Tall"
	HFAUnknown         HeightForAgeCategory = "Unknown"
)

// BMIBand is one row of the BMI-for-age reference table, keyed by
// (ageMonths, gender). Static data, loaded once per process.
type BMIBand struct {
	AgeMonths      int     `json:"age_months"`
	Gender         Gender  `json:"gender"`
	WastedFrom     float64 `json:"wasted_from"`
	WastedTo       float64 `json:"wasted_to"`
	NormalFrom     float64 `json:"normal_from"`
	NormalTo       float64 `json:"normal_to"`
	OverweightFrom float64 `json:"overweight_from"`
	OverweightTo   float64 `json:"overweight_to"`
}

// HeightForAgeBand is one row of the height-for-age reference table.
type HeightForAgeBand struct {
	AgeMonths       int     `json:"age_months"`
	Gender          Gender  `json:"gender"`
	SeverelyStunted float64 `json:"severely_stunted"`
	StuntedStart    float64 `json:"stunted_start"`
	StuntedEnd      float64 `json:"stunted_end"`
	NormalStart     float64 `json:"normal_start"`
	NormalEnd       float64 `json:"normal_end"`
	Tall            float64 `json:"tall"`
}

// Measurement is a single clinic measurement of a pupil. Transient: it only
// exists for the duration of a classification call.
type Measurement struct {
	HeightCm     float64   `json:"height_cm"`
	WeightKg     float64   `json:"weight_kg"`
	Gender       Gender    `json:"gender"`
	BirthDate    time.Time `json:"birth_date"`
	MeasuredDate time.Time `json:"measured_date"`
}

// ClassificationResult is the derived nutritional status for a measurement.
// Never persisted by this service.
type ClassificationResult struct {
	AgeMonths            int                  `json:"age_months"`
	BMI                  float64              `json:"bmi"`
	BMICategory          BMICategory          `json:"bmi_category"`
	HeightForAgeCategory HeightForAgeCategory `json:"height_for_age_category"`
	FeedingEligible      bool                 `json:"feeding_eligible"`
}
