// backend-go/internal/nutrition/classifier.go

// Package nutrition classifies clinic measurements against the BMI-for-age
// and height-for-age reference bands and derives feeding program
// eligibility. All functions are pure; missing reference data degrades to
// the Unknown category instead of failing.
package nutrition

import (
	"github.com/shopspring/decimal"

	"github.com/rcabanilla/schoolclinic/backend-go/internal/domain"
	"github.com/rcabanilla/schoolclinic/backend-go/internal/reference"
)

// Boundary tolerances absorb floating-point noise at band edges. A value
// sitting exactly on a boundary resolves to the more severe category
// because checks run top to bottom and the first match wins.
const (
	bmiEpsilon    = 0.01
	heightEpsilon = 0.1
)

// ComputeBMI returns weight(kg) / height(m)^2 rounded to 2 decimal places.
func ComputeBMI(heightCm, weightKg float64) float64 {
	heightM := heightCm / 100
	bmi := weightKg / (heightM * heightM)
	return round2(bmi)
}

// ClassifyBMI maps a computed BMI to a category using the band row for
// (ageMonths, gender). No band row means Unknown.
func ClassifyBMI(bmi float64, ageMonths int, gender domain.Gender, tables *reference.Tables) domain.BMICategory {
	band, ok := tables.BMIBand(ageMonths, gender)
	if !ok {
		return domain.BMIUnknown
	}

	switch {
	case bmi <= band.WastedFrom+bmiEpsilon:
		return domain.BMISeverelyWasted
	case bmi >= band.WastedFrom-bmiEpsilon && bmi <= band.WastedTo+bmiEpsilon:
		return domain.BMIWasted
	case bmi >= band.NormalFrom-bmiEpsilon && bmi <= band.NormalTo+bmiEpsilon:
		return domain.BMINormal
	case bmi >= band.OverweightFrom-bmiEpsilon && bmi <= band.OverweightTo+bmiEpsilon:
		return domain.BMIOverweight
	case bmi > band.OverweightTo-bmiEpsilon:
		return domain.BMIObese
	}

	return domain.BMIUnknown
}

// ClassifyHeightForAge maps a measured height to a stunting category using
// the band row for (ageMonths, gender). No band row means Unknown.
func ClassifyHeightForAge(heightCm float64, ageMonths int, gender domain.Gender, tables *reference.Tables) domain.HeightForAgeCategory {
	band, ok := tables.HeightForAgeBand(ageMonths, gender)
	if !ok {
		return domain.HFAUnknown
	}

	height := round2(heightCm)

	switch {
	case height <= band.SeverelyStunted+heightEpsilon:
		return domain.HFASeverelyStunted
	case height >= band.StuntedStart-heightEpsilon && height <= band.StuntedEnd+heightEpsilon:
		return domain.HFAStunted
	case height >= band.NormalStart-heightEpsilon && height <= band.NormalEnd+heightEpsilon:
		return domain.HFANormal
	case height > band.Tall-heightEpsilon:
		return domain.HFATall
	}

	return domain.HFAUnknown
}

// Classify runs the full pipeline for one measurement: age, BMI, BMI
// category, height-for-age category, feeding eligibility. Date problems are
// the only hard error; everything else degrades to Unknown.
func Classify(m domain.Measurement, tables *reference.Tables) (domain.ClassificationResult, error) {
	ageMonths, err := AgeInMonths(m.BirthDate, m.MeasuredDate)
	if err != nil {
		return domain.ClassificationResult{}, err
	}

	result := domain.ClassificationResult{
		AgeMonths:            ageMonths,
		BMICategory:          domain.BMIUnknown,
		HeightForAgeCategory: domain.HFAUnknown,
	}

	if m.HeightCm <= 0 || m.WeightKg <= 0 {
		return result, nil
	}

	result.BMI = ComputeBMI(m.HeightCm, m.WeightKg)
	result.BMICategory = ClassifyBMI(result.BMI, ageMonths, m.Gender, tables)
	result.HeightForAgeCategory = ClassifyHeightForAge(m.HeightCm, ageMonths, m.Gender, tables)
	result.FeedingEligible = FeedingEligible(result.BMICategory)

	return result, nil
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
