package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcabanilla/schoolclinic/backend-go/internal/domain"
	"github.com/rcabanilla/schoolclinic/backend-go/internal/reference"
)

// testTables is a single band pair for a 72-month-old male.
func testTables() *reference.Tables {
	return reference.NewTables(
		[]domain.BMIBand{{
			AgeMonths:      72,
			Gender:         domain.GenderMale,
			WastedFrom:     13,
			WastedTo:       14,
			NormalFrom:     14,
			NormalTo:       18,
			OverweightFrom: 18,
			OverweightTo:   20,
		}},
		[]domain.HeightForAgeBand{{
			AgeMonths:       72,
			Gender:          domain.GenderMale,
			SeverelyStunted: 99.9,
			StuntedStart:    100.0,
			StuntedEnd:      104.9,
			NormalStart:     105.0,
			NormalEnd:       123.9,
			Tall:            124.0,
		}},
	)
}

func TestComputeBMI(t *testing.T) {
	// 22kg at 120cm -> 22 / 1.44 = 15.2777... -> 15.28
	assert.InDelta(t, 15.28, ComputeBMI(120, 22), 1e-9)
	assert.InDelta(t, 16.0, ComputeBMI(100, 16), 1e-9)
}

func TestClassifyBMI(t *testing.T) {
	tables := testTables()

	tests := []struct {
		name string
		bmi  float64
		want domain.BMICategory
	}{
		{"well below wasted range", 11.5, domain.BMISeverelyWasted},
		{"exactly at wasted_from resolves severe", 13.0, domain.BMISeverelyWasted},
		{"inside wasted range", 13.5, domain.BMIWasted},
		{"exactly at wasted_to stays wasted", 14.0, domain.BMIWasted},
		{"mid normal", 15.28, domain.BMINormal},
		{"exactly at normal_to stays normal", 18.0, domain.BMINormal},
		{"inside overweight range", 19.0, domain.BMIOverweight},
		{"exactly at overweight_to stays overweight", 20.0, domain.BMIOverweight},
		{"above overweight range", 21.5, domain.BMIObese},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyBMI(tt.bmi, 72, domain.GenderMale, tables)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyBMI_MissingBandIsUnknown(t *testing.T) {
	tables := testTables()

	assert.Equal(t, domain.BMIUnknown, ClassifyBMI(15.0, 99, domain.GenderMale, tables))
	assert.Equal(t, domain.BMIUnknown, ClassifyBMI(15.0, 72, domain.GenderFemale, tables))
	assert.Equal(t, domain.BMIUnknown, ClassifyBMI(15.0, 72, domain.GenderMale, nil))
}

func TestClassifyHeightForAge(t *testing.T) {
	tables := testTables()

	tests := []struct {
		name   string
		height float64
		want   domain.HeightForAgeCategory
	}{
		{"far below severely stunted bound", 92.0, domain.HFASeverelyStunted},
		{"at severely stunted bound", 99.9, domain.HFASeverelyStunted},
		{"inside stunted range", 102.0, domain.HFAStunted},
		{"inside normal range", 115.0, domain.HFANormal},
		{"at normal_end stays normal", 123.9, domain.HFANormal},
		{"tall bound within tolerance of normal_end stays normal", 124.0, domain.HFANormal},
		{"just above tall bound", 124.1, domain.HFATall},
		{"well above tall bound", 131.0, domain.HFATall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyHeightForAge(tt.height, 72, domain.GenderMale, tables)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyHeightForAge_MissingBandIsUnknown(t *testing.T) {
	tables := testTables()

	assert.Equal(t, domain.HFAUnknown, ClassifyHeightForAge(110, 99, domain.GenderMale, tables))
	assert.Equal(t, domain.HFAUnknown, ClassifyHeightForAge(110, 72, domain.GenderMale, nil))
}

func TestClassify_FullPipeline(t *testing.T) {
	// 120cm, 22kg, male, exactly 72 average months old at measurement.
	m := domain.Measurement{
		HeightCm:     120,
		WeightKg:     22,
		Gender:       domain.GenderMale,
		BirthDate:    date(2019, 9, 1),
		MeasuredDate: date(2025, 9, 1),
	}

	result, err := Classify(m, testTables())
	require.NoError(t, err)

	assert.Equal(t, 72, result.AgeMonths)
	assert.InDelta(t, 15.28, result.BMI, 1e-9)
	assert.Equal(t, domain.BMINormal, result.BMICategory)
	assert.Equal(t, domain.HFANormal, result.HeightForAgeCategory)
	assert.False(t, result.FeedingEligible)
}

func TestClassify_WastedIsFeedingEligible(t *testing.T) {
	// 13.5 BMI at 120cm needs 19.44kg.
	m := domain.Measurement{
		HeightCm:     120,
		WeightKg:     19.44,
		Gender:       domain.GenderMale,
		BirthDate:    date(2019, 9, 1),
		MeasuredDate: date(2025, 9, 1),
	}

	result, err := Classify(m, testTables())
	require.NoError(t, err)

	assert.Equal(t, domain.BMIWasted, result.BMICategory)
	assert.True(t, result.FeedingEligible)
}

func TestClassify_NoTablesDegradesToUnknown(t *testing.T) {
	m := domain.Measurement{
		HeightCm:     120,
		WeightKg:     22,
		Gender:       domain.GenderMale,
		BirthDate:    date(2019, 9, 1),
		MeasuredDate: date(2025, 9, 1),
	}

	result, err := Classify(m, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.BMIUnknown, result.BMICategory)
	assert.Equal(t, domain.HFAUnknown, result.HeightForAgeCategory)
	assert.False(t, result.FeedingEligible)
}

func TestClassify_InvalidDatesBlock(t *testing.T) {
	m := domain.Measurement{
		HeightCm:     120,
		WeightKg:     22,
		Gender:       domain.GenderMale,
		BirthDate:    date(2025, 9, 1),
		MeasuredDate: date(2019, 9, 1),
	}

	_, err := Classify(m, testTables())

	var dateErr *domain.InvalidDateError
	require.ErrorAs(t, err, &dateErr)
}

func TestFeedingEligible_Exhaustive(t *testing.T) {
	eligible := map[domain.BMICategory]bool{
		domain.BMISeverelyWasted: true,
		domain.BMIWasted:         true,
		domain.BMINormal:         false,
		domain.BMIOverweight:     false,
		domain.BMIObese:          false,
		domain.BMIUnknown:        false,
	}

	for category, want := range eligible {
		assert.Equal(t, want, FeedingEligible(category), "category %s", category)
	}
}
