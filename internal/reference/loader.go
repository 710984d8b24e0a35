// backend-go/internal/reference/loader.go

// Package reference loads the BMI-for-age and height-for-age band tables
// that the nutrition classifiers consult. The tables are static CSV assets
// parsed once at process start and shared immutably; loading is
// all-or-nothing so the classifiers either have both tables or none.
package reference

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rcabanilla/schoolclinic/backend-go/internal/domain"
)

const (
	BMIBandsFile          = "bmi_bands.csv"
	HeightForAgeBandsFile = "height_for_age_bands.csv"
)

type bandKey struct {
	ageMonths int
	gender    domain.Gender
}

// Tables holds both loaded reference tables, indexed by (ageMonths, gender).
type Tables struct {
	bmi    map[bandKey]domain.BMIBand
	height map[bandKey]domain.HeightForAgeBand
}

// NewTables builds a table set from already-parsed band rows. Later rows
// win on duplicate (ageMonths, gender) keys.
func NewTables(bmiBands []domain.BMIBand, heightBands []domain.HeightForAgeBand) *Tables {
	t := &Tables{
		bmi:    make(map[bandKey]domain.BMIBand, len(bmiBands)),
		height: make(map[bandKey]domain.HeightForAgeBand, len(heightBands)),
	}
	for _, band := range bmiBands {
		t.bmi[bandKey{ageMonths: band.AgeMonths, gender: band.Gender}] = band
	}
	for _, band := range heightBands {
		t.height[bandKey{ageMonths: band.AgeMonths, gender: band.Gender}] = band
	}
	return t
}

// Load reads both band tables from dir. Any missing file or malformed row
// fails the whole load with a ReferenceDataError.
func Load(dir string) (*Tables, error) {
	bmi, err := loadBMIBands(filepath.Join(dir, BMIBandsFile))
	if err != nil {
		return nil, err
	}

	height, err := loadHeightForAgeBands(filepath.Join(dir, HeightForAgeBandsFile))
	if err != nil {
		return nil, err
	}

	return &Tables{bmi: bmi, height: height}, nil
}

// BMIBand returns the BMI band for an (ageMonths, gender) pair, if present.
func (t *Tables) BMIBand(ageMonths int, gender domain.Gender) (domain.BMIBand, bool) {
	if t == nil {
		return domain.BMIBand{}, false
	}
	band, ok := t.bmi[bandKey{ageMonths: ageMonths, gender: gender}]
	return band, ok
}

// HeightForAgeBand returns the height band for an (ageMonths, gender) pair,
// if present.
func (t *Tables) HeightForAgeBand(ageMonths int, gender domain.Gender) (domain.HeightForAgeBand, bool) {
	if t == nil {
		return domain.HeightForAgeBand{}, false
	}
	band, ok := t.height[bandKey{ageMonths: ageMonths, gender: gender}]
	return band, ok
}

// BMIBandCount reports how many BMI band rows are loaded.
func (t *Tables) BMIBandCount() int {
	if t == nil {
		return 0
	}
	return len(t.bmi)
}

// HeightForAgeBandCount reports how many height band rows are loaded.
func (t *Tables) HeightForAgeBandCount() int {
	if t == nil {
		return 0
	}
	return len(t.height)
}

func loadBMIBands(path string) (map[bandKey]domain.BMIBand, error) {
	bands := make(map[bandKey]domain.BMIBand)

	err := readBandFile(path, 8, func(line int, fields []string) error {
		band := domain.BMIBand{}

		var err error
		if band.AgeMonths, err = parseInt(fields[0], "age_months"); err != nil {
			return err
		}

		gender, ok := domain.ParseGender(fields[1])
		if !ok {
			return fmt.Errorf("invalid gender %q", fields[1])
		}
		band.Gender = gender

		cols := []struct {
			name string
			dst  *float64
		}{
			{"wasted_from", &band.WastedFrom},
			{"wasted_to", &band.WastedTo},
			{"normal_from", &band.NormalFrom},
			{"normal_to", &band.NormalTo},
			{"overweight_from", &band.OverweightFrom},
			{"overweight_to", &band.OverweightTo},
		}
		for i, col := range cols {
			if *col.dst, err = parseFloat(fields[i+2], col.name); err != nil {
				return err
			}
		}

		bands[bandKey{ageMonths: band.AgeMonths, gender: band.Gender}] = band
		return nil
	})
	if err != nil {
		return nil, err
	}

	return bands, nil
}

func loadHeightForAgeBands(path string) (map[bandKey]domain.HeightForAgeBand, error) {
	bands := make(map[bandKey]domain.HeightForAgeBand)

	err := readBandFile(path, 8, func(line int, fields []string) error {
		band := domain.HeightForAgeBand{}

		var err error
		if band.AgeMonths, err = parseInt(fields[0], "age_months"); err != nil {
			return err
		}

		gender, ok := domain.ParseGender(fields[1])
		if !ok {
			return fmt.Errorf("invalid gender %q", fields[1])
		}
		band.Gender = gender

		cols := []struct {
			name string
			dst  *float64
		}{
			{"severely_stunted", &band.SeverelyStunted},
			{"stunted_start", &band.StuntedStart},
			{"stunted_end", &band.StuntedEnd},
			{"normal_start", &band.NormalStart},
			{"normal_end", &band.NormalEnd},
			{"tall", &band.Tall},
		}
		for i, col := range cols {
			if *col.dst, err = parseFloat(fields[i+2], col.name); err != nil {
				return err
			}
		}

		bands[bandKey{ageMonths: band.AgeMonths, gender: band.Gender}] = band
		return nil
	})
	if err != nil {
		return nil, err
	}

	return bands, nil
}

// readBandFile streams a CSV band file, skipping the header row and handing
// each data row to parse. Errors are wrapped as ReferenceDataError with the
// offending line number.
func readBandFile(path string, wantFields int, parse func(line int, fields []string) error) error {
	file, err := os.Open(path)
	if err != nil {
		return &domain.ReferenceDataError{File: filepath.Base(path), Err: err}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return &domain.ReferenceDataError{File: filepath.Base(path), Line: line, Err: err}
		}
		if line == 1 {
			// header row
			continue
		}
		if len(record) != wantFields {
			return &domain.ReferenceDataError{
				File: filepath.Base(path),
				Line: line,
				Err:  fmt.Errorf("expected %d fields, got %d", wantFields, len(record)),
			}
		}
		if err := parse(line, record); err != nil {
			return &domain.ReferenceDataError{File: filepath.Base(path), Line: line, Err: err}
		}
	}

	if line <= 1 {
		return &domain.ReferenceDataError{File: filepath.Base(path), Err: fmt.Errorf("no data rows")}
	}

	return nil
}

func parseInt(s, name string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", name, err)
	}
	return v, nil
}

func parseFloat(s, name string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", name, err)
	}
	return v, nil
}
