// backend-go/internal/nutrition/age.go
package nutrition

import (
	"math"
	"time"

	"github.com/rcabanilla/schoolclinic/backend-go/internal/domain"
)

// avgDaysPerMonth is the average length of a month. Age is derived from the
// raw day span, not calendar month arithmetic, matching how the clinic forms
// have always computed it.
const avgDaysPerMonth = 30.44

// AgeInMonths returns the whole months between birth and measured as
// floor(days / 30.44).
func AgeInMonths(birth, measured time.Time) (int, error) {
	if birth.IsZero() || measured.IsZero() {
		return 0, &domain.InvalidDateError{Reason: "birth date and measurement date are required"}
	}
	if measured.Before(birth) {
		return 0, &domain.InvalidDateError{Reason: "measurement date precedes birth date"}
	}

	days := measured.Sub(birth).Hours() / 24
	return int(math.Floor(days / avgDaysPerMonth)), nil
}
