// backend-go/internal/nutrition/eligibility.go
package nutrition

import "github.com/rcabanilla/schoolclinic/backend-go/internal/domain"

// FeedingEligible reports whether a BMI category qualifies a pupil for the
// school-based feeding program.
func FeedingEligible(category domain.BMICategory) bool {
	return category == domain.BMIWasted || category == domain.BMISeverelyWasted
}
