package engine

import (
	"math"

	"github.com/tartampluch/go-lifecalendar/internal/config"
)

// Estimate applies the fixed factor weights to v on top of baseAge.
// The result never drops below config.MinLifespanYears.
func Estimate(baseAge float64, v ScoreVector) float64 {
	age := baseAge +
		config.WeightExercise*float64(v.Exercise) +
		config.WeightSmoking*float64(v.Smoking) +
		config.WeightBMI*float64(v.BMI) +
		config.WeightDiet*float64(v.Diet) +
		config.WeightAlcohol*float64(v.Alcohol) +
		config.WeightHealth*float64(v.Health)
	return math.Max(age, config.MinLifespanYears)
}

type estimateOptions struct {
	baseAge float64
}

// EstimateOption customizes CalculateLifespan.
type EstimateOption func(*estimateOptions)

// WithBaseAge replaces the default baseline of 75 years.
func WithBaseAge(age float64) EstimateOption {
	return func(o *estimateOptions) { o.baseAge = age }
}

// CalculateLifespan scores p and returns the estimated lifespan in years.
// The only failure is a DomainError for a non-positive height.
func CalculateLifespan(p Profile, opts ...EstimateOption) (float64, error) {
	o := estimateOptions{baseAge: config.DefaultBaseAge}
	for _, opt := range opts {
		opt(&o)
	}
	v, err := Score(p)
	if err != nil {
		return 0, err
	}
	return Estimate(o.baseAge, v), nil
}
