package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifecalendar/internal/config"
	"github.com/tartampluch/go-lifecalendar/internal/engine"
)

// referenceProfile is the worked example: an active non-smoker with a
// healthy diet, normal BMI and no health issues.
func referenceProfile() engine.Profile {
	return engine.Profile{
		ExerciseMinutesPerWeek: 200,
		Smoking:                engine.ParseSmokingStatus("none"),
		WeightKg:               70,
		HeightCm:               175,
		Diet:                   engine.ParseDietQuality("healthy"),
		Alcohol:                engine.ParseAlcoholConsumption("none"),
		HealthIssues:           engine.HealthFromBool(false),
	}
}

// TestCalculateLifespan_Reference verifies 75 + 1.0 + 0 + 0.3 + 0.3 + 0 + 0.45.
func TestCalculateLifespan_Reference(t *testing.T) {
	got, err := engine.CalculateLifespan(referenceProfile())
	require.NoError(t, err)
	assert.InDelta(t, 77.05, got, 1e-9)
}

func TestCalculateLifespan_BaseAgeOverride(t *testing.T) {
	got, err := engine.CalculateLifespan(referenceProfile(), engine.WithBaseAge(80))
	require.NoError(t, err)
	assert.InDelta(t, 82.05, got, 1e-9)
}

// TestCalculateLifespan_WorstCase combines every negative factor.
func TestCalculateLifespan_WorstCase(t *testing.T) {
	p := engine.Profile{
		ExerciseMinutesPerWeek: 0,
		Smoking:                engine.SmokingDaily,
		WeightKg:               150,
		HeightCm:               160,
		Diet:                   engine.DietUnhealthy,
		Alcohol:                engine.AlcoholHeavy,
		HealthIssues:           engine.HealthIssues,
	}
	got, err := engine.CalculateLifespan(p)
	require.NoError(t, err)
	// 75 - 2.5 - 0.3 - 0.3 - 0.3 - 0.75
	assert.InDelta(t, 70.85, got, 1e-9)
}

func TestCalculateLifespan_DomainError(t *testing.T) {
	p := referenceProfile()
	p.HeightCm = 0

	_, err := engine.CalculateLifespan(p)
	assert.ErrorIs(t, err, engine.ErrDomain)
}

// TestEstimate_Floor sweeps base ages and every corner of the score space:
// the estimate must never fall below fifty years.
func TestEstimate_Floor(t *testing.T) {
	worst := engine.ScoreVector{Exercise: 0, Smoking: -10, BMI: -2, Diet: -2, Alcohol: -3, Health: -5}
	best := engine.ScoreVector{Exercise: 5, Smoking: 0, BMI: 2, Diet: 2, Alcohol: 0, Health: 3}

	for base := -100.0; base <= 120; base += 0.5 {
		for _, v := range []engine.ScoreVector{worst, best, {}} {
			assert.GreaterOrEqual(t, engine.Estimate(base, v), config.MinLifespanYears)
		}
	}
	assert.Equal(t, config.MinLifespanYears, engine.Estimate(20, worst))
}

func TestEstimate_Weights(t *testing.T) {
	tests := []struct {
		name string
		v    engine.ScoreVector
		want float64
	}{
		{"exercise", engine.ScoreVector{Exercise: 5}, 76.0},
		{"smoking", engine.ScoreVector{Smoking: -10}, 72.5},
		{"bmi", engine.ScoreVector{BMI: 2}, 75.3},
		{"diet", engine.ScoreVector{Diet: -2}, 74.7},
		{"alcohol", engine.ScoreVector{Alcohol: -3}, 74.7},
		{"health", engine.ScoreVector{Health: -5}, 74.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, engine.Estimate(config.DefaultBaseAge, tt.v), 1e-9)
		})
	}
}
