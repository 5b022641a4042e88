package engine_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifecalendar/internal/engine"
)

// TestScoreExercise_Bands verifies the three exercise bands and their edges.
func TestScoreExercise_Bands(t *testing.T) {
	tests := []struct {
		minutes int
		want    int
	}{
		{0, 0},
		{74, 0},
		{75, 3},
		{149, 3},
		{150, 5},
		{10000, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, engine.ScoreExercise(tt.minutes), "minutes=%d", tt.minutes)
	}
}

// TestScoreExercise_Monotonic sweeps a week's worth of minutes and checks
// that the score stays in {0,3,5} and never decreases.
func TestScoreExercise_Monotonic(t *testing.T) {
	prev := engine.ScoreExercise(0)
	for m := 0; m <= 7*24*60; m++ {
		got := engine.ScoreExercise(m)
		assert.Contains(t, []int{0, 3, 5}, got)
		if got < prev {
			t.Fatalf("score decreased at %d minutes: %d -> %d", m, prev, got)
		}
		prev = got
	}
}

func TestScoreSmoking(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"daily", -10},
		{"  DAILY ", -10},
		{"روزانه", -10},
		{"occasional", -5},
		{"Sometimes", -5},
		{"گاهی", -5},
		{"none", 0},
		{"never", 0},
		{"cigar aficionado", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.ScoreSmoking(engine.ParseSmokingStatus(tt.input)))
		})
	}
}

// TestScoreBMI covers the reference examples and the band edges.
func TestScoreBMI(t *testing.T) {
	tests := []struct {
		name     string
		weight   float64
		height   float64
		want     int
		wantBMI  float64
		checkBMI bool
	}{
		{name: "normal 70kg/175cm", weight: 70, height: 175, want: 2, wantBMI: 22.86, checkBMI: true},
		{name: "obese 120kg/170cm", weight: 120, height: 170, want: -2, wantBMI: 41.52, checkBMI: true},
		{name: "overweight 80kg/170cm", weight: 80, height: 170, want: 0},
		{name: "underweight 45kg/180cm", weight: 45, height: 180, want: -2},
		{name: "exactly 18.5", weight: 18.5, height: 100, want: 2},
		{name: "exactly 24.9", weight: 24.9, height: 100, want: 2},
		{name: "gap 24.95", weight: 24.95, height: 100, want: -2},
		{name: "exactly 25", weight: 25, height: 100, want: 0},
		{name: "exactly 29.9", weight: 29.9, height: 100, want: 0},
		{name: "exactly 30", weight: 30, height: 100, want: -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.ScoreBMI(tt.weight, tt.height)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			if tt.checkBMI {
				bmi, err := engine.BMI(tt.weight, tt.height)
				require.NoError(t, err)
				assert.InDelta(t, tt.wantBMI, bmi, 0.01)
			}
		})
	}
}

// TestScoreBMI_DomainError ensures heights that make BMI undefined are rejected.
func TestScoreBMI_DomainError(t *testing.T) {
	for _, h := range []float64{0, -170, math.NaN(), math.Inf(1)} {
		_, err := engine.ScoreBMI(70, h)
		require.Error(t, err, "height=%v", h)

		var domainErr *engine.DomainError
		assert.True(t, errors.As(err, &domainErr))
		assert.ErrorIs(t, err, engine.ErrDomain)
		assert.Equal(t, "height_cm", domainErr.Field)
	}
}

func TestScoreDiet(t *testing.T) {
	assert.Equal(t, 2, engine.ScoreDiet(engine.ParseDietQuality("Healthy")))
	assert.Equal(t, 2, engine.ScoreDiet(engine.ParseDietQuality("سالم")))
	assert.Equal(t, 0, engine.ScoreDiet(engine.ParseDietQuality("moderate")))
	assert.Equal(t, 0, engine.ScoreDiet(engine.ParseDietQuality("متوسط")))
	assert.Equal(t, -2, engine.ScoreDiet(engine.ParseDietQuality("unhealthy")))
	assert.Equal(t, -2, engine.ScoreDiet(engine.ParseDietQuality("fast food only")), "unrecognized diet scores as unhealthy")
	assert.Equal(t, -2, engine.ScoreDiet(engine.DietUnknown))
}

func TestScoreAlcohol(t *testing.T) {
	assert.Equal(t, -3, engine.ScoreAlcohol(engine.ParseAlcoholConsumption("heavy")))
	assert.Equal(t, -3, engine.ScoreAlcohol(engine.ParseAlcoholConsumption("HIGH")))
	assert.Equal(t, -3, engine.ScoreAlcohol(engine.ParseAlcoholConsumption("زیاد")))
	assert.Equal(t, 0, engine.ScoreAlcohol(engine.ParseAlcoholConsumption("light")))
	assert.Equal(t, 0, engine.ScoreAlcohol(engine.ParseAlcoholConsumption("none")))
	assert.Equal(t, 0, engine.ScoreAlcohol(engine.ParseAlcoholConsumption("whatever")))
}

func TestScoreHealth(t *testing.T) {
	assert.Equal(t, 3, engine.ScoreHealth(engine.HealthFromBool(false)))
	assert.Equal(t, -5, engine.ScoreHealth(engine.HealthFromBool(true)))

	tests := []struct {
		input string
		want  int
	}{
		{"no", 3},
		{"None", 3},
		{"false", 3},
		{"خیر", 3},
		{"yes", -5},
		{"Multiple", -5},
		{"true", -5},
		{"بله", -5},
		{"one abnormal", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, engine.ScoreHealth(engine.ParseHealthStatus(tt.input)), "input=%q", tt.input)
	}
}

// TestScore_Profile checks that Score evaluates every factor independently.
func TestScore_Profile(t *testing.T) {
	p := engine.Profile{
		ExerciseMinutesPerWeek: 80,
		Smoking:                engine.SmokingOccasional,
		WeightKg:               120,
		HeightCm:               170,
		Diet:                   engine.DietModerate,
		Alcohol:                engine.AlcoholHeavy,
		HealthIssues:           engine.HealthIssues,
	}

	v, err := engine.Score(p)
	require.NoError(t, err)
	assert.Equal(t, engine.ScoreVector{Exercise: 3, Smoking: -5, BMI: -2, Diet: 0, Alcohol: -3, Health: -5}, v)
}

func TestScore_ZeroHeight(t *testing.T) {
	_, err := engine.Score(engine.Profile{WeightKg: 70})
	assert.ErrorIs(t, err, engine.ErrDomain)
}
