package engine

import (
	"fmt"
	"math"

	"github.com/tartampluch/go-lifecalendar/internal/config"
)

// ScoreVector holds the six lifestyle sub-scores.
type ScoreVector struct {
	Exercise int `json:"exercise"`
	Smoking  int `json:"smoking"`
	BMI      int `json:"bmi"`
	Diet     int `json:"diet"`
	Alcohol  int `json:"alcohol"`
	Health   int `json:"health"`
}

// ScoreExercise returns 5, 3 or 0 and never decreases as minutes grow.
func ScoreExercise(minutesPerWeek int) int {
	switch {
	case minutesPerWeek >= config.ExerciseHighMinutes:
		return config.ExerciseHighScore
	case minutesPerWeek >= config.ExerciseLowMinutes:
		return config.ExerciseLowScore
	default:
		return 0
	}
}

func ScoreSmoking(s SmokingStatus) int {
	switch s {
	case SmokingDaily:
		return config.SmokingDailyScore
	case SmokingOccasional:
		return config.SmokingOccasionalScore
	default:
		return 0
	}
}

// BMI computes weight / height² with height in meters.
func BMI(weightKg, heightCm float64) (float64, error) {
	if !(heightCm > 0) || math.IsInf(heightCm, 0) {
		return 0, &DomainError{Field: "height_cm", Value: heightCm, Reason: config.ErrHeightDomain}
	}
	heightM := heightCm / 100
	return weightKg / (heightM * heightM), nil
}

// ScoreBMI maps the BMI onto +2 (normal), 0 (overweight) or -2.
// Both bands are closed, so values in the gaps above 24.9 and 29.9
// fall through to -2.
func ScoreBMI(weightKg, heightCm float64) (int, error) {
	bmi, err := BMI(weightKg, heightCm)
	if err != nil {
		return 0, err
	}
	switch {
	case bmi >= config.BMINormalLow && bmi <= config.BMINormalHigh:
		return config.BMINormalScore, nil
	case bmi >= config.BMIOverweightLow && bmi <= config.BMIOverweightHigh:
		return 0, nil
	default:
		return config.BMIOutOfRangeScore, nil
	}
}

func ScoreDiet(d DietQuality) int {
	switch d {
	case DietHealthy:
		return config.DietHealthyScore
	case DietModerate:
		return 0
	default:
		return config.DietUnhealthyScore
	}
}

func ScoreAlcohol(a AlcoholConsumption) int {
	if a == AlcoholHeavy {
		return config.AlcoholHeavyScore
	}
	return 0
}

func ScoreHealth(h HealthStatus) int {
	switch h {
	case HealthNormal:
		return config.HealthNormalScore
	case HealthIssues:
		return config.HealthIssuesScore
	default:
		return 0
	}
}

// Score evaluates every factor of the profile.
func Score(p Profile) (ScoreVector, error) {
	bmi, err := ScoreBMI(p.WeightKg, p.HeightCm)
	if err != nil {
		return ScoreVector{}, fmt.Errorf("%s: %w", config.ErrScoreProfile, err)
	}
	return ScoreVector{
		Exercise: ScoreExercise(p.ExerciseMinutesPerWeek),
		Smoking:  ScoreSmoking(p.Smoking),
		BMI:      bmi,
		Diet:     ScoreDiet(p.Diet),
		Alcohol:  ScoreAlcohol(p.Alcohol),
		Health:   ScoreHealth(p.HealthIssues),
	}, nil
}
