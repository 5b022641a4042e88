package engine

import (
	"strconv"
	"time"

	"github.com/tartampluch/go-lifecalendar/internal/config"
)

// SmokingStatus is the reported smoking habit.
type SmokingStatus int

const (
	SmokingUnknown SmokingStatus = iota
	SmokingNone
	SmokingOccasional
	SmokingDaily
)

// ParseSmokingStatus resolves free text through the smoking synonym set.
// Unrecognized text yields SmokingUnknown, which scores like SmokingNone.
func ParseSmokingStatus(text string) SmokingStatus { return smokingSynonyms.lookup(text) }

func (s SmokingStatus) String() string {
	switch s {
	case SmokingNone:
		return "none"
	case SmokingOccasional:
		return "occasional"
	case SmokingDaily:
		return "daily"
	default:
		return "unknown"
	}
}

func (s SmokingStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *SmokingStatus) UnmarshalText(b []byte) error {
	*s = ParseSmokingStatus(string(b))
	return nil
}

// DietQuality is the self-assessed quality of the diet.
type DietQuality int

const (
	DietUnknown DietQuality = iota
	DietHealthy
	DietModerate
	DietUnhealthy
)

// ParseDietQuality resolves free text through the diet synonym set.
// Unrecognized text yields DietUnknown, which scores like DietUnhealthy.
func ParseDietQuality(text string) DietQuality { return dietSynonyms.lookup(text) }

func (d DietQuality) String() string {
	switch d {
	case DietHealthy:
		return "healthy"
	case DietModerate:
		return "moderate"
	case DietUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

func (d DietQuality) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *DietQuality) UnmarshalText(b []byte) error {
	*d = ParseDietQuality(string(b))
	return nil
}

// AlcoholConsumption is the reported drinking habit.
type AlcoholConsumption int

const (
	AlcoholUnknown AlcoholConsumption = iota
	AlcoholNone
	AlcoholLight
	AlcoholHeavy
)

// ParseAlcoholConsumption resolves free text through the alcohol synonym set.
func ParseAlcoholConsumption(text string) AlcoholConsumption { return alcoholSynonyms.lookup(text) }

func (a AlcoholConsumption) String() string {
	switch a {
	case AlcoholNone:
		return "none"
	case AlcoholLight:
		return "light"
	case AlcoholHeavy:
		return "heavy"
	default:
		return "unknown"
	}
}

func (a AlcoholConsumption) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *AlcoholConsumption) UnmarshalText(b []byte) error {
	*a = ParseAlcoholConsumption(string(b))
	return nil
}

// HealthStatus is the tri-state answer to "abnormal blood pressure, sugar
// or cholesterol?". It is built from a bool or from free text.
type HealthStatus int

const (
	HealthUnknown HealthStatus = iota
	HealthNormal
	HealthIssues
)

// HealthFromBool maps a checkbox answer onto HealthStatus.
func HealthFromBool(hasIssues bool) HealthStatus {
	if hasIssues {
		return HealthIssues
	}
	return HealthNormal
}

// ParseHealthStatus resolves free text through the health synonym set.
func ParseHealthStatus(text string) HealthStatus { return healthSynonyms.lookup(text) }

func (h HealthStatus) String() string {
	switch h {
	case HealthNormal:
		return "no"
	case HealthIssues:
		return "yes"
	default:
		return "unknown"
	}
}

func (h HealthStatus) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

func (h *HealthStatus) UnmarshalText(b []byte) error {
	*h = ParseHealthStatus(string(b))
	return nil
}

// UnmarshalJSON accepts a bare boolean or a string. null leaves h as is.
func (h *HealthStatus) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if v, err := strconv.ParseBool(string(b)); err == nil {
		*h = HealthFromBool(v)
		return nil
	}
	s, err := strconv.Unquote(string(b))
	if err != nil {
		*h = HealthUnknown
		return nil
	}
	*h = ParseHealthStatus(s)
	return nil
}

// Profile is the lifestyle input of one estimation request.
type Profile struct {
	ExerciseMinutesPerWeek int                `json:"exercise_minutes_per_week"`
	Smoking                SmokingStatus      `json:"smoking_status"`
	WeightKg               float64            `json:"weight_kg"`
	HeightCm               float64            `json:"height_cm"`
	Diet                   DietQuality        `json:"diet_quality"`
	Alcohol                AlcoholConsumption `json:"alcohol_consumption"`
	HealthIssues           HealthStatus       `json:"has_health_issues"`
}

// Validate applies the input-form rules. The scoring engine does not
// call it; it only rejects heights that make BMI undefined.
func (p Profile) Validate() error {
	switch {
	case p.ExerciseMinutesPerWeek < 0:
		return &ValidationError{Field: "exercise_minutes_per_week", Reason: config.ErrNegativeExercise}
	case p.WeightKg < config.MinWeightKg:
		return &ValidationError{Field: "weight_kg", Reason: config.ErrWeightTooLow}
	case p.HeightCm < config.MinHeightCm:
		return &ValidationError{Field: "height_cm", Reason: config.ErrHeightTooLow}
	}
	return nil
}

// ValidateBirthDate rejects dates of birth on or after today.
func ValidateBirthDate(dob, now time.Time) error {
	if !CalendarDay(dob).Before(CalendarDay(now)) {
		return &ValidationError{Field: "date_of_birth", Reason: config.ErrBirthNotPast}
	}
	return nil
}

// ValidateGender accepts the three stored gender values; empty means the default.
func ValidateGender(g string) (string, error) {
	switch g {
	case "":
		return config.DefaultGender, nil
	case config.GenderMale, config.GenderFemale, config.GenderOther:
		return g, nil
	}
	return "", &ValidationError{Field: "gender", Reason: config.ErrGenderInvalid}
}

// CalendarDay truncates t to midnight UTC of its own calendar date.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
