package engine

import (
	"math"
	"time"

	"github.com/tartampluch/go-lifecalendar/internal/config"
)

// DeathDate projects the estimated final day: birth plus the whole number
// of days in years mean Gregorian years.
func DeathDate(birth time.Time, years float64) time.Time {
	days := int(years * config.DaysPerYear)
	return CalendarDay(birth).AddDate(0, 0, days)
}

// Breakdown is a coarse years/months/days split of a day count.
// Months are 30 days and years 365 days; Days is the count modulo 30,
// matching the countdown shown next to the calendar.
type Breakdown struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

func newBreakdown(days int) Breakdown {
	return Breakdown{
		Years:  days / 365,
		Months: (days % 365) / 30,
		Days:   days % 30,
	}
}

// Progress describes how much of the estimated life has elapsed at a moment.
type Progress struct {
	BirthDate        time.Time `json:"birth_date"`
	DeathDate        time.Time `json:"estimated_death_date"`
	Today            time.Time `json:"today"`
	ElapsedSeconds   int64     `json:"elapsed_seconds"`
	RemainingSeconds int64     `json:"remaining_seconds"`
	Elapsed          Breakdown `json:"elapsed"`
	Remaining        Breakdown `json:"remaining"`
	LifePercentage   float64   `json:"life_percentage"`
}

// NewProgress measures elapsed and remaining time between birth and death
// as seen from now. Remaining seconds are clamped at zero once the death
// date has passed; the percentage is capped at 100.
func NewProgress(birth, death, now time.Time) Progress {
	b, d, today := CalendarDay(birth), CalendarDay(death), CalendarDay(now)

	elapsedDays := DaysBetween(b, today)
	remainingDays := DaysBetween(today, d)
	totalDays := DaysBetween(b, d)

	p := Progress{
		BirthDate:        b,
		DeathDate:        d,
		Today:            today,
		ElapsedSeconds:   int64(elapsedDays) * 86400,
		RemainingSeconds: max(0, int64(remainingDays)*86400),
		Elapsed:          newBreakdown(elapsedDays),
		Remaining:        newBreakdown(max(0, remainingDays)),
	}
	if totalDays > 0 {
		pct := math.Min(100, float64(elapsedDays)/float64(totalDays)*100)
		p.LifePercentage = math.Round(pct*100) / 100
	}
	return p
}

// DaysBetween counts calendar days from one date to another. It works on
// Unix seconds because time.Duration saturates after about 292 years.
func DaysBetween(from, to time.Time) int {
	return int((CalendarDay(to).Unix() - CalendarDay(from).Unix()) / 86400)
}
