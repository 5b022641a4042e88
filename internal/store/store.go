// Package store persists lifespan calculations in SQLite so that a result
// can be shared by id and its calendar downloaded later.
package store

import (
	"context"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tartampluch/go-lifecalendar/internal/config"
	"github.com/tartampluch/go-lifecalendar/internal/engine"
)

// ErrNotFound is returned when no calculation matches an id.
var ErrNotFound = errors.New(config.ErrNotFound)

// ErrAmbiguousID is returned when an id prefix matches several calculations.
var ErrAmbiguousID = errors.New(config.ErrAmbiguousID)

// Calculation is one stored estimation request and its result.
type Calculation struct {
	ID             string         `json:"id"`
	DateOfBirth    time.Time      `json:"date_of_birth"`
	Gender         string         `json:"gender"`
	Profile        engine.Profile `json:"profile"`
	BaseAge        float64        `json:"base_age"`
	EstimatedYears float64        `json:"estimated_years"`
	CreatedAt      time.Time      `json:"created_at"`
}

// DeathDate is the estimated final day of the stored result.
func (c *Calculation) DeathDate() time.Time {
	return engine.DeathDate(c.DateOfBirth, c.EstimatedYears)
}

// ShortID is the id prefix used in document file names.
func (c *Calculation) ShortID() string {
	if len(c.ID) <= config.ShortIDLength {
		return c.ID
	}
	return c.ID[:config.ShortIDLength]
}

// NewCalculation validates the request fields and runs the estimator.
// now is the moment the date of birth must precede. Estimates above
// config.MaxLifespanYears are rejected with an engine.DomainError.
func NewCalculation(p engine.Profile, dob time.Time, gender string, baseAge float64, now time.Time) (*Calculation, error) {
	if err := engine.ValidateBirthDate(dob, now); err != nil {
		return nil, err
	}
	gender, err := engine.ValidateGender(gender)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	years, err := engine.CalculateLifespan(p, engine.WithBaseAge(baseAge))
	if err != nil {
		return nil, err
	}
	if years > config.MaxLifespanYears {
		return nil, &engine.DomainError{Field: "estimated_years", Value: years, Reason: config.ErrLifespanTooLong}
	}

	return &Calculation{
		DateOfBirth:    engine.CalendarDay(dob),
		Gender:         gender,
		Profile:        p,
		BaseAge:        baseAge,
		EstimatedYears: years,
	}, nil
}

// Repository is the storage contract used by the HTTP, MCP and CLI layers.
type Repository interface {
	// Create assigns an id when c.ID is empty and a creation time when
	// c.CreatedAt is zero.
	Create(ctx context.Context, c *Calculation) error
	// Get accepts a full id or a unique prefix.
	Get(ctx context.Context, idOrPrefix string) (*Calculation, error)
	// List returns the newest calculations first. limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]*Calculation, error)
	Delete(ctx context.Context, idOrPrefix string) error
	Close() error
}

// IDGenerator produces new calculation ids.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random UUIDs as 32 lowercase hex characters.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}
