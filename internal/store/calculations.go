package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tartampluch/go-lifecalendar/internal/config"
	"github.com/tartampluch/go-lifecalendar/internal/engine"
)

const selectColumns = `
	SELECT id, date_of_birth, gender, exercise_minutes_per_week, smoking_status,
		weight_kg, height_cm, diet_quality, alcohol_consumption, has_health_issues,
		base_age, estimated_years, created_at
	FROM calculations
`

// fullIDLength is the length of a hex-encoded UUID.
const fullIDLength = 32

// Create stores c.
func (d *DB) Create(ctx context.Context, c *Calculation) error {
	if c.ID == "" {
		c.ID = d.ids.NewID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = d.clock.Now()
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.DateOfBirth = engine.CalendarDay(c.DateOfBirth)

	query := `
		INSERT INTO calculations (id, date_of_birth, gender, exercise_minutes_per_week,
			smoking_status, weight_kg, height_cm, diet_quality, alcohol_consumption,
			has_health_issues, base_age, estimated_years, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	p := c.Profile
	_, err := d.db.ExecContext(ctx, query,
		c.ID,
		c.DateOfBirth.Format(config.DateFormatFullDash),
		c.Gender,
		p.ExerciseMinutesPerWeek,
		p.Smoking.String(),
		p.WeightKg,
		p.HeightCm,
		p.Diet.String(),
		p.Alcohol.String(),
		p.HealthIssues.String(),
		c.BaseAge,
		c.EstimatedYears,
		c.CreatedAt.Format(config.DateFormatStored),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrDBInsert, err)
	}

	slog.Info(config.MsgCalcStored,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyID, c.ID,
		config.LogKeyYears, c.EstimatedYears,
	)
	return nil
}

// Get retrieves a calculation by id or unique id prefix.
func (d *DB) Get(ctx context.Context, idOrPrefix string) (*Calculation, error) {
	id, err := d.resolveID(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	c, err := scanCalculation(d.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return c, err
}

// List returns calculations, newest first.
func (d *DB) List(ctx context.Context, limit int) ([]*Calculation, error) {
	query := selectColumns + ` ORDER BY created_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDBQuery, err)
	}
	defer func() { _ = rows.Close() }()

	var out []*Calculation
	for rows.Next() {
		c, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDBQuery, err)
	}
	return out, nil
}

// Delete removes a calculation by id or unique id prefix.
func (d *DB) Delete(ctx context.Context, idOrPrefix string) error {
	id, err := d.resolveID(ctx, idOrPrefix)
	if err != nil {
		return err
	}

	result, err := d.db.ExecContext(ctx, `DELETE FROM calculations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrDBDelete, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrDBDelete, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}

	slog.Info(config.MsgCalcDeleted,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyID, id,
	)
	return nil
}

// resolveID expands a prefix to the single full id it matches.
func (d *DB) resolveID(ctx context.Context, idOrPrefix string) (string, error) {
	if idOrPrefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}
	if len(idOrPrefix) >= fullIDLength {
		return idOrPrefix, nil
	}

	rows, err := d.db.QueryContext(ctx,
		`SELECT id FROM calculations WHERE substr(id, 1, ?) = ? LIMIT 2`,
		len(idOrPrefix), idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrDBQuery, err)
	}
	defer func() { _ = rows.Close() }()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("%s: %w", config.ErrDBScan, err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrDBQuery, err)
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousID, idOrPrefix)
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCalculation(row scanner) (*Calculation, error) {
	var (
		c                                  Calculation
		dob, createdAt                     string
		smoking, diet, alcohol, healthText string
	)
	err := row.Scan(&c.ID, &dob, &c.Gender, &c.Profile.ExerciseMinutesPerWeek, &smoking,
		&c.Profile.WeightKg, &c.Profile.HeightCm, &diet, &alcohol, &healthText,
		&c.BaseAge, &c.EstimatedYears, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", config.ErrDBScan, err)
	}

	c.Profile.Smoking = engine.ParseSmokingStatus(smoking)
	c.Profile.Diet = engine.ParseDietQuality(diet)
	c.Profile.Alcohol = engine.ParseAlcoholConsumption(alcohol)
	c.Profile.HealthIssues = engine.ParseHealthStatus(healthText)

	if c.DateOfBirth, err = time.Parse(config.DateFormatFullDash, dob); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDBScan, err)
	}
	if c.CreatedAt, err = time.Parse(config.DateFormatStored, createdAt); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDBScan, err)
	}
	return &c, nil
}
