package store

const schema = `
CREATE TABLE IF NOT EXISTS calculations (
	id TEXT PRIMARY KEY,
	date_of_birth TEXT NOT NULL,
	gender TEXT NOT NULL,
	exercise_minutes_per_week INTEGER NOT NULL,
	smoking_status TEXT NOT NULL,
	weight_kg REAL NOT NULL,
	height_cm REAL NOT NULL,
	diet_quality TEXT NOT NULL,
	alcohol_consumption TEXT NOT NULL,
	has_health_issues TEXT NOT NULL,
	base_age REAL NOT NULL,
	estimated_years REAL NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_calculations_created ON calculations(created_at DESC);
`

func (d *DB) initSchema() error {
	_, err := d.db.Exec(schema)
	return err
}
