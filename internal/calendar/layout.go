// Package calendar lays out and renders the life calendar: one page per
// year of estimated life, one numbered circle per day.
package calendar

import (
	"fmt"
	"math"
	"time"

	"github.com/tartampluch/go-lifecalendar/internal/config"
	"github.com/tartampluch/go-lifecalendar/internal/engine"
)

// DomainError reports a date range that cannot be laid out.
type DomainError struct {
	Birth, Death time.Time
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s is before %s", config.ErrInvalidRange,
		e.Death.Format(config.DateFormatFullDash), e.Birth.Format(config.DateFormatFullDash))
}

// Unwrap makes errors.Is(err, engine.ErrDomain) hold.
func (e *DomainError) Unwrap() error { return engine.ErrDomain }

// Geometry describes the page and grid dimensions, in points.
type Geometry struct {
	Width        float64
	Height       float64
	Margin       float64
	HeaderHeight float64
	PerPage      int
}

// DefaultGeometry is an A4 page with 365 markers.
func DefaultGeometry() Geometry {
	return Geometry{
		Width:        config.PageWidth,
		Height:       config.PageHeight,
		Margin:       config.PageMargin,
		HeaderHeight: config.HeaderHeight,
		PerPage:      config.DaysPerPage,
	}
}

// Cols is floor(sqrt(PerPage)).
func (g Geometry) Cols() int {
	return int(math.Sqrt(float64(g.PerPage)))
}

// Rows is ceil(PerPage / Cols).
func (g Geometry) Rows() int {
	cols := g.Cols()
	return (g.PerPage + cols - 1) / cols
}

// Spacing returns the horizontal and vertical distance between grid cells.
func (g Geometry) Spacing() (float64, float64) {
	sx := (g.Width - 2*g.Margin) / float64(g.Cols()-1)
	sy := (g.Height - 2*g.Margin - g.HeaderHeight) / float64(g.Rows()-1)
	return sx, sy
}

// Validate reports a geometry the grid cannot be laid out on.
func (g Geometry) Validate() error {
	switch {
	case g.PerPage < config.MinMarkersPerPage:
		return fmt.Errorf("%s: %d markers per page, need at least %d",
			config.ErrInvalidGeometry, g.PerPage, config.MinMarkersPerPage)
	case g.Margin < 0 || g.HeaderHeight < 0:
		return fmt.Errorf("%s: negative margin or header", config.ErrInvalidGeometry)
	case g.Width <= 2*g.Margin || g.Height <= 2*g.Margin+g.HeaderHeight:
		return fmt.Errorf("%s: %.2fx%.2f page leaves no drawing area",
			config.ErrInvalidGeometry, g.Width, g.Height)
	}
	return nil
}

// Marker is one day circle. Coordinates use a bottom-left origin.
type Marker struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Day  int     `json:"day"`
	Year int     `json:"year"`
}

// Page is one year of life.
type Page struct {
	Index   int      `json:"index"`
	Title   string   `json:"title"`
	Markers []Marker `json:"markers"`
}

// Layout is the full set of pages between a birth date and a death date.
type Layout struct {
	Geometry  Geometry  `json:"-"`
	Birth     time.Time `json:"birth_date"`
	Death     time.Time `json:"death_date"`
	TotalDays int       `json:"total_days"`
	Pages     []Page    `json:"pages"`
}

// LayoutOption customizes NewLayout.
type LayoutOption func(*Geometry)

// WithGeometry replaces the default A4 geometry.
func WithGeometry(g Geometry) LayoutOption {
	return func(dst *Geometry) { *dst = g }
}

// PageCount returns ceil(totalDays / 365.25).
func PageCount(totalDays int) int {
	return int(math.Ceil(float64(totalDays) / config.DaysPerYear))
}

// NewLayout computes the pages for the life between birth and death.
// Both dates are reduced to their calendar day. Every page, including the
// last one, carries the full set of markers regardless of how many days
// of that year remain.
func NewLayout(birth, death time.Time, opts ...LayoutOption) (Layout, error) {
	g := DefaultGeometry()
	for _, opt := range opts {
		opt(&g)
	}
	if err := g.Validate(); err != nil {
		return Layout{}, err
	}

	b, d := engine.CalendarDay(birth), engine.CalendarDay(death)
	if d.Before(b) {
		return Layout{}, &DomainError{Birth: b, Death: d}
	}
	totalDays := engine.DaysBetween(b, d)

	n := PageCount(totalDays)
	grid := gridPositions(g)
	pages := make([]Page, n)
	for i := range pages {
		year := i + 1
		markers := make([]Marker, len(grid))
		for j, pos := range grid {
			markers[j] = Marker{X: pos[0], Y: pos[1], Day: j + 1, Year: year}
		}
		pages[i] = Page{
			Index:   year,
			Title:   fmt.Sprintf(config.FormatPageTitle, year),
			Markers: markers,
		}
	}

	return Layout{
		Geometry:  g,
		Birth:     b,
		Death:     d,
		TotalDays: totalDays,
		Pages:     pages,
	}, nil
}

// gridPositions walks the grid row by row and stops after PerPage cells,
// leaving the tail of the last row empty.
func gridPositions(g Geometry) [][2]float64 {
	cols, rows := g.Cols(), g.Rows()
	sx, sy := g.Spacing()

	out := make([][2]float64, 0, g.PerPage)
	for r := 0; r < rows; r++ {
		for k := 0; k < cols; k++ {
			if len(out) == g.PerPage {
				return out
			}
			x := g.Margin + float64(k)*sx
			y := g.Height - g.Margin - g.HeaderHeight - float64(r)*sy
			out = append(out, [2]float64{x, y})
		}
	}
	return out
}

// Page returns a layout restricted to the one-based year page n.
func (l Layout) Page(n int) (Layout, error) {
	if n < 1 || n > len(l.Pages) {
		return Layout{}, fmt.Errorf("%s: %d of %d", config.ErrPageOutOfRange, n, len(l.Pages))
	}
	sub := l
	sub.Pages = l.Pages[n-1 : n]
	return sub, nil
}
