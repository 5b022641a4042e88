package calendar

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/tartampluch/go-lifecalendar/internal/calendar/pdf"
	"github.com/tartampluch/go-lifecalendar/internal/config"
)

// Surface is a paginated 2D drawing target. Coordinates are in points
// with the origin at the bottom-left corner of the page. NewPage closes
// the current page; Save finalizes the document and writes it to w.
type Surface interface {
	SetFont(name string, size float64)
	DrawCenteredText(x, y float64, text string)
	DrawCircle(x, y, radius float64)
	NewPage()
	Save(w io.Writer) error
}

// Render draws every page of l onto s, then saves the document to w.
func Render(w io.Writer, l Layout, s Surface) error {
	g := l.Geometry
	for _, page := range l.Pages {
		s.SetFont(config.FontTitle, config.FontSizeTitle)
		s.DrawCenteredText(g.Width/2, g.Height-g.Margin/2, page.Title)

		for _, m := range page.Markers {
			s.DrawCircle(m.X, m.Y, config.CircleRadius)
			s.SetFont(config.FontDay, config.FontSizeDay)
			s.DrawCenteredText(m.X, m.Y-config.DayTextOffset, strconv.Itoa(m.Day))
		}
		s.NewPage()
	}
	if err := s.Save(w); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSurfaceSave, err)
	}
	return nil
}

// RenderBytes renders into memory.
func RenderBytes(l Layout, s Surface) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, l, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateDocument lays out the life between birth and death and renders
// it as an A4 PDF. The PDF creation date is pinned to the birth date so
// identical inputs always produce identical bytes.
func GenerateDocument(birth, death time.Time) ([]byte, error) {
	l, err := NewLayout(birth, death)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLayoutFailed, err)
	}
	return RenderPDF(l)
}

// RenderPDF renders an already computed layout as a PDF.
func RenderPDF(l Layout) ([]byte, error) {
	s := pdf.New(l.Geometry.Width, l.Geometry.Height, pdf.WithCreationDate(l.Birth))
	out, err := RenderBytes(l, s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRenderFailed, err)
	}
	return out, nil
}
