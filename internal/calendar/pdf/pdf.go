// Package pdf is the PDF drawing surface of the life calendar, backed by fpdf.
package pdf

import (
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/tartampluch/go-lifecalendar/internal/config"
)

// Surface draws onto an fpdf document. Callers use bottom-left origin
// coordinates; fpdf measures from the top, so every y is flipped.
type Surface struct {
	doc    *fpdf.Fpdf
	height float64
	open   bool

	family string
	style  string
	size   float64
}

// Option customizes a Surface.
type Option func(*fpdf.Fpdf)

// WithCreationDate pins the document dates so output is reproducible.
func WithCreationDate(t time.Time) Option {
	return func(doc *fpdf.Fpdf) {
		doc.SetCreationDate(t)
		doc.SetModificationDate(t)
	}
}

// New returns a surface whose pages measure width × height points.
func New(width, height float64, opts ...Option) *Surface {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        config.PDFUnit,
		Size:           fpdf.SizeType{Wd: width, Ht: height},
	})
	doc.SetAutoPageBreak(false, 0)
	doc.SetCatalogSort(true)
	doc.SetCreator(config.PDFCreator, true)
	doc.SetTitle(config.PDFTitle, true)
	for _, opt := range opts {
		opt(doc)
	}
	return &Surface{doc: doc, height: height}
}

// SetFont accepts PostScript style names such as "Helvetica-Bold".
func (s *Surface) SetFont(name string, size float64) {
	s.family, s.style = splitFontName(name)
	s.size = size
}

func (s *Surface) DrawCenteredText(x, y float64, text string) {
	s.ensurePage()
	s.doc.SetFont(s.family, s.style, s.size)
	w := s.doc.GetStringWidth(text)
	s.doc.Text(x-w/2, s.height-y, text)
}

func (s *Surface) DrawCircle(x, y, radius float64) {
	s.ensurePage()
	s.doc.Circle(x, s.height-y, radius, "D")
}

// NewPage closes the current page. An untouched page is still emitted.
func (s *Surface) NewPage() {
	s.ensurePage()
	s.open = false
}

// Save writes the finished document.
func (s *Surface) Save(w io.Writer) error {
	return s.doc.Output(w)
}

// PageCount reports the number of pages started so far.
func (s *Surface) PageCount() int {
	return s.doc.PageCount()
}

func (s *Surface) ensurePage() {
	if !s.open {
		s.doc.AddPage()
		s.open = true
	}
}

// splitFontName maps a PostScript font name onto an fpdf family and style.
func splitFontName(name string) (family, style string) {
	family, variant, _ := strings.Cut(name, "-")
	if family == "" {
		family = config.FontDay
	}
	variant = strings.ToLower(variant)
	if strings.Contains(variant, "bold") {
		style += "B"
	}
	if strings.Contains(variant, "oblique") || strings.Contains(variant, "italic") {
		style += "I"
	}
	return family, style
}
