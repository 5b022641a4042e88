// Package raster renders life calendar pages to PNG with fogleman/gg.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/tartampluch/go-lifecalendar/internal/config"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type faceKey struct {
	bold bool
	size float64
}

// Surface draws each page into its own image. Save stacks the pages
// vertically into a single PNG.
type Surface struct {
	width, height float64
	scale         float64

	regular *truetype.Font
	bold    *truetype.Font
	faces   map[faceKey]font.Face
	face    font.Face

	dc    *gg.Context
	pages []image.Image
	err   error
}

// New returns a surface for width × height point pages rendered at
// config.RasterScale pixels per point.
func New(width, height float64) (*Surface, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrFontParse, err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrFontParse, err)
	}
	return &Surface{
		width:   width,
		height:  height,
		scale:   config.RasterScale,
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

// SetFont picks the Go bold face for names containing "Bold" and the
// regular face otherwise.
func (s *Surface) SetFont(name string, size float64) {
	key := faceKey{bold: strings.Contains(strings.ToLower(name), "bold"), size: size}
	face, ok := s.faces[key]
	if !ok {
		f := s.regular
		if key.bold {
			f = s.bold
		}
		face = truetype.NewFace(f, &truetype.Options{
			Size:    size * s.scale,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		s.faces[key] = face
	}
	s.face = face
}

func (s *Surface) DrawCenteredText(x, y float64, text string) {
	dc := s.context()
	if s.face != nil {
		dc.SetFontFace(s.face)
	}
	px, py := s.toPixels(x, y)
	dc.SetColor(color.Black)
	dc.DrawStringAnchored(text, px, py, 0.5, 0)
}

func (s *Surface) DrawCircle(x, y, radius float64) {
	dc := s.context()
	px, py := s.toPixels(x, y)
	dc.SetColor(color.Black)
	dc.SetLineWidth(config.RasterStrokeWidth * s.scale)
	dc.DrawCircle(px, py, radius*s.scale)
	dc.Stroke()
}

// NewPage closes the current page. An untouched page is still emitted.
// Pages past config.MaxRasterPages are dropped and make Save fail.
func (s *Surface) NewPage() {
	if len(s.pages) >= config.MaxRasterPages {
		s.err = fmt.Errorf("%s: more than %d", config.ErrTooManyPages, config.MaxRasterPages)
		s.dc = nil
		return
	}
	s.pages = append(s.pages, s.context().Image())
	s.dc = nil
}

// Pages returns the images of the closed pages.
func (s *Surface) Pages() []image.Image {
	return s.pages
}

// Save encodes all closed pages, separated by a white gap, as one PNG.
func (s *Surface) Save(w io.Writer) error {
	if s.dc != nil {
		s.NewPage()
	}
	if s.err != nil {
		return s.err
	}
	if len(s.pages) == 0 {
		s.NewPage()
	}

	pw, ph := s.pixelSize()
	gap := config.RasterPageGap
	sheet := image.NewRGBA(image.Rect(0, 0, pw, len(s.pages)*ph+(len(s.pages)-1)*gap))
	draw.Draw(sheet, sheet.Bounds(), image.White, image.Point{}, draw.Src)
	for i, page := range s.pages {
		offset := image.Pt(0, i*(ph+gap))
		draw.Draw(sheet, page.Bounds().Add(offset), page, page.Bounds().Min, draw.Over)
		s.pages[i] = nil
	}
	s.pages = nil

	if err := png.Encode(w, sheet); err != nil {
		return fmt.Errorf("%s: %w", config.ErrPNGEncode, err)
	}
	return nil
}

func (s *Surface) context() *gg.Context {
	if s.dc == nil {
		pw, ph := s.pixelSize()
		s.dc = gg.NewContext(pw, ph)
		s.dc.SetColor(color.White)
		s.dc.Clear()
	}
	return s.dc
}

func (s *Surface) pixelSize() (int, int) {
	return int(math.Ceil(s.width * s.scale)), int(math.Ceil(s.height * s.scale))
}

// toPixels flips the y axis and applies the scale.
func (s *Surface) toPixels(x, y float64) (float64, float64) {
	return x * s.scale, (s.height - y) * s.scale
}
