package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifecalendar/internal/config"
)

func TestSurface_DrawsAndStacksPages(t *testing.T) {
	s, err := New(100, 50)
	require.NoError(t, err)

	s.SetFont(config.FontDay, config.FontSizeDay)
	s.DrawCircle(50, 25, 10)
	s.DrawCenteredText(50, 23, "1")
	s.NewPage()
	s.NewPage()

	require.Len(t, s.Pages(), 2)

	var buf bytes.Buffer
	require.NoError(t, s.Save(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)

	b := img.Bounds()
	assert.Equal(t, 200, b.Dx())
	assert.Equal(t, 2*100+config.RasterPageGap, b.Dy())

	// The circle outline crosses the point 10pt left of the centre.
	r, g, bl, _ := img.At(int((50-10)*config.RasterScale), int(25*config.RasterScale)).RGBA()
	assert.Less(t, r+g+bl, uint32(3*0xffff), "circle stroke should darken the pixel")

	// The second page stayed blank.
	assert.Equal(t, color.RGBAModel.Convert(color.White), color.RGBAModel.Convert(img.At(5, 100+config.RasterPageGap+5)))
}

func TestSurface_SetFontCachesFaces(t *testing.T) {
	s, err := New(config.PageWidth, config.PageHeight)
	require.NoError(t, err)

	s.SetFont(config.FontTitle, config.FontSizeTitle)
	title := s.face
	s.SetFont(config.FontDay, config.FontSizeDay)
	s.SetFont(config.FontTitle, config.FontSizeTitle)

	assert.Same(t, title, s.face)
	assert.Len(t, s.faces, 2)
}

func TestSurface_SaveEmpty(t *testing.T) {
	s, err := New(10, 10)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.Save(&buf))
	_, err = png.Decode(&buf)
	assert.NoError(t, err)
}

func TestSurface_PageLimit(t *testing.T) {
	s, err := New(10, 10)
	require.NoError(t, err)

	for range config.MaxRasterPages {
		s.NewPage()
	}
	require.Len(t, s.Pages(), config.MaxRasterPages)
	require.NoError(t, s.Save(&bytes.Buffer{}))
	assert.Empty(t, s.Pages(), "pages are released once stacked")

	over, err := New(10, 10)
	require.NoError(t, err)
	for range config.MaxRasterPages + 1 {
		over.NewPage()
	}
	assert.Len(t, over.Pages(), config.MaxRasterPages)

	var buf bytes.Buffer
	err = over.Save(&buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrTooManyPages)
	assert.Zero(t, buf.Len())
}
