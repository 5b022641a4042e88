package calendar_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifecalendar/internal/calendar"
	"github.com/tartampluch/go-lifecalendar/internal/config"
)

// -----------------------------------------------------------------------------
// Fakes
// -----------------------------------------------------------------------------

// recordingSurface logs every drawing call as a line of text.
type recordingSurface struct {
	calls []string
	font  string
}

func (r *recordingSurface) SetFont(name string, size float64) {
	r.font = fmt.Sprintf("%s/%g", name, size)
	r.calls = append(r.calls, "font "+r.font)
}

func (r *recordingSurface) DrawCenteredText(x, y float64, text string) {
	r.calls = append(r.calls, fmt.Sprintf("text %.2f,%.2f %s [%s]", x, y, text, r.font))
}

func (r *recordingSurface) DrawCircle(x, y, radius float64) {
	r.calls = append(r.calls, fmt.Sprintf("circle %.2f,%.2f r%g", x, y, radius))
}

func (r *recordingSurface) NewPage() { r.calls = append(r.calls, "page") }

func (r *recordingSurface) Save(w io.Writer) error {
	_, err := io.WriteString(w, "saved")
	return err
}

func (r *recordingSurface) count(prefix string) int {
	n := 0
	for _, c := range r.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

// MockSurface lets tests inject a Save failure via testify/mock.
type MockSurface struct {
	mock.Mock
}

func (m *MockSurface) SetFont(name string, size float64)         {}
func (m *MockSurface) DrawCenteredText(x, y float64, text string) {}
func (m *MockSurface) DrawCircle(x, y, radius float64)            {}
func (m *MockSurface) NewPage()                                   { m.Called() }
func (m *MockSurface) Save(w io.Writer) error                     { return m.Called(w).Error(0) }

// -----------------------------------------------------------------------------
// Test Cases
// -----------------------------------------------------------------------------

// TestRender_DrawingSequence checks the exact calls of the first page.
func TestRender_DrawingSequence(t *testing.T) {
	l, err := calendar.NewLayout(day(2000, 1, 1), day(2002, 1, 1))
	require.NoError(t, err)

	s := &recordingSurface{}
	var out bytes.Buffer
	require.NoError(t, calendar.Render(&out, l, s))
	assert.Equal(t, "saved", out.String())

	title := fmt.Sprintf("text %.2f,%.2f Year 1 [%s/20]", config.PageWidth/2, config.PageHeight-config.PageMargin/2, config.FontTitle)
	require.GreaterOrEqual(t, len(s.calls), 5)
	assert.Equal(t, "font Helvetica-Bold/20", s.calls[0])
	assert.Equal(t, title, s.calls[1])
	assert.Equal(t, "circle 40.00,771.89 r12", s.calls[2])
	assert.Equal(t, "font Helvetica/6", s.calls[3])
	assert.Equal(t, "text 40.00,769.89 1 [Helvetica/6]", s.calls[4])

	assert.Equal(t, 3, s.count("page"))
	assert.Equal(t, 3*365, s.count("circle"))
	assert.Equal(t, 3*365+3, s.count("text"))
	assert.Equal(t, "page", s.calls[len(s.calls)-1])
}

func TestRender_EmptyLayoutStillSaves(t *testing.T) {
	l, err := calendar.NewLayout(day(2000, 1, 1), day(2000, 1, 1))
	require.NoError(t, err)

	s := &recordingSurface{}
	var out bytes.Buffer
	require.NoError(t, calendar.Render(&out, l, s))
	assert.Empty(t, s.calls)
	assert.Equal(t, "saved", out.String())
}

func TestRender_SaveError(t *testing.T) {
	l, err := calendar.NewLayout(day(2000, 1, 1), day(2000, 6, 1))
	require.NoError(t, err)

	s := new(MockSurface)
	s.On("NewPage").Once()
	s.On("Save", mock.Anything).Return(errors.New("disk full"))

	_, err = calendar.RenderBytes(l, s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrSurfaceSave)
	assert.Contains(t, err.Error(), "disk full")
	s.AssertExpectations(t)
}

// TestGenerateDocument produces a real PDF and checks it is reproducible.
func TestGenerateDocument(t *testing.T) {
	a, err := calendar.GenerateDocument(day(2000, 1, 1), day(2002, 1, 1))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(a, []byte("%PDF-")))

	b, err := calendar.GenerateDocument(day(2000, 1, 1), day(2002, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// TestRenderPDF matches GenerateDocument for the same range.
func TestRenderPDF(t *testing.T) {
	l, err := calendar.NewLayout(day(2000, 1, 1), day(2002, 1, 1))
	require.NoError(t, err)

	got, err := calendar.RenderPDF(l)
	require.NoError(t, err)
	want, err := calendar.GenerateDocument(day(2000, 1, 1), day(2002, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGenerateDocument_InvalidRange(t *testing.T) {
	_, err := calendar.GenerateDocument(day(2002, 1, 1), day(2000, 1, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrLayoutFailed)
}
