package mcp

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifecalendar/internal/config"
	"github.com/tartampluch/go-lifecalendar/internal/engine"
	"github.com/tartampluch/go-lifecalendar/internal/store"
)

var testNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func setupServer(t *testing.T) *Server {
	t.Helper()
	repo, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return NewServer(repo, config.DefaultBaseAge, WithClock(engine.FixedClock(testNow)))
}

func referenceInput() calculateInput {
	return calculateInput{
		DateOfBirth:            "1990-05-20",
		ExerciseMinutesPerWeek: 200,
		SmokingStatus:          "none",
		WeightKg:               70,
		HeightCm:               175,
		DietQuality:            "healthy",
		AlcoholConsumption:     "none",
	}
}

func TestNewServer(t *testing.T) {
	s := setupServer(t)
	assert.NotNil(t, s.mcpServer)
	assert.NotNil(t, s.repo)
}

func TestHandleCalculate(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()

	_, out, err := s.handleCalculate(ctx, &mcp.CallToolRequest{}, referenceInput())
	require.NoError(t, err)

	assert.Len(t, out.ID, 32)
	assert.InDelta(t, 77.05, out.EstimatedYears, 1e-9)
	assert.Equal(t, "2067-06-07", out.EstimatedDeathDate)
	assert.Equal(t, config.DefaultGender, out.Gender)
	assert.Contains(t, out.Message, out.ID[:8])

	stored, err := s.repo.Get(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, engine.SmokingNone, stored.Profile.Smoking)
}

func TestHandleCalculate_Rejections(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*calculateInput)
		want   string
	}{
		{"bad date", func(in *calculateInput) { in.DateOfBirth = "05/20/1990" }, config.ErrDateParse},
		{"future birth", func(in *calculateInput) { in.DateOfBirth = "2030-01-01" }, config.ErrBirthNotPast},
		{"short height", func(in *calculateInput) { in.HeightCm = 10 }, config.ErrHeightTooLow},
		{"huge base age", func(in *calculateInput) { in.BaseAge = 500 }, config.ErrLifespanTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := referenceInput()
			tt.mutate(&in)
			_, _, err := s.handleCalculate(ctx, &mcp.CallToolRequest{}, in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	list, err := s.repo.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, list, "rejected requests must not be stored")
}

func TestHandleCalculate_PersianSynonyms(t *testing.T) {
	s := setupServer(t)

	in := referenceInput()
	in.SmokingStatus = "روزانه"
	in.DietQuality = "ناسالم"
	_, out, err := s.handleCalculate(context.Background(), &mcp.CallToolRequest{}, in)
	require.NoError(t, err)
	assert.Less(t, out.EstimatedYears, 77.05)
}

func TestHandleGetCalculation(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()

	_, created, err := s.handleCalculate(ctx, &mcp.CallToolRequest{}, referenceInput())
	require.NoError(t, err)

	_, got, err := s.handleGetCalculation(ctx, &mcp.CallToolRequest{}, idInput{ID: created.ID[:8]})
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Greater(t, got.LifePercentage, 0.0)
	assert.Contains(t, got.Message, "%")

	_, _, err = s.handleGetCalculation(ctx, &mcp.CallToolRequest{}, idInput{ID: "ffffffff"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestHandleListCalculations(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()

	_, out, err := s.handleListCalculations(ctx, &mcp.CallToolRequest{}, listInput{})
	require.NoError(t, err)
	assert.Empty(t, out.Calculations)

	for i := 0; i < 3; i++ {
		_, _, err := s.handleCalculate(ctx, &mcp.CallToolRequest{}, referenceInput())
		require.NoError(t, err)
	}

	_, out, err = s.handleListCalculations(ctx, &mcp.CallToolRequest{}, listInput{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, out.Calculations, 2)
}

func TestHandleCalendarSummary(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()

	_, created, err := s.handleCalculate(ctx, &mcp.CallToolRequest{}, referenceInput())
	require.NoError(t, err)

	_, sum, err := s.handleCalendarSummary(ctx, &mcp.CallToolRequest{}, idInput{ID: created.ID})
	require.NoError(t, err)

	assert.Equal(t, 28142, sum.TotalDays)
	assert.Equal(t, 78, sum.Pages)
	assert.Equal(t, "1990-05-20", sum.FirstDay)
	assert.Equal(t, "2067-06-07", sum.FinalDay)
	assert.Equal(t, "/calendar/"+created.ID+".pdf", sum.PDFPath)
	assert.Equal(t, "life_calendar_"+created.ID[:8]+".pdf", sum.Filename)
}
