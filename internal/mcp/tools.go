package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/tartampluch/go-lifecalendar/internal/calendar"
	"github.com/tartampluch/go-lifecalendar/internal/config"
	"github.com/tartampluch/go-lifecalendar/internal/engine"
	"github.com/tartampluch/go-lifecalendar/internal/store"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "calculate_lifespan",
		Description: "Estimate life expectancy from lifestyle answers and store the result",
	}, s.handleCalculate)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_calculation",
		Description: "Get a stored calculation with its progress as of today",
	}, s.handleGetCalculation)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_calculations",
		Description: "List recent calculations, newest first",
	}, s.handleListCalculations)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "calendar_summary",
		Description: "Describe the life calendar of a calculation: pages, days and download paths",
	}, s.handleCalendarSummary)
}

// Tool input/output types

type calculateInput struct {
	DateOfBirth            string  `json:"date_of_birth" jsonschema:"date of birth (YYYY-MM-DD)"`
	Gender                 string  `json:"gender,omitempty" jsonschema:"male, female or other (default male)"`
	ExerciseMinutesPerWeek int     `json:"exercise_minutes_per_week" jsonschema:"minutes of exercise per week"`
	SmokingStatus          string  `json:"smoking_status" jsonschema:"none, occasional or daily"`
	WeightKg               float64 `json:"weight_kg" jsonschema:"weight in kilograms"`
	HeightCm               float64 `json:"height_cm" jsonschema:"height in centimeters"`
	DietQuality            string  `json:"diet_quality" jsonschema:"healthy, moderate or unhealthy"`
	AlcoholConsumption     string  `json:"alcohol_consumption" jsonschema:"none, light or heavy"`
	HasHealthIssues        bool    `json:"has_health_issues,omitempty" jsonschema:"abnormal blood pressure, sugar or cholesterol"`
	BaseAge                float64 `json:"base_age,omitempty" jsonschema:"baseline life expectancy, defaults to the server setting"`
}

type idInput struct {
	ID string `json:"id" jsonschema:"calculation id or id prefix"`
}

type listInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"max results (default 20)"`
}

type calculationOutput struct {
	ID                 string  `json:"id"`
	DateOfBirth        string  `json:"date_of_birth"`
	Gender             string  `json:"gender"`
	EstimatedYears     float64 `json:"estimated_years"`
	EstimatedDeathDate string  `json:"estimated_death_date"`
	LifePercentage     float64 `json:"life_percentage"`
	RemainingYears     int     `json:"remaining_years"`
	RemainingMonths    int     `json:"remaining_months"`
	RemainingDays      int     `json:"remaining_days"`
	Message            string  `json:"message"`
}

type listOutput struct {
	Calculations []calculationOutput `json:"calculations"`
}

type summaryOutput struct {
	ID        string `json:"id"`
	Pages     int    `json:"pages"`
	TotalDays int    `json:"total_days"`
	FirstDay  string `json:"first_day"`
	FinalDay  string `json:"final_day"`
	PDFPath   string `json:"pdf_path"`
	ICSPath   string `json:"ics_path"`
	Filename  string `json:"filename"`
}

// Tool handlers

func (s *Server) handleCalculate(ctx context.Context, req *mcp.CallToolRequest, input calculateInput) (*mcp.CallToolResult, calculationOutput, error) {
	dob, err := engine.ParseDate(input.DateOfBirth)
	if err != nil {
		return nil, calculationOutput{}, err
	}

	p := engine.Profile{
		ExerciseMinutesPerWeek: input.ExerciseMinutesPerWeek,
		Smoking:                engine.ParseSmokingStatus(input.SmokingStatus),
		WeightKg:               input.WeightKg,
		HeightCm:               input.HeightCm,
		Diet:                   engine.ParseDietQuality(input.DietQuality),
		Alcohol:                engine.ParseAlcoholConsumption(input.AlcoholConsumption),
		HealthIssues:           engine.HealthFromBool(input.HasHealthIssues),
	}
	baseAge := s.baseAge
	if input.BaseAge > 0 {
		baseAge = input.BaseAge
	}

	c, err := store.NewCalculation(p, dob, input.Gender, baseAge, s.clock.Now())
	if err != nil {
		return nil, calculationOutput{}, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, calculationOutput{}, fmt.Errorf("failed to store calculation: %w", err)
	}

	out := s.describe(c)
	out.Message = fmt.Sprintf("Estimated lifespan %.2f years, final day %s (ID: %s)",
		c.EstimatedYears, out.EstimatedDeathDate, c.ShortID())
	return nil, out, nil
}

func (s *Server) handleGetCalculation(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, calculationOutput, error) {
	c, err := s.repo.Get(ctx, input.ID)
	if err != nil {
		return nil, calculationOutput{}, err
	}
	out := s.describe(c)
	out.Message = fmt.Sprintf("%.2f%% of the estimated life has passed", out.LifePercentage)
	return nil, out, nil
}

func (s *Server) handleListCalculations(ctx context.Context, req *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, listOutput, error) {
	if input.Limit <= 0 {
		input.Limit = config.DefaultListLimit
	}
	all, err := s.repo.List(ctx, input.Limit)
	if err != nil {
		return nil, listOutput{}, fmt.Errorf("failed to list calculations: %w", err)
	}

	out := listOutput{Calculations: make([]calculationOutput, 0, len(all))}
	for _, c := range all {
		out.Calculations = append(out.Calculations, s.describe(c))
	}
	return nil, out, nil
}

func (s *Server) handleCalendarSummary(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, summaryOutput, error) {
	c, err := s.repo.Get(ctx, input.ID)
	if err != nil {
		return nil, summaryOutput{}, err
	}
	l, err := calendar.NewLayout(c.DateOfBirth, c.DeathDate())
	if err != nil {
		return nil, summaryOutput{}, err
	}

	return nil, summaryOutput{
		ID:        c.ID,
		Pages:     len(l.Pages),
		TotalDays: l.TotalDays,
		FirstDay:  l.Birth.Format(config.DateFormatFullDash),
		FinalDay:  l.Death.Format(config.DateFormatFullDash),
		PDFPath:   fmt.Sprintf(config.FormatPDFPath, c.ID),
		ICSPath:   fmt.Sprintf(config.FormatICSPath, c.ID),
		Filename:  config.DocumentPrefix + c.ShortID() + config.ExtPDF,
	}, nil
}

func (s *Server) describe(c *store.Calculation) calculationOutput {
	death := c.DeathDate()
	p := engine.NewProgress(c.DateOfBirth, death, s.clock.Now())
	return calculationOutput{
		ID:                 c.ID,
		DateOfBirth:        c.DateOfBirth.Format(config.DateFormatFullDash),
		Gender:             c.Gender,
		EstimatedYears:     c.EstimatedYears,
		EstimatedDeathDate: death.Format(config.DateFormatFullDash),
		LifePercentage:     p.LifePercentage,
		RemainingYears:     p.Remaining.Years,
		RemainingMonths:    p.Remaining.Months,
		RemainingDays:      p.Remaining.Days,
	}
}
