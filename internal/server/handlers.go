package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/tartampluch/go-lifecalendar/internal/calendar"
	"github.com/tartampluch/go-lifecalendar/internal/config"
	"github.com/tartampluch/go-lifecalendar/internal/engine"
	"github.com/tartampluch/go-lifecalendar/internal/store"
)

var (
	errBadRequest   = errors.New(config.ErrDecodeBody)
	errPageNotFound = errors.New(config.ErrPageOutOfRange)
)

// createRequest is the body of POST /api/calculations.
type createRequest struct {
	engine.Profile
	DateOfBirth string   `json:"date_of_birth"`
	Gender      string   `json:"gender"`
	BaseAge     *float64 `json:"base_age,omitempty"`
}

// calculationResponse is a stored calculation seen from today.
type calculationResponse struct {
	*store.Calculation
	Pages    int               `json:"pages"`
	Progress engine.Progress   `json:"progress"`
	Links    map[string]string `json:"links"`
}

func (s *Server) newResponse(c *store.Calculation) calculationResponse {
	death := c.DeathDate()
	return calculationResponse{
		Calculation: c,
		Pages:       calendar.PageCount(engine.DaysBetween(c.DateOfBirth, death)),
		Progress:    engine.NewProgress(c.DateOfBirth, death, s.clock.Now()),
		Links: map[string]string{
			"self": fmt.Sprintf(config.FormatCalcPath, c.ID),
			"pdf":  fmt.Sprintf(config.FormatPDFPath, c.ID),
			"ics":  fmt.Sprintf(config.FormatICSPath, c.ID),
			"png":  fmt.Sprintf(config.FormatPNGPath, c.ID, 1),
		},
	}
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxRequestBodySize)

	// An omitted checkbox means no health issues, as on the other entry points.
	req := createRequest{Profile: engine.Profile{HealthIssues: engine.HealthNormal}}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	c, err := s.evaluate(req)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if err := s.repo.Create(r.Context(), c); err != nil {
		writeFailure(w, err)
		return
	}

	w.Header().Set(config.HeaderLocation, fmt.Sprintf(config.FormatCalcPath, c.ID))
	writeJSON(w, http.StatusCreated, s.newResponse(c))
}

// evaluate validates req and runs the estimator.
func (s *Server) evaluate(req createRequest) (*store.Calculation, error) {
	dob, err := engine.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, &engine.ValidationError{Field: "date_of_birth", Reason: err.Error()}
	}
	baseAge := s.settings.BaseAge
	if req.BaseAge != nil {
		baseAge = *req.BaseAge
	}
	return store.NewCalculation(req.Profile, dob, req.Gender, baseAge, s.clock.Now())
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	c, err := s.repo.Get(r.Context(), mux.Vars(r)[config.PathVarID])
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.newResponse(c))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": config.HTTPMsgOK})
}
