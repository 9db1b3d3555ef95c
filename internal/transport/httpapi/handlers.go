package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"arbicalc/internal/domain"
	"arbicalc/internal/usecase"
	"arbicalc/internal/usecase/calculator"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDefaults(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Defaults.Input())
}

// handleP2PPrice всегда отвечает 200, деградация передаётся флагами.
func (s *Server) handleP2PPrice(w http.ResponseWriter, r *http.Request) {
	sg := s.deps.Rates.Suggest(r.Context())
	resp := P2PPriceResponse{
		Price:     sg.Price,
		Suggested: sg.Suggested,
		Source:    sg.Source,
		Success:   !sg.Degraded,
		Degraded:  sg.Degraded,
	}
	if sg.Err != nil {
		resp.Error = sg.Err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var in domain.TransactionInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}
	// ID взноса нужен только для отображения
	for i := range in.Payments {
		if in.Payments[i].ID == "" {
			in.Payments[i].ID = strconv.Itoa(i + 1)
		}
	}

	out, err := usecase.RunHeadless(in, s.deps.Quotes)
	switch {
	case err == nil:
		s.deps.Recorder.Calculation("ok")
		writeJSON(w, http.StatusOK, CalculateResponse(out))
	case errors.Is(err, domain.ErrInvalidInput):
		s.deps.Recorder.Calculation("invalid")
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   domain.ErrInvalidInput.Error(),
			Details: calculator.Problems(err),
		})
	case errors.Is(err, domain.ErrDivisionByZero):
		s.deps.Recorder.Calculation("invariant")
		s.log.Error().Err(err).Msg("calculate: invariant violated after validation")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	default:
		s.deps.Recorder.Calculation("error")
		s.log.Error().Err(err).Msg("calculate failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "calculation failed"})
	}
}
