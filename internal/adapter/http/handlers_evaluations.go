package adapthttp

import (
	"errors"
	"net/http"
	"strings"

	"bodycomp/internal/app"
	"bodycomp/internal/engine"
)

func (s *Server) handleEvaluations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleEvaluationsList(w, r)
	case http.MethodPost:
		s.handleEvaluationsCreate(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleEvaluationsList(w http.ResponseWriter, r *http.Request) {
	account := accountFromContext(r.Context())
	limit := intQuery(r, "limit", 50)

	evals, err := s.evalSvc.List(r.Context(), account.ID, limit)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"evaluations": evals})
}

func (s *Server) handleEvaluationsCreate(w http.ResponseWriter, r *http.Request) {
	account := accountFromContext(r.Context())

	var req struct {
		Date         string                `json:"date"`
		GoalTag      string                `json:"goal_tag"`
		Measurements engine.MeasurementSet `json:"measurements"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	eval, err := s.evalSvc.Create(r.Context(), account.ID, req.Date, req.GoalTag, req.Measurements)
	switch {
	case errors.Is(err, app.ErrProfileNotFound):
		writeError(w, http.StatusConflict, errors.New("set up your profile before submitting an evaluation"))
		return
	case errors.Is(err, app.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, err)
		return
	case errors.Is(err, engine.ErrMissingRequiredInput), errors.Is(err, engine.ErrInvalidProfile):
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	case err != nil:
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, eval)
}

// handleEvaluationByID serves /evaluations/{id}.
func (s *Server) handleEvaluationByID(w http.ResponseWriter, r *http.Request) {
	account := accountFromContext(r.Context())

	id := strings.TrimPrefix(r.URL.Path, "/evaluations/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		eval, err := s.evalSvc.Get(r.Context(), account.ID, id)
		if errors.Is(err, app.ErrEvaluationNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, eval)
	case http.MethodDelete:
		err := s.evalSvc.Delete(r.Context(), account.ID, id)
		if errors.Is(err, app.ErrEvaluationNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
