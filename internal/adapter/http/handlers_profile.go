package adapthttp

import (
	"errors"
	"net/http"
	"time"

	"bodycomp/internal/app"
	"bodycomp/internal/engine"
)

type profileResponse struct {
	HeightCM  float64 `json:"height_cm"`
	Sex       string  `json:"sex"`
	BirthDate string  `json:"birth_date"`
	UpdatedAt string  `json:"updated_at"`
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleProfileGet(w, r)
	case http.MethodPut:
		s.handleProfilePut(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleProfileGet(w http.ResponseWriter, r *http.Request) {
	account := accountFromContext(r.Context())
	p, err := s.profileSvc.Get(r.Context(), account.ID)
	if errors.Is(err, app.ErrProfileNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{
		HeightCM:  p.HeightCM,
		Sex:       string(p.Sex),
		BirthDate: p.BirthDate.Format("2006-01-02"),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	})
}

func (s *Server) handleProfilePut(w http.ResponseWriter, r *http.Request) {
	account := accountFromContext(r.Context())

	var req struct {
		HeightCM  float64 `json:"height_cm"`
		Sex       string  `json:"sex"`
		BirthDate string  `json:"birth_date"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	birth, err := time.ParseInLocation("2006-01-02", req.BirthDate, time.UTC)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("birth_date must be YYYY-MM-DD"))
		return
	}

	p, err := s.profileSvc.Put(r.Context(), account.ID, req.HeightCM, engine.Sex(req.Sex), birth)
	if errors.Is(err, app.ErrInvalidProfileInput) {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{
		HeightCM:  p.HeightCM,
		Sex:       string(p.Sex),
		BirthDate: p.BirthDate.Format("2006-01-02"),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	})
}
