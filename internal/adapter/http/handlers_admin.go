package adapthttp

import "net/http"

// isAdmin reports whether the username matches the configured admin
// account. No admin configured means no admin access.
func (s *Server) isAdmin(username string) bool {
	return s.adminUser != "" && username == s.adminUser
}

func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	account := accountFromContext(r.Context())
	if account == nil || !s.isAdmin(account.Username) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return false
	}
	return true
}

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.requireAdmin(w, r) {
		return
	}

	stats, err := s.statsSvc.Overview(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleAdminDatabase(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.requireAdmin(w, r) {
		return
	}

	tables, err := s.statsSvc.Database(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tables": tables})
}
