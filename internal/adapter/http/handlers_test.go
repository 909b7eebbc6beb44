package adapthttp

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bodycomp/internal/adapter/memory"
	"bodycomp/internal/app"
)

func newTestServer(t *testing.T, adminUser string) (*Server, http.Handler) {
	t.Helper()
	db := memory.New()
	s := New(
		app.NewAuthService(db, db.NewSessionRepo()),
		app.NewProfileService(db),
		app.NewEvaluationService(db, db),
		app.NewStatsService(db),
		Options{AdminUser: adminUser},
	)
	s.disableAuth = true
	return s, s.Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr *bytes.Reader
	if body == "" {
		rdr = bytes.NewReader(nil)
	} else {
		rdr = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	_, h := newTestServer(t, "")
	w := doJSON(t, h, http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestConfigReportsSSO(t *testing.T) {
	_, h := newTestServer(t, "")
	w := doJSON(t, h, http.MethodGet, "/api/config", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		SSOEnabled bool `json:"sso_enabled"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.SSOEnabled {
		t.Error("sso_enabled should be false without OIDC config")
	}
}

func TestProfileRoundTrip(t *testing.T) {
	_, h := newTestServer(t, "")

	w := doJSON(t, h, http.MethodGet, "/api/profile", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET before PUT: status = %d, want 404", w.Code)
	}

	w = doJSON(t, h, http.MethodPut, "/api/profile",
		`{"height_cm":180,"sex":"male","birth_date":"1990-01-01"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("PUT: status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, h, http.MethodGet, "/api/profile", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET: status = %d", w.Code)
	}
	var resp profileResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.HeightCM != 180 || resp.Sex != "male" || resp.BirthDate != "1990-01-01" {
		t.Errorf("profile = %+v", resp)
	}
}

func TestProfileRejectsBadInput(t *testing.T) {
	_, h := newTestServer(t, "")

	w := doJSON(t, h, http.MethodPut, "/api/profile",
		`{"height_cm":180,"sex":"male","birth_date":"not-a-date"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad date: status = %d, want 400", w.Code)
	}

	w = doJSON(t, h, http.MethodPut, "/api/profile",
		`{"height_cm":30,"sex":"male","birth_date":"1990-01-01"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad height: status = %d, want 422", w.Code)
	}
}

func TestEvaluationLifecycle(t *testing.T) {
	_, h := newTestServer(t, "")

	// Submitting before the profile exists conflicts.
	w := doJSON(t, h, http.MethodPost, "/api/evaluations",
		`{"date":"2024-01-01","measurements":{"weight_kg":80,"waist_cm":85,"hip_cm":95}}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("no profile: status = %d, want 409", w.Code)
	}

	w = doJSON(t, h, http.MethodPut, "/api/profile",
		`{"height_cm":180,"sex":"male","birth_date":"1990-01-01"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("PUT profile: status = %d", w.Code)
	}

	w = doJSON(t, h, http.MethodPost, "/api/evaluations",
		`{"date":"2024-01-01","goal_tag":"cutting","measurements":{"weight_kg":80,"waist_cm":85,"hip_cm":95,"neck_cm":38,"shoulders_cm":120,"chest_cm":100}}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST: status = %d, body %s", w.Code, w.Body.String())
	}
	var created struct {
		ID     string `json:"id"`
		Result struct {
			Basic struct {
				BodyFatPct float64 `json:"body_fat_pct"`
			} `json:"basic"`
			BodyMap *struct {
				Regions map[string]json.RawMessage `json:"regions"`
			} `json:"body_map"`
		} `json:"result"`
	}
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Fatal("missing evaluation ID")
	}
	if created.Result.Basic.BodyFatPct != 22.6 {
		t.Errorf("BodyFatPct = %v, want 22.6", created.Result.Basic.BodyFatPct)
	}
	if created.Result.BodyMap == nil || len(created.Result.BodyMap.Regions) != 2 {
		t.Errorf("body map regions = %v, want 2", created.Result.BodyMap)
	}

	w = doJSON(t, h, http.MethodGet, "/api/evaluations", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET list: status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), created.ID) {
		t.Error("list does not contain the created evaluation")
	}

	w = doJSON(t, h, http.MethodGet, "/api/evaluations/"+created.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET by ID: status = %d", w.Code)
	}

	w = doJSON(t, h, http.MethodDelete, "/api/evaluations/"+created.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("DELETE: status = %d", w.Code)
	}

	w = doJSON(t, h, http.MethodGet, "/api/evaluations/"+created.ID, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET after delete: status = %d, want 404", w.Code)
	}
}

func TestEvaluationValidationErrors(t *testing.T) {
	_, h := newTestServer(t, "")

	w := doJSON(t, h, http.MethodPut, "/api/profile",
		`{"height_cm":180,"sex":"male","birth_date":"1990-01-01"}`)
	if w.Code != http.StatusOK {
		t.Fatal("PUT profile failed")
	}

	// Missing hip circumference.
	w = doJSON(t, h, http.MethodPost, "/api/evaluations",
		`{"date":"2024-01-01","measurements":{"weight_kg":80,"waist_cm":85}}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("missing hip: status = %d, want 422", w.Code)
	}

	// Zero weight counts as absent.
	w = doJSON(t, h, http.MethodPost, "/api/evaluations",
		`{"date":"2024-01-01","measurements":{"weight_kg":0,"waist_cm":85,"hip_cm":95}}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("zero weight: status = %d, want 422", w.Code)
	}

	// Malformed date.
	w = doJSON(t, h, http.MethodPost, "/api/evaluations",
		`{"date":"01/01/2024","measurements":{"weight_kg":80,"waist_cm":85,"hip_cm":95}}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad date: status = %d, want 400", w.Code)
	}

	// Unknown fields are rejected.
	w = doJSON(t, h, http.MethodPost, "/api/evaluations",
		`{"date":"2024-01-01","bogus":1,"measurements":{"weight_kg":80,"waist_cm":85,"hip_cm":95}}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown field: status = %d, want 400", w.Code)
	}
}

func TestAdminGate(t *testing.T) {
	// The test account is not the configured admin.
	_, h := newTestServer(t, "someone-else")
	w := doJSON(t, h, http.MethodGet, "/api/admin/stats", "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}

	// No admin configured: nobody gets in.
	_, h = newTestServer(t, "")
	w = doJSON(t, h, http.MethodGet, "/api/admin/stats", "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}

	// Matching admin username passes.
	_, h = newTestServer(t, "test")
	w = doJSON(t, h, http.MethodGet, "/api/admin/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
}

func TestAuthFlow(t *testing.T) {
	db := memory.New()
	s := New(
		app.NewAuthService(db, db.NewSessionRepo()),
		app.NewProfileService(db),
		app.NewEvaluationService(db, db),
		app.NewStatsService(db),
		Options{},
	)
	h := s.Handler()

	// Unauthenticated requests bounce.
	w := doJSON(t, h, http.MethodGet, "/api/profile", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated: status = %d, want 401", w.Code)
	}

	w = doJSON(t, h, http.MethodPost, "/api/auth/register",
		`{"username":"ana","password":"strongpass1"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: status = %d, body %s", w.Code, w.Body.String())
	}

	loginReq := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"ana","password":"strongpass1"}`))
	loginReq.Header.Set("User-Agent", "test-agent")
	loginW := httptest.NewRecorder()
	h.ServeHTTP(loginW, loginReq)
	if loginW.Code != http.StatusOK {
		t.Fatalf("login: status = %d", loginW.Code)
	}

	var session *http.Cookie
	for _, c := range loginW.Result().Cookies() {
		if c.Name == "session" {
			session = c
		}
	}
	if session == nil || session.Value == "" {
		t.Fatal("no session cookie set")
	}

	// Cookie plus the same user agent grants access.
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("User-Agent", "test-agent")
	req.AddCookie(session)
	w2 := httptest.NewRecorder()
	h.ServeHTTP(w2, req)
	if w2.Code != http.StatusNotFound { // authorized, profile just not set yet
		t.Fatalf("authorized: status = %d, want 404", w2.Code)
	}

	// A different user agent invalidates the session.
	req = httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("User-Agent", "other-agent")
	req.AddCookie(session)
	w3 := httptest.NewRecorder()
	h.ServeHTTP(w3, req)
	if w3.Code != http.StatusUnauthorized {
		t.Fatalf("hijacked agent: status = %d, want 401", w3.Code)
	}
}

func TestWrongCredentials(t *testing.T) {
	db := memory.New()
	s := New(
		app.NewAuthService(db, db.NewSessionRepo()),
		app.NewProfileService(db),
		app.NewEvaluationService(db, db),
		app.NewStatsService(db),
		Options{},
	)
	h := s.Handler()

	w := doJSON(t, h, http.MethodPost, "/api/auth/register",
		`{"username":"ana","password":"strongpass1"}`)
	if w.Code != http.StatusCreated {
		t.Fatal("register failed")
	}

	w = doJSON(t, h, http.MethodPost, "/api/auth/login",
		`{"username":"ana","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	w = doJSON(t, h, http.MethodPost, "/api/auth/register",
		`{"username":"ana","password":"anotherpass1"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate register: status = %d, want 409", w.Code)
	}
}

func TestSSODisabledReturns404(t *testing.T) {
	_, h := newTestServer(t, "")
	w := doJSON(t, h, http.MethodGet, "/api/auth/sso/login", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
