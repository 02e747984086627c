package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	cfgpkg "github.com/rzbill/flake/internal/config"
	"github.com/rzbill/flake/internal/runtime"
	"github.com/rzbill/flake/internal/services/registration"
	"github.com/rzbill/flake/pkg/id"
	logpkg "github.com/rzbill/flake/pkg/log"
)

func newTestServer(t *testing.T) (*Server, *runtime.Runtime) {
	t.Helper()
	cfg := cfgpkg.Default()
	cfg.Generator.DatacenterID = 2
	cfg.Generator.MachineID = 9
	cfg.Server.MaxBatch = 50
	cfg.Store.Driver = "sqlite"
	logger, _ := logpkg.ApplyConfig(&logpkg.Config{Level: "error", Format: "text", Outputs: []logpkg.OutputConfig{{Type: "null"}}})
	rt, err := runtime.Open(runtime.Options{DataDir: t.TempDir(), Config: cfg, Logger: logger})
	if err != nil {
		t.Fatalf("rt open: %v", err)
	}
	t.Cleanup(func() { _ = rt.Close() })
	reg, err := registration.New(rt.Generator(), rt.Users(), registration.Options{Logger: logger})
	if err != nil {
		t.Fatalf("registration: %v", err)
	}
	return New(rt, reg), rt
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func TestHealthHandler(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(t, s, http.MethodGet, "/v1/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	if w.Header().Get(RequestIDHeader) == "" {
		t.Fatalf("missing request id header")
	}
}

func TestRequestIDPropagates(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("request id = %q", got)
	}
}

func TestMintAndDecodeIDs(t *testing.T) {
	s, rt := newTestServer(t)

	w := do(t, s, http.MethodPost, "/v1/ids?count=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d body=%s", w.Code, w.Body.String())
	}
	var got struct {
		IDs []string `json:"ids"`
	}
	decode(t, w, &got)
	if len(got.IDs) != 5 {
		t.Fatalf("ids = %v", got.IDs)
	}

	w = do(t, s, http.MethodGet, "/v1/ids/"+got.IDs[4], "")
	if w.Code != http.StatusOK {
		t.Fatalf("decode status: %d", w.Code)
	}
	var parts struct {
		ID           string `json:"id"`
		DatacenterID int64  `json:"datacenterId"`
		MachineID    int64  `json:"machineId"`
		Time         string `json:"time"`
	}
	decode(t, w, &parts)
	if parts.ID != got.IDs[4] || parts.DatacenterID != 2 || parts.MachineID != 9 || parts.Time == "" {
		t.Fatalf("parts = %+v", parts)
	}

	w = do(t, s, http.MethodGet, "/v1/ids/stats", "")
	var stats id.Stats
	decode(t, w, &stats)
	if stats.Issued != 5 || stats != rt.Generator().Stats() {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestMintRejectsBadCount(t *testing.T) {
	s, _ := newTestServer(t)
	for _, q := range []string{"0", "51", "-3", "lots"} {
		if w := do(t, s, http.MethodPost, "/v1/ids?count="+q, ""); w.Code != http.StatusBadRequest {
			t.Fatalf("count=%s: status %d", q, w.Code)
		}
	}
	if w := do(t, s, http.MethodGet, "/v1/ids/not-an-id", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("bad id: status %d", w.Code)
	}
}

func TestRegisterLookupAuthenticate(t *testing.T) {
	s, _ := newTestServer(t)
	body := `{"username":"ann","password":"pw","fullname":"Ann Example","age":30,"address":"1 Main St"}`

	w := do(t, s, http.MethodPost, "/v1/users/register", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status: %d body=%s", w.Code, w.Body.String())
	}
	var reg struct {
		UserID  string `json:"userId"`
		Message string `json:"message"`
	}
	decode(t, w, &reg)
	if reg.Message != registration.SuccessMessage || reg.UserID == "" {
		t.Fatalf("register = %+v", reg)
	}

	if w := do(t, s, http.MethodPost, "/v1/users/register", body); w.Code != http.StatusConflict {
		t.Fatalf("duplicate status: %d", w.Code)
	}

	w = do(t, s, http.MethodGet, "/v1/users/"+reg.UserID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status: %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Fatalf("profile leaks credentials: %s", w.Body.String())
	}
	var prof registration.Profile
	decode(t, w, &prof)
	if prof.Username != "ann" || prof.Age != 30 || prof.UserID.String() != reg.UserID {
		t.Fatalf("profile = %+v", prof)
	}

	w = do(t, s, http.MethodPost, "/v1/users/authenticate", `{"username":"ann","password":"pw"}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), reg.UserID) {
		t.Fatalf("authenticate: %d %s", w.Code, w.Body.String())
	}
	if w := do(t, s, http.MethodPost, "/v1/users/authenticate", `{"username":"ann","password":"no"}`); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password status: %d", w.Code)
	}
}

func TestRegisterErrors(t *testing.T) {
	s, _ := newTestServer(t)
	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{"username":`, http.StatusBadRequest},
		{"missing password", `{"username":"bob"}`, http.StatusBadRequest},
		{"negative age", `{"username":"bob","password":"x","age":-2}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(t, s, http.MethodPost, "/v1/users/register", tt.body); w.Code != tt.want {
				t.Fatalf("status %d, want %d", w.Code, tt.want)
			}
		})
	}
	if w := do(t, s, http.MethodGet, "/v1/users/12345", ""); w.Code != http.StatusNotFound {
		t.Fatalf("unknown user status: %d", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(t, s, http.MethodOptions, "/v1/ids", "")
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("preflight: %d %v", w.Code, w.Header())
	}
}
