package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewRouter().ServeHTTP(rec, req)

	var out map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestHealthz(t *testing.T) {
	rec, out := do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", out["status"])
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		status    int
		wantState string
		wantPct   float64
		wantTotal float64
		wantDone  float64
	}{
		{
			name:      "in progress across juz",
			body:      `{"target":{"start":{"juz":1,"halaman":15},"end":{"juz":2,"halaman":5}},"selesai_end":{"juz":1,"halaman":20}}`,
			status:    http.StatusOK,
			wantState: "Berjalan",
			wantPct:   54.545,
			wantTotal: 11,
			wantDone:  6,
		},
		{
			name:      "not started",
			body:      `{"target":{"start":{"juz":3,"halaman":1},"end":{"juz":3,"halaman":20}}}`,
			status:    http.StatusOK,
			wantState: "Belum Selesai",
			wantTotal: 20,
		},
		{
			name:      "done",
			body:      `{"target":{"start":{"juz":30,"halaman":20},"end":{"juz":30,"halaman":20}},"selesai_end":{"juz":30,"halaman":20}}`,
			status:    http.StatusOK,
			wantState: "Selesai",
			wantPct:   100,
			wantTotal: 1,
			wantDone:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, out := do(t, http.MethodPost, "/preview", tt.body)
			require.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.wantState, out["status"])
			assert.InDelta(t, tt.wantPct, out["persentase"], 0.001)
			assert.Equal(t, tt.wantTotal, out["total_target_halaman"])
			assert.Equal(t, tt.wantDone, out["total_selesai_halaman"])
		})
	}
}

func TestPreviewValidation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		kind  string
		field string
	}{
		{"start out of bounds", `{"target":{"start":{"juz":0,"halaman":1},"end":{"juz":1,"halaman":1}}}`, "out_of_bounds", "start"},
		{"inverted", `{"target":{"start":{"juz":2,"halaman":1},"end":{"juz":1,"halaman":20}}}`, "inverted_range", "end"},
		{"below start", `{"target":{"start":{"juz":2,"halaman":5},"end":{"juz":2,"halaman":10}},"selesai_end":{"juz":2,"halaman":4}}`, "completed_below_start", "completed"},
		{"above end", `{"target":{"start":{"juz":2,"halaman":5},"end":{"juz":2,"halaman":10}},"selesai_end":{"juz":2,"halaman":11}}`, "completed_above_end", "completed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, out := do(t, http.MethodPost, "/preview", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, tt.kind, out["kind"])
			assert.Equal(t, tt.field, out["field"])
			assert.NotEmpty(t, out["error"])
		})
	}
}

func TestPreviewBadBody(t *testing.T) {
	rec, out := do(t, http.MethodPost, "/preview", `{"target":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", out["error"])
}

func TestTotals(t *testing.T) {
	body := `{"sessions":[
		{"target":{"start":{"juz":1,"halaman":1},"end":{"juz":1,"halaman":20}},"selesai_end":{"juz":1,"halaman":20}},
		{"target":{"start":{"juz":2,"halaman":1},"end":{"juz":2,"halaman":10}}},
		{"target":{"start":{"juz":3,"halaman":1},"end":{"juz":3,"halaman":6}},"selesai_end":{"juz":3,"halaman":4}}
	]}`
	rec, out := do(t, http.MethodPost, "/totals", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(36), out["total_target_halaman"])
	assert.Equal(t, float64(24), out["total_selesai_halaman"])
	assert.InDelta(t, 66.667, out["persentase"], 0.001)

	rec, out = do(t, http.MethodPost, "/totals", `{"sessions":[{"target":{"start":{"juz":1,"halaman":21},"end":{"juz":2,"halaman":1}}}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "out_of_bounds", out["kind"])
}

func sessionsBody(n int, padding string) string {
	session := `{"target":{"start":{"juz":1,"halaman":1},"end":{"juz":1,"halaman":10}}` + padding + `}`
	return `{"sessions":[` + strings.TrimSuffix(strings.Repeat(session+",", n), ",") + `]}`
}

func TestTotalsLimits(t *testing.T) {
	rec, out := do(t, http.MethodPost, "/totals", sessionsBody(maxEntries, ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(maxEntries*10), out["total_target_halaman"])

	rec, out = do(t, http.MethodPost, "/totals", sessionsBody(maxEntries+1, ""))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "too many sessions", out["error"])

	rec, out = do(t, http.MethodPost, "/totals", sessionsBody(2, strings.Repeat(" ", maxBodyBytes)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "request body too large", out["error"])
}

func TestPreviewBodyTooLarge(t *testing.T) {
	body := `{"target":{"start":{"juz":1,"halaman":1},"end":{"juz":1,"halaman":10}}` + strings.Repeat(" ", maxBodyBytes) + `}`
	rec, out := do(t, http.MethodPost, "/preview", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "request body too large", out["error"])
}
