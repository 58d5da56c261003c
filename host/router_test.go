package host

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

var errDatabaseDown = errors.New("pq: connection refused on 10.0.0.3")

func TestMuxRouterMountsUnderPrefix(t *testing.T) {
	mux := http.NewServeMux()
	router := NewMuxRouter(mux, "/addons/example/1.0.0/")

	router.Handle(http.MethodGet, "/things/{id}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"id": r.PathValue("id")})
	}))

	req := httptest.NewRequest(http.MethodGet, "/addons/example/1.0.0/things/42", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["id"] != "42" {
		t.Errorf("path value = %q", body["id"])
	}

	// Wrong method does not match.
	req = httptest.NewRequest(http.MethodPost, "/addons/example/1.0.0/things/42", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d", rec.Code)
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, NotFound("thing %q is gone", "x"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["detail"] != `thing "x" is gone` {
		t.Errorf("detail = %v", body["detail"])
	}
	if body["status"] != float64(http.StatusNotFound) {
		t.Errorf("status field = %v", body["status"])
	}
}

func TestWriteErrorMasksInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errDatabaseDown)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["detail"] != "internal server error" {
		t.Errorf("internal detail leaked: %v", body["detail"])
	}
}
