package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAPISpec(t *testing.T) {
	h := handleOpenAPI()

	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var spec struct {
		OpenAPI string                    `json:"openapi"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	if err := json.NewDecoder(w.Body).Decode(&spec); err != nil {
		t.Fatalf("decode spec: %v", err)
	}

	if spec.OpenAPI == "" {
		t.Error("expected an openapi version")
	}

	for _, path := range []string{"/healthz", "/api/data"} {
		if _, ok := spec.Paths[path]; !ok {
			t.Errorf("expected path %s in spec", path)
		}
	}

	if _, ok := spec.Paths["/api/data"]["get"]; !ok {
		t.Error("expected GET /api/data in spec")
	}
	if _, ok := spec.Paths["/api/data"]["post"]; !ok {
		t.Error("expected POST /api/data in spec")
	}
}
