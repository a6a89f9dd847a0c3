package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SaveResponse acknowledges a successful save.
type SaveResponse struct {
	Success bool `json:"success"`
}

// HealthResponse maps dependency names to their status.
type HealthResponse map[string]struct {
	Status string `json:"status"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Tournament API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the tournament site.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of the document store.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/data
	getData, _ := r.NewOperationContext(http.MethodGet, "/api/data")
	getData.SetSummary("Get tournament data")
	getData.SetDescription("Returns the current tournament document, or an empty object if none has been saved. Responses are never HTTP-cacheable.")
	getData.AddRespStructure(map[string]any{}, openapi.WithHTTPStatus(http.StatusOK))
	getData.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	_ = r.AddOperation(getData)

	// POST /api/data
	postData, _ := r.NewOperationContext(http.MethodPost, "/api/data")
	postData.SetSummary("Replace tournament data")
	postData.SetDescription("Replaces the tournament document. Requires the admin bearer token. Last writer wins.")
	postData.AddReqStructure(map[string]any{})
	postData.AddRespStructure(SaveResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postData.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	postData.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postData.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	_ = r.AddOperation(postData)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
