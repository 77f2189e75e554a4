package api

import (
	"encoding/json"
	"net/http"

	"github.com/m3tools/m3cd/src/internal/config"
	"github.com/m3tools/m3cd/src/internal/domain"
	"github.com/m3tools/m3cd/src/internal/service"
)

// Handler manages all API endpoints and dependencies.
type Handler struct {
	cfg          *config.Config
	deps         *domain.AppDependencies
	workspace    *service.Workspace
	configHasher *config.ConfigHasher
}

// NewHandler creates an API handler serving workspace, the bundle loaded
// for the merge job cfg. configHasher may be nil.
func NewHandler(cfg *config.Config, deps *domain.AppDependencies, workspace *service.Workspace, configHasher *config.ConfigHasher) *Handler {
	return &Handler{
		cfg:          cfg,
		deps:         deps,
		workspace:    workspace,
		configHasher: configHasher,
	}
}

// writeJSON writes a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(DataResponse{Data: data})
}

// writeJSONData writes a successful JSON response with data.
func writeJSONData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

// decodeJSON decodes JSON from the request body, rejecting unknown fields.
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
