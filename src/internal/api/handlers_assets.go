package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/m3tools/m3cd/src/internal/coalesced"
	"github.com/m3tools/m3cd/src/internal/report"
)

// GetAssets lists the config files of the workspace.
// GET /api/v1/assets
func (h *Handler) GetAssets(w http.ResponseWriter, r *http.Request) {
	bundle := h.workspace.Snapshot()
	writeJSONData(w, AssetsResponse{Game: bundle.Game, Assets: report.Summarize(bundle)})
}

// GetAsset returns one config file with every section and value.
// GET /api/v1/assets/{asset}
func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "asset")
	bundle := h.workspace.Snapshot()

	asset, ok := bundle.Asset(name)
	if !ok {
		var names []string
		for _, a := range bundle.Assets() {
			names = append(names, a.Name)
		}
		err := NewAPIError(ErrCodeNotFound, "config file "+name+" not found")
		if suggestions := coalesced.SuggestNames(name, names, 3); len(suggestions) > 0 {
			err = err.WithDetails(map[string]interface{}{"suggestions": suggestions})
		}
		WriteError(w, http.StatusNotFound, err)
		return
	}

	writeJSONData(w, report.ViewAsset(asset))
}
