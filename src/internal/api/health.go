package api

import (
	"fmt"
	"net/http"

	"github.com/m3tools/m3cd/src/internal/log"
)

// CheckHealth reports whether the workspace and the merge job are usable.
// GET /api/v1/health
func (h *Handler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthCheckResponse{
		Healthy:        true,
		Game:           h.workspace.Game(),
		ConfigDir:      h.workspace.Dir(),
		PendingChanges: h.workspace.HasChanges(),
		Checks:         make(map[string]CheckResult),
	}

	if info, err := h.deps.Fs().Stat(h.workspace.Dir()); err != nil || !info.IsDir() {
		response.Healthy = false
		response.Checks["config_dir"] = CheckResult{
			Passed:  false,
			Message: fmt.Sprintf("Config directory %s is not accessible", h.workspace.Dir()),
		}
	} else {
		response.Checks["config_dir"] = CheckResult{Passed: true, Message: "Config directory is accessible"}
	}

	rep, err := h.deps.Validator().ValidateJob(h.cfg)
	switch {
	case err != nil:
		response.Healthy = false
		response.Checks["job_validation"] = CheckResult{Passed: false, Message: "Merge job validation failed: " + err.Error()}
	case !rep.OK(h.cfg.General.StrictStructs):
		response.Healthy = false
		response.Checks["job_validation"] = CheckResult{Passed: false, Message: "One or more delta files failed validation"}
	default:
		response.Checks["job_validation"] = CheckResult{
			Passed:  true,
			Message: fmt.Sprintf("Merge job is valid, %d delta file(s)", len(rep.Files)),
		}
	}

	if h.configHasher != nil {
		hash, err := h.configHasher.GetCurrentConfigHash()
		if err != nil {
			log.Warnf("Failed to hash merge job: %v", err)
		} else {
			response.JobHash = hash
		}
	}

	writeJSONData(w, response)
}
