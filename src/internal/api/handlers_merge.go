package api

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/m3tools/m3cd/src/internal/iniformat"
	"github.com/m3tools/m3cd/src/internal/log"
	"github.com/m3tools/m3cd/src/internal/report"
	"github.com/m3tools/m3cd/src/internal/structparse"
)

const defaultDeltaName = "request.m3cd"

// ParseStruct splits a struct string into its top-level entries.
// POST /api/v1/structs/parse
func (h *Handler) ParseStruct(w http.ResponseWriter, r *http.Request) {
	var req ParseStructRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteInvalidRequest(w, "Invalid request body: "+err.Error())
		return
	}

	openRune, closeRune := '(', ')'
	if req.Open != "" || req.Close != "" {
		var ok bool
		if openRune, ok = singleRune(req.Open); !ok {
			WriteInvalidRequest(w, "open must be a single character")
			return
		}
		if closeRune, ok = singleRune(req.Close); !ok {
			WriteInvalidRequest(w, "close must be a single character")
			return
		}
	}

	s, err := structparse.Parse(req.Input, openRune, closeRune)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	writeJSONData(w, ParseStructResponse{Entries: s.Entries()})
}

func singleRune(s string) (rune, bool) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, true
}

// Merge applies a delta document to the workspace. With dry_run the
// workspace is left untouched. Changes stay in memory until a commit.
// POST /api/v1/merge
func (h *Handler) Merge(w http.ResponseWriter, r *http.Request) {
	var req MergeRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteInvalidRequest(w, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Delta) == "" {
		WriteInvalidRequest(w, "delta is required")
		return
	}
	if req.Name == "" {
		req.Name = defaultDeltaName
	}

	delta, err := iniformat.DecodeDelta(req.Name, strings.NewReader(req.Delta))
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	rep, diffs, err := h.workspace.Apply("api", delta, req.DryRun)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if diffs == nil {
		diffs = []report.FileDiff{}
	}

	log.Infof("API merge of %s: %d applied, %d unchanged, dry run %v",
		req.Name, rep.Result.Applied, rep.Result.Unchanged, req.DryRun)
	writeJSONData(w, MergeResponse{Report: rep, Diffs: diffs, DryRun: req.DryRun})
}

// Commit writes every config file changed by earlier merges.
// POST /api/v1/commit
func (h *Handler) Commit(w http.ResponseWriter, r *http.Request) {
	committed, err := h.workspace.Commit(false)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if committed == nil {
		committed = []string{}
	}
	writeJSONData(w, CommitResponse{Committed: committed})
}

// ValidateJob decodes every delta file of the merge job.
// GET /api/v1/validate
func (h *Handler) ValidateJob(w http.ResponseWriter, r *http.Request) {
	rep, err := h.deps.Validator().ValidateJob(h.cfg)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSONData(w, rep)
}
