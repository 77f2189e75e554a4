// Package api provides the REST API for inspecting and merging a loaded
// config bundle.
//
// The server loads the bundle of one merge job at start-up. Merges sent to
// the API change that in-memory bundle; nothing is written until a commit.
//
// # Endpoints
//
//	GET  /api/v1/health            workspace and merge job checks
//	GET  /api/v1/validate          decode every delta file of the job
//	GET  /api/v1/assets            config files with section and value counts
//	GET  /api/v1/assets/{asset}    one config file in full
//	POST /api/v1/structs/parse     {"input", "open", "close"}
//	POST /api/v1/merge             {"name", "delta", "dry_run"}
//	POST /api/v1/commit            write changed config files
//
// # Response Format
//
// All successful responses wrap data in a "data" field:
//
//	{
//	  "data": { /* response payload */ }
//	}
//
// Error responses use the following format:
//
//	{
//	  "error": {
//	    "code": "invalid_delta",
//	    "message": "Human-readable error message",
//	    "details": { /* optional context */ }
//	  }
//	}
package api
