package utils

import (
	"encoding/json"
	"net/http"
)

// RespondJSON writes v as the JSON body with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out; nothing useful left to do.
		return
	}
}

// RespondError writes the {success:false, error:...} envelope every endpoint
// uses for failures.
func RespondError(w http.ResponseWriter, status int, msg string) {
	RespondJSON(w, status, map[string]any{
		"success": false,
		"error":   msg,
	})
}
