package controller

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
)

// maxJSONBodyBytes caps JSON request bodies
const maxJSONBodyBytes = 1 << 20

// decodeJSON reads a JSON request body of at most maxJSONBodyBytes into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// writeJSON encodes v as the response body with the given status
func writeJSON(w http.ResponseWriter, op string, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ %s: Error encoding response: %v", op, err)
	}
}

// parseID extracts the numeric id from paths like /api/orders/{id}/payment-done
func parseID(path, prefix, suffix string) (int64, bool) {
	idStr := strings.TrimPrefix(path, prefix)
	if idStr == path {
		return 0, false
	}
	if suffix != "" {
		trimmed := strings.TrimSuffix(idStr, suffix)
		if trimmed == idStr {
			return 0, false
		}
		idStr = trimmed
	}
	idStr = strings.TrimSuffix(idStr, "/")
	if idStr == "" || strings.Contains(idStr, "/") {
		return 0, false
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
