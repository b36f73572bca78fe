package httpx

import (
	"encoding/json"
	"net/http"
)

// JSONMessage writes a {"message": ...} body with the given status. Every
// error surface of the API uses this one shape.
func JSONMessage(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
