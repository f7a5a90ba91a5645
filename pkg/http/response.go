package http

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse отправляет JSON-ошибку в формате {"error": "..."}.
func ErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// JSONResponse отправляет произвольное значение как JSON с указанным статусом.
func JSONResponse(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}
