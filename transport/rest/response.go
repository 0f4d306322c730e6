package rest

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope of every JSON answer.
type Response struct {
	Status int `json:"status"`
	Body   any `json:"body,omitempty"`
}

type ErrorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	payload, err := json.Marshal(Response{Status: status, Body: body})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorBody{Error: message})
}
