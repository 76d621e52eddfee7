package handlers

import "net/http"

func NotFound(w http.ResponseWriter, _ *http.Request) {
	jsonError(w, http.StatusNotFound, "not found")
}

func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	jsonError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func jsonError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
