package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const maxMinScore = 100

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeBodyError maps a body read failure to 413 or 400.
func writeBodyError(w http.ResponseWriter, err error, prefix string) {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", mbe.Limit))
		return
	}
	writeError(w, http.StatusBadRequest, prefix+": "+err.Error())
}

// decodeBody fills v from a JSON body, keeping preset fields the body omits.
// It writes the error response itself and reports whether to continue.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty body")
		}
		writeBodyError(w, err, "bad json")
		return false
	}
	return true
}

func validLimits(w http.ResponseWriter, topK, minScore int) bool {
	if topK < 1 {
		writeError(w, http.StatusBadRequest, "top_k must be at least 1")
		return false
	}
	if minScore < 0 || minScore > maxMinScore {
		writeError(w, http.StatusBadRequest, "min_score must be within 0..100")
		return false
	}
	return true
}
