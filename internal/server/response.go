package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-mms/fault"
)

type errorBody struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

// StatusOf maps an error to its HTTP status.
func StatusOf(err error) int {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}

	switch fault.KindOf(err) {
	case fault.KindInvalidParameter:
		return http.StatusBadRequest
	case fault.KindFilterDesign:
		return http.StatusUnprocessableEntity
	case fault.KindStateConflict:
		return http.StatusConflict
	case fault.KindExternalProcess:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "writeJSON",
			"error":    err.Error(),
		}).Warn("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)

	kind := "internal"
	if k := fault.KindOf(err); k != fault.KindUnknown {
		kind = k.String()
	}

	entry := logrus.WithFields(logrus.Fields{
		"function":   "writeError",
		"request_id": middleware.GetReqID(r.Context()),
		"status":     status,
		"kind":       kind,
		"error":      err.Error(),
	})
	if status >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Warn("Request rejected")
	}

	writeJSON(w, status, errorBody{Kind: kind, Error: fault.Truncate(err.Error(), fault.MaxMessage)})
}

// requestLogger logs one line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		logrus.WithFields(logrus.Fields{
			"function":   "requestLogger",
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"session":    sessionID(r),
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"elapsed":    time.Since(start),
		}).Debug("HTTP request")
	})
}
