// Package server exposes the contact pathway and its admin routes over HTTP.
package server

import (
	"context"
	"net/http"

	goahttp "goa.design/goa/v3/http"
	"go.uber.org/zap"
)

// Response is the envelope of every contact and admin reply
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// writeJSON encodes v with goa's response encoder. The response content
// type is pinned to JSON so the Accept header cannot switch the encoding;
// the encoder sets the Content-Type header itself.
func writeJSON(w http.ResponseWriter, r *http.Request, log *zap.Logger, status int, v any) {
	ctx := context.WithValue(r.Context(), goahttp.ContentTypeKey, "application/json")
	enc := goahttp.ResponseEncoder(ctx, w)
	w.WriteHeader(status)
	if err := enc.Encode(v); err != nil {
		log.Warn("failed to encode response", zap.Int("status", status), zap.Error(err))
	}
}

func writeMessage(w http.ResponseWriter, r *http.Request, log *zap.Logger, status int, success bool, message string) {
	writeJSON(w, r, log, status, Response{Success: success, Message: message})
}
