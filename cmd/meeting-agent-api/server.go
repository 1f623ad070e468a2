// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/middleware"
	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/internal/service"
	"github.com/linuxfoundation/lfx-v2-meeting-agent-service/pkg/constants"
)

// newHTTPServer builds the HTTP server with the webhook endpoint, health
// endpoints, and the middleware chain.
func newHTTPServer(flags flags, webhookService *service.WebhookService, ready func() bool) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /webhooks/stream", handleWebhook(webhookService))
	mux.HandleFunc("GET /livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK\n"))
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, _ *http.Request) {
		if !ready() {
			http.Error(w, "service not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK\n"))
	})

	var handler http.Handler = mux

	// Add HTTP middleware
	// Note: Order matters - RequestIDMiddleware should come first in the chain,
	// so it should be the last middleware added to the handler since it is executed in reverse order.
	handler = middleware.WebhookBodyCaptureMiddleware()(handler)
	handler = middleware.RequestLoggerMiddleware()(handler)
	handler = middleware.RequestIDMiddleware()(handler)
	handler = otelhttp.NewHandler(handler, "meeting-agent-api")

	var addr string
	if flags.Bind == "*" {
		addr = ":" + flags.Port
	} else {
		addr = flags.Bind + ":" + flags.Port
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

// handleWebhook adapts the webhook service to the HTTP endpoint. The exact
// raw body bytes are what the signature covers, so the captured body from the
// middleware is preferred over re-reading the (already consumed) request body.
func handleWebhook(webhookService *service.WebhookService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rawBody, ok := middleware.GetRawBodyFromContext(ctx)
		if !ok {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				writeError(w, domain.NewValidationError("failed to read request body", err))
				return
			}
			rawBody = body
		}

		resp, err := webhookService.ProcessWebhookEvent(ctx, service.WebhookRequest{
			Signature: r.Header.Get(constants.SignatureHeader),
			APIKey:    r.Header.Get(constants.APIKeyHeader),
			RawBody:   rawBody,
		})
		if err != nil {
			slog.ErrorContext(ctx, "webhook event processing failed", logging.ErrKey, err)
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": resp.Status})
	}
}

// writeError maps a domain error to its HTTP status and error payload
func writeError(w http.ResponseWriter, err error) {
	var status int
	switch domain.GetErrorType(err) {
	case domain.ErrorTypeValidation:
		status = http.StatusBadRequest
	case domain.ErrorTypeUnauthorized:
		status = http.StatusUnauthorized
	case domain.ErrorTypeNotFound:
		status = http.StatusNotFound
	case domain.ErrorTypeConflict:
		status = http.StatusConflict
	case domain.ErrorTypeUnavailable:
		status = http.StatusServiceUnavailable
	default:
		status = http.StatusInternalServerError
	}

	message := err.Error()
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		// Only the domain message is user-visible; wrapped causes stay in logs.
		message = domainErr.Message
	}

	writeJSON(w, status, map[string]string{"error": message})
}

// writeJSON writes a JSON response body with the given status code
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
