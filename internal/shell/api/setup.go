// Package api provides the JSON endpoints of the courier site: health
// probes, the read-only service catalog (JSON:API via api2go), the OpenAPI
// document and the contact form relay.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/manyminds/api2go"

	"github.com/titancargo/courier-site/internal/core/contact"
	"github.com/titancargo/courier-site/internal/shell/api/openapi"
	"github.com/titancargo/courier-site/internal/shell/api/resources"
	"github.com/titancargo/courier-site/internal/shell/mail"
)

// =============================================================================
// API Setup
// =============================================================================

// Pages supplies the landing page and reports whether its source is
// reachable. content.Provider implements it.
type Pages interface {
	resources.PageLoader
	Ping(ctx context.Context) error
}

// APIConfig holds configuration for the API setup.
type APIConfig struct {
	Pages  Pages
	Sender mail.Sender
	Mail   mail.Config
	Logger *slog.Logger

	// ContactRecipients is the raw comma separated recipient list.
	ContactRecipients string

	// Site serves every path the API does not claim (the HTML pages).
	Site http.Handler
}

// SetupAPI creates the complete router. JSON endpoints are registered first;
// the site handler, when set, is the catch-all.
func SetupAPI(cfg APIConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	logger := cfg.Logger.With("component", "api")

	router := mux.NewRouter()
	router.Use(requestIDMiddleware)
	router.Use(recoveryMiddleware(logger))

	// Health endpoints
	router.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	router.HandleFunc("/ready", readyHandler(cfg.Pages)).Methods(http.MethodGet)

	// Contact relay
	contactHandler := NewContactHandler(cfg.Sender, cfg.Mail, cfg.ContactRecipients, cfg.Logger)
	router.HandleFunc("/api/contact", contactHandler.HandleSubmit).Methods(http.MethodPost)
	router.HandleFunc("/api/contact/verify", contactHandler.HandleVerify).Methods(http.MethodGet)

	// JSON:API catalog. api2go expects paths without the /api prefix.
	jsonAPI := api2go.NewAPIWithResolver("v1", api2go.NewStaticResolver("/api"))
	jsonAPI.ContentType = "application/vnd.api+json"
	serviceResource := resources.NewServiceResource(cfg.Pages)
	jsonAPI.AddResource(resources.Service{}, serviceResource)

	router.PathPrefix("/api/v1").Methods(http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete).
		HandlerFunc(readOnlyHandler)
	router.PathPrefix("/api/v1").Handler(http.StripPrefix("/api", jsonAPI.Handler()))

	// OpenAPI document
	router.HandleFunc("/openapi.json", newOpenAPIGenerator().Handler()).Methods(http.MethodGet)

	if cfg.Site != nil {
		router.PathPrefix("/").Handler(cfg.Site)
	}
	return router
}

func newOpenAPIGenerator() *openapi.Generator {
	gen := openapi.NewGenerator(
		openapi.WithTitle("Courier Site API"),
		openapi.WithVersion("1.0.0"),
		openapi.WithDescription("Service catalog (JSON:API) and contact form relay"),
		openapi.WithServer("/"),
	)
	gen.RegisterResource(openapi.ResourceInfo{
		Name:     "services",
		Singular: "Service",
		Model:    resources.Service{},
	})
	gen.RegisterEndpoint(openapi.EndpointInfo{
		Method:   http.MethodPost,
		Path:     "/api/contact",
		Summary:  "Relay a contact form submission by email",
		Tag:      "Contact",
		Request:  contact.Submission{},
		Response: ContactResponse{},
		Statuses: []int{http.StatusBadRequest, http.StatusInternalServerError},
	})
	gen.RegisterEndpoint(openapi.EndpointInfo{
		Method:   http.MethodGet,
		Path:     "/api/contact/verify",
		Summary:  "Check SMTP connectivity and authentication",
		Tag:      "Contact",
		Response: VerifyResponse{},
		Statuses: []int{http.StatusInternalServerError},
	})
	gen.RegisterEndpoint(openapi.EndpointInfo{
		Method:   http.MethodGet,
		Path:     "/health",
		Summary:  "Liveness probe",
		Tag:      "Health",
		Response: HealthResponse{},
	})
	gen.RegisterEndpoint(openapi.EndpointInfo{
		Method:   http.MethodGet,
		Path:     "/ready",
		Summary:  "Readiness probe",
		Tag:      "Health",
		Response: ReadyResponse{},
		Statuses: []int{http.StatusServiceUnavailable},
	})
	return gen
}

// =============================================================================
// Middleware
// =============================================================================

// requestIDMiddleware propagates or generates the X-Request-ID header.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = "req_" + uuid.NewString()
			r.Header.Set("X-Request-ID", reqID)
		}
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r)
	})
}

// recoveryMiddleware recovers from panics and returns a 500 error.
func recoveryMiddleware(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					logger.Error("panic recovered",
						"error", err,
						"path", r.URL.Path,
						"request_id", r.Header.Get("X-Request-ID"),
					)
					writeJSONAPIError(w, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// readOnlyHandler rejects writes to the catalog, which is owned by the
// content bundle.
func readOnlyHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET, HEAD")
	writeJSONAPIError(w, http.StatusMethodNotAllowed, "Method Not Allowed", "The service catalog is read-only")
}

// =============================================================================
// Health Handlers
// =============================================================================

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

func readyHandler(pages Pages) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{"content": "ok"}
		if pages == nil {
			checks["content"] = "missing"
			writeJSON(w, http.StatusServiceUnavailable, ReadyResponse{Status: "not_ready", Checks: checks})
			return
		}
		if err := pages.Ping(r.Context()); err != nil {
			checks["content"] = "failed"
			writeJSON(w, http.StatusServiceUnavailable, ReadyResponse{Status: "not_ready", Checks: checks})
			return
		}
		writeJSON(w, http.StatusOK, ReadyResponse{Status: "ready", Checks: checks})
	}
}

// =============================================================================
// Helpers
// =============================================================================

func writeJSONAPIError(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/vnd.api+json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"errors": []map[string]interface{}{
			{
				"status": strconv.Itoa(status),
				"title":  title,
				"detail": detail,
			},
		},
	})
}
