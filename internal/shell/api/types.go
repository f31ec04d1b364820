package api

// =============================================================================
// Response Types
// =============================================================================

// HealthResponse is the response for health check endpoints.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse is the response for readiness check endpoints.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// ContactResponse is returned when a submission was relayed.
type ContactResponse struct {
	OK bool `json:"ok"`
}

// ErrorResponse is the error body of the contact relay.
type ErrorResponse struct {
	Error string `json:"error"`
}

// VerifyResponse reports an SMTP connectivity check.
type VerifyResponse struct {
	OK      bool      `json:"ok"`
	MS      int64     `json:"ms"`
	Env     VerifyEnv `json:"env"`
	Message string    `json:"message,omitempty"`
	Note    string    `json:"note,omitempty"`
	Error   string    `json:"error,omitempty"`
}

// VerifyEnv echoes the non-secret SMTP settings. The password is never
// included.
type VerifyEnv struct {
	Host   string `json:"host"`
	Port   int    `json:"port"`
	Secure string `json:"secure"`
	User   string `json:"user"`
}
