package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/titancargo/courier-site/internal/core/contact"
	"github.com/titancargo/courier-site/internal/shell/mail"
)

// MaxContactBody bounds the size of a contact form submission.
const MaxContactBody = 64 << 10

const verifyNote = "This endpoint checks connectivity and auth without sending an email."

// =============================================================================
// Contact Relay
// =============================================================================

// ContactHandler forwards contact form submissions by email.
type ContactHandler struct {
	sender     mail.Sender
	mail       mail.Config
	recipients string
	logger     *slog.Logger
}

// NewContactHandler creates the relay. recipients is the raw comma separated
// list; when blank the SMTP username receives the mail.
func NewContactHandler(sender mail.Sender, cfg mail.Config, recipients string, logger *slog.Logger) *ContactHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactHandler{
		sender:     sender,
		mail:       cfg,
		recipients: recipients,
		logger:     logger.With("component", "contact"),
	}
}

// HandleSubmit implements POST /api/contact.
//
// Responses: 200 {ok:true}; 400 {error} for a missing field or a malformed
// email; 500 {error} for missing SMTP settings, missing recipients or a
// transport failure. Bodies that are not a JSON object are treated as empty.
func (h *ContactHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var sub contact.Submission
	body := http.MaxBytesReader(w, r.Body, MaxContactBody)
	if err := json.NewDecoder(body).Decode(&sub); err != nil {
		sub = contact.Submission{}
	}

	if err := sub.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.mail.Validate(); err != nil {
		h.logger.Error("smtp not configured", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	to, err := contact.Recipients(h.recipients, h.mail.Username)
	if err != nil {
		h.logger.Error("contact recipients missing", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	from := contact.FromAddress(h.mail.From, h.mail.Username, h.mail.Host)
	msg, err := contact.Compose(sub, from, to)
	if err != nil {
		h.logger.Error("compose contact message", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.sender.Send(r.Context(), msg); err != nil {
		h.logger.Error("contact message not delivered", "error", err, "recipients", len(to))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	h.logger.Info("contact message delivered", "recipients", len(to))
	writeJSON(w, http.StatusOK, ContactResponse{OK: true})
}

// HandleVerify implements GET /api/contact/verify: a handshake and AUTH
// against the SMTP server without sending anything.
func (h *ContactHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	env := VerifyEnv{
		Host:   h.mail.Host,
		Port:   h.mail.Port,
		Secure: h.mail.Mode().String(),
		User:   h.mail.Username,
	}

	if err := h.mail.Validate(); err != nil {
		writeJSON(w, http.StatusInternalServerError, VerifyResponse{Env: env, Error: err.Error()})
		return
	}

	start := time.Now()
	err := h.sender.Verify(r.Context())
	resp := VerifyResponse{
		OK:   err == nil,
		MS:   time.Since(start).Milliseconds(),
		Env:  env,
		Note: verifyNote,
	}

	if err != nil {
		var cfgErr *mail.ConfigError
		if errors.As(err, &cfgErr) {
			resp.Error = err.Error()
		} else {
			resp.Message = err.Error()
		}
		h.logger.Warn("smtp verify failed", "error", err, "ms", resp.MS)
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}

	resp.Message = "SMTP connection verified"
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Helpers
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
