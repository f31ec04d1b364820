// Package contact validates contact form submissions and composes the
// notification email sent to the business.
// This is part of the Functional Core - all functions are pure with no I/O.
package contact

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"regexp"
	"strings"
)

// =============================================================================
// Errors
// =============================================================================

// ErrNoRecipients is returned when no notification address is configured.
var ErrNoRecipients = errors.New("No recipients configured (set CONTACT_RECIPIENTS or SMTP_USERNAME)")

// ValidationError is a submission the relay refuses to forward.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var (
	errMissingFields = &ValidationError{Message: "Missing required fields"}
	errInvalidEmail  = &ValidationError{Message: "Invalid email"}
)

// =============================================================================
// Submission
// =============================================================================

var emailShape = regexp.MustCompile(`.+@.+\..+`)

// Submission is the body of POST /api/contact.
type Submission struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Message   string `json:"message"`
}

// Validate checks that every required field is present and that the email
// has a plausible shape. Only presence is checked; whitespace counts.
func (s Submission) Validate() error {
	if s.FirstName == "" || s.LastName == "" || s.Email == "" || s.Message == "" {
		return errMissingFields
	}
	if !emailShape.MatchString(s.Email) {
		return errInvalidEmail
	}
	return nil
}

// FullName returns "first last".
func (s Submission) FullName() string {
	return s.FirstName + " " + s.LastName
}

// =============================================================================
// Addressing
// =============================================================================

// ParseRecipients splits a comma separated address list, trimming entries
// and dropping blanks.
func ParseRecipients(raw string) []string {
	out := []string{}
	for _, addr := range strings.Split(raw, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// Recipients returns the configured recipients, falling back to the SMTP
// username. It returns ErrNoRecipients when both are empty.
func Recipients(configured, smtpUsername string) ([]string, error) {
	raw := configured
	if strings.TrimSpace(raw) == "" {
		raw = smtpUsername
	}
	to := ParseRecipients(raw)
	if len(to) == 0 {
		return nil, ErrNoRecipients
	}
	return to, nil
}

// FromAddress picks the envelope sender: the configured from address, then
// the SMTP username, then no-reply@host.
func FromAddress(from, smtpUsername, host string) string {
	switch {
	case from != "":
		return from
	case smtpUsername != "":
		return smtpUsername
	default:
		return "no-reply@" + host
	}
}

// =============================================================================
// Message Composition
// =============================================================================

// Message is a composed notification email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

var htmlBody = template.Must(template.New("contact").Parse(`<div style="font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;line-height:1.5;color:#111">
<h2 style="margin:0 0 12px 0">New Contact Form Submission</h2>
<p style="margin:0 0 6px 0"><strong>Name:</strong> {{.FirstName}} {{.LastName}}</p>
<p style="margin:0 0 6px 0"><strong>Email:</strong> {{.Email}}</p>
{{- if .Phone}}
<p style="margin:0 0 12px 0"><strong>Phone:</strong> {{.Phone}}</p>
{{- end}}
<div style="padding:12px;border:1px solid #e5e7eb;border-radius:8px;background:#fafafa;white-space:pre-wrap">{{.Message}}</div>
</div>
`))

// Compose builds the notification for a validated submission. Replies go
// to the submitter.
func Compose(s Submission, from string, to []string) (Message, error) {
	var html bytes.Buffer
	if err := htmlBody.Execute(&html, s); err != nil {
		return Message{}, fmt.Errorf("render contact html: %w", err)
	}
	return Message{
		From:    from,
		To:      to,
		ReplyTo: s.Email,
		Subject: "New contact form submission from " + s.FullName(),
		Text:    PlainBody(s),
		HTML:    html.String(),
	}, nil
}

// PlainBody renders the text/plain part.
func PlainBody(s Submission) string {
	lines := []string{
		"Name: " + s.FullName(),
		"Email: " + s.Email,
	}
	if s.Phone != "" {
		lines = append(lines, "Phone: "+s.Phone)
	}
	lines = append(lines, "", s.Message)
	return strings.Join(lines, "\n")
}
