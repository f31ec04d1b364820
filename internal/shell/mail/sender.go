package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"time"

	"github.com/titancargo/courier-site/internal/core/contact"
)

// =============================================================================
// Errors
// =============================================================================

// ErrStartTLSUnavailable is returned when STARTTLS is required but the
// server does not offer it.
var ErrStartTLSUnavailable = errors.New("server does not support STARTTLS")

// SendError wraps a failure at one stage of an SMTP exchange.
type SendError struct {
	Op  string // dial, greeting, starttls, auth, mail, rcpt, data, quit
	Err error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("smtp %s: %v", e.Op, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// =============================================================================
// Sender
// =============================================================================

// Sender delivers composed contact messages.
type Sender interface {
	Send(ctx context.Context, msg contact.Message) error
	Verify(ctx context.Context) error
}

// SMTPSender implements Sender with one SMTP session per call.
type SMTPSender struct {
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

// NewSMTPSender creates a sender. Zero timeouts fall back to DefaultTimeout.
func NewSMTPSender(cfg Config, logger *slog.Logger) *SMTPSender {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.ConnectionTimeout = orDefault(cfg.ConnectionTimeout)
	cfg.GreetingTimeout = orDefault(cfg.GreetingTimeout)
	cfg.SocketTimeout = orDefault(cfg.SocketTimeout)
	return &SMTPSender{cfg: cfg, logger: logger.With("component", "smtp"), now: time.Now}
}

// Config returns the effective settings.
func (s *SMTPSender) Config() Config {
	return s.cfg
}

// Verify connects, secures the session and authenticates without sending.
func (s *SMTPSender) Verify(ctx context.Context) error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	return s.session(ctx, func(*smtp.Client, net.Conn) error { return nil })
}

// Send delivers msg to every recipient in one transaction.
func (s *SMTPSender) Send(ctx context.Context, msg contact.Message) error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	data, err := buildMessage(msg, s.cfg.Host, s.now())
	if err != nil {
		return &SendError{Op: "data", Err: err}
	}

	return s.session(ctx, func(c *smtp.Client, conn net.Conn) error {
		s.touch(conn)
		if err := c.Mail(envelopeAddress(msg.From)); err != nil {
			return &SendError{Op: "mail", Err: err}
		}
		for _, rcpt := range msg.To {
			s.touch(conn)
			if err := c.Rcpt(envelopeAddress(rcpt)); err != nil {
				return &SendError{Op: "rcpt", Err: err}
			}
		}
		s.touch(conn)
		w, err := c.Data()
		if err != nil {
			return &SendError{Op: "data", Err: err}
		}
		if _, err := w.Write(data); err != nil {
			w.Close()
			return &SendError{Op: "data", Err: err}
		}
		if err := w.Close(); err != nil {
			return &SendError{Op: "data", Err: err}
		}
		s.debug("message accepted", "recipients", len(msg.To), "bytes", len(data))
		return nil
	})
}

// session opens a connection, runs the greeting, TLS and AUTH stages, then
// fn, and finally QUIT. The connection is closed when ctx is cancelled.
func (s *SMTPSender) session(ctx context.Context, fn func(*smtp.Client, net.Conn) error) error {
	conn, err := s.dial(ctx)
	if err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	// The greeting is read by NewClient.
	if err := conn.SetDeadline(time.Now().Add(s.cfg.GreetingTimeout)); err != nil {
		conn.Close()
		return &SendError{Op: "greeting", Err: err}
	}
	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return &SendError{Op: "greeting", Err: s.ctxErr(ctx, err)}
	}
	defer c.Close()
	s.debug("greeting received", "addr", s.cfg.Addr(), "tls", s.cfg.Mode().String())

	s.touch(conn)
	if err := c.Hello("localhost"); err != nil {
		return &SendError{Op: "greeting", Err: s.ctxErr(ctx, err)}
	}

	if err := s.startTLS(c); err != nil {
		return err
	}

	if s.cfg.Username != "" {
		s.touch(conn)
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		if err := c.Auth(auth); err != nil {
			return &SendError{Op: "auth", Err: s.ctxErr(ctx, err)}
		}
		s.debug("authenticated", "user", s.cfg.Username)
	}

	if err := fn(c, conn); err != nil {
		var se *SendError
		if errors.As(err, &se) {
			se.Err = s.ctxErr(ctx, se.Err)
		}
		return err
	}

	s.touch(conn)
	if err := c.Quit(); err != nil {
		return &SendError{Op: "quit", Err: s.ctxErr(ctx, err)}
	}
	return nil
}

func (s *SMTPSender) dial(ctx context.Context) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: s.cfg.ConnectionTimeout}

	if s.cfg.Mode() == TLSImplicit {
		td := &tls.Dialer{NetDialer: dialer, Config: s.cfg.tlsConfig()}
		conn, err := td.DialContext(ctx, "tcp", s.cfg.Addr())
		if err != nil {
			return nil, &SendError{Op: "dial", Err: err}
		}
		return conn, nil
	}

	conn, err := dialer.DialContext(ctx, "tcp", s.cfg.Addr())
	if err != nil {
		return nil, &SendError{Op: "dial", Err: err}
	}
	return conn, nil
}

func (s *SMTPSender) startTLS(c *smtp.Client) error {
	mode := s.cfg.Mode()
	if mode == TLSImplicit {
		return nil
	}
	if ok, _ := c.Extension("STARTTLS"); !ok {
		if mode == TLSStartTLSRequired {
			return &SendError{Op: "starttls", Err: ErrStartTLSUnavailable}
		}
		return nil
	}
	if err := c.StartTLS(s.cfg.tlsConfig()); err != nil {
		return &SendError{Op: "starttls", Err: err}
	}
	s.debug("connection upgraded with STARTTLS")
	return nil
}

// touch extends the socket deadline before each command.
func (s *SMTPSender) touch(conn net.Conn) {
	_ = conn.SetDeadline(time.Now().Add(s.cfg.SocketTimeout))
}

// ctxErr prefers the context error when cancellation caused err.
func (s *SMTPSender) ctxErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

func (s *SMTPSender) debug(msg string, args ...any) {
	if s.cfg.Debug {
		s.logger.Debug(msg, args...)
	}
}
