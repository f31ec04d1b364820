package mail

import (
	"encoding/base64"
	"io"
	"net"
	"net/textproto"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// =============================================================================
// Fake SMTP Server
// =============================================================================

type receivedMessage struct {
	From string
	To   []string
	Data string
}

// fakeSMTP is a minimal in-process SMTP server speaking just enough of the
// protocol for net/smtp: EHLO, AUTH PLAIN, MAIL, RCPT, DATA, QUIT.
type fakeSMTP struct {
	ln       net.Listener
	wg       sync.WaitGroup
	user     string
	pass     string
	silent   bool // accept connections but never greet
	starttls bool // advertise STARTTLS

	mu       sync.Mutex
	messages []receivedMessage
}

func startFakeSMTP(t *testing.T, opts ...func(*fakeSMTP)) *fakeSMTP {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	f := &fakeSMTP{ln: ln, user: "relay@example.com", pass: "secret"}
	for _, opt := range opts {
		opt(f)
	}

	f.wg.Add(1)
	go f.serve()
	t.Cleanup(func() {
		ln.Close()
		f.wg.Wait()
	})
	return f
}

func (f *fakeSMTP) port() int {
	return f.ln.Addr().(*net.TCPAddr).Port
}

func (f *fakeSMTP) config() Config {
	cfg := DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = f.port()
	cfg.Username = f.user
	cfg.Password = f.pass
	return cfg
}

func (f *fakeSMTP) received() []receivedMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]receivedMessage(nil), f.messages...)
}

func (f *fakeSMTP) serve() {
	defer f.wg.Done()
	for {
		conn, err := f.ln.Accept()
		if err != nil {
			return
		}
		f.wg.Add(1)
		go func() {
			defer f.wg.Done()
			defer conn.Close()
			if f.silent {
				_, _ = io.Copy(io.Discard, conn)
				return
			}
			f.handle(textproto.NewConn(conn))
		}()
	}
}

func (f *fakeSMTP) handle(c *textproto.Conn) {
	reply := func(lines ...string) bool {
		for _, l := range lines {
			if err := c.PrintfLine("%s", l); err != nil {
				return false
			}
		}
		return true
	}

	if !reply("220 fake.local ESMTP ready") {
		return
	}

	var current receivedMessage
	for {
		line, err := c.ReadLine()
		if err != nil {
			return
		}
		verb := strings.ToUpper(strings.SplitN(line, " ", 2)[0])
		switch verb {
		case "EHLO", "HELO":
			lines := []string{"250-fake.local", "250-AUTH PLAIN"}
			if f.starttls {
				lines = append(lines, "250-STARTTLS")
			}
			lines = append(lines, "250 8BITMIME")
			reply(lines...)
		case "AUTH":
			fields := strings.Fields(line)
			want := "\x00" + f.user + "\x00" + f.pass
			got := ""
			if len(fields) == 3 {
				raw, _ := base64.StdEncoding.DecodeString(fields[2])
				got = string(raw)
			}
			if got == want {
				reply("235 2.7.0 Authentication successful")
			} else {
				reply("535 5.7.8 Authentication credentials invalid")
			}
		case "MAIL":
			current = receivedMessage{From: between(line, "<", ">")}
			reply("250 2.1.0 OK")
		case "RCPT":
			current.To = append(current.To, between(line, "<", ">"))
			reply("250 2.1.5 OK")
		case "DATA":
			reply("354 End data with <CR><LF>.<CR><LF>")
			data, err := c.ReadDotBytes()
			if err != nil {
				return
			}
			current.Data = string(data)
			f.mu.Lock()
			f.messages = append(f.messages, current)
			f.mu.Unlock()
			reply("250 2.0.0 queued as " + strconv.Itoa(len(f.messages)))
		case "QUIT":
			reply("221 2.0.0 Bye")
			return
		default:
			reply("502 5.5.2 command not recognized")
		}
	}
}

func between(s, open, closing string) string {
	i := strings.Index(s, open)
	j := strings.LastIndex(s, closing)
	if i < 0 || j <= i {
		return ""
	}
	return s[i+1 : j]
}
