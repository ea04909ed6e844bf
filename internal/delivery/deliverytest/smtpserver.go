// Package deliverytest provides an in-process SMTP server for tests.
package deliverytest

import (
	"bufio"
	"encoding/base64"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// Message is one mail accepted by the server.
type Message struct {
	From string
	To   []string
	Data string
}

// SMTPServer speaks just enough ESMTP for net/smtp: EHLO, AUTH PLAIN,
// MAIL, RCPT, DATA, RSET, NOOP and QUIT. It never offers STARTTLS.
type SMTPServer struct {
	Username string
	Password string
	// RejectSender makes MAIL FROM fail with 550 for this address.
	RejectSender string

	ln net.Listener
	wg sync.WaitGroup

	mu       sync.Mutex
	messages []Message
}

// NewSMTPServer starts a server on 127.0.0.1 accepting username/password.
// It is shut down when the test ends.
func NewSMTPServer(t testing.TB, username, password string) *SMTPServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := &SMTPServer{Username: username, Password: password, ln: ln}
	s.wg.Add(1)
	go s.serve()
	t.Cleanup(func() {
		_ = ln.Close()
		s.wg.Wait()
	})
	return s
}

// Host returns the listen host.
func (s *SMTPServer) Host() string {
	host, _, _ := net.SplitHostPort(s.ln.Addr().String())
	return host
}

// Port returns the listen port.
func (s *SMTPServer) Port() int {
	_, port, _ := net.SplitHostPort(s.ln.Addr().String())
	p, _ := strconv.Atoi(port)
	return p
}

// Messages returns the accepted messages.
func (s *SMTPServer) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.messages...)
}

func (s *SMTPServer) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handle(conn)
		}()
	}
}

func (s *SMTPServer) handle(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	reply := func(lines ...string) {
		for _, l := range lines {
			_, _ = conn.Write([]byte(l + "\r\n"))
		}
	}

	reply("220 fake.local ESMTP ready")

	var (
		authed bool
		cur    Message
	)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimRight(line, "\r\n")
		verb := strings.ToUpper(line)

		switch {
		case strings.HasPrefix(verb, "EHLO"), strings.HasPrefix(verb, "HELO"):
			reply("250-fake.local", "250 AUTH PLAIN")
		case strings.HasPrefix(verb, "AUTH PLAIN"):
			if s.checkPlain(strings.TrimSpace(line[len("AUTH PLAIN"):])) {
				authed = true
				reply("235 2.7.0 Authentication successful")
			} else {
				reply("535 5.7.8 Username and Password not accepted")
			}
		case strings.HasPrefix(verb, "MAIL FROM:"):
			if !authed {
				reply("530 5.7.0 Authentication required")
				continue
			}
			from := trimAddr(line[len("MAIL FROM:"):])
			if s.RejectSender != "" && from == s.RejectSender {
				reply("550 5.7.1 Sender rejected")
				continue
			}
			cur = Message{From: from}
			reply("250 2.1.0 OK")
		case strings.HasPrefix(verb, "RCPT TO:"):
			cur.To = append(cur.To, trimAddr(line[len("RCPT TO:"):]))
			reply("250 2.1.5 OK")
		case verb == "DATA":
			reply("354 Go ahead")
			var data strings.Builder
			for {
				l, err := r.ReadString('\n')
				if err != nil {
					return
				}
				if l == ".\r\n" {
					break
				}
				data.WriteString(strings.TrimPrefix(l, "."))
			}
			cur.Data = data.String()
			s.mu.Lock()
			s.messages = append(s.messages, cur)
			s.mu.Unlock()
			cur = Message{}
			reply("250 2.0.0 OK queued")
		case verb == "RSET", verb == "NOOP":
			reply("250 OK")
		case verb == "QUIT":
			reply("221 2.0.0 Bye")
			return
		default:
			reply("502 5.5.1 Unrecognized command")
		}
	}
}

func (s *SMTPServer) checkPlain(b64 string) bool {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return false
	}
	parts := strings.Split(string(raw), "\x00")
	return len(parts) == 3 && parts[1] == s.Username && parts[2] == s.Password
}

func trimAddr(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, " "); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSuffix(strings.TrimPrefix(s, "<"), ">")
}
