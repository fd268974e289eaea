// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package email

import (
	"bufio"
	"io"
	"net"
	"net/textproto"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// ReceivedMessage is one message accepted by the mock SMTP server.
type ReceivedMessage struct {
	From string
	To   []string
	Data string
}

// MockSMTPServer provides a minimal in-process SMTP server for testing
type MockSMTPServer struct {
	listener net.Listener
	addr     string
	// rejected recipients are answered with 550 on RCPT TO
	rejected map[string]bool

	mu       sync.Mutex
	messages []ReceivedMessage
}

// NewMockSMTPServer creates a new mock SMTP server
func NewMockSMTPServer(rejectedRecipients ...string) (*MockSMTPServer, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}

	server := &MockSMTPServer{
		listener: listener,
		addr:     listener.Addr().String(),
		rejected: make(map[string]bool, len(rejectedRecipients)),
	}
	for _, r := range rejectedRecipients {
		server.rejected[r] = true
	}

	go server.serve()
	return server, nil
}

// NewMockSMTPServerForTesting creates a mock SMTP server that is closed with the test
func NewMockSMTPServerForTesting(t *testing.T, rejectedRecipients ...string) *MockSMTPServer {
	server, err := NewMockSMTPServer(rejectedRecipients...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = server.Close() })
	return server
}

// Config returns an SMTPConfig pointing at the server.
func (s *MockSMTPServer) Config(t *testing.T) SMTPConfig {
	host, portStr, err := net.SplitHostPort(s.addr)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	return SMTPConfig{
		Host: host,
		Port: port,
		From: "meetings@example.com",
	}
}

// Messages returns the messages received so far.
func (s *MockSMTPServer) Messages() []ReceivedMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ReceivedMessage(nil), s.messages...)
}

// Close shuts down the mock server
func (s *MockSMTPServer) Close() error {
	return s.listener.Close()
}

func (s *MockSMTPServer) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return // Server closed
		}

		go s.handleConnection(conn)
	}
}

func (s *MockSMTPServer) handleConnection(conn net.Conn) {
	defer func() {
		_ = conn.Close() // Ignore close error in mock server
	}()

	reader := textproto.NewReader(bufio.NewReader(conn))
	reply := func(line string) {
		_, _ = conn.Write([]byte(line + "\r\n"))
	}

	// Send initial greeting
	reply("220 localhost SMTP ready")

	var current ReceivedMessage
	for {
		line, err := reader.ReadLine()
		if err != nil {
			return
		}

		verb := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(verb, "EHLO"), strings.HasPrefix(verb, "HELO"):
			reply("250 localhost")
		case strings.HasPrefix(verb, "MAIL FROM:"):
			current = ReceivedMessage{From: trimPath(line[len("MAIL FROM:"):])}
			reply("250 OK")
		case strings.HasPrefix(verb, "RCPT TO:"):
			recipient := trimPath(line[len("RCPT TO:"):])
			if s.rejected[recipient] {
				reply("550 Mailbox unavailable")
				continue
			}
			current.To = append(current.To, recipient)
			reply("250 OK")
		case verb == "DATA":
			reply("354 Start mail input")
			data, err := io.ReadAll(reader.DotReader())
			if err != nil {
				return
			}
			current.Data = string(data)
			s.mu.Lock()
			s.messages = append(s.messages, current)
			s.mu.Unlock()
			reply("250 OK")
		case verb == "QUIT":
			reply("221 Bye")
			return
		default:
			reply("250 OK")
		}
	}
}

func trimPath(arg string) string {
	arg = strings.TrimSpace(arg)
	if i := strings.IndexByte(arg, ' '); i >= 0 {
		arg = arg[:i]
	}
	return strings.Trim(arg, "<>")
}
