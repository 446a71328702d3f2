package mailer

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"answerq/pkg/apperr"
	"answerq/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMessageValidate(t *testing.T) {
	tests := []struct {
		name    string
		msg     Message
		wantErr error
	}{
		{"valid", Message{To: "alice@x.com", Subject: "Hi", Body: "<p>Hi</p>"}, nil},
		{"missing at", Message{To: "alice.x.com", Subject: "Hi", Body: "Hi"}, apperr.ErrInvalidRecipient},
		{"short tld", Message{To: "alice@x.c", Subject: "Hi", Body: "Hi"}, apperr.ErrInvalidRecipient},
		{"blank recipient", Message{To: " ", Subject: "Hi", Body: "Hi"}, apperr.ErrInvalidRecipient},
		{"blank subject", Message{To: "alice@x.com", Subject: "  ", Body: "Hi"}, apperr.ErrInvalidContent},
		{"blank body", Message{To: "alice@x.com", Subject: "Hi", Body: ""}, apperr.ErrInvalidContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuildMessage(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	raw := string(buildMessage("noreply@x.com", Message{To: "alice@x.com", Subject: "Hello", Body: "<p>body</p>"}, at))

	assert.Contains(t, raw, "From: noreply@x.com\r\n")
	assert.Contains(t, raw, "To: alice@x.com\r\n")
	assert.Contains(t, raw, "Subject: Hello\r\n")
	assert.Contains(t, raw, "Content-Type: text/html; charset=UTF-8\r\n")
	assert.True(t, strings.HasSuffix(raw, "\r\n\r\n<p>body</p>"))
}

func TestComposer(t *testing.T) {
	c, err := NewComposer("answerq")
	require.NoError(t, err)

	msg, err := c.Verification("alice@x.com", "alice", "123456", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", msg.To)
	assert.Equal(t, "Verify your account", msg.Subject)
	assert.Contains(t, msg.Body, "123456")
	assert.Contains(t, msg.Body, "15 minutes")
	assert.Contains(t, msg.Body, "answerq")
	assert.NoError(t, msg.Validate())

	msg, err = c.EmailChanged("old@x.com", "alice", "old@x.com", "new@x.com", time.Now())
	require.NoError(t, err)
	assert.Contains(t, msg.Body, "old@x.com")
	assert.Contains(t, msg.Body, "new@x.com")

	msg, err = c.SignInAlert("alice@x.com", "<b>alice</b>", time.Now())
	require.NoError(t, err)
	assert.NotContains(t, msg.Body, "<b>alice</b>")

	msg, err = c.PasswordChanged("alice@x.com", "alice", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Your password was changed", msg.Subject)
}

type recordingSender struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return s.err
}

func TestDispatcherWait(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, time.Second, zap.NewNop())

	for i := 0; i < 5; i++ {
		d.Dispatch(Message{To: "alice@x.com", Subject: "Hi", Body: "Hi"})
	}
	d.Wait()

	assert.Len(t, sender.sent, 5)
}

func TestDispatcherSwallowsErrors(t *testing.T) {
	sender := &recordingSender{err: errors.New("boom")}
	d := NewDispatcher(sender, time.Second, zap.NewNop())

	assert.NotPanics(t, func() {
		d.Dispatch(Message{To: "alice@x.com", Subject: "Hi", Body: "Hi"})
		d.Wait()
	})
	assert.Len(t, sender.sent, 1)
}

func TestLogSender(t *testing.T) {
	s := NewLogSender(zap.NewNop())
	assert.NoError(t, s.Send(context.Background(), Message{To: "alice@x.com", Subject: "Hi", Body: "Hi"}))
	assert.ErrorIs(t, s.Send(context.Background(), Message{To: "bad", Subject: "Hi", Body: "Hi"}), apperr.ErrInvalidRecipient)
}

func TestSMTPSenderDialFailureIsTransient(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	s := NewSMTPSender(utils.EmailConfig{Host: "127.0.0.1", Port: port, From: "noreply@x.com", Timeout: time.Second})
	err = s.Send(context.Background(), Message{To: "alice@x.com", Subject: "Hi", Body: "Hi"})
	assert.ErrorIs(t, err, apperr.ErrTransient)
}

func TestSMTPSenderRejectsBeforeDialing(t *testing.T) {
	s := NewSMTPSender(utils.EmailConfig{Host: "203.0.113.1", Port: 25, Timeout: time.Second})
	err := s.Send(context.Background(), Message{To: "nobody", Subject: "Hi", Body: "Hi"})
	assert.ErrorIs(t, err, apperr.ErrInvalidRecipient)
	assert.False(t, errors.Is(err, apperr.ErrTransient))
}

// fakeSMTP accepts a single session and records the DATA payload.
func fakeSMTP(t *testing.T) (port int, received <-chan string) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	out := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		r := bufio.NewReader(conn)
		reply := func(s string) { conn.Write([]byte(s + "\r\n")) }
		reply("220 localhost ESMTP")

		var data strings.Builder
		inData := false
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			line = strings.TrimRight(line, "\r\n")

			if inData {
				if line == "." {
					inData = false
					out <- data.String()
					reply("250 OK")
					continue
				}
				data.WriteString(line + "\n")
				continue
			}

			switch cmd := strings.ToUpper(line); {
			case strings.HasPrefix(cmd, "EHLO"):
				reply("250-localhost")
				reply("250 HELP")
			case strings.HasPrefix(cmd, "MAIL FROM"), strings.HasPrefix(cmd, "RCPT TO"):
				reply("250 OK")
			case cmd == "DATA":
				inData = true
				reply("354 End data with <CR><LF>.<CR><LF>")
			case cmd == "QUIT":
				reply("221 Bye")
				return
			default:
				reply("502 Command not implemented")
			}
		}
	}()

	return ln.Addr().(*net.TCPAddr).Port, out
}

func TestSMTPSenderDelivers(t *testing.T) {
	port, received := fakeSMTP(t)

	s := NewSMTPSender(utils.EmailConfig{Host: "127.0.0.1", Port: port, From: "noreply@x.com", Timeout: 5 * time.Second})
	err := s.Send(context.Background(), Message{To: "alice@x.com", Subject: "Welcome", Body: "<p>code 123456</p>"})
	require.NoError(t, err)

	select {
	case payload := <-received:
		assert.Contains(t, payload, "To: alice@x.com")
		assert.Contains(t, payload, "Subject: Welcome")
		assert.Contains(t, payload, "<p>code 123456</p>")
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}
