// Package mailer delivers transactional email.
package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"regexp"
	"strconv"
	"strings"
	"time"

	"answerq/pkg/apperr"
	"answerq/pkg/utils"

	"go.uber.org/zap"
)

var recipientPattern = regexp.MustCompile(`^[\w\-.]+@([\w-]+\.)+[\w-]{2,}$`)

type Message struct {
	To      string
	Subject string
	Body    string
}

// Validate checks the recipient syntax and that subject and body are not blank.
func (m Message) Validate() error {
	if strings.TrimSpace(m.To) == "" || !recipientPattern.MatchString(m.To) {
		return fmt.Errorf("%w: %q", apperr.ErrInvalidRecipient, m.To)
	}
	if strings.TrimSpace(m.Subject) == "" {
		return fmt.Errorf("%w: subject is blank", apperr.ErrInvalidContent)
	}
	if strings.TrimSpace(m.Body) == "" {
		return fmt.Errorf("%w: body is blank", apperr.ErrInvalidContent)
	}
	return nil
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type smtpSender struct {
	cfg utils.EmailConfig
}

// NewSMTPSender returns a Sender talking to cfg.Host:cfg.Port. STARTTLS and
// PLAIN auth are used when the server offers them.
func NewSMTPSender(cfg utils.EmailConfig) Sender {
	return &smtpSender{cfg: cfg}
}

func (s *smtpSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial smtp %s: %w: %w", addr, apperr.ErrTransient, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	if err := s.deliver(conn, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w: %w", msg.To, apperr.ErrTransient, err)
	}
	return nil
}

func (s *smtpSender) deliver(conn net.Conn, msg Message) error {
	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
			return err
		}
	}
	if s.cfg.User != "" {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)); err != nil {
				return err
			}
		}
	}

	if err := c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err := c.Rcpt(msg.To); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(buildMessage(s.cfg.From, msg, time.Now())); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return c.Quit()
}

func buildMessage(from string, msg Message, at time.Time) []byte {
	var buf bytes.Buffer
	buf.WriteString("From: " + from + "\r\n")
	buf.WriteString("To: " + msg.To + "\r\n")
	buf.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject) + "\r\n")
	buf.WriteString("Date: " + at.Format(time.RFC1123Z) + "\r\n")
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(msg.Body)
	return buf.Bytes()
}

type logSender struct {
	log *zap.Logger
}

// NewLogSender returns a Sender that only logs messages. Used when mail is disabled.
func NewLogSender(log *zap.Logger) Sender {
	return &logSender{log: log.With(zap.String("sender", "log"))}
}

func (s *logSender) Send(_ context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	s.log.Info("Mail delivery disabled, message logged",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}
