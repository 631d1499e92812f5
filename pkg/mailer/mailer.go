package mailer

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/rs/zerolog"
)

// Mailer sends magic-link emails over SMTP. Without an SMTP host configured
// it logs the link instead, which is what you want in development.
type Mailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	log      zerolog.Logger
}

func New(host, port, username, password, from string, log zerolog.Logger) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		log:      log.With().Str("component", "mailer").Logger(),
	}
}

func (m *Mailer) SendMagicLink(to, link string) error {
	if m.host == "" {
		m.log.Info().Str("to", to).Str("link", link).Msg("smtp not configured; magic link logged instead of sent")
		return nil
	}

	body := fmt.Sprintf("Sign in to your health diary:\r\n\r\n%s\r\n\r\nThe link expires shortly and can only be used once. If you did not request it, ignore this email.\r\n", link)

	msg, err := m.buildMessage(to, "Your sign-in link", body)
	if err != nil {
		return err
	}

	addr := m.host + ":" + m.port
	var auth sasl.Client
	if m.username != "" {
		auth = sasl.NewPlainClient("", m.username, m.password)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, bytes.NewReader(msg)); err != nil {
		return fmt.Errorf("unable to send mail via %s: %w", addr, err)
	}
	return nil
}

func (m *Mailer) buildMessage(to, subject, body string) ([]byte, error) {
	var buf bytes.Buffer

	var h mail.Header
	h.SetDate(time.Now())
	h.SetAddressList("From", []*mail.Address{{Address: m.from}})
	h.SetAddressList("To", []*mail.Address{{Address: to}})
	h.SetSubject(subject)
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})

	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(w, body); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
