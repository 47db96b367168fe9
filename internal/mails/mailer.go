package mails

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"time"

	"github.com/go-mail/mail/v2"
)

//go:embed "templates"
var templateFS embed.FS

const ConfirmationCodeTmpl = "confirmation_code.html"

// Mailer delivers templated mail over SMTP. A failed delivery is reported
// to the caller as is; there are no retries.
type Mailer struct {
	Dialer *mail.Dialer
	Sender string
}

func New(host string, port int, timeout time.Duration, username, password, sender string) *Mailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = timeout
	return &Mailer{
		Dialer: dialer,
		Sender: sender,
	}
}

func parseEmailTmpl(tmplName string, tmplData any) (map[string]string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/"+tmplName)
	if err != nil {
		return nil, err
	}
	tmplPartials := map[string]string{
		"subject":   "",
		"plainBody": "",
		"htmlBody":  "",
	}
	for key := range tmplPartials {
		buff := new(bytes.Buffer)
		if err = tmpl.ExecuteTemplate(buff, key, tmplData); err != nil {
			return nil, err
		}
		tmplPartials[key] = buff.String()
	}
	return tmplPartials, nil
}

func (m *Mailer) Send(recipient string, tmplName string, tmplData any) error {
	tmplPartials, err := parseEmailTmpl(tmplName, tmplData)
	if err != nil {
		return err
	}
	msg := mail.NewMessage()
	msg.SetHeader("To", recipient)
	msg.SetHeader("From", m.Sender)
	msg.SetHeader("Subject", tmplPartials["subject"])
	msg.SetBody("text/plain", tmplPartials["plainBody"])
	msg.AddAlternative("text/html", tmplPartials["htmlBody"])
	return m.Dialer.DialAndSend(msg)
}

// LogMailer renders mail and writes it to the log instead of sending it.
type LogMailer struct {
	Log    *slog.Logger
	Sender string
}

func (m *LogMailer) Send(recipient string, tmplName string, tmplData any) error {
	tmplPartials, err := parseEmailTmpl(tmplName, tmplData)
	if err != nil {
		return err
	}
	m.Log.Info(
		"outgoing mail",
		"from", m.Sender,
		"to", recipient,
		"subject", tmplPartials["subject"],
		"body", tmplPartials["plainBody"],
	)
	return nil
}
