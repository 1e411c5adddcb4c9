package mail

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	ReportTo string
}

func NewEmailSender(host string, port int, user, password, reportTo string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		ReportTo: reportTo,
	}
}

var reportTmpl = template.Must(template.New("sync-report").Parse(
	`Lead sync finished at {{.FinishedAt}}.

New leads created: {{.Synced}}
Records skipped:   {{.Skipped}}
`))

// SendSyncReport mails the batch outcome to the ops inbox.
func (s *EmailSender) SendSyncReport(synced, skipped int) error {
	data := SyncReportData{
		Synced:     synced,
		Skipped:    skipped,
		FinishedAt: time.Now().Format(time.RFC3339),
	}

	var body bytes.Buffer
	if err := reportTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.User)
	m.SetHeader("To", s.ReportTo)
	m.SetHeader("Subject", fmt.Sprintf("Lead sync report: %d new leads", synced))
	m.SetBody("text/plain", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
