package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/gracepoint/church-admin-backend/config"
)

var smtpCfg *config.Config

// InitMailer stores the SMTP configuration for later sends.
func InitMailer(cfg *config.Config) {
	smtpCfg = cfg
}

func sendEmail(to, subject, body string) error {
	if smtpCfg == nil || smtpCfg.SMTPHost == "" || smtpCfg.SMTPUsername == "" {
		log.Printf("⚠️ SMTP not configured, email to %s not sent", to)
		return nil
	}

	from := smtpCfg.SMTPFromEmail
	if from == "" {
		from = smtpCfg.SMTPUsername
	}

	headers := []string{
		fmt.Sprintf("From: %s <%s>", smtpCfg.SMTPFromName, from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
	}
	msg := strings.Join(headers, "\r\n") + "\r\n\r\n" + body

	addr := fmt.Sprintf("%s:%s", smtpCfg.SMTPHost, smtpCfg.SMTPPort)
	auth := smtp.PlainAuth("", smtpCfg.SMTPUsername, smtpCfg.SMTPPassword, smtpCfg.SMTPHost)

	return smtp.SendMail(addr, auth, from, []string{to}, []byte(msg))
}

// SendResetLink mails a password reset link to a staff user.
func SendResetLink(to, token string) error {
	base := "http://localhost:3000"
	if smtpCfg != nil && smtpCfg.FrontendURL != "" {
		base = smtpCfg.FrontendURL
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", base, token)
	body := fmt.Sprintf(
		"A password reset was requested for your account.\n\n"+
			"Open the link below to choose a new password. The link expires in 15 minutes.\n\n%s\n\n"+
			"If you did not request this, you can ignore this message.",
		link,
	)

	return sendEmail(to, "Password Reset", body)
}
