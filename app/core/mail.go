package core

import (
	"errors"
	"log"

	"gopkg.in/gomail.v2"
)

// SendMail sends a message through the configured SMTP relay. Attachments are
// given by path. There is no fallback relay: without credentials in the
// configuration the call fails.
func SendMail(from string, to []string, subject string, body string, files []string) error {
	if Config.MailServer.SmtpHost == "" || Config.MailServer.SmtpPort <= 0 ||
		Config.MailServer.SmtpUsername == "" || Config.MailServer.SmtpPassword == "" {
		return errors.New("mail server not configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	for _, file := range files {
		if file != "" {
			m.Attach(file)
		}
	}

	d := gomail.NewDialer(Config.MailServer.SmtpHost, Config.MailServer.SmtpPort,
		Config.MailServer.SmtpUsername, Config.MailServer.SmtpPassword)

	err := d.DialAndSend(m)
	if err != nil {
		log.Print(err)
	}
	return err
}
