package delivery

import (
	"context"
	"fmt"
	"strings"

	"cardioapp_backend/app/core"
)

// MailTarget sends the document as an attachment through the configured SMTP
// relay.
type MailTarget struct {
	from string
	to   string
}

func NewMailTarget(from, to string) *MailTarget {
	return &MailTarget{from: from, to: to}
}

func (t *MailTarget) Name() string {
	return "mail"
}

func (t *MailTarget) Deliver(ctx context.Context, doc Document) error {
	subject := fmt.Sprintf("Nouvelle fiche patient %s", doc.Token)
	body := fmt.Sprintf("<p>Fiche patient soumise, document <b>%s</b> en pièce jointe.</p>", doc.Filename)

	err := core.SendMail(t.from, []string{t.to}, subject, body, []string{doc.Path})
	if err != nil {
		return &Fault{Kind: classifySMTPError(err), Err: err}
	}
	return nil
}

func classifySMTPError(err error) FaultKind {
	msg := strings.ToLower(err.Error())
	switch {
	// 535 = bad credentials, 530 = auth required
	case strings.Contains(msg, "535") || strings.Contains(msg, "530") || strings.Contains(msg, "auth"):
		return FaultAuth
	// 452 = insufficient storage, 552 = mailbox quota
	case strings.Contains(msg, "452") || strings.Contains(msg, "552") || strings.Contains(msg, "quota"):
		return FaultQuota
	default:
		return FaultNetwork
	}
}
