package delivery

import (
	"log"

	"cardioapp_backend/app/core"
)

// BuildTargets assembles the delivery sinks the configuration enables. Each
// one is independently optional; an incomplete section just leaves that
// target out.
func BuildTargets(cfg *core.Configuration) []Target {
	targets := []Target{}

	if cfg.Delivery.ArchivePath != "" {
		targets = append(targets, NewArchiveTarget(cfg.Delivery.ArchivePath))
	}

	if cfg.Delivery.MailTo != "" {
		if err := core.ValidateEmailFormat(cfg.Delivery.MailTo); err != nil {
			log.Printf("delivery: mail target disabled, bad recipient %q", cfg.Delivery.MailTo)
		} else if cfg.MailServer.SmtpHost == "" {
			log.Println("delivery: mail target disabled, mail server not configured")
		} else {
			from := cfg.Delivery.MailFrom
			if from == "" {
				from = cfg.MailServer.SmtpUsername
			}
			targets = append(targets, NewMailTarget(from, cfg.Delivery.MailTo))
		}
	}

	if cfg.Storage.Bucket != "" && cfg.Storage.AccessKey != "" && cfg.Storage.SecretKey != "" {
		target, err := NewS3Target(cfg.Storage)
		if err != nil {
			log.Printf("delivery: cloud target disabled: %v", err)
		} else {
			targets = append(targets, target)
		}
	}

	return targets
}
