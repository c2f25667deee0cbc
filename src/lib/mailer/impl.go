package mailer

import (
	"context"
	"fmt"
	"log"
	"ticketing/src/config"
	"ticketing/src/lib"
	awslib "ticketing/src/lib/aws"

	"github.com/mailersend/mailersend-go"
	"github.com/wneessen/go-mail"
)

// Notifier delivers a single HTML message.
type Notifier interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// NewNotifier returns the notifier selected by cfg.Provider.
func NewNotifier(ctx context.Context, cfg config.MailConfig) (Notifier, error) {
	switch cfg.Provider {
	case config.MAIL_PROVIDER_SMTP:
		c, err := lib.GetSMTPClient(cfg)
		if err != nil {
			return nil, err
		}
		return &SMTPNotifier{client: c, from: cfg.From, fromName: cfg.FromName}, nil
	case config.MAIL_PROVIDER_SES:
		c, err := awslib.GetSESClient(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, err
		}
		return NewSESNotifier(c, cfg.From, cfg.FromName), nil
	case config.MAIL_PROVIDER_MAILERSEND:
		if cfg.MailersendAPIKey == "" {
			return nil, fmt.Errorf("MAILERSEND_API_KEY is required for the %s provider", cfg.Provider)
		}
		return &MailersendNotifier{
			client:   mailersend.NewMailersend(cfg.MailersendAPIKey),
			from:     cfg.From,
			fromName: cfg.FromName,
		}, nil
	case config.MAIL_PROVIDER_LOG, "":
		return &LogNotifier{}, nil
	}
	return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
}

type SMTPNotifier struct {
	client   *mail.Client
	from     string
	fromName string
}

func (n *SMTPNotifier) Send(ctx context.Context, to, subject, htmlBody string) error {
	return lib.SendMail(ctx, n.client, &lib.SendMailInput{
		From:     n.from,
		FromName: n.fromName,
		To:       []string{to},
		Subject:  subject,
		Body:     htmlBody,
		Html:     true,
	})
}

type SESNotifier struct {
	client awslib.SESAPI
	source string
}

func NewSESNotifier(c awslib.SESAPI, from, fromName string) *SESNotifier {
	source := from
	if fromName != "" {
		source = fmt.Sprintf("%s <%s>", fromName, from)
	}
	return &SESNotifier{client: c, source: source}
}

func (n *SESNotifier) Send(ctx context.Context, to, subject, htmlBody string) error {
	id, err := awslib.SESSendHTMLMessage(ctx, n.client, n.source, to, subject, htmlBody)
	if err != nil {
		return err
	}
	log.Printf("Sent email with id: %s\n", id)
	return nil
}

type MailersendNotifier struct {
	client   *mailersend.Mailersend
	from     string
	fromName string
}

func (n *MailersendNotifier) Send(ctx context.Context, to, subject, htmlBody string) error {
	message := n.client.Email.NewMessage()
	message.SetFrom(mailersend.From{Name: n.fromName, Email: n.from})
	message.SetRecipients([]mailersend.Recipient{{Email: to}})
	message.SetSubject(subject)
	message.SetHTML(htmlBody)

	res, err := n.client.Email.Send(ctx, message)
	if err != nil {
		return err
	}
	log.Printf("Mailersend accepted message: %s\n", res.Header.Get("X-Message-Id"))
	return nil
}

// LogNotifier writes messages to the log instead of delivering them.
type LogNotifier struct{}

func (n *LogNotifier) Send(ctx context.Context, to, subject, htmlBody string) error {
	log.Printf("[mail] to=%s subject=%q bytes=%d\n", to, subject, len(htmlBody))
	return nil
}
