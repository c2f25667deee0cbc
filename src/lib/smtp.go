package lib

import (
	"context"
	"log"
	"ticketing/src/config"

	"github.com/wneessen/go-mail"
)

func GetSMTPClient(cfg config.MailConfig) (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTPUsername),
		mail.WithPassword(cfg.SMTPPassword),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}
	c, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		log.Printf("Could not initialize smtp client: %s\n", err.Error())
		return nil, err
	}
	return c, nil
}

// NewMailMessage builds a message ready for DialAndSend.
func NewMailMessage(inputParams *SendMailInput) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(inputParams.FromName, inputParams.From); err != nil {
		return nil, err
	}
	if err := msg.To(inputParams.To...); err != nil {
		return nil, err
	}
	if inputParams.ReplyTo != "" {
		if err := msg.ReplyTo(inputParams.ReplyTo); err != nil {
			return nil, err
		}
	}
	msg.Subject(inputParams.Subject)
	if inputParams.Html {
		msg.SetBodyString(mail.TypeTextHTML, inputParams.Body)
	} else {
		msg.SetBodyString(mail.TypeTextPlain, inputParams.Body)
	}
	return msg, nil
}

func SendMail(ctx context.Context, c *mail.Client, inputParams *SendMailInput) error {
	msg, err := NewMailMessage(inputParams)
	if err != nil {
		return err
	}
	return c.DialAndSendWithContext(ctx, msg)
}

type SendMailInput struct {
	From     string
	FromName string
	To       []string
	ReplyTo  string
	Subject  string
	Body     string
	Html     bool
}
