package mailer

import (
	"context"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
}

type SMTPMailer struct {
	client *mail.Client
}

func NewSMTP(cfg SMTPConfig) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Pass),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
	}
	if cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, err
	}

	return &SMTPMailer{client: client}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, message Message) (string, error) {
	msg := mail.NewMsg()
	if err := msg.From(message.From); err != nil {
		return "", err
	}
	if err := msg.To(message.To); err != nil {
		return "", err
	}
	msg.Subject(message.Subject)
	msg.SetBodyString(mail.TypeTextPlain, message.TextBody)
	if message.HTMLBody != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, message.HTMLBody)
	}

	receipt := uuid.NewString()
	msg.SetMessageIDWithValue(receipt)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return "", err
	}
	return receipt, nil
}
