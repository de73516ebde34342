package mailer

import "context"

// Message is one outbound mail. Both bodies carry the same content; the HTML
// body is the rich-text alternative.
type Message struct {
	From     string
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer delivers one message and returns a transport receipt on success.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}
