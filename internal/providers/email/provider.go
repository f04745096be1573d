package email

import "context"

// Message is a fully addressed outbound email.
type Message struct {
	To      []string
	CC      []string
	Subject string
	HTML    string
}

type Provider interface {
	Send(ctx context.Context, msg Message) error
}

// NoOpProvider drops every message. Used in tests and when SMTP is not
// configured.
type NoOpProvider struct{}

func (p *NoOpProvider) Send(ctx context.Context, msg Message) error {
	return nil
}
