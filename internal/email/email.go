// Package email sends password-reset mail over SMTP. Sending is a blocking
// inline call from the request handler; there is no queue or retry, and the
// transport error is handed back to the caller for display.
package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type Client struct {
	host string
	port int
	user string
	from string
	send func(*gomail.Message) error
}

type Option func(*Client)

// WithSendFunc replaces the SMTP submission, used by tests to capture
// messages without a mail server.
func WithSendFunc(send func(*gomail.Message) error) Option {
	return func(c *Client) {
		c.send = send
	}
}

// NewClient builds an SMTP client. Port 587 with STARTTLS is the expected
// deployment; gomail negotiates STARTTLS automatically when the server
// offers it.
func NewClient(host string, port int, username, password, from string, opts ...Option) *Client {
	dialer := gomail.NewDialer(host, port, username, password)
	c := &Client{
		host: host,
		port: port,
		user: username,
		from: from,
		send: func(m *gomail.Message) error { return dialer.DialAndSend(m) },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendPasswordReset submits a single plaintext message carrying the reset
// link. The returned error is the raw transport failure, surfaced to the
// user as the reason the mail could not be sent.
func (c *Client) SendPasswordReset(to, resetLink string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Password reset for NewsCheck")
	m.SetBody("text/plain", fmt.Sprintf("Click here to reset your password:\n%s\n\nThis link expires in 1 hour.", resetLink))

	if err := c.send(m); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}
