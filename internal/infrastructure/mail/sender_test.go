package mail

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "gopkg.in/gomail.v2"

	"github.com/tailorbase/backend/internal/infrastructure/config"
)

// fakeDialer captures messages instead of opening an SMTP connection
type fakeDialer struct {
	messages []*gomail.Message
	err      error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.messages = append(d.messages, m...)
	return nil
}

func TestSMTPSender_Send(t *testing.T) {
	dialer := &fakeDialer{}
	sender := NewSMTPSender(config.MailConfig{FromName: "TailorBase"}, nil)
	sender.dialer = dialer

	err := sender.Send(context.Background(), "orders@example.com", "jordan@example.com",
		"Order #1042 - Order Placed", "<p>hello</p>")
	require.NoError(t, err)

	require.Len(t, dialer.messages, 1)
	msg := dialer.messages[0]
	assert.Equal(t, []string{"\"TailorBase\" <orders@example.com>"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"jordan@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Order #1042 - Order Placed"}, msg.GetHeader("Subject"))
}

func TestSMTPSender_Send_DeliveryError(t *testing.T) {
	sender := NewSMTPSender(config.MailConfig{}, nil)
	sender.dialer = &fakeDialer{err: errors.New("connection refused")}

	err := sender.Send(context.Background(), "orders@example.com", "jordan@example.com", "subject", "body")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "jordan@example.com")
}

func TestSMTPSender_Send_CancelledContext(t *testing.T) {
	dialer := &fakeDialer{}
	sender := NewSMTPSender(config.MailConfig{}, nil)
	sender.dialer = dialer

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sender.Send(ctx, "orders@example.com", "jordan@example.com", "subject", "body")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, dialer.messages)
}
