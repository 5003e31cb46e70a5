// Package whatsapp formats and delivers recipe messages through the Twilio
// WhatsApp channel.
package whatsapp

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Sender delivers a single text message to a WhatsApp address.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// TwilioSender sends messages through the Twilio REST API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioSender creates a sender authenticated with the account SID and
// auth token. from is the provisioned WhatsApp number, e.g.
// "whatsapp:+14155238886".
func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{client: client, from: from}
}

func (s *TwilioSender) Send(_ context.Context, to, body string) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetFrom(s.from)
	params.SetTo(to)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send whatsapp message: %w", err)
	}
	return nil
}
