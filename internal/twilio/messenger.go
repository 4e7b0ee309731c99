// Package twilio sends outbound WhatsApp messages through the Twilio REST
// API. Inbound traffic arrives over the webhook instead; this client exists
// for messages the bot originates itself.
package twilio

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	twilioapi "github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

const channelPrefix = "whatsapp:"

// Messenger delivers WhatsApp messages from the bot's configured number.
type Messenger struct {
	client *twilioapi.RestClient
	from   string
	logger *slog.Logger
}

func NewMessenger(accountSID, authToken, from string, logger *slog.Logger) *Messenger {
	if logger == nil {
		logger = slog.Default()
	}
	client := twilioapi.NewRestClientWithParams(twilioapi.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &Messenger{client: client, from: from, logger: logger}
}

// Send delivers body to the given phone number over WhatsApp.
func (m *Messenger) Send(ctx context.Context, to, body string) error {
	params := &openapi.CreateMessageParams{}
	params.SetFrom(whatsappAddress(m.from))
	params.SetTo(whatsappAddress(to))
	params.SetBody(body)

	message, err := m.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio: send message: %w", err)
	}

	sid := ""
	if message.Sid != nil {
		sid = *message.Sid
	}
	m.logger.InfoContext(ctx, "message sent", "to", to, "sid", sid)
	return nil
}

func whatsappAddress(number string) string {
	if strings.HasPrefix(number, channelPrefix) {
		return number
	}
	return channelPrefix + number
}
