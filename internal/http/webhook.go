package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/twilio/twilio-go/twiml"

	"github.com/example/hours-bot/internal/logging"
)

// channelPrefix marks the messaging channel on Twilio addresses, as in
// "whatsapp:+447700900000". Senders are keyed without it.
const channelPrefix = "whatsapp:"

// MessageHandler turns an inbound message into the reply body to send back.
type MessageHandler interface {
	HandleMessage(ctx context.Context, sender, body string) string
}

// WebhookHandler receives Twilio message webhooks and answers with TwiML.
type WebhookHandler struct {
	messages MessageHandler
	logger   *slog.Logger
}

func NewWebhookHandler(messages MessageHandler, logger *slog.Logger) *WebhookHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookHandler{messages: messages, logger: logger}
}

// Receive handles one webhook POST. Twilio delivers the message as form
// fields; the reply travels back in the HTTP response as a TwiML document.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx, h.logger)

	if err := r.ParseForm(); err != nil {
		logger.WarnContext(ctx, "malformed webhook form", "error", err)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	sender := strings.TrimPrefix(r.PostFormValue("From"), channelPrefix)
	body := r.PostFormValue("Body")
	if sender == "" {
		logger.WarnContext(ctx, "webhook without sender")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	reply := h.messages.HandleMessage(ctx, sender, body)
	writeTwiML(ctx, w, logger, reply)
}

func writeTwiML(ctx context.Context, w http.ResponseWriter, logger *slog.Logger, body string) {
	document, err := twiml.Messages([]twiml.Element{&twiml.MessagingMessage{Body: body}})
	if err != nil {
		logger.ErrorContext(ctx, "render twiml", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(document)); err != nil {
		logger.ErrorContext(ctx, "write response", "error", err)
	}
}
