package messenger

import "strconv"

// WebhookPayload is the shape Facebook POSTs to the webhook endpoint.
// Only the fields the bot consumes are declared; everything else in the
// event is ignored.
type WebhookPayload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

type Entry struct {
	ID        string           `json:"id"`
	Messaging []MessagingEvent `json:"messaging"`
}

type MessagingEvent struct {
	Sender struct {
		ID string `json:"id"`
	} `json:"sender"`
	Message struct {
		Text string `json:"text"`
	} `json:"message"`
}

// IncomingMessage is one user message extracted from a webhook event.
type IncomingMessage struct {
	SenderID string
	Text     string
}

// VerifyChallenge checks a webhook verification request. Facebook sends
// hub.mode=subscribe with the configured verify token and a numeric
// challenge that must be echoed back. Returns the challenge value and
// whether verification passed.
func VerifyChallenge(mode, token, verifyToken, challenge string) (int, bool) {
	if mode != "subscribe" || verifyToken == "" || token != verifyToken {
		return 0, false
	}
	n, err := strconv.Atoi(challenge)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParsePayload extracts (sender, text) pairs from a webhook payload in
// delivery order. Events missing a sender ID or message text (delivery
// receipts, attachments, read events) are skipped silently.
func ParsePayload(payload WebhookPayload) []IncomingMessage {
	var messages []IncomingMessage
	for _, entry := range payload.Entry {
		for _, event := range entry.Messaging {
			if event.Sender.ID == "" || event.Message.Text == "" {
				continue
			}
			messages = append(messages, IncomingMessage{
				SenderID: event.Sender.ID,
				Text:     event.Message.Text,
			})
		}
	}
	return messages
}
