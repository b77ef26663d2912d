package handlers

import (
	"context"
	"net/http"
	"strconv"

	"sales-agent/agent"
	"sales-agent/chatlog"
	"sales-agent/config"
	"sales-agent/messenger"
	"sales-agent/web/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	userSenderLabel = "Usuario"
	botSenderLabel  = "Bot"
)

// Responder produces the bot's reply for one customer message.
type Responder interface {
	Respond(ctx context.Context, message string) agent.Reply
}

// Sender delivers a reply back to the customer.
type Sender interface {
	SendMessage(ctx context.Context, recipientID, text string) error
}

type WebhookHandler struct {
	cfg       *config.Config
	responder Responder
	sender    Sender
	log       *chatlog.Log
	limiter   *middleware.SenderRateLimiter
	logger    *zap.Logger
}

func NewWebhookHandler(cfg *config.Config, responder Responder, sender Sender, log *chatlog.Log, limiter *middleware.SenderRateLimiter, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		cfg:       cfg,
		responder: responder,
		sender:    sender,
		log:       log,
		limiter:   limiter,
		logger:    logger,
	}
}

// Verify handles Facebook's webhook subscription handshake.
func (h *WebhookHandler) Verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	n, ok := messenger.VerifyChallenge(mode, token, h.cfg.FBVerifyToken, challenge)
	if !ok {
		h.logger.Warn("Webhook verification rejected", zap.String("mode", mode))
		c.String(http.StatusForbidden, "Verification failed")
		return
	}

	h.logger.Info("Webhook verified")
	c.String(http.StatusOK, strconv.Itoa(n))
}

// Receive handles message delivery events. Facebook redelivers on
// non-200 responses, so every parsed payload is acknowledged with 200
// no matter what happens downstream.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var payload messenger.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("Failed to parse webhook payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	for _, msg := range messenger.ParsePayload(payload) {
		h.handleMessage(c.Request.Context(), msg)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *WebhookHandler) handleMessage(ctx context.Context, msg messenger.IncomingMessage) {
	if !h.limiter.Allow(msg.SenderID) {
		h.logger.Warn("Rate limit exceeded for sender",
			zap.String("sender_id", msg.SenderID))
		return
	}

	h.logger.Info("Incoming message",
		zap.String("sender_id", msg.SenderID),
		zap.Int("length", len(msg.Text)))

	h.log.Add(userSenderLabel, msg.Text, false)

	reply := h.responder.Respond(ctx, msg.Text)
	h.log.Add(botSenderLabel, reply.Text, reply.Escalated)

	if err := h.sender.SendMessage(ctx, msg.SenderID, reply.Text); err != nil {
		h.logger.Error("Failed to send reply",
			zap.String("sender_id", msg.SenderID),
			zap.Error(err))
	}
}
