package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tinoe0404/eTuckshop-sub000/internal/adapter/whatsapp"
	"github.com/tinoe0404/eTuckshop-sub000/internal/worker"
)

// WebhookHandler terminates the messaging platform webhook. Deliveries are
// acknowledged immediately and processed by the worker pool; a non-200 here
// triggers platform-side redelivery storms.
type WebhookHandler struct {
	queue       Enqueuer
	verifyToken string
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(queue Enqueuer, verifyToken string) *WebhookHandler {
	return &WebhookHandler{queue: queue, verifyToken: verifyToken}
}

// Verify handles GET /webhook, the platform's subscription handshake.
func (h *WebhookHandler) Verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == h.verifyToken && challenge != "" {
		c.String(http.StatusOK, challenge)
		return
	}
	c.Status(http.StatusForbidden)
}

// Receive handles POST /webhook. Always responds 200: malformed or dropped
// deliveries are recovered through redelivery plus the dedup guard, not by
// failing the acknowledgment.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var envelope whatsapp.Envelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		c.Status(http.StatusOK)
		return
	}

	for _, inbound := range envelope.Inbound() {
		h.queue.Enqueue(worker.Message{
			Sender:    inbound.Sender,
			Text:      inbound.Text,
			MessageID: inbound.MessageID,
		})
	}
	c.Status(http.StatusOK)
}
