package handlers

import (
	"crypto/subtle"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gin-gonic/gin"
)

// WebhookHandler accepts Telegram webhook deliveries. The secret path
// segment stands in for a signature: Telegram is told the full URL at
// setup time and nobody else knows it.
type WebhookHandler struct {
	secret string
	sink   UpdateSink
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(secret string, sink UpdateSink) *WebhookHandler {
	return &WebhookHandler{secret: secret, sink: sink}
}

// Receive handles POST /telegram/webhook/:secret.
func (h *WebhookHandler) Receive(c *gin.Context) {
	if subtle.ConstantTimeCompare([]byte(c.Param("secret")), []byte(h.secret)) != 1 {
		c.Status(http.StatusNotFound)
		return
	}

	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	h.sink.HandleUpdate(c.Request.Context(), update)
	c.Status(http.StatusOK)
}
