package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ivmish/teremok/internal/server/http/dto"
)

// BroadcastHandler schedules announcements and exposes audience views.
type BroadcastHandler struct {
	facade      AuditFacade
	broadcaster Broadcaster
}

// NewBroadcastHandler constructs BroadcastHandler.
func NewBroadcastHandler(facade AuditFacade, broadcaster Broadcaster) *BroadcastHandler {
	return &BroadcastHandler{facade: facade, broadcaster: broadcaster}
}

// Send handles POST /api/admin/broadcast. Delivery is asynchronous; the
// response reports only how many subscribers were queued.
func (h *BroadcastHandler) Send(c *gin.Context) {
	var req dto.BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	queued, err := h.broadcaster.Enqueue(c.Request.Context(), text, nil)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusAccepted, dto.BroadcastResponse{Queued: queued})
}

// Subscribers handles GET /api/admin/subscribers.
func (h *BroadcastHandler) Subscribers(c *gin.Context) {
	subscribers, err := h.facade.Subscribers(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(subscribers) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.SubscriberResponse, 0, len(subscribers))
	for _, s := range subscribers {
		response = append(response, dto.SubscriberResponse{
			UserID:       s.UserID,
			Handle:       s.Handle,
			SubscribedAt: s.SubscribedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}

// Unsubscriptions handles GET /api/admin/unsubscriptions.
func (h *BroadcastHandler) Unsubscriptions(c *gin.Context) {
	entries, err := h.facade.Unsubscriptions(c.Request.Context(), 0)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(entries) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.UnsubscriptionResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, dto.UnsubscriptionResponse{
			UserID:         e.UserID,
			Handle:         e.Handle,
			UnsubscribedAt: e.UnsubscribedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}

// Referrals handles GET /api/admin/referrals.
func (h *BroadcastHandler) Referrals(c *gin.Context) {
	referrals, err := h.facade.Referrals(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(referrals) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.ReferralResponse, 0, len(referrals))
	for _, r := range referrals {
		response = append(response, dto.ReferralResponse{
			UserID:       r.UserID,
			Handle:       r.Handle,
			Source:       r.Source,
			RegisteredAt: r.RegisteredAt,
		})
	}
	c.JSON(http.StatusOK, response)
}
