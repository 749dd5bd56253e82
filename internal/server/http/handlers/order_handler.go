package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ivmish/teremok/internal/domain/errors"
	"github.com/ivmish/teremok/internal/domain/model"
	"github.com/ivmish/teremok/internal/server/http/dto"
)

// OrderHandler manages ledger and pending queue endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /api/admin/orders. ?all=true includes delivered orders.
func (h *OrderHandler) List(c *gin.Context) {
	includeDelivered := c.Query("all") == "true"

	orders, err := h.facade.RecentOrders(c.Request.Context(), includeDelivered)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// UpdateStatus handles PATCH /api/admin/orders/:id.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.SetOrderStatus(c.Request.Context(), id, model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidStatus):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Delete handles DELETE /api/admin/orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := h.facade.DeleteOrder(c.Request.Context(), id); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}

// Pending handles GET /api/admin/pending.
func (h *OrderHandler) Pending(c *gin.Context) {
	pendings, err := h.facade.PendingOrders(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(pendings) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.PendingOrderResponse, 0, len(pendings))
	for _, p := range pendings {
		response = append(response, toPendingResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

// Approve handles POST /api/admin/pending/:id/approve.
func (h *OrderHandler) Approve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	orders, err := h.facade.ApproveOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Decline handles POST /api/admin/pending/:id/decline.
func (h *OrderHandler) Decline(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := h.facade.DeclineOrder(c.Request.Context(), id); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.Status(http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:        order.ID,
		UserID:    order.UserID,
		Handle:    order.Handle,
		Item:      order.Item,
		Quantity:  order.Quantity,
		UnitPrice: order.UnitPrice,
		LineTotal: order.LineTotal,
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}

func toPendingResponse(p model.PendingOrder) dto.PendingOrderResponse {
	lines := make([]dto.PendingLineResponse, 0, len(p.Lines))
	for _, line := range p.Lines {
		lines = append(lines, dto.PendingLineResponse{
			Item:      line.Item,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		})
	}
	return dto.PendingOrderResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Handle:    p.Handle,
		Lines:     lines,
		Total:     p.Total,
		CreatedAt: p.CreatedAt,
	}
}
