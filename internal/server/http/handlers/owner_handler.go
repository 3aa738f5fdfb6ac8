package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/server/http/dto"
)

// OwnerHandler manages owner-only order and settings endpoints.
type OwnerHandler struct {
	facade ManagementFacade
}

// NewOwnerHandler constructs OwnerHandler.
func NewOwnerHandler(facade ManagementFacade) *OwnerHandler {
	return &OwnerHandler{facade: facade}
}

// List handles GET /api/owner/orders.
func (h *OwnerHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, dto.NewOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/owner/orders/:ref.
func (h *OwnerHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), c.Param("ref"))
	h.respondOrder(c, order, err)
}

// UpdateStatus handles PATCH /api/owner/orders/:ref/status.
func (h *OwnerHandler) UpdateStatus(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}
	order, err := h.facade.UpdateStatus(c.Request.Context(), c.Param("ref"), req.Status)
	h.respondOrder(c, order, err)
}

// SetPayment handles PATCH /api/owner/orders/:ref/payment.
func (h *OwnerHandler) SetPayment(c *gin.Context) {
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Paid == nil {
		badRequest(c, "paid must be true or false")
		return
	}
	order, err := h.facade.SetPayment(c.Request.Context(), c.Param("ref"), *req.Paid)
	h.respondOrder(c, order, err)
}

// SetNote handles PATCH /api/owner/orders/:ref/note.
func (h *OwnerHandler) SetNote(c *gin.Context) {
	var req dto.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}
	order, err := h.facade.SetNote(c.Request.Context(), c.Param("ref"), req.Note)
	h.respondOrder(c, order, err)
}

// Channel handles GET /api/owner/channel.
func (h *OwnerHandler) Channel(c *gin.Context) {
	channelID, err := h.facade.Channel(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ChannelResponse{ChannelID: channelID})
}

// SetChannel handles PUT /api/owner/channel.
func (h *OwnerHandler) SetChannel(c *gin.Context) {
	var req dto.ChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}
	if err := h.facade.SetChannel(c.Request.Context(), req.ChannelID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ChannelResponse{ChannelID: strings.TrimSpace(req.ChannelID)})
}

// SetAvailability handles PUT /api/owner/status.
func (h *OwnerHandler) SetAvailability(c *gin.Context) {
	var req dto.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}
	state, err := h.facade.SetAvailability(req.State)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AvailabilityResponse{State: string(state)})
}

func (h *OwnerHandler) respondOrder(c *gin.Context, order *model.Order, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(*order))
}
