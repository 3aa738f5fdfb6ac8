package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderdesk/internal/server/http/dto"
)

// IntakeHandler serves the public order and contact forms.
type IntakeHandler struct {
	facade IntakeFacade
}

// NewIntakeHandler constructs IntakeHandler.
func NewIntakeHandler(facade IntakeFacade) *IntakeHandler {
	return &IntakeHandler{facade: facade}
}

// SubmitOrder handles POST /api/orders.
func (h *IntakeHandler) SubmitOrder(c *gin.Context) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	order, err := h.facade.SubmitOrder(c.Request.Context(), req.Submission())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OrderCreatedResponse{OrderID: order.ID})
}

// SubmitMessage handles POST /api/messages.
func (h *IntakeHandler) SubmitMessage(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	if err := h.facade.SubmitMessage(c.Request.Context(), req.ContactMessage()); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.AckResponse{Status: "received"})
}

// Status handles GET /api/status.
func (h *IntakeHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, dto.AvailabilityResponse{State: string(h.facade.Availability())})
}
