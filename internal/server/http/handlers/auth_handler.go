package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderdesk/internal/server/http/dto"
	"github.com/polkiloo/orderdesk/internal/server/http/middleware"
)

// AuthHandler processes owner login.
type AuthHandler struct {
	facade OwnerAuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade OwnerAuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Login handles POST /api/owner/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	token, err := h.facade.Login(c.Request.Context(), req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}
