package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderdesk/internal/adapter/chat"
	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/server/http/dto"
)

const (
	maxReplyLength = 2000
	maxListedOrder = 15
)

var errUnknownCommand = errors.New("unknown command")

// InteractionHandler answers button clicks and owner commands forwarded by the chat platform.
type InteractionHandler struct {
	facade InteractionFacade
	logger *slog.Logger
}

// NewInteractionHandler constructs InteractionHandler.
func NewInteractionHandler(facade InteractionFacade, logger *slog.Logger) *InteractionHandler {
	return &InteractionHandler{facade: facade, logger: logger}
}

// Handle handles POST /api/interactions.
func (h *InteractionHandler) Handle(c *gin.Context) {
	var req dto.InteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	switch req.Type {
	case dto.InteractionPing:
		c.JSON(http.StatusOK, dto.InteractionResponse{Type: "pong"})
	case dto.InteractionComponent:
		c.JSON(http.StatusOK, h.decide(c.Request.Context(), req))
	case dto.InteractionCommand:
		c.JSON(http.StatusOK, h.command(c.Request.Context(), req))
	default:
		badRequest(c, "unsupported interaction type")
	}
}

func (h *InteractionHandler) decide(ctx context.Context, req dto.InteractionRequest) dto.InteractionResponse {
	decision, submitterID, ok := chat.ParseDecisionID(req.CustomID)
	if !ok {
		return ephemeral("This button is no longer valid.")
	}
	if !h.facade.IsOwner(req.UserID) {
		h.logger.Warn("decision rejected, not the owner", slog.String("user_id", req.UserID))
		return ephemeral("Only the owner can accept or decline orders.")
	}

	order, err := h.facade.Decide(ctx, submitterID, decision)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return ephemeral(fmt.Sprintf("No pending order found for <@%s>.", submitterID))
		}
		return h.failure(err)
	}
	return dto.InteractionResponse{
		Content: fmt.Sprintf("Order `%s` for <@%s> marked %s.", order.ShortID(), order.SubmitterID, order.Status),
	}
}

func (h *InteractionHandler) command(ctx context.Context, req dto.InteractionRequest) dto.InteractionResponse {
	if !h.facade.IsOwner(req.UserID) {
		h.logger.Warn("command rejected, not the owner",
			slog.String("user_id", req.UserID),
			slog.String("command", req.Name),
		)
		return ephemeral("This command is restricted to the owner.")
	}

	content, err := h.run(ctx, strings.ToLower(req.Name), req.Options)
	if err != nil {
		return h.failure(err)
	}
	return ephemeral(content)
}

func (h *InteractionHandler) run(ctx context.Context, name string, opts map[string]string) (string, error) {
	opt := func(key string) string { return strings.TrimSpace(opts[key]) }

	switch name {
	case "orders":
		orders, err := h.facade.Orders(ctx, opt("status"))
		if err != nil {
			return "", err
		}
		return listReply(orders), nil
	case "order":
		order, err := h.facade.Order(ctx, opt("ref"))
		if err != nil {
			return "", err
		}
		return chat.OrderDetails(*order), nil
	case "setstatus":
		order, err := h.facade.UpdateStatus(ctx, opt("ref"), opt("status"))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Order `%s` status set to %s.", order.ShortID(), order.Status), nil
	case "payment":
		paid, err := parsePaid(opt("state"))
		if err != nil {
			return "", err
		}
		order, err := h.facade.SetPayment(ctx, opt("ref"), paid)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Order `%s` marked %s.", order.ShortID(), order.PaymentState), nil
	case "note":
		order, err := h.facade.SetNote(ctx, opt("ref"), opts["text"])
		if err != nil {
			return "", err
		}
		if order.Notes == "" {
			return fmt.Sprintf("Note cleared on order `%s`.", order.ShortID()), nil
		}
		return fmt.Sprintf("Note saved on order `%s`.", order.ShortID()), nil
	case "setchannel":
		if err := h.facade.SetChannel(ctx, opt("channel")); err != nil {
			return "", err
		}
		return fmt.Sprintf("Notifications will be posted to <#%s>.", opt("channel")), nil
	case "status":
		if opt("state") == "" {
			return fmt.Sprintf("Availability is %s.", h.facade.Availability()), nil
		}
		state, err := h.facade.SetAvailability(opt("state"))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Availability set to %s.", state), nil
	default:
		return "", errUnknownCommand
	}
}

func (h *InteractionHandler) failure(err error) dto.InteractionResponse {
	if errors.Is(err, errUnknownCommand) {
		return ephemeral("Unknown command.")
	}
	status, message := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("interaction failed", slog.String("error", err.Error()))
	}
	return ephemeral(message)
}

func parsePaid(value string) (bool, error) {
	switch strings.ToLower(value) {
	case string(model.PaymentPaid):
		return true, nil
	case string(model.PaymentUnpaid):
		return false, nil
	case "":
		return false, domainErrors.NewMissingField("state")
	default:
		return false, &domainErrors.ValidationError{Field: "state", Reason: fmt.Errorf("expected paid or unpaid, got %q", value)}
	}
}

func listReply(orders []model.Order) string {
	if len(orders) == 0 {
		return "No orders found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%d order(s)**", len(orders))
	for i, o := range orders {
		line := "\n" + chat.OrderSummary(o)
		if i == maxListedOrder || b.Len()+len(line) > maxReplyLength-32 {
			fmt.Fprintf(&b, "\n...and %d more", len(orders)-i)
			break
		}
		b.WriteString(line)
	}
	return b.String()
}

func ephemeral(content string) dto.InteractionResponse {
	return dto.InteractionResponse{Content: content, Ephemeral: true}
}
