package websocket

import (
	"os"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/pkg/serverutils"
	"notekeeper-be/internal/ticket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ChangeFeedHandler exposes the live change feed: a ticket endpoint on
// the authenticated API and the websocket handshake that redeems it.
type ChangeFeedHandler struct {
	hub     *Hub
	tickets *ticket.Store
	logger  logger.ILogger
}

func NewChangeFeedHandler(hub *Hub, tickets *ticket.Store, log logger.ILogger) *ChangeFeedHandler {
	return &ChangeFeedHandler{
		hub:     hub,
		tickets: tickets,
		logger:  log,
	}
}

func (h *ChangeFeedHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/v1/ws-ticket", serverutils.JwtMiddleware, h.IssueTicket)
	r.Get("/ws/notes", h.ServeWs)
}

// IssueTicket hands the authenticated owner a short-lived connect
// ticket for the websocket handshake.
func (h *ChangeFeedHandler) IssueTicket(ctx *fiber.Ctx) error {
	ownerId, err := serverutils.OwnerFromLocals(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Unauthorized"))
	}

	t, err := h.tickets.Issue(ownerId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success issue ws ticket", dto.WsTicketResponse{Ticket: t}))
}

// ServeWs upgrades the connection after authenticating it through a
// connect ticket (browsers) or a bearer token (tooling).
func (h *ChangeFeedHandler) ServeWs(c *fiber.Ctx) error {
	ownerID, ok := h.authenticate(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid ticket or token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("ChangeFeedHandler", "Starting change feed session", map[string]interface{}{"owner_id": ownerID})
			ServeWs(h.hub, conn, ownerID)
			h.logger.Info("ChangeFeedHandler", "Change feed session ended", map[string]interface{}{"owner_id": ownerID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *ChangeFeedHandler) authenticate(c *fiber.Ctx) (uuid.UUID, bool) {
	// Priority 1: single-use ticket (browser standard)
	if t := c.Query("ticket"); t != "" {
		return h.tickets.Redeem(t)
	}

	// Priority 2: Authorization header (tooling/non-browser standard)
	authHeader := c.Get("Authorization")
	if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
		return uuid.Nil, false
	}

	token, err := jwt.Parse(authHeader[7:], func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("ChangeFeedHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return uuid.Nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, false
	}
	ownerIDStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, false
	}

	ownerID, err := uuid.Parse(ownerIDStr)
	if err != nil {
		return uuid.Nil, false
	}
	return ownerID, true
}
