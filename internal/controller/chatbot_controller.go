package controller

import (
	"co-brain-be/internal/dto"
	"co-brain-be/internal/pkg/serverutils"
	"co-brain-be/internal/service"
	internalWS "co-brain-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	SendChat(ctx *fiber.Ctx) error
	Preview(ctx *fiber.Ctx) error
	GetChatHistory(ctx *fiber.Ctx) error
}

type chatbotController struct {
	service service.IChatbotService
	hub     *internalWS.Hub
}

func NewChatbotController(service service.IChatbotService, hub *internalWS.Hub) IChatbotController {
	return &chatbotController{service: service, hub: hub}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/chat/v1")
	h.Use(auth)
	h.Post("send", c.SendChat)
	h.Post("preview", c.Preview)
	h.Get("history", c.GetChatHistory)
	h.Get("ws", requireUpgrade, websocket.New(c.serveWs))
}

func (c *chatbotController) SendChat(ctx *fiber.Ctx) error {
	sess, err := serverutils.CurrentSession(ctx)
	if err != nil {
		return err
	}

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ErrBadRequest("invalid JSON request")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendChat(ctx.Context(), sess, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *chatbotController) Preview(ctx *fiber.Ctx) error {
	sess, err := serverutils.CurrentSession(ctx)
	if err != nil {
		return err
	}

	var req dto.PreviewChatRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return serverutils.ErrBadRequest("invalid JSON request")
		}
	}

	res, err := c.service.Preview(ctx.Context(), sess, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success preview prompt", res))
}

func (c *chatbotController) GetChatHistory(ctx *fiber.Ctx) error {
	sess, err := serverutils.CurrentSession(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", c.service.GetChatHistory(ctx.Context(), sess)))
}

func (c *chatbotController) serveWs(conn *websocket.Conn) {
	sess, err := serverutils.CurrentSessionFromLocals(func(key string) interface{} { return conn.Locals(key) })
	if err != nil {
		conn.Close()
		return
	}
	internalWS.ServeWs(c.hub, conn, sess.ID)
}

func requireUpgrade(ctx *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(ctx) {
		return ctx.Next()
	}
	return fiber.ErrUpgradeRequired
}
