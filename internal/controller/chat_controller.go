package controller

import (
	"humanlenk-be/internal/dto"
	"humanlenk-be/internal/pkg/apperror"
	"humanlenk-be/internal/pkg/serverutils"
	"humanlenk-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	CreateSession(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	DeleteMessage(ctx *fiber.Ctx) error
	ClearMessages(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/chat", auth)
	h.Post("/sessions", c.CreateSession)
	h.Get("/sessions", c.ListSessions)
	h.Delete("/sessions/:id", c.DeleteSession)
	h.Post("/", c.SendMessage)
	h.Get("/messages", c.GetMessages)
	h.Delete("/messages/:id", c.DeleteMessage)
	h.Delete("/messages", c.ClearMessages)
	h.Get("/stats", c.Stats)
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CreateSession(ctx.Context(), serverutils.CallerId(ctx), &req)
	if err != nil {
		return err
	}
	return serverutils.Created(ctx, "Chat session created", res)
}

func (c *chatController) ListSessions(ctx *fiber.Ctx) error {
	res, err := c.service.ListSessions(ctx.Context(), serverutils.CallerId(ctx))
	if err != nil {
		return err
	}
	return serverutils.OK(ctx, res)
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	sessionId, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.service.DeleteSession(ctx.Context(), serverutils.CallerId(ctx), sessionId); err != nil {
		return err
	}
	return serverutils.OKMessage(ctx, "Chat session deleted", nil)
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.Context(), serverutils.CallerId(ctx), &req)
	if err != nil {
		return err
	}
	return serverutils.OK(ctx, res)
}

func (c *chatController) GetMessages(ctx *fiber.Ctx) error {
	var req dto.GetMessagesRequest
	if err := serverutils.ParseQueryAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.GetMessages(ctx.Context(), serverutils.CallerId(ctx), &req)
	if err != nil {
		return err
	}
	return serverutils.OK(ctx, res)
}

func (c *chatController) DeleteMessage(ctx *fiber.Ctx) error {
	messageId, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.service.DeleteMessage(ctx.Context(), serverutils.CallerId(ctx), messageId); err != nil {
		return err
	}
	return serverutils.OKMessage(ctx, "Message deleted", nil)
}

func (c *chatController) ClearMessages(ctx *fiber.Ctx) error {
	res, err := c.service.ClearMessages(ctx.Context(), serverutils.CallerId(ctx))
	if err != nil {
		return err
	}
	return serverutils.OKMessage(ctx, "Chat history cleared", res)
}

func (c *chatController) Stats(ctx *fiber.Ctx) error {
	res, err := c.service.Stats(ctx.Context(), serverutils.CallerId(ctx))
	if err != nil {
		return err
	}
	return serverutils.OK(ctx, res)
}

// parseIdParam reads the ":id" route parameter as a UUID.
func parseIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.BadRequest("Invalid ID format")
	}
	return id, nil
}
