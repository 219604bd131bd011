package controller

import (
	"humanlenk-be/internal/dto"
	"humanlenk-be/internal/pkg/serverutils"
	"humanlenk-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISurveyController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Submit(ctx *fiber.Ctx) error
	My(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
}

type surveyController struct {
	service service.ISurveyService
}

func NewSurveyController(service service.ISurveyService) ISurveyController {
	return &surveyController{service: service}
}

func (c *surveyController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/surveys")
	h.Post("/", auth, c.Submit)
	h.Get("/my", auth, c.My)
	h.Get("/stats", c.Stats) // public aggregate
}

func (c *surveyController) Submit(ctx *fiber.Ctx) error {
	var req dto.SubmitSurveyRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Submit(ctx.Context(), serverutils.CallerId(ctx), &req)
	if err != nil {
		return err
	}
	return serverutils.Created(ctx, "Survey submitted. Thank you for your feedback!", res)
}

func (c *surveyController) My(ctx *fiber.Ctx) error {
	res, err := c.service.My(ctx.Context(), serverutils.CallerId(ctx))
	if err != nil {
		return err
	}
	return serverutils.OK(ctx, res)
}

func (c *surveyController) Stats(ctx *fiber.Ctx) error {
	res, err := c.service.Stats(ctx.Context())
	if err != nil {
		return err
	}
	return serverutils.OK(ctx, res)
}
