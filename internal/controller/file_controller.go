package controller

import (
	"humanlenk-be/internal/dto"
	"humanlenk-be/internal/pkg/apperror"
	"humanlenk-be/internal/pkg/serverutils"
	"humanlenk-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFileController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Upload(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type fileController struct {
	service service.IFileService
}

func NewFileController(service service.IFileService) IFileController {
	return &fileController{service: service}
}

func (c *fileController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/files", auth)
	h.Post("/upload", c.Upload)
	h.Get("/", c.List)
	h.Get("/:id", c.Get)
	h.Get("/:id/download", c.Download)
	h.Delete("/:id", c.Delete)
}

func (c *fileController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return apperror.BadRequest("No file uploaded")
	}

	res, err := c.service.Upload(ctx.Context(), serverutils.CallerId(ctx), fileHeader)
	if err != nil {
		return err
	}
	return serverutils.Created(ctx, "File uploaded successfully", res)
}

func (c *fileController) List(ctx *fiber.Ctx) error {
	var req dto.ListFilesRequest
	if err := serverutils.ParseQueryAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.List(ctx.Context(), serverutils.CallerId(ctx), &req)
	if err != nil {
		return err
	}
	return serverutils.OK(ctx, res)
}

func (c *fileController) Get(ctx *fiber.Ctx) error {
	fileId, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Get(ctx.Context(), serverutils.CallerId(ctx), fileId)
	if err != nil {
		return err
	}
	return serverutils.OK(ctx, res)
}

func (c *fileController) Download(ctx *fiber.Ctx) error {
	fileId, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Download(ctx.Context(), serverutils.CallerId(ctx), fileId)
	if err != nil {
		return err
	}
	return serverutils.OK(ctx, res)
}

func (c *fileController) Delete(ctx *fiber.Ctx) error {
	fileId, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.Context(), serverutils.CallerId(ctx), fileId); err != nil {
		return err
	}
	return serverutils.OKMessage(ctx, "File deleted", nil)
}
