package controller

import (
	"humanlenk-be/internal/dto"
	"humanlenk-be/internal/pkg/serverutils"
	"humanlenk-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
}

type adminController struct {
	service service.IAdminService
}

func NewAdminController(service service.IAdminService) IAdminController {
	return &adminController{service: service}
}

func (c *adminController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/admin", auth, serverutils.RequireAdmin())

	h.Get("/users", c.ListUsers)
	h.Get("/users/:id", c.GetUser)
	h.Patch("/users/:id/role", c.UpdateUserRole)
	h.Delete("/users/:id", c.DeleteUser)

	h.Get("/files", c.ListFiles)
	h.Delete("/files/:id", c.DeleteFile)

	h.Get("/stats", c.Stats)
	h.Get("/surveys", c.ListSurveys)

	h.Get("/logs", c.Logs)
	h.Get("/logs/:id", c.LogById)
}

func (c *adminController) ListUsers(ctx *fiber.Ctx) error {
	var req dto.AdminListUsersRequest
	if err := serverutils.ParseQueryAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.ListUsers(ctx.Context(), serverutils.CallerId(ctx), &req)
	if err != nil {
		return err
	}
	return serverutils.OK(ctx, res)
}

func (c *adminController) GetUser(ctx *fiber.Ctx) error {
	userId, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetUser(ctx.Context(), serverutils.CallerId(ctx), userId)
	if err != nil {
		return err
	}
	return serverutils.OK(ctx, res)
}

func (c *adminController) UpdateUserRole(ctx *fiber.Ctx) error {
	userId, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.AdminUpdateRoleRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.UpdateUserRole(ctx.Context(), serverutils.CallerId(ctx), userId, &req)
	if err != nil {
		return err
	}
	return serverutils.OKMessage(ctx, "User role updated", res)
}

func (c *adminController) DeleteUser(ctx *fiber.Ctx) error {
	userId, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.service.DeleteUser(ctx.Context(), serverutils.CallerId(ctx), userId); err != nil {
		return err
	}
	return serverutils.OKMessage(ctx, "User deleted", nil)
}

func (c *adminController) ListFiles(ctx *fiber.Ctx) error {
	var req dto.AdminListFilesRequest
	if err := serverutils.ParseQueryAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.ListFiles(ctx.Context(), serverutils.CallerId(ctx), &req)
	if err != nil {
		return err
	}
	return serverutils.OK(ctx, res)
}

func (c *adminController) DeleteFile(ctx *fiber.Ctx) error {
	fileId, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.service.DeleteFile(ctx.Context(), serverutils.CallerId(ctx), fileId); err != nil {
		return err
	}
	return serverutils.OKMessage(ctx, "File deleted", nil)
}

func (c *adminController) Stats(ctx *fiber.Ctx) error {
	res, err := c.service.Stats(ctx.Context(), serverutils.CallerId(ctx))
	if err != nil {
		return err
	}
	return serverutils.OK(ctx, res)
}

func (c *adminController) ListSurveys(ctx *fiber.Ctx) error {
	var req dto.AdminListSurveysRequest
	if err := serverutils.ParseQueryAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.ListSurveys(ctx.Context(), serverutils.CallerId(ctx), &req)
	if err != nil {
		return err
	}
	return serverutils.OK(ctx, res)
}

func (c *adminController) Logs(ctx *fiber.Ctx) error {
	var req dto.AdminListLogsRequest
	if err := serverutils.ParseQueryAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Logs(ctx.Context(), serverutils.CallerId(ctx), &req)
	if err != nil {
		return err
	}
	return serverutils.OK(ctx, res)
}

func (c *adminController) LogById(ctx *fiber.Ctx) error {
	res, err := c.service.LogById(ctx.Context(), serverutils.CallerId(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}
	return serverutils.OK(ctx, res)
}
