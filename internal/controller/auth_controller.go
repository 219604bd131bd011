package controller

import (
	"humanlenk-be/internal/dto"
	"humanlenk-be/internal/pkg/serverutils"
	"humanlenk-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
	UpdateProfile(ctx *fiber.Ctx) error
	ChangePassword(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/auth")
	h.Post("/register", c.Register)
	h.Post("/login", c.Login)
	h.Get("/me", auth, c.Me)
	h.Patch("/me", auth, c.UpdateProfile)
	h.Post("/change-password", auth, c.ChangePassword)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Register(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return serverutils.Created(ctx, "User registered successfully", res)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return serverutils.OKMessage(ctx, "Login successful", res)
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	res, err := c.service.Me(ctx.Context(), serverutils.CallerId(ctx))
	if err != nil {
		return err
	}
	return serverutils.OK(ctx, res)
}

func (c *authController) UpdateProfile(ctx *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.UpdateProfile(ctx.Context(), serverutils.CallerId(ctx), &req)
	if err != nil {
		return err
	}
	return serverutils.OKMessage(ctx, "Profile updated", res)
}

func (c *authController) ChangePassword(ctx *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	if err := c.service.ChangePassword(ctx.Context(), serverutils.CallerId(ctx), &req); err != nil {
		return err
	}
	return serverutils.OKMessage(ctx, "Password changed successfully", nil)
}
