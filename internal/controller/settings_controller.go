package controller

import (
	"co-brain-be/internal/dto"
	"co-brain-be/internal/pkg/serverutils"
	"co-brain-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISettingsController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Show(ctx *fiber.Ctx) error
	SetMode(ctx *fiber.Ctx) error
	SetProvider(ctx *fiber.Ctx) error
	SetCredentials(ctx *fiber.Ctx) error
}

type settingsController struct {
	service service.ISettingsService
}

func NewSettingsController(service service.ISettingsService) ISettingsController {
	return &settingsController{service: service}
}

func (c *settingsController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/settings/v1")
	h.Use(auth)
	h.Get("", c.Show)
	h.Put("mode", c.SetMode)
	h.Put("provider", c.SetProvider)
	h.Put("credentials", c.SetCredentials)
}

func (c *settingsController) Show(ctx *fiber.Ctx) error {
	sess, err := serverutils.CurrentSession(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get settings", c.service.Get(ctx.Context(), sess)))
}

func (c *settingsController) SetMode(ctx *fiber.Ctx) error {
	sess, err := serverutils.CurrentSession(ctx)
	if err != nil {
		return err
	}

	var req dto.SetModeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ErrBadRequest("invalid JSON request")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SetMode(ctx.Context(), sess, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success set mode", res))
}

func (c *settingsController) SetProvider(ctx *fiber.Ctx) error {
	sess, err := serverutils.CurrentSession(ctx)
	if err != nil {
		return err
	}

	var req dto.SetProviderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ErrBadRequest("invalid JSON request")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SetProvider(ctx.Context(), sess, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success set provider", res))
}

func (c *settingsController) SetCredentials(ctx *fiber.Ctx) error {
	sess, err := serverutils.CurrentSession(ctx)
	if err != nil {
		return err
	}

	var req dto.SetCredentialsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ErrBadRequest("invalid JSON request")
	}

	res, err := c.service.SetCredentials(ctx.Context(), sess, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success set credentials", res))
}
