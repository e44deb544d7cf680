package controller

import (
	"time"

	"co-brain-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

type SessionCounter interface {
	Count() int
}

type ICheckController interface {
	RegisterRoutes(r fiber.Router)
	Healthy(ctx *fiber.Ctx) error
}

type checkController struct {
	sessions  SessionCounter
	startedAt time.Time
}

func NewCheckController(sessions SessionCounter) ICheckController {
	return &checkController{sessions: sessions, startedAt: time.Now()}
}

func (c *checkController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/check")
	h.Get("/healthy", c.Healthy)
}

func (c *checkController) Healthy(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("healthy", fiber.Map{
		"uptime_seconds":  int(time.Since(c.startedAt).Seconds()),
		"active_sessions": c.sessions.Count(),
	}))
}
