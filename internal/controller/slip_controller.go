package controller

import (
	"os"
	"time"

	"equeue-slip-bot/internal/dto"
	"equeue-slip-bot/internal/pkg/serverutils"
	"equeue-slip-bot/internal/service"
	"equeue-slip-bot/pkg/conversation"

	"github.com/gofiber/fiber/v2"
)

type ISlipController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type slipController struct {
	renderer conversation.DocumentRenderer
	service  service.IConversationService
}

func NewSlipController(renderer conversation.DocumentRenderer, svc service.IConversationService) ISlipController {
	return &slipController{
		renderer: renderer,
		service:  svc,
	}
}

func (c *slipController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
	r.Post("/slips", c.Create)
}

func (c *slipController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("OK", dto.HealthResponse{
		Status:         "ok",
		ActiveSessions: c.service.ActiveSessions(),
		Time:           time.Now(),
	}))
}

// Create renders the posted form and streams the PNG back.
func (c *slipController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateSlipRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	art, err := c.renderer.Render(req.ToForm())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render slip")
	}
	defer c.service.Release(ctx.UserContext(), &art)

	data, err := os.ReadFile(art.Path)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read slip")
	}

	ctx.Set(fiber.HeaderContentType, "image/png")
	ctx.Set("X-Artifact-Id", art.ID)
	return ctx.Send(data)
}
