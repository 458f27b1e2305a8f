package controller

import (
	"mycloud-drive/internal/dto"
	"mycloud-drive/internal/pkg/serverutils"
	"mycloud-drive/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
}

type chatbotController struct {
	chatbotService service.IChatbotService
	auth           fiber.Handler
}

func NewChatbotController(chatbotService service.IChatbotService, auth fiber.Handler) IChatbotController {
	return &chatbotController{
		chatbotService: chatbotService,
		auth:           auth,
	}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	r.Post("/chatbot", c.auth, c.Chat)
}

func (c *chatbotController) Chat(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.ChatbotRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbotService.Chat(ctx.UserContext(), userID, &req)
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(res)
}
