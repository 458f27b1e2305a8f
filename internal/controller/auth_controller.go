package controller

import (
	"mycloud-drive/internal/dto"
	"mycloud-drive/internal/pkg/serverutils"
	"mycloud-drive/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	r.Post("/register", c.Register)
	r.Post("/login", c.Login)
}

func credentials(ctx *fiber.Ctx) (dto.Credentials, error) {
	username, password, ok := serverutils.BasicCredentials(ctx)
	if !ok {
		return dto.Credentials{}, fiber.NewError(fiber.StatusUnauthorized, "Missing credentials")
	}
	creds := dto.Credentials{Username: username, Password: password}
	if err := serverutils.ValidateRequest(creds); err != nil {
		return dto.Credentials{}, err
	}
	return creds, nil
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	creds, err := credentials(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Register(ctx.UserContext(), creds)
	if err != nil {
		return httpError(err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse(res.Message, res))
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	creds, err := credentials(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Login(ctx.UserContext(), creds)
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}
