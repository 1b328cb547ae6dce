package controller

import (
	"textbook-qa-be/internal/dto"
	"textbook-qa-be/internal/pkg/serverutils"
	"textbook-qa-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IQaController interface {
	RegisterRoutes(r fiber.Router)
	AskQuestion(ctx *fiber.Ctx) error
	GetAllSessions(ctx *fiber.Ctx) error
	GetChatHistory(ctx *fiber.Ctx) error
}

type qaController struct {
	service service.IQaService
}

func NewQaController(service service.IQaService) IQaController {
	return &qaController{service: service}
}

func (c *qaController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/qa/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/question", c.AskQuestion)
	h.Get("/sessions", c.GetAllSessions)
	h.Get("/sessions/:id/history", c.GetChatHistory)
}

func (c *qaController) AskQuestion(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.AskQuestionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ProcessQuestion(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process question", res))
}

func (c *qaController) GetAllSessions(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var documentId *uuid.UUID
	if raw := ctx.Query("document_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid document_id")
		}
		documentId = &id
	}

	res := c.service.GetAllSessions(ctx.Context(), userId, documentId)
	return ctx.JSON(serverutils.SuccessResponse("Success get all sessions", res))
}

func (c *qaController) GetChatHistory(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	res := c.service.GetChatHistory(ctx.Context(), userId, sessionId)
	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}
