package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/internal/api/presenters"
	"Recipe-Share-Backend/pkg/cooking"
)

type (
	CookingHandler interface {
		StartCooking(c *fiber.Ctx) error
		CompleteCooking(c *fiber.Ctx) error
		CookingHistory(c *fiber.Ctx) error
	}

	cookingHandler struct {
		cookingService cooking.CookingService
	}
)

func NewCookingHandler(cookingService cooking.CookingService) CookingHandler {
	return &cookingHandler{cookingService: cookingService}
}

func (h *cookingHandler) StartCooking(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("recipe_id")

	res, err := h.cookingService.Start(c.Context(), recipeID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedStartCooking, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedStartCooking, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessStartCooking)
}

func (h *cookingHandler) CompleteCooking(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("recipe_id")

	if err := h.cookingService.Complete(c.Context(), recipeID, userID); err != nil {
		if errors.Is(err, domain.ErrNoActiveCookingSession) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedCompleteCooking, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCompleteCooking, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCompleteCooking)
}

func (h *cookingHandler) CookingHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.cookingService.History(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetHistory, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetHistory)
}
