package handlers

import (
	"errors"
	"mime/multipart"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/internal/api/presenters"
	"Recipe-Share-Backend/internal/utils/storage"
	"Recipe-Share-Backend/pkg/recipe"
)

type (
	RecipeHandler interface {
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		ListRecipes(c *fiber.Ctx) error
		MyRecipes(c *fiber.Ctx) error
		GetRecipe(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func recipeStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecipeNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrNotRecipeOwner):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrInvalidIngredientsJSON),
		errors.Is(err, domain.ErrInvalidStepsJSON),
		errors.Is(err, domain.ErrMediaIndexMismatch),
		errors.Is(err, domain.ErrMediaIndexOutOfRange),
		errors.Is(err, domain.ErrInvalidVideoType),
		errors.Is(err, storage.ErrContentTypeNotAllowed):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func parseIdxList(values []string) ([]int, error) {
	indexes := make([]int, 0, len(values))
	for _, v := range values {
		idx, err := strconv.Atoi(v)
		if err != nil {
			return nil, domain.ErrMediaIndexMismatch
		}
		indexes = append(indexes, idx)
	}
	return indexes, nil
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		req.StepImages = form.File["step_images"]
		req.StepVideos = form.File["step_videos"]

		imageIdx, err := parseIdxList(form.Value["step_images_step_idx"])
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
		}
		req.StepImageIdx = imageIdx

		videoIdx, err := parseIdxList(form.Value["step_videos_step_idx"])
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
		}
		req.StepVideoIdx = videoIdx
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	res, err := h.recipeService.Create(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, recipeStatus(err), domain.MessageFailedCreateRecipe, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"recipe": res}, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func formString(form *multipart.Form, key string) *string {
	if values, ok := form.Value[key]; ok && len(values) > 0 {
		return &values[0]
	}
	return nil
}

func formInt(form *multipart.Form, key string) (*int, error) {
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return nil, nil
	}
	n, err := strconv.Atoi(values[0])
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// UpdateRecipe applies a sparse patch: only fields present in the form are
// touched.
func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	form, err := c.MultipartForm()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req := domain.UpdateRecipeRequest{
		Title:           formString(form, "title"),
		Description:     formString(form, "description"),
		CuisineType:     formString(form, "cuisine_type"),
		Difficulty:      formString(form, "difficulty"),
		IngredientsJSON: formString(form, "ingredients_json"),
		StepsJSON:       formString(form, "steps_json"),
	}

	for key, dst := range map[string]**int{
		"prep_time_min": &req.PrepTimeMin,
		"cook_time_min": &req.CookTimeMin,
		"servings":      &req.Servings,
	} {
		n, err := formInt(form, key)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
		*dst = n
	}

	if err := h.recipeService.Update(c.Context(), recipeID, req, userID); err != nil {
		return presenters.ErrorResponse(c, recipeStatus(err), domain.MessageFailedUpdateRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	if err := h.recipeService.Delete(c.Context(), recipeID, userID); err != nil {
		return presenters.ErrorResponse(c, recipeStatus(err), domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

func (h *recipeHandler) ListRecipes(c *fiber.Ctx) error {
	req := domain.SearchRecipesRequest{
		Query:      c.Query("q", ""),
		Cuisine:    c.Query("cuisine", ""),
		Difficulty: c.Query("difficulty", ""),
		Skip:       c.QueryInt("skip", 0),
		Limit:      c.QueryInt("limit", domain.DefaultListLimit),
	}

	if maxTime, err := strconv.Atoi(c.Query("max_time", "")); err == nil {
		req.MaxTime = &maxTime
	}

	res, err := h.recipeService.Search(c.Context(), req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) MyRecipes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	items, err := h.recipeService.Mine(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"items": items}, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipe(c *fiber.Ctx) error {
	recipeID := c.Params("id")

	res, err := h.recipeService.GetByID(c.Context(), recipeID)
	if err != nil {
		return presenters.ErrorResponse(c, recipeStatus(err), domain.MessageFailedGetRecipe, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"recipe": res}, fiber.StatusOK, domain.MessageSuccessGetRecipe)
}
