package routes

import (
	"github.com/gofiber/fiber/v2"

	"Recipe-Share-Backend/internal/api/handlers"
	"Recipe-Share-Backend/internal/middleware"
	"Recipe-Share-Backend/pkg/jwt"
	"Recipe-Share-Backend/pkg/user"
)

type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	RecipeHandler  handlers.RecipeHandler
	CookingHandler handlers.CookingHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
	UserRepository user.UserRepository
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Auth()
	c.Recipes()
	c.Cooking()
	c.GuestRoute()
}

func (c *Config) authGuard() fiber.Handler {
	return c.Middleware.AuthMiddleware(c.JWTService, c.UserRepository)
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth")
	{
		auth.Post("/register", c.UserHandler.Register)
		auth.Post("/login", c.UserHandler.Login)
		auth.Get("/me", c.authGuard(), c.UserHandler.Me)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/recipes")
	{
		recipes.Post("", c.authGuard(), c.RecipeHandler.CreateRecipe)
		recipes.Get("", c.RecipeHandler.ListRecipes)
		// /mine must be registered before /:id
		recipes.Get("/mine", c.authGuard(), c.RecipeHandler.MyRecipes)
		recipes.Get("/:id", c.RecipeHandler.GetRecipe)
		recipes.Put("/:id", c.authGuard(), c.RecipeHandler.UpdateRecipe)
		recipes.Delete("/:id", c.authGuard(), c.RecipeHandler.DeleteRecipe)
	}
}

func (c *Config) Cooking() {
	cookingGroup := c.App.Group("/api/cooking", c.authGuard())
	{
		cookingGroup.Post("/start/:recipe_id", c.CookingHandler.StartCooking)
		cookingGroup.Post("/complete/:recipe_id", c.CookingHandler.CompleteCooking)
		cookingGroup.Get("/history", c.CookingHandler.CookingHistory)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
