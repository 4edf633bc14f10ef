package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"Recipe-Share-Backend/internal/api/handlers"
	"Recipe-Share-Backend/internal/api/routes"
	"Recipe-Share-Backend/internal/middleware"
	"Recipe-Share-Backend/internal/utils"
	"Recipe-Share-Backend/internal/utils/storage"
	"Recipe-Share-Backend/pkg/cooking"
	"Recipe-Share-Backend/pkg/jwt"
	"Recipe-Share-Backend/pkg/recipe"
	"Recipe-Share-Backend/pkg/user"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// media storage
	var mediaStorage storage.Storage
	if utils.GetConfig("STORAGE_DRIVER") == "s3" {
		mediaStorage = storage.NewAwsS3()
	} else {
		uploadDir := utils.GetConfig("UPLOAD_DIR")
		if uploadDir == "" {
			uploadDir = "uploads"
		}
		local, err := storage.NewLocalStorage(uploadDir)
		if err != nil {
			return nil, err
		}
		mediaStorage = local
		app.Static("/uploads", uploadDir)
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	cookingRepository := cooking.NewCookingRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService, mediaStorage)
	recipeService := recipe.NewRecipeService(recipeRepository, mediaStorage)
	cookingService := cooking.NewCookingService(cookingRepository, recipeRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	cookingHandler := handlers.NewCookingHandler(cookingService)

	// routes
	routesConfig := routes.Config{
		App:            app,
		UserHandler:    userHandler,
		RecipeHandler:  recipeHandler,
		CookingHandler: cookingHandler,
		Middleware:     middlewares,
		JWTService:     jwtService,
		UserRepository: userRepository,
	}
	routesConfig.Setup()
	return app, nil
}
