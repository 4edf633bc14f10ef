package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/api/handlers"
	"Recipe-Share-Backend/internal/middleware"
	"Recipe-Share-Backend/internal/utils/storage"
	"Recipe-Share-Backend/pkg/cooking"
	"Recipe-Share-Backend/pkg/jwt"
	"Recipe-Share-Backend/pkg/recipe"
	"Recipe-Share-Backend/pkg/user"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.Recipe{}, &entities.CookingSession{}))

	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	validate := validator.New()
	jwtService := jwt.NewJWTServiceWith("test-secret", time.Hour)

	userRepository := user.NewUserRepository(db)
	userService := user.NewUserService(userRepository, jwtService, local)

	recipeRepository := recipe.NewRecipeRepository(db)
	recipeService := recipe.NewRecipeService(recipeRepository, local)

	cookingRepository := cooking.NewCookingRepository(db)
	cookingService := cooking.NewCookingService(cookingRepository, recipeRepository)

	app := fiber.New()
	routesConfig := Config{
		App:            app,
		UserHandler:    handlers.NewUserHandler(userService, validate),
		RecipeHandler:  handlers.NewRecipeHandler(recipeService, validate),
		CookingHandler: handlers.NewCookingHandler(cookingService),
		Middleware:     middleware.NewMiddleware(),
		JWTService:     jwtService,
		UserRepository: userRepository,
	}
	routesConfig.Setup()
	return app
}

func formBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func doForm(t *testing.T, app *fiber.App, method, target, token string, fields map[string]string) (*http.Response, envelope) {
	t.Helper()
	body, contentType := formBody(t, fields)
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return doReq(t, app, req)
}

func doReq(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, envelope) {
	t.Helper()
	res, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	res.Body.Close()

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	return res, env
}

func registerUser(t *testing.T, app *fiber.App, username, email string) (token, userID string) {
	t.Helper()
	res, env := doForm(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "message: %s error: %s", env.Message, env.Error)

	var auth struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &auth))
	require.NotEmpty(t, auth.Token)
	return auth.Token, auth.User.ID
}

func recipeFields() map[string]string {
	return map[string]string{
		"title":            "Carbonara",
		"description":      "Classic roman pasta",
		"cuisine_type":     "Italian",
		"difficulty":       "Medium",
		"prep_time_min":    "10",
		"cook_time_min":    "20",
		"servings":         "2",
		"ingredients_json": `[{"name":"Spaghetti","qty":200,"unit":"g"}]`,
		"steps_json":       `[{"text":"Boil pasta"},{"text":"Fry guanciale"}]`,
	}
}

func createRecipe(t *testing.T, app *fiber.App, token string) string {
	t.Helper()
	res, env := doForm(t, app, http.MethodPost, "/api/recipes", token, recipeFields())
	require.Equal(t, http.StatusCreated, res.StatusCode, "message: %s error: %s", env.Message, env.Error)

	var data struct {
		Recipe struct {
			ID string `json:"id"`
		} `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Recipe.ID)
	return data.Recipe.ID
}

func TestPing(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t)

	token, _ := registerUser(t, app, "cook", "cook@example.com")

	// Duplicate email conflicts even with a different username.
	res, env := doForm(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "othercook",
		"email":    "cook@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Equal(t, "error", env.Status)

	res, _ = doForm(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "shorty",
		"email":    "shorty@example.com",
		"password": "12345",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, _ = doForm(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "cook@example.com",
		"password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, env = doForm(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "cook@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, env = doReq(t, app, req)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var me struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "cook", me.Username)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	res, _ = doReq(t, app, req)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestRecipeRequiresAuth(t *testing.T) {
	app := newTestApp(t)

	res, _ := doForm(t, app, http.MethodPost, "/api/recipes", "", recipeFields())
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = doForm(t, app, http.MethodPost, "/api/recipes", "not-a-token", recipeFields())
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestRecipeFlow(t *testing.T) {
	app := newTestApp(t)
	token, userID := registerUser(t, app, "cook", "cook@example.com")
	otherToken, _ := registerUser(t, app, "rival", "rival@example.com")

	recipeID := createRecipe(t, app, token)

	// Public list omits step bodies.
	req := httptest.NewRequest(http.MethodGet, "/api/recipes", nil)
	res, env := doReq(t, app, req)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var list struct {
		Items []map[string]any `json:"items"`
		Total int64            `json:"total"`
		Limit int              `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Items, 1)
	assert.EqualValues(t, 1, list.Total)
	assert.NotContains(t, list.Items[0], "steps")
	assert.Equal(t, userID, list.Items[0]["user_id"])

	req = httptest.NewRequest(http.MethodGet, "/api/recipes?limit=1000", nil)
	_, env = doReq(t, app, req)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 50, list.Limit)

	// Detail carries the full steps.
	req = httptest.NewRequest(http.MethodGet, "/api/recipes/"+recipeID, nil)
	res, env = doReq(t, app, req)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var detail struct {
		Recipe struct {
			Title string `json:"title"`
			Steps []struct {
				Text string `json:"text"`
			} `json:"steps"`
		} `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, "Carbonara", detail.Recipe.Title)
	require.Len(t, detail.Recipe.Steps, 2)
	assert.Equal(t, "Boil pasta", detail.Recipe.Steps[0].Text)

	// Sparse update touches only the supplied field.
	res, _ = doForm(t, app, http.MethodPut, "/api/recipes/"+recipeID, token, map[string]string{
		"title": "Carbonara Deluxe",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/recipes/"+recipeID, nil)
	_, env = doReq(t, app, req)
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, "Carbonara Deluxe", detail.Recipe.Title)
	assert.Len(t, detail.Recipe.Steps, 2)

	res, _ = doForm(t, app, http.MethodPut, "/api/recipes/"+recipeID, otherToken, map[string]string{
		"title": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	req = httptest.NewRequest(http.MethodDelete, "/api/recipes/"+recipeID, nil)
	req.Header.Set("Authorization", "Bearer "+otherToken)
	res, _ = doReq(t, app, req)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	req = httptest.NewRequest(http.MethodDelete, "/api/recipes/"+recipeID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, _ = doReq(t, app, req)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/recipes/"+recipeID, nil)
	res, _ = doReq(t, app, req)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestMyRecipes(t *testing.T) {
	app := newTestApp(t)
	token, _ := registerUser(t, app, "cook", "cook@example.com")
	otherToken, _ := registerUser(t, app, "rival", "rival@example.com")

	createRecipe(t, app, token)
	createRecipe(t, app, otherToken)

	req := httptest.NewRequest(http.MethodGet, "/api/recipes/mine", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, env := doReq(t, app, req)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var data struct {
		Items []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data.Items, 1)
}

func TestCreateRecipeBadPayload(t *testing.T) {
	app := newTestApp(t)
	token, _ := registerUser(t, app, "cook", "cook@example.com")

	fields := recipeFields()
	fields["ingredients_json"] = "not-json"
	res, _ := doForm(t, app, http.MethodPost, "/api/recipes", token, fields)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	fields = recipeFields()
	delete(fields, "title")
	res, _ = doForm(t, app, http.MethodPost, "/api/recipes", token, fields)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestCookingFlow(t *testing.T) {
	app := newTestApp(t)
	token, _ := registerUser(t, app, "cook", "cook@example.com")
	recipeID := createRecipe(t, app, token)

	res, _ := doForm(t, app, http.MethodPost, "/api/cooking/complete/"+recipeID, token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode, "nothing to complete before a start")

	res, env := doForm(t, app, http.MethodPost, "/api/cooking/start/"+recipeID, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var started struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &started))
	assert.NotEmpty(t, started.SessionID)

	res, _ = doForm(t, app, http.MethodPost, "/api/cooking/complete/"+recipeID, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/cooking/history", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, env = doReq(t, app, req)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var history struct {
		Items []struct {
			RecipeTitle string  `json:"recipe_title"`
			Status      string  `json:"status"`
			CompletedAt *string `json:"completed_at"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &history))
	require.Len(t, history.Items, 1)
	assert.Equal(t, "Carbonara", history.Items[0].RecipeTitle)
	assert.Equal(t, "completed", history.Items[0].Status)
	assert.NotNil(t, history.Items[0].CompletedAt)

	res, _ = doForm(t, app, http.MethodPost, "/api/cooking/start/00000000-0000-0000-0000-000000000000", token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
