package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"backend_ftth/config"
	"backend_ftth/middleware"
	"backend_ftth/models"
	"backend_ftth/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupAuthRouter создает роутер с реальными middleware аутентификации
func setupAuthRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	_, err := config.LoadConfig()
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	})

	router.POST("/api/auth/login", Login)

	authorized := router.Group("/api", middleware.RequireAuth())
	authorized.GET("/auth/me", GetCurrentUser)
	authorized.GET("/items", GetItems)

	admin := router.Group("/api", middleware.RequireAuth(), middleware.RequireAdmin())
	admin.POST("/items", CreateItem)

	return router
}

// createTestUser создает пользователя с заданной ролью
func createTestUser(t *testing.T, db *gorm.DB, username, password, role string) models.User {
	user := models.User{
		Username: username,
		FullName: "Тестовый пользователь",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, user.SetPassword(password))
	require.NoError(t, db.Create(&user).Error)
	return user
}

// loginAndGetToken выполняет вход и возвращает токен
func loginAndGetToken(t *testing.T, router *gin.Engine, username, password string) string {
	w := performRequest(router, "POST", "/api/auth/login", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response struct {
		Status string `json:"status"`
		Data   struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.Data.Token)
	return response.Data.Token
}

func TestLogin(t *testing.T) {
	db := testutils.SetupTestDB(t)
	router := setupAuthRouter(t, db)

	createTestUser(t, db, "admin", "admin123", "admin")

	t.Run("Успешный вход", func(t *testing.T) {
		token := loginAndGetToken(t, router, "admin", "admin123")
		assert.NotEmpty(t, token)
	})

	t.Run("Неверный пароль", func(t *testing.T) {
		w := performRequest(router, "POST", "/api/auth/login", gin.H{
			"username": "admin",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Несуществующий пользователь", func(t *testing.T) {
		w := performRequest(router, "POST", "/api/auth/login", gin.H{
			"username": "nobody",
			"password": "whatever",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Отключенная учетная запись", func(t *testing.T) {
		user := createTestUser(t, db, "disabled", "secret123", "teknisi")
		require.NoError(t, db.Model(&user).Update("is_active", false).Error)

		w := performRequest(router, "POST", "/api/auth/login", gin.H{
			"username": "disabled",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Пароль не попадает в ответ", func(t *testing.T) {
		w := performRequest(router, "POST", "/api/auth/login", gin.H{
			"username": "admin",
			"password": "admin123",
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "password")
	})
}

func TestRequireAuth(t *testing.T) {
	db := testutils.SetupTestDB(t)
	router := setupAuthRouter(t, db)

	createTestUser(t, db, "admin", "admin123", "admin")

	t.Run("Запрос без токена отклоняется", func(t *testing.T) {
		w := performRequest(router, "GET", "/api/items", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Запрос с мусорным токеном отклоняется", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/items", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := performRawRequest(router, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Запрос с валидным токеном проходит", func(t *testing.T) {
		token := loginAndGetToken(t, router, "admin", "admin123")

		req, _ := http.NewRequest("GET", "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := performRawRequest(router, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var response struct {
			Status string      `json:"status"`
			Data   models.User `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "admin", response.Data.Username)
	})
}

func TestRequireAdmin(t *testing.T) {
	db := testutils.SetupTestDB(t)
	router := setupAuthRouter(t, db)

	createTestUser(t, db, "admin", "admin123", "admin")
	createTestUser(t, db, "teknisi", "teknisi123", "teknisi")

	payload := gin.H{
		"item_type_id": testutils.ItemTypeID(t, db, "Pole"),
		"name":         "Опора от техника",
		"latitude":     -6.20,
		"longitude":    106.80,
	}
	body, _ := json.Marshal(payload)

	t.Run("Техник не может создавать элементы", func(t *testing.T) {
		token := loginAndGetToken(t, router, "teknisi", "teknisi123")

		req, _ := http.NewRequest("POST", "/api/items", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := performRawRequest(router, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Администратор может создавать элементы", func(t *testing.T) {
		token := loginAndGetToken(t, router, "admin", "admin123")

		req, _ := http.NewRequest("POST", "/api/items", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := performRawRequest(router, req)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})
}
