package api

import (
	"encoding/json"
	"log"
	"time"

	"backend_ftth/middleware"
	"backend_ftth/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=3,max=64"`
}

// Структурированное логирование для авторизации
func logAuthOperation(operation, username string, details map[string]interface{}) {
	logData := map[string]interface{}{
		"timestamp": time.Now().Format(time.RFC3339),
		"operation": operation,
		"username":  username,
	}

	for key, value := range details {
		logData[key] = value
	}

	logJSON, _ := json.Marshal(logData)
	log.Printf("AUTH_LOG: %s", string(logJSON))
}

// Login проверяет учетные данные и выпускает JWT-токен
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logAuthOperation("login_validation_error", req.Username, map[string]interface{}{
			"error":      err.Error(),
			"status":     "failed",
			"ip_address": c.ClientIP(),
		})
		c.JSON(400, gin.H{"status": "error", "error": "Invalid username or password"})
		return
	}

	logAuthOperation("login_attempt", req.Username, map[string]interface{}{
		"ip_address": c.ClientIP(),
		"user_agent": c.GetHeader("User-Agent"),
	})

	db := GetDB(c)

	var user models.User
	if err := db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			logAuthOperation("login_failed", req.Username, map[string]interface{}{
				"reason":     "user_not_found",
				"status":     "failed",
				"ip_address": c.ClientIP(),
			})
			c.JSON(401, gin.H{"status": "error", "error": "Invalid username or password"})
		} else {
			c.JSON(500, gin.H{"status": "error", "error": "Ошибка поиска пользователя"})
		}
		return
	}

	if !user.IsActive {
		logAuthOperation("login_failed", req.Username, map[string]interface{}{
			"reason":     "user_inactive",
			"status":     "failed",
			"ip_address": c.ClientIP(),
		})
		c.JSON(401, gin.H{"status": "error", "error": "Учетная запись отключена"})
		return
	}

	if !user.CheckPassword(req.Password) {
		logAuthOperation("login_failed", req.Username, map[string]interface{}{
			"reason":     "wrong_password",
			"status":     "failed",
			"ip_address": c.ClientIP(),
		})
		c.JSON(401, gin.H{"status": "error", "error": "Invalid username or password"})
		return
	}

	token, err := middleware.IssueToken(&user)
	if err != nil {
		c.JSON(500, gin.H{"status": "error", "error": "Ошибка выпуска токена"})
		return
	}

	logAuthOperation("login_success", req.Username, map[string]interface{}{
		"user_id":    user.ID,
		"role":       user.Role,
		"status":     "success",
		"ip_address": c.ClientIP(),
	})

	c.JSON(200, gin.H{
		"status": "success",
		"data": gin.H{
			"token": token,
			"user":  user,
		},
	})
}

// GetCurrentUser возвращает профиль аутентифицированного пользователя
func GetCurrentUser(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(401, gin.H{"status": "error", "error": "Требуется аутентификация"})
		return
	}

	db := GetDB(c)

	var user models.User
	if err := db.First(&user, claims.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(404, gin.H{"status": "error", "error": "Пользователь не найден"})
		} else {
			c.JSON(500, gin.H{"status": "error", "error": "Ошибка поиска пользователя"})
		}
		return
	}

	c.JSON(200, gin.H{"status": "success", "data": user})
}
