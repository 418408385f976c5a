package api

import (
	"math"
	"strconv"

	"backend_ftth/database"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetDB извлекает подключение к БД из контекста Gin; если middleware его
// не установил, используется общее подключение приложения
func GetDB(c *gin.Context) *gorm.DB {
	if value, exists := c.Get("db"); exists {
		if db, ok := value.(*gorm.DB); ok {
			return db
		}
	}
	return database.GetDB()
}

// toFloat приводит JSON-значение к float64. Клиенты старого фронтенда
// присылают числа строками, поэтому строки тоже принимаются.
func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// toInt приводит JSON-значение к целому
func toInt(value interface{}) (int, bool) {
	parsed, ok := toFloat(value)
	if !ok || parsed != math.Trunc(parsed) {
		return 0, false
	}
	return int(parsed), true
}

// toString приводит JSON-значение к строке
func toString(value interface{}) (string, bool) {
	s, ok := value.(string)
	return s, ok
}

// isFinite проверяет, что число конечно
func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
