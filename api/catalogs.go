package api

import (
	"backend_ftth/models"
	"backend_ftth/services"

	"github.com/gin-gonic/gin"
)

// GetItemTypes возвращает справочник типов элементов сети
func GetItemTypes(c *gin.Context) {
	var itemTypes []models.ItemType
	if err := services.GetCachedCatalog(services.CacheKeyItemTypes, &itemTypes); err == nil {
		c.JSON(200, gin.H{"status": "success", "data": itemTypes})
		return
	}

	if err := GetDB(c).Order("id").Find(&itemTypes).Error; err != nil {
		c.JSON(500, gin.H{"status": "error", "error": "Ошибка получения типов элементов"})
		return
	}

	// Справочник статичен, кэшируем надолго; сбой кэша не фатален
	_ = services.CacheCatalog(services.CacheKeyItemTypes, itemTypes)

	c.JSON(200, gin.H{"status": "success", "data": itemTypes})
}

// GetTubeColors возвращает справочник цветов туб/жил
func GetTubeColors(c *gin.Context) {
	var colors []models.TubeColor
	if err := services.GetCachedCatalog(services.CacheKeyTubeColors, &colors); err == nil {
		c.JSON(200, gin.H{"status": "success", "data": colors})
		return
	}

	if err := GetDB(c).Order("id").Find(&colors).Error; err != nil {
		c.JSON(500, gin.H{"status": "error", "error": "Ошибка получения цветов туб"})
		return
	}

	_ = services.CacheCatalog(services.CacheKeyTubeColors, colors)

	c.JSON(200, gin.H{"status": "success", "data": colors})
}

// GetSplitterTypes возвращает справочник типов сплиттеров
func GetSplitterTypes(c *gin.Context) {
	var splitters []models.SplitterType
	if err := services.GetCachedCatalog(services.CacheKeySplitterTypes, &splitters); err == nil {
		c.JSON(200, gin.H{"status": "success", "data": splitters})
		return
	}

	if err := GetDB(c).Order("id").Find(&splitters).Error; err != nil {
		c.JSON(500, gin.H{"status": "error", "error": "Ошибка получения типов сплиттеров"})
		return
	}

	_ = services.CacheCatalog(services.CacheKeySplitterTypes, splitters)

	c.JSON(200, gin.H{"status": "success", "data": splitters})
}
