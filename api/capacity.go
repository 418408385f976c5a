package api

import (
	"strconv"

	"backend_ftth/models"
	"backend_ftth/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetItemCapacity возвращает расчетное состояние емкости элемента:
// сумма core_count по привязанным маршрутам, свободный остаток и
// информационная классификация запаса. Кэш core_used не меняется.
func GetItemCapacity(c *gin.Context) {
	db := GetDB(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"status": "error", "error": "Некорректный ID элемента"})
		return
	}

	var item models.Item
	if err := db.First(&item, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(404, gin.H{"status": "error", "error": "Элемент не найден"})
		} else {
			c.JSON(500, gin.H{"status": "error", "error": "Ошибка поиска элемента"})
		}
		return
	}

	capacityService := services.NewCapacityService(db)
	used, err := capacityService.ComputeUsedCores(item.ID)
	if err != nil {
		c.JSON(500, gin.H{"status": "error", "error": "Ошибка подсчета занятых жил"})
		return
	}

	c.JSON(200, gin.H{
		"status": "success",
		"data": services.CapacitySnapshot{
			ItemID:            item.ID,
			TotalCoreCapacity: item.TotalCoreCapacity,
			CoreUsed:          used,
			CoreAvailable:     item.TotalCoreCapacity - used,
			CapacityStatus:    services.CapacityStatus(item.TotalCoreCapacity, used),
		},
	})
}

// SyncItemCapacity пересчитывает занятые жилы элемента по привязанным
// маршрутам и сохраняет результат в core_used
func SyncItemCapacity(c *gin.Context) {
	db := GetDB(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"status": "error", "error": "Некорректный ID элемента"})
		return
	}

	capacityService := services.NewCapacityService(db)
	snapshot, err := capacityService.SyncItemCapacity(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(404, gin.H{"status": "error", "error": "Элемент не найден"})
		} else {
			c.JSON(500, gin.H{"status": "error", "error": "Ошибка синхронизации емкости"})
		}
		return
	}

	c.JSON(200, gin.H{
		"status":  "success",
		"message": "Емкость элемента синхронизирована",
		"data":    snapshot,
	})
}
