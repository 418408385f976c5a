package api

import (
	"backend_ftth/services"

	"github.com/gin-gonic/gin"
)

// GetStatistics возвращает сводку по инвентарю: количество элементов по
// каждому типу справочника (включая нулевые), количество маршрутов всего
// и по статусам, суммарную длину кабеля в километрах. Сводка считается
// заново при каждом вызове.
func GetStatistics(c *gin.Context) {
	db := GetDB(c)

	statisticsService := services.NewStatisticsService(db)
	overview, err := statisticsService.Overview()
	if err != nil {
		c.JSON(500, gin.H{"status": "error", "error": "Ошибка расчета статистики"})
		return
	}

	c.JSON(200, gin.H{"status": "success", "data": overview})
}
