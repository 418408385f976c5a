package api

import (
	"strconv"

	"backend_ftth/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// routeWithEndpoints присоединяет к маршруту данные обоих концов
func routeWithEndpoints(db *gorm.DB) *gorm.DB {
	return db.Model(&models.CableRoute{}).
		Preload("FromItem").
		Preload("ToItem")
}

// GetRoutes получает список всех кабельных маршрутов с данными концов
func GetRoutes(c *gin.Context) {
	db := GetDB(c)

	var routes []models.CableRoute
	if err := routeWithEndpoints(db).Order("created_at DESC").Find(&routes).Error; err != nil {
		c.JSON(500, gin.H{"status": "error", "error": "Ошибка получения маршрутов"})
		return
	}

	c.JSON(200, gin.H{"status": "success", "data": routes})
}

// GetRoute получает один маршрут по ID
func GetRoute(c *gin.Context) {
	db := GetDB(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"status": "error", "error": "Некорректный ID маршрута"})
		return
	}

	var route models.CableRoute
	if err := routeWithEndpoints(db).First(&route, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(404, gin.H{"status": "error", "error": "Маршрут не найден"})
		} else {
			c.JSON(500, gin.H{"status": "error", "error": "Ошибка получения маршрута"})
		}
		return
	}

	c.JSON(200, gin.H{"status": "success", "data": route})
}

// CreateRoute создает кабельный маршрут между двумя элементами сети.
// Проверка существования концов выполняется в той же транзакции, что и
// вставка, чтобы параллельное удаление элемента не оставило висячую ссылку.
func CreateRoute(c *gin.Context) {
	db := GetDB(c)

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(400, gin.H{"status": "error", "error": "Некорректные данные: " + err.Error()})
		return
	}

	fromItemID := models.NormalizeReferenceID(payload["from_item_id"])
	toItemID := models.NormalizeReferenceID(payload["to_item_id"])

	// Валидация обязательных полей
	if fromItemID == nil || toItemID == nil {
		c.JSON(400, gin.H{"status": "error", "error": "Обязательные поля: from_item_id и to_item_id"})
		return
	}
	if *fromItemID == *toItemID {
		c.JSON(400, gin.H{"status": "error", "error": "Концы маршрута должны быть разными элементами"})
		return
	}

	route := models.CableRoute{
		FromItemID: *fromItemID,
		ToItemID:   *toItemID,
	}

	if coordinates, ok := toString(payload["route_coordinates"]); ok {
		route.RouteCoordinates = coordinates
	}
	if cableType, ok := toString(payload["cable_type"]); ok {
		route.CableType = cableType
	}

	// Длина трассы вычисляется при создании и далее не пересчитывается
	if distance, ok := toFloat(payload["distance"]); ok {
		if !isFinite(distance) || distance < 0 {
			c.JSON(400, gin.H{"status": "error", "error": "Длина маршрута не может быть отрицательной"})
			return
		}
		route.Distance = &distance
	}

	route.CoreCount = 24
	if coreCount, ok := toInt(payload["core_count"]); ok {
		route.CoreCount = coreCount
	}
	if !models.IsValidCoreCount(route.CoreCount) {
		c.JSON(400, gin.H{"status": "error", "error": "Недопустимое количество жил"})
		return
	}

	route.Status = "planned"
	if status, ok := toString(payload["status"]); ok && status != "" {
		if !models.IsValidRouteStatus(status) {
			c.JSON(400, gin.H{"status": "error", "error": "Недопустимый статус маршрута"})
			return
		}
		route.Status = status
	}

	// Существование концов и вставка — в одной транзакции
	err := db.Transaction(func(tx *gorm.DB) error {
		var endpointCount int64
		if err := tx.Model(&models.Item{}).
			Where("id IN ?", []uint{route.FromItemID, route.ToItemID}).
			Count(&endpointCount).Error; err != nil {
			return err
		}
		if endpointCount != 2 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(&route).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(400, gin.H{"status": "error", "error": "Один из концов маршрута не найден"})
		} else {
			c.JSON(500, gin.H{"status": "error", "error": "Ошибка создания маршрута"})
		}
		return
	}

	// Загружаем созданный маршрут с данными концов
	if err := routeWithEndpoints(db).First(&route, route.ID).Error; err != nil {
		c.JSON(500, gin.H{"status": "error", "error": "Ошибка загрузки созданного маршрута"})
		return
	}

	c.JSON(201, gin.H{"status": "success", "data": route})
}

// UpdateRoute частично обновляет маршрут: меняются только переданные поля
func UpdateRoute(c *gin.Context) {
	db := GetDB(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"status": "error", "error": "Некорректный ID маршрута"})
		return
	}

	var route models.CableRoute
	if err := db.First(&route, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(404, gin.H{"status": "error", "error": "Маршрут не найден"})
		} else {
			c.JSON(500, gin.H{"status": "error", "error": "Ошибка поиска маршрута"})
		}
		return
	}

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(400, gin.H{"status": "error", "error": "Некорректные данные: " + err.Error()})
		return
	}

	updates := make(map[string]interface{})

	for field, value := range payload {
		switch field {
		case "route_coordinates":
			// Трасса заменяется целиком, по точкам не редактируется
			if coordinates, ok := toString(value); ok {
				updates["route_coordinates"] = coordinates
			}

		case "distance":
			distance, ok := toFloat(value)
			if !ok || !isFinite(distance) || distance < 0 {
				c.JSON(400, gin.H{"status": "error", "error": "Длина маршрута не может быть отрицательной"})
				return
			}
			updates["distance"] = distance

		case "cable_type":
			if cableType, ok := toString(value); ok {
				updates["cable_type"] = cableType
			}

		case "core_count":
			coreCount, ok := toInt(value)
			if !ok || !models.IsValidCoreCount(coreCount) {
				c.JSON(400, gin.H{"status": "error", "error": "Недопустимое количество жил"})
				return
			}
			updates["core_count"] = coreCount

		case "status":
			status, ok := toString(value)
			if !ok || !models.IsValidRouteStatus(status) {
				c.JSON(400, gin.H{"status": "error", "error": "Недопустимый статус маршрута"})
				return
			}
			updates["status"] = status
		}
	}

	if len(updates) == 0 {
		c.JSON(400, gin.H{"status": "error", "error": "Не передано ни одного поля для обновления"})
		return
	}

	if err := db.Model(&route).Updates(updates).Error; err != nil {
		c.JSON(500, gin.H{"status": "error", "error": "Ошибка обновления маршрута"})
		return
	}

	// Загружаем обновленный маршрут с данными концов
	if err := routeWithEndpoints(db).First(&route, route.ID).Error; err != nil {
		c.JSON(500, gin.H{"status": "error", "error": "Ошибка загрузки обновленного маршрута"})
		return
	}

	c.JSON(200, gin.H{"status": "success", "data": route})
}

// DeleteRoute удаляет один маршрут. Кэш занятых жил на концах при этом
// не пересчитывается: пересинхронизация емкости — отдельная операция.
func DeleteRoute(c *gin.Context) {
	db := GetDB(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"status": "error", "error": "Некорректный ID маршрута"})
		return
	}

	var route models.CableRoute
	if err := db.First(&route, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(404, gin.H{"status": "error", "error": "Маршрут не найден"})
		} else {
			c.JSON(500, gin.H{"status": "error", "error": "Ошибка поиска маршрута"})
		}
		return
	}

	if err := db.Delete(&route).Error; err != nil {
		c.JSON(500, gin.H{"status": "error", "error": "Ошибка удаления маршрута"})
		return
	}

	c.JSON(200, gin.H{"status": "success", "message": "Маршрут успешно удален"})
}

// deleteRoutesByItem удаляет все маршруты, у которых элемент является
// любым из концов, и возвращает их идентификаторы, чтобы вызывающая
// сторона могла убрать зависимое состояние (например, линии на карте)
func deleteRoutesByItem(tx *gorm.DB, itemID uint) ([]uint, error) {
	ids := make([]uint, 0)
	if err := tx.Model(&models.CableRoute{}).
		Where("from_item_id = ? OR to_item_id = ?", itemID, itemID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return ids, nil
	}

	if err := tx.Delete(&models.CableRoute{}, ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
