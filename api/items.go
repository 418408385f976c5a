package api

import (
	"strconv"

	"backend_ftth/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// itemWithCatalogs присоединяет справочные поля к выборке элементов:
// тип с иконкой и цветом, цвета туб/жил, коэффициенты сплиттеров
func itemWithCatalogs(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Item{}).
		Preload("ItemType").
		Preload("TubeColor").
		Preload("CoreColor").
		Preload("SplitterMain").
		Preload("SplitterOdp")
}

// GetItems получает список всех элементов сети со справочными полями
func GetItems(c *gin.Context) {
	db := GetDB(c)

	var items []models.Item
	if err := itemWithCatalogs(db).Order("created_at DESC").Find(&items).Error; err != nil {
		c.JSON(500, gin.H{"status": "error", "error": "Ошибка получения элементов сети"})
		return
	}

	c.JSON(200, gin.H{"status": "success", "data": items})
}

// GetItem получает один элемент сети по ID
func GetItem(c *gin.Context) {
	db := GetDB(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"status": "error", "error": "Некорректный ID элемента"})
		return
	}

	var item models.Item
	if err := itemWithCatalogs(db).First(&item, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(404, gin.H{"status": "error", "error": "Элемент не найден"})
		} else {
			c.JSON(500, gin.H{"status": "error", "error": "Ошибка получения элемента"})
		}
		return
	}

	c.JSON(200, gin.H{"status": "success", "data": item})
}

// CreateItem создает новый элемент сети FTTH
func CreateItem(c *gin.Context) {
	db := GetDB(c)

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(400, gin.H{"status": "error", "error": "Некорректные данные: " + err.Error()})
		return
	}

	// Тип элемента: принимаем и item_type_id, и старое имя поля item_type
	itemTypeID := models.NormalizeReferenceID(payload["item_type_id"])
	if itemTypeID == nil {
		itemTypeID = models.NormalizeReferenceID(payload["item_type"])
	}

	name, _ := toString(payload["name"])
	latitude, latOK := toFloat(payload["latitude"])
	longitude, lngOK := toFloat(payload["longitude"])

	// Валидация обязательных полей
	if itemTypeID == nil || name == "" || !latOK || !lngOK {
		c.JSON(400, gin.H{"status": "error", "error": "Обязательные поля: тип элемента, название, широта и долгота"})
		return
	}
	if !isFinite(latitude) || !isFinite(longitude) {
		c.JSON(400, gin.H{"status": "error", "error": "Координаты должны быть конечными числами"})
		return
	}

	// Проверяем существование типа элемента
	var itemType models.ItemType
	if err := db.First(&itemType, *itemTypeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(400, gin.H{"status": "error", "error": "Тип элемента не найден"})
		} else {
			c.JSON(500, gin.H{"status": "error", "error": "Ошибка проверки типа элемента"})
		}
		return
	}

	item := models.Item{
		ItemTypeID: *itemTypeID,
		Name:       name,
		Latitude:   &latitude,
		Longitude:  &longitude,
	}
	if description, ok := toString(payload["description"]); ok {
		item.Description = description
	}
	if address, ok := toString(payload["address"]); ok {
		item.Address = address
	}

	// Нормализация опциональных внешних ключей: пустая строка и ноль
	// означают "не задано"
	item.TubeColorID = models.NormalizeReferenceID(payload["tube_color_id"])
	item.CoreColorID = models.NormalizeReferenceID(payload["core_color_id"])
	item.SplitterMainID = models.NormalizeReferenceID(payload["splitter_main_id"])
	item.SplitterOdpID = models.NormalizeReferenceID(payload["splitter_odp_id"])

	// Значения по умолчанию
	item.CableType = "distribution"
	if cableType, ok := toString(payload["item_cable_type"]); ok && cableType != "" {
		if !models.IsValidItemCableType(cableType) {
			c.JSON(400, gin.H{"status": "error", "error": "Недопустимый тип кабеля: " + cableType})
			return
		}
		item.CableType = cableType
	}

	item.Status = "active"
	if status, ok := toString(payload["status"]); ok && status != "" {
		if !models.IsValidItemStatus(status) {
			c.JSON(400, gin.H{"status": "error", "error": "Недопустимый статус: " + status})
			return
		}
		item.Status = status
	}

	item.TotalCoreCapacity = 24
	if capacity, ok := toInt(payload["total_core_capacity"]); ok {
		if capacity <= 0 {
			c.JSON(400, gin.H{"status": "error", "error": "Емкость кабеля должна быть положительной"})
			return
		}
		item.TotalCoreCapacity = capacity
	}

	if coreUsed, ok := toInt(payload["core_used"]); ok && coreUsed > 0 {
		item.CoreUsed = coreUsed
	}

	// Создаем элемент
	if err := db.Create(&item).Error; err != nil {
		c.JSON(500, gin.H{"status": "error", "error": "Ошибка создания элемента"})
		return
	}

	// Загружаем созданный элемент со справочными полями
	if err := itemWithCatalogs(db).First(&item, item.ID).Error; err != nil {
		c.JSON(500, gin.H{"status": "error", "error": "Ошибка загрузки созданного элемента"})
		return
	}

	c.JSON(201, gin.H{"status": "success", "data": item})
}

// itemReferenceFields — опциональные внешние ключи элемента, к которым
// применяется нормализация "пусто/ноль -> NULL"
var itemReferenceFields = map[string]bool{
	"tube_color_id":    true,
	"core_color_id":    true,
	"splitter_main_id": true,
	"splitter_odp_id":  true,
}

// UpdateItem частично обновляет элемент: меняются только переданные поля
func UpdateItem(c *gin.Context) {
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

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(400, gin.H{"status": "error", "error": "Некорректные данные: " + err.Error()})
		return
	}

	updates := make(map[string]interface{})

	for field, value := range payload {
		switch {
		case field == "item_type" || field == "item_type_id":
			itemTypeID := models.NormalizeReferenceID(value)
			if itemTypeID == nil {
				c.JSON(400, gin.H{"status": "error", "error": "Тип элемента не может быть пустым"})
				return
			}
			var itemType models.ItemType
			if err := db.First(&itemType, *itemTypeID).Error; err != nil {
				c.JSON(400, gin.H{"status": "error", "error": "Тип элемента не найден"})
				return
			}
			updates["item_type_id"] = *itemTypeID

		case field == "name":
			name, ok := toString(value)
			if !ok || name == "" {
				c.JSON(400, gin.H{"status": "error", "error": "Название не может быть пустым"})
				return
			}
			updates["name"] = name

		case field == "description" || field == "address":
			if text, ok := toString(value); ok {
				updates[field] = text
			}

		case field == "latitude" || field == "longitude":
			coord, ok := toFloat(value)
			if !ok || !isFinite(coord) {
				c.JSON(400, gin.H{"status": "error", "error": "Координата должна быть конечным числом"})
				return
			}
			updates[field] = coord

		case itemReferenceFields[field]:
			// Нормализация внешнего ключа применяется по каждому полю
			// отдельно: nil записывает NULL
			updates[field] = models.NormalizeReferenceID(value)

		case field == "item_cable_type":
			cableType, ok := toString(value)
			if !ok || !models.IsValidItemCableType(cableType) {
				c.JSON(400, gin.H{"status": "error", "error": "Недопустимый тип кабеля"})
				return
			}
			updates["item_cable_type"] = cableType

		case field == "total_core_capacity":
			capacity, ok := toInt(value)
			if !ok || capacity <= 0 {
				c.JSON(400, gin.H{"status": "error", "error": "Емкость кабеля должна быть положительной"})
				return
			}
			updates["total_core_capacity"] = capacity

		case field == "core_used":
			coreUsed, ok := toInt(value)
			if !ok || coreUsed < 0 {
				c.JSON(400, gin.H{"status": "error", "error": "Количество занятых жил не может быть отрицательным"})
				return
			}
			updates["core_used"] = coreUsed

		case field == "status":
			status, ok := toString(value)
			if !ok || !models.IsValidItemStatus(status) {
				c.JSON(400, gin.H{"status": "error", "error": "Недопустимый статус"})
				return
			}
			updates["status"] = status
		}
	}

	if len(updates) == 0 {
		c.JSON(400, gin.H{"status": "error", "error": "Не передано ни одного поля для обновления"})
		return
	}

	if err := db.Model(&item).Updates(updates).Error; err != nil {
		c.JSON(500, gin.H{"status": "error", "error": "Ошибка обновления элемента"})
		return
	}

	// Загружаем обновленный элемент со справочными полями
	if err := itemWithCatalogs(db).First(&item, item.ID).Error; err != nil {
		c.JSON(500, gin.H{"status": "error", "error": "Ошибка загрузки обновленного элемента"})
		return
	}

	c.JSON(200, gin.H{"status": "success", "data": item})
}

// DeleteItem удаляет элемент вместе со всеми маршрутами, у которых он
// является любым из концов. Обе операции выполняются в одной транзакции.
func DeleteItem(c *gin.Context) {
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

	var deletedRouteIDs []uint
	err = db.Transaction(func(tx *gorm.DB) error {
		ids, err := deleteRoutesByItem(tx, item.ID)
		if err != nil {
			return err
		}
		deletedRouteIDs = ids
		return tx.Delete(&item).Error
	})
	if err != nil {
		c.JSON(500, gin.H{"status": "error", "error": "Ошибка удаления элемента"})
		return
	}

	c.JSON(200, gin.H{
		"status":  "success",
		"message": "Элемент успешно удален",
		"data": gin.H{
			"deleted_route_ids": deletedRouteIDs,
		},
	})
}
