package services

import (
	"errors"
	"fmt"
	"log"

	"backend_ftth/models"

	"gorm.io/gorm"
)

// CapacityService отвечает за согласование кэшированного поля core_used
// элемента с маршрутами, которые к нему фактически привязаны. Маршрутные
// операции это поле не трогают: пересинхронизация выполняется явно, по
// запросу или по расписанию, поэтому между изменениями маршрутов и
// следующим вызовом SyncItemCapacity кэш может отставать.
type CapacityService struct {
	db *gorm.DB
}

// NewCapacityService создает новый экземпляр CapacityService
func NewCapacityService(db *gorm.DB) *CapacityService {
	return &CapacityService{db: db}
}

// CapacitySnapshot — расчетное состояние емкости элемента на момент вызова
type CapacitySnapshot struct {
	ItemID            uint   `json:"item_id"`
	TotalCoreCapacity int    `json:"total_core_capacity"`
	CoreUsed          int    `json:"core_used"`
	CoreAvailable     int    `json:"core_available"`
	CapacityStatus    string `json:"capacity_status"` // ok, warning, critical
}

// ComputeUsedCores суммирует core_count по всем маршрутам, у которых
// элемент является любым из концов. Чистая функция над текущим состоянием
// маршрутов, ничего не изменяет.
func (cs *CapacityService) ComputeUsedCores(itemID uint) (int, error) {
	var total int64
	err := cs.db.Model(&models.CableRoute{}).
		Where("from_item_id = ? OR to_item_id = ?", itemID, itemID).
		Select("COALESCE(SUM(core_count), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("не удалось подсчитать занятые жилы: %w", err)
	}
	return int(total), nil
}

// SyncItemCapacity пересчитывает занятые жилы элемента и сохраняет
// результат в core_used. Конкурирующие записи разрешаются по принципу
// "последний победил" — следующий вызов синхронизации все выравнивает.
func (cs *CapacityService) SyncItemCapacity(itemID uint) (*CapacitySnapshot, error) {
	var item models.Item
	if err := cs.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("не удалось загрузить элемент %d: %w", itemID, err)
	}

	used, err := cs.ComputeUsedCores(itemID)
	if err != nil {
		return nil, err
	}

	// UpdateColumn, чтобы обновление кэша не считалось правкой элемента
	if err := cs.db.Model(&models.Item{}).Where("id = ?", itemID).
		UpdateColumn("core_used", used).Error; err != nil {
		return nil, fmt.Errorf("не удалось сохранить core_used: %w", err)
	}

	snapshot := &CapacitySnapshot{
		ItemID:            itemID,
		TotalCoreCapacity: item.TotalCoreCapacity,
		CoreUsed:          used,
		CoreAvailable:     item.TotalCoreCapacity - used,
		CapacityStatus:    CapacityStatus(item.TotalCoreCapacity, used),
	}

	// Уведомляем, если после синхронизации свободных жил не осталось.
	// Сбой уведомления синхронизацию не прерывает.
	if snapshot.CapacityStatus == "critical" {
		if ns := GetNotificationService(); ns != nil {
			if err := ns.NotifyCapacityCritical(&item, used); err != nil {
				log.Printf("⚠️  Не удалось отправить уведомление о емкости элемента %d: %v", itemID, err)
			}
		}
	}

	return snapshot, nil
}

// SyncAllItems пересинхронизирует core_used всех элементов.
// Возвращает количество обработанных элементов.
func (cs *CapacityService) SyncAllItems() (int, error) {
	var ids []uint
	if err := cs.db.Model(&models.Item{}).Pluck("id", &ids).Error; err != nil {
		return 0, fmt.Errorf("не удалось получить список элементов: %w", err)
	}

	synced := 0
	for _, id := range ids {
		if _, err := cs.SyncItemCapacity(id); err != nil {
			log.Printf("⚠️  Ошибка синхронизации емкости элемента %d: %v", id, err)
			continue
		}
		synced++
	}

	return synced, nil
}

// CapacityStatus классифицирует запас емкости. Значение информационное,
// для подсветки в интерфейсе: операции записи по нему не отклоняются.
func CapacityStatus(totalCapacity, used int) string {
	available := totalCapacity - used
	switch {
	case available <= 0:
		return "critical"
	case float64(available) <= float64(totalCapacity)*0.2:
		return "warning"
	default:
		return "ok"
	}
}
