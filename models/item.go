package models

import (
	"math"
	"strconv"
	"time"
)

// Item представляет элемент сети FTTH (оборудование или абонентская точка)
type Item struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Основные поля элемента
	ItemTypeID uint      `json:"item_type_id" gorm:"not null;index"`
	ItemType   *ItemType `json:"item_type,omitempty" gorm:"foreignKey:ItemTypeID"`

	Name        string `json:"name" gorm:"not null;type:varchar(100)"`
	Description string `json:"description" gorm:"type:text"`
	Address     string `json:"address" gorm:"type:text"`

	// Географические координаты (обязательные)
	Latitude  *float64 `json:"latitude" gorm:"not null"`
	Longitude *float64 `json:"longitude" gorm:"not null"`

	// Ссылки на справочники цветов (опциональные, ноль означает "не задано")
	TubeColorID *uint      `json:"tube_color_id"`
	TubeColor   *TubeColor `json:"tube_color,omitempty" gorm:"foreignKey:TubeColorID"`
	CoreColorID *uint      `json:"core_color_id"`
	CoreColor   *TubeColor `json:"core_color,omitempty" gorm:"foreignKey:CoreColorID"`

	// Параметры кабельной емкости
	CableType         string `json:"item_cable_type" gorm:"column:item_cable_type;default:'distribution';type:varchar(20)"`
	TotalCoreCapacity int    `json:"total_core_capacity" gorm:"default:24"`
	// CoreUsed — кэшированная проекция суммы core_count по привязанным
	// маршрутам; актуализируется вызовом SyncItemCapacity
	CoreUsed int `json:"core_used" gorm:"default:0"`

	// Ссылки на справочник сплиттеров
	SplitterMainID *uint         `json:"splitter_main_id"`
	SplitterMain   *SplitterType `json:"splitter_main,omitempty" gorm:"foreignKey:SplitterMainID"`
	SplitterOdpID  *uint         `json:"splitter_odp_id"`
	SplitterOdp    *SplitterType `json:"splitter_odp,omitempty" gorm:"foreignKey:SplitterOdpID"`

	Status string `json:"status" gorm:"default:'active';type:varchar(20)"` // active, inactive, maintenance
}

// TableName задает имя таблицы для модели Item
func (Item) TableName() string {
	return "ftth_items"
}

// ValidItemCableTypes — допустимые типы кабеля элемента
var ValidItemCableTypes = []string{"backbone", "distribution", "drop_core", "feeder", "branch"}

// ValidItemStatuses — допустимые статусы элемента
var ValidItemStatuses = []string{"active", "inactive", "maintenance"}

// IsValidItemCableType проверяет тип кабеля по справочному набору
func IsValidItemCableType(cableType string) bool {
	for _, v := range ValidItemCableTypes {
		if v == cableType {
			return true
		}
	}
	return false
}

// IsValidItemStatus проверяет статус элемента по справочному набору
func IsValidItemStatus(status string) bool {
	for _, v := range ValidItemStatuses {
		if v == status {
			return true
		}
	}
	return false
}

// IsFiniteCoordinate проверяет, что координата задана и конечна
func IsFiniteCoordinate(value *float64) bool {
	return value != nil && !math.IsNaN(*value) && !math.IsInf(*value, 0)
}

// NormalizeReferenceID приводит значение внешнего ключа из запроса к *uint.
// Клиенты присылают пустую строку, строку "0" или число 0 в значении
// "не задано" — все эти варианты превращаются в nil, чтобы в базу никогда
// не попадал внешний ключ со значением 0.
func NormalizeReferenceID(value interface{}) *uint {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		if v == "" || v == "0" {
			return nil
		}
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil || parsed == 0 {
			return nil
		}
		id := uint(parsed)
		return &id
	case float64:
		// JSON-числа декодируются в float64
		if v <= 0 || v != math.Trunc(v) {
			return nil
		}
		id := uint(v)
		return &id
	case int:
		if v <= 0 {
			return nil
		}
		id := uint(v)
		return &id
	case uint:
		if v == 0 {
			return nil
		}
		id := v
		return &id
	default:
		return nil
	}
}
