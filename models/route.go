package models

import "time"

// CableRoute представляет кабельную линию между двумя элементами сети.
// Связь в предметной области ненаправленная, но хранится с фиксированным
// порядком from/to.
type CableRoute struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FromItemID uint  `json:"from_item_id" gorm:"not null;index"`
	FromItem   *Item `json:"from_item,omitempty" gorm:"foreignKey:FromItemID"`
	ToItemID   uint  `json:"to_item_id" gorm:"not null;index"`
	ToItem     *Item `json:"to_item,omitempty" gorm:"foreignKey:ToItemID"`

	// Упорядоченный список вершин (lat,lng) физической трассы в формате
	// JSON. Заменяется целиком при редактировании, по точкам не меняется.
	RouteCoordinates string `json:"route_coordinates" gorm:"type:text"`

	// Длина трассы в метрах, вычисляется при создании маршрута и при
	// последующих правках статуса/типа кабеля не пересчитывается
	Distance *float64 `json:"distance"`

	CableType string `json:"cable_type" gorm:"type:varchar(50)"`
	CoreCount int    `json:"core_count" gorm:"not null"`
	Status    string `json:"status" gorm:"default:'planned';type:varchar(20)"` // planned, installed, maintenance
}

// TableName задает имя таблицы для модели CableRoute
func (CableRoute) TableName() string {
	return "cable_routes"
}

// ValidCoreCounts — канонический ряд емкостей оптического кабеля
var ValidCoreCounts = []int{2, 4, 6, 8, 12, 24, 48, 72, 96, 144, 216, 288}

// ValidRouteStatuses — допустимые статусы маршрута
var ValidRouteStatuses = []string{"planned", "installed", "maintenance"}

// IsValidCoreCount проверяет количество жил по каноническому ряду
func IsValidCoreCount(coreCount int) bool {
	for _, v := range ValidCoreCounts {
		if v == coreCount {
			return true
		}
	}
	return false
}

// IsValidRouteStatus проверяет статус маршрута по справочному набору
func IsValidRouteStatus(status string) bool {
	for _, v := range ValidRouteStatuses {
		if v == status {
			return true
		}
	}
	return false
}
