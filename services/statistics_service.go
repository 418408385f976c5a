package services

import (
	"fmt"
	"strings"

	"backend_ftth/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StatisticsService считает сводные показатели по инвентарю сети.
// Все методы — снимки на момент вызова, без какого-либо кэширования.
type StatisticsService struct {
	db *gorm.DB
}

// NewStatisticsService создает новый экземпляр StatisticsService
func NewStatisticsService(db *gorm.DB) *StatisticsService {
	return &StatisticsService{db: db}
}

// ItemCountsByType возвращает количество элементов по каждому типу из
// справочника. Типы без элементов присутствуют в ответе с нулем
// (LEFT JOIN по справочнику, а не группировка по имеющимся элементам).
func (ss *StatisticsService) ItemCountsByType() (map[string]int64, error) {
	type typeCount struct {
		Name  string
		Count int64
	}

	var rows []typeCount
	err := ss.db.Model(&models.ItemType{}).
		Select("item_types.name AS name, COUNT(ftth_items.id) AS count").
		Joins("LEFT JOIN ftth_items ON ftth_items.item_type_id = item_types.id").
		Group("item_types.id, item_types.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("не удалось посчитать элементы по типам: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[statisticsKey(row.Name)] = row.Count
	}
	return counts, nil
}

// RouteCountsByStatus возвращает количество маршрутов по статусам
func (ss *StatisticsService) RouteCountsByStatus() (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	err := ss.db.Model(&models.CableRoute{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("не удалось посчитать маршруты по статусам: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// TotalRouteDistanceKm суммирует длину маршрутов с известной дистанцией,
// переводит метры в километры и округляет до двух знаков
func (ss *StatisticsService) TotalRouteDistanceKm() (float64, error) {
	var meters float64
	err := ss.db.Model(&models.CableRoute{}).
		Where("distance IS NOT NULL").
		Select("COALESCE(SUM(distance), 0)").
		Scan(&meters).Error
	if err != nil {
		return 0, fmt.Errorf("не удалось посчитать суммарную длину маршрутов: %w", err)
	}

	km := decimal.NewFromFloat(meters).
		Div(decimal.NewFromInt(1000)).
		Round(2)
	return km.InexactFloat64(), nil
}

// Overview собирает плоскую сводку для экрана статистики: количество
// элементов по типам, количество маршрутов всего и по статусам,
// суммарная длина кабеля в километрах
func (ss *StatisticsService) Overview() (map[string]interface{}, error) {
	overview := make(map[string]interface{})

	itemCounts, err := ss.ItemCountsByType()
	if err != nil {
		return nil, err
	}
	for key, count := range itemCounts {
		overview[key] = count
	}

	var totalRoutes int64
	if err := ss.db.Model(&models.CableRoute{}).Count(&totalRoutes).Error; err != nil {
		return nil, fmt.Errorf("не удалось посчитать маршруты: %w", err)
	}
	overview["total_routes"] = totalRoutes

	routeCounts, err := ss.RouteCountsByStatus()
	if err != nil {
		return nil, err
	}
	for status, count := range routeCounts {
		overview["routes_"+status] = count
	}

	totalKm, err := ss.TotalRouteDistanceKm()
	if err != nil {
		return nil, err
	}
	overview["total_distance_km"] = totalKm

	return overview, nil
}

// statisticsKey приводит имя типа к ключу сводки: "ODP Pole" -> "odp_pole"
func statisticsKey(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}
