package database

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
)

// DatabaseIndex представляет индекс базы данных
type DatabaseIndex struct {
	Name    string
	Table   string
	Columns []string
	Unique  bool
	Type    string // btree, hash, gin, gist
}

// PerformanceIndexes индексы для оптимизации производительности
var PerformanceIndexes = []DatabaseIndex{
	// Индексы для таблицы ftth_items
	{
		Name:    "idx_ftth_items_status",
		Table:   "ftth_items",
		Columns: []string{"status"},
		Type:    "btree",
	},
	{
		Name:    "idx_ftth_items_item_type",
		Table:   "ftth_items",
		Columns: []string{"item_type_id"},
		Type:    "btree",
	},
	{
		Name:    "idx_ftth_items_created_at",
		Table:   "ftth_items",
		Columns: []string{"created_at"},
		Type:    "btree",
	},

	// Индексы для таблицы cable_routes: подсчет занятых жил и каскадное
	// удаление ищут маршруты по обоим концам
	{
		Name:    "idx_cable_routes_from_item",
		Table:   "cable_routes",
		Columns: []string{"from_item_id"},
		Type:    "btree",
	},
	{
		Name:    "idx_cable_routes_to_item",
		Table:   "cable_routes",
		Columns: []string{"to_item_id"},
		Type:    "btree",
	},
	{
		Name:    "idx_cable_routes_status",
		Table:   "cable_routes",
		Columns: []string{"status"},
		Type:    "btree",
	},
}

// CreatePerformanceIndexes создает все индексы производительности
func CreatePerformanceIndexes(db *gorm.DB) error {
	var failed []string

	for _, idx := range PerformanceIndexes {
		if err := createIndex(db, idx); err != nil {
			log.Printf("⚠️  Не удалось создать индекс %s: %v", idx.Name, err)
			failed = append(failed, idx.Name)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("не созданы индексы: %s", strings.Join(failed, ", "))
	}

	log.Printf("✅ Создано индексов производительности: %d", len(PerformanceIndexes))
	return nil
}

// createIndex создает один индекс, если он еще не существует
func createIndex(db *gorm.DB, idx DatabaseIndex) error {
	unique := ""
	if idx.Unique {
		unique = "UNIQUE "
	}

	indexType := idx.Type
	if indexType == "" {
		indexType = "btree"
	}

	query := fmt.Sprintf("CREATE %sINDEX IF NOT EXISTS %s ON %s USING %s (%s)",
		unique, idx.Name, idx.Table, indexType, strings.Join(idx.Columns, ", "))

	return db.Exec(query).Error
}
