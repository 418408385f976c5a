package testutils

import (
	"testing"

	"backend_ftth/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB создает тестовую базу данных в памяти с миграциями и
// загруженными справочниками (без пользователей)
func SetupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Автомиграция всех моделей
	err = db.AutoMigrate(
		&models.ItemType{},
		&models.TubeColor{},
		&models.SplitterType{},
		&models.Item{},
		&models.CableRoute{},
		&models.User{},
	)
	require.NoError(t, err)

	// Загружаем справочники по копии, чтобы gorm не проставлял ID
	// в общие срезы по умолчанию
	itemTypes := make([]models.ItemType, len(models.DefaultItemTypes))
	copy(itemTypes, models.DefaultItemTypes)
	require.NoError(t, db.Create(&itemTypes).Error)

	tubeColors := make([]models.TubeColor, len(models.DefaultTubeColors))
	copy(tubeColors, models.DefaultTubeColors)
	require.NoError(t, db.Create(&tubeColors).Error)

	splitterTypes := make([]models.SplitterType, len(models.DefaultSplitterTypes))
	copy(splitterTypes, models.DefaultSplitterTypes)
	require.NoError(t, db.Create(&splitterTypes).Error)

	return db
}

// ItemTypeID возвращает идентификатор типа элемента по имени
func ItemTypeID(t *testing.T, db *gorm.DB, name string) uint {
	var itemType models.ItemType
	require.NoError(t, db.Where("name = ?", name).First(&itemType).Error)
	return itemType.ID
}

// CreateTestItem создает элемент сети для теста
func CreateTestItem(t *testing.T, db *gorm.DB, name string, typeName string, lat, lng float64) models.Item {
	item := models.Item{
		ItemTypeID:        ItemTypeID(t, db, typeName),
		Name:              name,
		Latitude:          &lat,
		Longitude:         &lng,
		CableType:         "distribution",
		TotalCoreCapacity: 24,
		Status:            "active",
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

// CreateTestRoute создает маршрут между двумя элементами для теста
func CreateTestRoute(t *testing.T, db *gorm.DB, fromID, toID uint, coreCount int, distance float64) models.CableRoute {
	route := models.CableRoute{
		FromItemID: fromID,
		ToItemID:   toID,
		CableType:  "Fiber Optic",
		CoreCount:  coreCount,
		Distance:   &distance,
		Status:     "planned",
	}
	require.NoError(t, db.Create(&route).Error)
	return route
}
