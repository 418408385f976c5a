package services

import (
	"time"

	"backend_ftth/database"
)

// Константы для TTL кэша
const (
	CacheTTLShort  = 5 * time.Minute // Для часто изменяемых данных
	CacheTTLStatic = 24 * time.Hour  // Для статических данных
)

// Ключи кэша справочников
const (
	CacheKeyItemTypes     = "catalog:item_types"
	CacheKeySplitterTypes = "catalog:splitter_types"
	CacheKeyTubeColors    = "catalog:tube_colors"
)

// CacheCatalog кэширует справочник. Справочники практически статичны,
// поэтому живут в кэше сутки. При недоступном Redis кэширование молча
// пропускается.
func CacheCatalog(key string, value interface{}) error {
	return database.CacheSetJSON(key, value, CacheTTLStatic)
}

// GetCachedCatalog получает справочник из кэша
func GetCachedCatalog(key string, dest interface{}) error {
	return database.CacheGetJSON(key, dest)
}

// InvalidateCatalogCache сбрасывает кэш всех справочников
func InvalidateCatalogCache() {
	for _, key := range []string{CacheKeyItemTypes, CacheKeySplitterTypes, CacheKeyTubeColors} {
		_ = database.CacheDel(key)
	}
}
