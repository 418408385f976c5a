package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"backend_ftth/models"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// CreateDatabaseIfNotExists создает базу данных, если она не существует
func CreateDatabaseIfNotExists() error {
	// Получаем настройки подключения
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "")
	dbname := getEnv("DB_NAME", "ftth_planner")
	sslmode := getEnv("DB_SSLMODE", "disable")

	// Подключаемся к PostgreSQL без указания конкретной БД (к postgres по умолчанию)
	adminDSN := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=postgres sslmode=%s",
		host, port, user, password, sslmode)

	db, err := sql.Open("postgres", adminDSN)
	if err != nil {
		return fmt.Errorf("не удалось подключиться к PostgreSQL: %w", err)
	}
	defer db.Close()

	// Проверяем подключение
	if err := db.Ping(); err != nil {
		return fmt.Errorf("не удалось проверить подключение к PostgreSQL: %w", err)
	}

	// Проверяем, существует ли база данных
	var exists bool
	query := "SELECT EXISTS(SELECT datname FROM pg_catalog.pg_database WHERE datname = $1);"
	err = db.QueryRow(query, dbname).Scan(&exists)
	if err != nil {
		return fmt.Errorf("ошибка при проверке существования базы данных: %w", err)
	}

	if exists {
		log.Printf("✅ База данных '%s' уже существует", dbname)
		return nil
	}

	// Создаем базу данных
	createQuery := fmt.Sprintf("CREATE DATABASE %s;", dbname)
	_, err = db.Exec(createQuery)
	if err != nil {
		return fmt.Errorf("не удалось создать базу данных '%s': %w", dbname, err)
	}

	log.Printf("✅ База данных '%s' успешно создана", dbname)
	return nil
}

// ConnectDatabase инициализирует подключение к PostgreSQL
func ConnectDatabase() error {
	// Получаем переменные окружения для подключения к БД
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "")
	dbname := getEnv("DB_NAME", "ftth_planner")
	sslmode := getEnv("DB_SSLMODE", "disable")

	// Формируем DSN (Data Source Name)
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	// Подключаемся к базе данных
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return fmt.Errorf("не удалось подключиться к базе данных: %w", err)
	}

	log.Println("✅ Успешно подключено к PostgreSQL")

	// Автомиграция моделей
	if err := autoMigrate(); err != nil {
		return fmt.Errorf("ошибка автомиграции: %w", err)
	}

	// Загружаем справочники и служебные записи
	if err := SeedReferenceData(DB); err != nil {
		return fmt.Errorf("ошибка загрузки справочников: %w", err)
	}

	// Создаем индексы производительности
	if err := CreatePerformanceIndexes(DB); err != nil {
		log.Printf("⚠️  Не удалось создать часть индексов: %v", err)
	}

	return nil
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetDB возвращает экземпляр базы данных
func GetDB() *gorm.DB {
	return DB
}

// autoMigrate выполняет автомиграцию всех моделей
func autoMigrate() error {
	err := DB.AutoMigrate(
		&models.ItemType{},
		&models.TubeColor{},
		&models.SplitterType{},
		&models.Item{},
		&models.CableRoute{},
		&models.User{},
		// Добавляйте новые модели здесь
	)

	if err != nil {
		return err
	}

	log.Println("✅ Автомиграция моделей выполнена успешно")
	return nil
}

// SeedReferenceData загружает справочники типов элементов, цветов и
// сплиттеров, а также создает пользователя-администратора по умолчанию.
// Повторные запуски существующие записи не трогают.
func SeedReferenceData(db *gorm.DB) error {
	var typeCount int64
	if err := db.Model(&models.ItemType{}).Count(&typeCount).Error; err != nil {
		return err
	}
	if typeCount == 0 {
		if err := db.Create(&models.DefaultItemTypes).Error; err != nil {
			return fmt.Errorf("не удалось загрузить типы элементов: %w", err)
		}
		log.Printf("✅ Загружено %d типов элементов", len(models.DefaultItemTypes))
	}

	var colorCount int64
	if err := db.Model(&models.TubeColor{}).Count(&colorCount).Error; err != nil {
		return err
	}
	if colorCount == 0 {
		if err := db.Create(&models.DefaultTubeColors).Error; err != nil {
			return fmt.Errorf("не удалось загрузить цвета туб: %w", err)
		}
		log.Printf("✅ Загружено %d цветов туб", len(models.DefaultTubeColors))
	}

	var splitterCount int64
	if err := db.Model(&models.SplitterType{}).Count(&splitterCount).Error; err != nil {
		return err
	}
	if splitterCount == 0 {
		if err := db.Create(&models.DefaultSplitterTypes).Error; err != nil {
			return fmt.Errorf("не удалось загрузить типы сплиттеров: %w", err)
		}
		log.Printf("✅ Загружено %d типов сплиттеров", len(models.DefaultSplitterTypes))
	}

	// Администратор по умолчанию, учетные данные задаются через окружение
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 {
		admin := models.User{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			FullName: "Administrator",
			Role:     "admin",
			IsActive: true,
		}
		if err := admin.SetPassword(getEnv("ADMIN_PASSWORD", "admin123")); err != nil {
			return fmt.Errorf("не удалось захэшировать пароль администратора: %w", err)
		}
		if err := db.Create(&admin).Error; err != nil {
			return fmt.Errorf("не удалось создать администратора: %w", err)
		}
		log.Printf("✅ Создан пользователь-администратор '%s'", admin.Username)
	}

	return nil
}
