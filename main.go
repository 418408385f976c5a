package main

import (
	"log"

	"backend_ftth/api"
	"backend_ftth/config"
	"backend_ftth/database"
	"backend_ftth/middleware"
	"backend_ftth/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// initDB инициализирует подключение к базе данных
func initDB() {
	log.Println("🔧 Инициализация базы данных...")

	// Создаем базу данных, если она не существует
	if err := database.CreateDatabaseIfNotExists(); err != nil {
		log.Fatal("❌ Ошибка при создании базы данных:", err)
	}

	// Подключаемся к базе данных
	if err := database.ConnectDatabase(); err != nil {
		log.Fatal("❌ Ошибка подключения к базе данных:", err)
	}

	log.Println("✅ База данных успешно инициализирована")
}

func main() {
	// Загружаем конфигурацию (переменные окружения и .env файл)
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("❌ Ошибка загрузки конфигурации:", err)
	}
	cfg.LogConfig()

	// Инициализируем базу данных
	initDB()

	// Redis опционален: без него справочники просто не кэшируются
	if err := database.InitRedis(); err != nil {
		log.Printf("⚠️  Redis недоступен, кэширование справочников отключено: %v", err)
	}

	// Telegram-уведомления о критичной емкости (опционально)
	if ns, err := services.NewNotificationService(
		cfg.Notifications.TelegramBotToken, cfg.Notifications.TelegramChatID); err != nil {
		log.Printf("⚠️  Telegram-уведомления отключены: %v", err)
	} else {
		services.SetNotificationService(ns)
	}

	// Периодическая пересинхронизация кэша занятых жил
	if cfg.Scheduler.Enabled {
		capacityService := services.NewCapacityService(database.GetDB())
		scheduler := services.NewSchedulerService(capacityService, cfg.Scheduler.CapacitySyncCron)
		if err := scheduler.Start(); err != nil {
			log.Printf("⚠️  Планировщик синхронизации емкости не запущен: %v", err)
		}
		defer scheduler.Stop()
	}

	// Настраиваем Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	}))

	// Базовые роуты
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":   "success",
			"message":  "pong",
			"database": "connected",
		})
	})

	// Аутентификация
	r.POST("/api/auth/login", api.Login)

	// API роуты: чтение доступно всем аутентифицированным пользователям,
	// мутации — только администраторам
	authorized := r.Group("/api", middleware.RequireAuth())
	{
		authorized.GET("/auth/me", api.GetCurrentUser)

		// Элементы сети
		authorized.GET("/items", api.GetItems)
		authorized.GET("/items/:id", api.GetItem)
		authorized.GET("/items/:id/capacity", api.GetItemCapacity)

		// Кабельные маршруты
		authorized.GET("/routes", api.GetRoutes)
		authorized.GET("/routes/:id", api.GetRoute)

		// Статистика и справочники
		authorized.GET("/statistics", api.GetStatistics)
		authorized.GET("/item-types", api.GetItemTypes)
		authorized.GET("/tube-colors", api.GetTubeColors)
		authorized.GET("/splitter-types", api.GetSplitterTypes)

		// Отчеты
		authorized.GET("/reports/inventory", api.GetInventoryReport)
	}

	admin := r.Group("/api", middleware.RequireAuth(), middleware.RequireAdmin())
	{
		admin.POST("/items", api.CreateItem)
		admin.PUT("/items/:id", api.UpdateItem)
		admin.DELETE("/items/:id", api.DeleteItem)
		admin.POST("/items/:id/capacity/sync", api.SyncItemCapacity)

		admin.POST("/routes", api.CreateRoute)
		admin.PUT("/routes/:id", api.UpdateRoute)
		admin.DELETE("/routes/:id", api.DeleteRoute)
	}

	log.Printf("🚀 Сервер запущен на порту %s", cfg.App.Port)
	if err := r.Run(cfg.App.Host + ":" + cfg.App.Port); err != nil {
		log.Fatal("❌ Ошибка запуска сервера:", err)
	}
}
