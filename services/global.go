package services

import "sync"

var (
	notificationService   *NotificationService
	notificationServiceMu sync.RWMutex
)

// SetNotificationService устанавливает глобальный сервис уведомлений
func SetNotificationService(ns *NotificationService) {
	notificationServiceMu.Lock()
	defer notificationServiceMu.Unlock()
	notificationService = ns
}

// GetNotificationService возвращает глобальный сервис уведомлений
// (nil, если Telegram не настроен)
func GetNotificationService() *NotificationService {
	notificationServiceMu.RLock()
	defer notificationServiceMu.RUnlock()
	return notificationService
}
