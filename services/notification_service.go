package services

import (
	"fmt"
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"backend_ftth/models"
)

// NotificationService отправляет оперативные уведомления в Telegram.
// Используется как канал оповещения дежурных о критичной емкости узлов.
type NotificationService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewNotificationService создает новый экземпляр Telegram-уведомлений
func NewNotificationService(botToken, chatID string) (*NotificationService, error) {
	if botToken == "" || chatID == "" {
		return nil, fmt.Errorf("Telegram не настроен: требуются TELEGRAM_BOT_TOKEN и TELEGRAM_CHAT_ID")
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("неверный chat ID: %s", chatID)
	}

	// Создаем Bot API клиент
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Telegram бота: %w", err)
	}

	// В продакшене отключаем debug
	bot.Debug = false

	log.Printf("✅ Telegram бот авторизован: %s", bot.Self.UserName)

	return &NotificationService{
		bot:    bot,
		chatID: chatIDInt,
	}, nil
}

// SendMessage отправляет сообщение в настроенный чат
func (ns *NotificationService) SendMessage(message string) error {
	msg := tgbotapi.NewMessage(ns.chatID, message)
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := ns.bot.Send(msg); err != nil {
		return fmt.Errorf("ошибка отправки сообщения: %w", err)
	}
	return nil
}

// NotifyCapacityCritical сообщает, что у элемента не осталось свободных жил
func (ns *NotificationService) NotifyCapacityCritical(item *models.Item, used int) error {
	message := fmt.Sprintf(
		"🚨 <b>Исчерпана емкость кабеля</b>\n"+
			"Элемент: <b>%s</b> (ID %d)\n"+
			"Занято жил: %d из %d\n"+
			"Требуется расширение или перераспределение маршрутов.",
		item.Name, item.ID, used, item.TotalCoreCapacity)
	return ns.SendMessage(message)
}
