package services

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// SchedulerService периодически пересинхронизирует core_used всех
// элементов. Маршрутные операции кэш емкости не обновляют, поэтому
// расписание закрывает расхождения, накопившиеся между ручными вызовами
// синхронизации.
type SchedulerService struct {
	capacityService *CapacityService
	cron            *cron.Cron
	cronExpr        string
}

// NewSchedulerService создает новый экземпляр SchedulerService
func NewSchedulerService(capacityService *CapacityService, cronExpr string) *SchedulerService {
	c := cron.New(cron.WithSeconds())
	return &SchedulerService{
		capacityService: capacityService,
		cron:            c,
		cronExpr:        cronExpr,
	}
}

// Start запускает планировщик пересинхронизации емкости
func (ss *SchedulerService) Start() error {
	_, err := ss.cron.AddFunc(ss.cronExpr, func() {
		synced, err := ss.capacityService.SyncAllItems()
		if err != nil {
			log.Printf("⚠️  Ошибка плановой синхронизации емкости: %v", err)
			return
		}
		log.Printf("Плановая синхронизация емкости: обработано %d элементов", synced)
	})
	if err != nil {
		return fmt.Errorf("некорректное cron-выражение %q: %w", ss.cronExpr, err)
	}

	ss.cron.Start()
	log.Println("Capacity sync scheduler started")
	return nil
}

// Stop останавливает планировщик
func (ss *SchedulerService) Stop() {
	ss.cron.Stop()
	log.Println("Capacity sync scheduler stopped")
}
