package api

import (
	"path/filepath"

	"backend_ftth/config"
	"backend_ftth/services"

	"github.com/gin-gonic/gin"
)

// GetInventoryReport выгружает инвентарь сети в файл и отдает его клиенту.
// Поддерживаются форматы xlsx, pdf и csv. Экспорт KMZ остается на стороне
// картографического клиента.
func GetInventoryReport(c *gin.Context) {
	format := c.DefaultQuery("format", services.ReportFormatExcel)
	switch format {
	case services.ReportFormatCSV, services.ReportFormatExcel, services.ReportFormatPDF:
	default:
		c.JSON(400, gin.H{"status": "error", "error": "Неподдерживаемый формат отчета: " + format})
		return
	}

	reportService := services.NewReportService(GetDB(c), config.GetConfig().Reports.OutputDir)
	filePath, err := reportService.GenerateInventoryReport(format)
	if err != nil {
		c.JSON(500, gin.H{"status": "error", "error": "Ошибка формирования отчета"})
		return
	}

	c.FileAttachment(filePath, filepath.Base(filePath))
}
