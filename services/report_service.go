package services

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"backend_ftth/models"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Поддерживаемые форматы отчета
const (
	ReportFormatCSV   = "csv"
	ReportFormatExcel = "xlsx"
	ReportFormatPDF   = "pdf"
)

// ReportService выгружает инвентарь сети (элементы с емкостью, маршруты
// с длиной) в файлы для передачи подрядчикам и бумажного архива
type ReportService struct {
	db        *gorm.DB
	outputDir string
}

// NewReportService создает новый экземпляр ReportService
func NewReportService(db *gorm.DB, outputDir string) *ReportService {
	if outputDir == "" {
		outputDir = "reports"
	}
	return &ReportService{db: db, outputDir: outputDir}
}

// ReportData — табличное представление отчета
type ReportData struct {
	Headers []string
	Rows    []map[string]interface{}
}

// GenerateInventoryReport формирует отчет по инвентарю в указанном формате
// и возвращает путь к созданному файлу
func (rs *ReportService) GenerateInventoryReport(format string) (string, error) {
	data, err := rs.inventoryReportData()
	if err != nil {
		return "", err
	}

	// Создаем директорию для отчетов если её нет
	if err := os.MkdirAll(rs.outputDir, 0755); err != nil {
		return "", err
	}

	// Формируем имя файла
	timestamp := time.Now().Format("20060102_150405")
	fileName := fmt.Sprintf("inventory_%s_%s", timestamp, uuid.New().String()[:8])

	switch format {
	case ReportFormatCSV:
		return rs.generateCSVReport(data, filepath.Join(rs.outputDir, fileName+".csv"))
	case ReportFormatExcel:
		return rs.generateExcelReport(data, filepath.Join(rs.outputDir, fileName+".xlsx"))
	case ReportFormatPDF:
		return rs.generatePDFReport(data, filepath.Join(rs.outputDir, fileName+".pdf"))
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// inventoryReportData собирает данные отчета: по строке на элемент сети
func (rs *ReportService) inventoryReportData() (*ReportData, error) {
	var items []models.Item
	if err := rs.db.Preload("ItemType").Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("не удалось загрузить элементы для отчета: %w", err)
	}

	data := &ReportData{
		Headers: []string{"ID", "Тип", "Название", "Адрес", "Широта", "Долгота",
			"Емкость", "Занято", "Свободно", "Загрузка %", "Статус"},
	}

	for _, item := range items {
		typeName := ""
		if item.ItemType != nil {
			typeName = item.ItemType.Name
		}

		lat, lng := 0.0, 0.0
		if item.Latitude != nil {
			lat = *item.Latitude
		}
		if item.Longitude != nil {
			lng = *item.Longitude
		}

		utilization := decimal.Zero
		if item.TotalCoreCapacity > 0 {
			utilization = decimal.NewFromInt(int64(item.CoreUsed)).
				Div(decimal.NewFromInt(int64(item.TotalCoreCapacity))).
				Mul(decimal.NewFromInt(100)).
				Round(1)
		}

		data.Rows = append(data.Rows, map[string]interface{}{
			"ID":        item.ID,
			"Тип":       typeName,
			"Название":  item.Name,
			"Адрес":     item.Address,
			"Широта":    lat,
			"Долгота":   lng,
			"Емкость":   item.TotalCoreCapacity,
			"Занято":    item.CoreUsed,
			"Свободно":  item.TotalCoreCapacity - item.CoreUsed,
			"Загрузка %": utilization.InexactFloat64(),
			"Статус":    item.Status,
		})
	}

	return data, nil
}

// generateCSVReport генерирует CSV файл отчета
func (rs *ReportService) generateCSVReport(data *ReportData, filePath string) (string, error) {
	file, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Записываем заголовки
	if err := writer.Write(data.Headers); err != nil {
		return "", err
	}

	// Записываем данные
	for _, row := range data.Rows {
		record := make([]string, len(data.Headers))
		for i, header := range data.Headers {
			if value, ok := row[header]; ok {
				record[i] = fmt.Sprintf("%v", value)
			}
		}
		if err := writer.Write(record); err != nil {
			return "", err
		}
	}

	return filePath, nil
}

// generateExcelReport генерирует Excel файл отчета
func (rs *ReportService) generateExcelReport(data *ReportData, filePath string) (string, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Failed to close Excel file: %v", err)
		}
	}()

	sheetName := "Инвентарь"
	f.SetSheetName("Sheet1", sheetName)

	// Записываем заголовки
	for i, header := range data.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	// Записываем данные
	for rowIdx, row := range data.Rows {
		for colIdx, header := range data.Headers {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if value, ok := row[header]; ok {
				f.SetCellValue(sheetName, cell, value)
			}
		}
	}

	// Добавляем автофильтр
	endCell, _ := excelize.CoordinatesToCellName(len(data.Headers), len(data.Rows)+1)
	f.AutoFilter(sheetName, "A1:"+endCell, []excelize.AutoFilterOptions{})

	// Сохраняем файл
	if err := f.SaveAs(filePath); err != nil {
		return "", err
	}

	return filePath, nil
}

// generatePDFReport генерирует PDF файл отчета
func (rs *ReportService) generatePDFReport(data *ReportData, filePath string) (string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)

	// Заголовок отчета
	pdf.Cell(60, 10, "FTTH Inventory")
	pdf.Ln(15)

	// Таблица с данными (упрощенная версия)
	pdf.SetFont("Arial", "", 8)

	// Заголовки
	for _, header := range data.Headers {
		pdf.Cell(25, 8, header)
	}
	pdf.Ln(8)

	// Данные (ограничиваем количество строк для PDF)
	maxRows := 60
	for i, row := range data.Rows {
		if i >= maxRows {
			pdf.Cell(25, 8, "...")
			break
		}

		for _, header := range data.Headers {
			value := ""
			if val, ok := row[header]; ok {
				value = fmt.Sprintf("%.12s", fmt.Sprintf("%v", val))
			}
			pdf.Cell(25, 8, value)
		}
		pdf.Ln(6)
	}

	return filePath, pdf.OutputFileAndClose(filePath)
}
