package services

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"backend_ftth/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInventoryReport(t *testing.T) {
	db := testutils.SetupTestDB(t)
	outputDir := t.TempDir()
	rs := NewReportService(db, outputDir)

	olt := testutils.CreateTestItem(t, db, "OLT-1", "OLT", -6.20, 106.80)
	pole := testutils.CreateTestItem(t, db, "Опора 1", "Pole", -6.21, 106.81)
	testutils.CreateTestRoute(t, db, olt.ID, pole.ID, 12, 900)

	t.Run("CSV отчет содержит заголовки и строки", func(t *testing.T) {
		filePath, err := rs.GenerateInventoryReport(ReportFormatCSV)
		require.NoError(t, err)
		require.FileExists(t, filePath)
		assert.True(t, strings.HasSuffix(filePath, ".csv"))

		file, err := os.Open(filePath)
		require.NoError(t, err)
		defer file.Close()

		records, err := csv.NewReader(file).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3) // заголовок + два элемента
		assert.Equal(t, "ID", records[0][0])
		assert.Equal(t, "Статус", records[0][len(records[0])-1])
	})

	t.Run("Excel отчет создается", func(t *testing.T) {
		filePath, err := rs.GenerateInventoryReport(ReportFormatExcel)
		require.NoError(t, err)
		require.FileExists(t, filePath)
		assert.True(t, strings.HasSuffix(filePath, ".xlsx"))
	})

	t.Run("PDF отчет создается", func(t *testing.T) {
		filePath, err := rs.GenerateInventoryReport(ReportFormatPDF)
		require.NoError(t, err)
		require.FileExists(t, filePath)
		assert.True(t, strings.HasSuffix(filePath, ".pdf"))
	})

	t.Run("Неподдерживаемый формат", func(t *testing.T) {
		_, err := rs.GenerateInventoryReport("docx")
		assert.Error(t, err)
	})

	t.Run("Файлы попадают в заданную директорию", func(t *testing.T) {
		filePath, err := rs.GenerateInventoryReport(ReportFormatCSV)
		require.NoError(t, err)
		assert.Equal(t, outputDir, filepath.Dir(filePath))
	})
}
