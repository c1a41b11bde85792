package utils

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"satwatch/internal/models"
)

const telemetrySheet = "Telemetry"

// CreateTelemetryWorkbook строит xlsx-книгу с данными телеметрии
func CreateTelemetryWorkbook(records []models.Telemetry) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", telemetrySheet); err != nil {
		return nil, err
	}

	headers := []string{"ID", "Satellite ID", "Timestamp (UTC)", "Altitude (km)", "Velocity (km/s)", "Status"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(telemetrySheet, cell, header)
	}

	numberStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return nil, err
	}

	for rowIdx, record := range records {
		rowNum := rowIdx + 2 // Заголовок в первой строке

		f.SetCellValue(telemetrySheet, fmt.Sprintf("A%d", rowNum), record.ID)
		f.SetCellValue(telemetrySheet, fmt.Sprintf("B%d", rowNum), record.SatelliteID)
		f.SetCellValue(telemetrySheet, fmt.Sprintf("C%d", rowNum),
			record.Timestamp.UTC().Format(time.RFC3339))
		f.SetCellValue(telemetrySheet, fmt.Sprintf("D%d", rowNum), record.Altitude)
		f.SetCellValue(telemetrySheet, fmt.Sprintf("E%d", rowNum), record.Velocity)
		f.SetCellValue(telemetrySheet, fmt.Sprintf("F%d", rowNum), record.Status.String())
	}

	if len(records) > 0 {
		last := len(records) + 1
		if err := f.SetCellStyle(telemetrySheet, "D2", fmt.Sprintf("E%d", last), numberStyle); err != nil {
			return nil, err
		}

		// Подсветка критических и предупреждающих записей
		for status, color := range map[string]string{"critical": "#FFCCCC", "warning": "#FFF2CC"} {
			err = f.SetConditionalFormat(telemetrySheet, fmt.Sprintf("F2:F%d", last), []excelize.ConditionalFormatOptions{
				{
					Type:     "cell",
					Criteria: "==",
					Value:    fmt.Sprintf("%q", status),
					Format:   getConditionalFormatStyle(f, color),
				},
			})
			if err != nil {
				return nil, err
			}
		}
	}

	for i := 1; i <= len(headers); i++ {
		colName, _ := excelize.ColumnNumberToName(i)
		f.SetColWidth(telemetrySheet, colName, colName, 20)
	}

	createInfoSheet(f, records)
	f.SetActiveSheet(0)

	return f.WriteToBuffer()
}

func createInfoSheet(f *excelize.File, records []models.Telemetry) {
	f.NewSheet("Info")

	counts := map[models.HealthStatus]int{}
	for _, r := range records {
		counts[r.Status]++
	}

	rows := [][2]interface{}{
		{"Report Generated", time.Now().UTC().Format(time.RFC3339)},
		{"Total Records", len(records)},
	}
	if len(records) > 0 {
		// Записи отсортированы от новых к старым
		rows = append(rows, [2]interface{}{"Time Range", fmt.Sprintf("%s to %s",
			records[len(records)-1].Timestamp.UTC().Format(time.RFC3339),
			records[0].Timestamp.UTC().Format(time.RFC3339))})
	}
	for _, s := range models.HealthStatuses() {
		rows = append(rows, [2]interface{}{s.Label(), counts[s]})
	}

	for i, row := range rows {
		f.SetCellValue("Info", fmt.Sprintf("A%d", i+1), row[0])
		f.SetCellValue("Info", fmt.Sprintf("B%d", i+1), row[1])
	}
}

// getConditionalFormatStyle создает стиль для условного форматирования
func getConditionalFormatStyle(f *excelize.File, color string) *int {
	style, err := f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{color},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil
	}
	return &style
}
