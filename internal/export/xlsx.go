package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"AttendSheet/internal/model"
	"AttendSheet/internal/sheet"
)

// 打印文档的列布局，与考勤表字段一一对应
var headers = []string{
	"Date", "Day", "Sched", "Time In", "Time Out", "Destination", "Remarks", "Signature",
}

var colWidths = []float64{12, 6, 7, 9, 9, 16, 20, 14}

// RenderSheet 把 40 行考勤表和签核人区块渲染为 xlsx
func RenderSheet(period string, data sheet.AttendanceData, signatories model.Signatories) (*bytes.Buffer, error) {
	f := excelize.NewFile()

	sheetName := "Attendance"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	f.SetCellValue(sheetName, "A1", "ATTENDANCE MONITORING SHEET")
	f.SetCellValue(sheetName, "A2", "Period: "+period)

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err == nil {
		f.SetRowStyle(sheetName, 1, 1, titleStyle)
	}

	const headerRow = 4
	for i, header := range headers {
		cell := fmt.Sprintf("%c%d", 'A'+i, headerRow)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err == nil {
		f.SetRowStyle(sheetName, headerRow, headerRow, headerStyle)
	}

	row := headerRow + 1
	for _, group := range data {
		for _, r := range group {
			values := []interface{}{
				r.Date, r.Day, r.Sched, r.TimeIn, r.TimeOut, r.Destination, r.Remarks, r.Signature,
			}
			for colIndex, value := range values {
				cell := fmt.Sprintf("%c%d", 'A'+colIndex, row)
				f.SetCellValue(sheetName, cell, value)
			}
			row++
		}
	}

	// 签核区：最多两个签名位，缺席的留空
	row += 2
	signatureByID := make(map[int]model.Signatory, len(signatories))
	for _, sig := range signatories {
		signatureByID[sig.ID] = sig
	}

	for id := 1; id <= model.MaxSignatories; id++ {
		col := 'A'
		if id == 2 {
			col = 'E'
		}
		sig := signatureByID[id]

		f.SetCellValue(sheetName, fmt.Sprintf("%c%d", col, row), "Approved by:")
		f.SetCellValue(sheetName, fmt.Sprintf("%c%d", col, row+2), sig.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("%c%d", col, row+3), sig.Title)
	}

	for i, width := range colWidths {
		col := string(rune('A' + i))
		f.SetColWidth(sheetName, col, col, width)
	}

	if f.GetSheetName(0) != sheetName {
		f.DeleteSheet("Sheet1")
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing Excel file to buffer: %v", err)
	}

	return &buf, nil
}
