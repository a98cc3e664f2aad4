package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"AttendSheet/internal/model"
	"AttendSheet/internal/sheet"
)

func TestRenderSheet(t *testing.T) {
	data := sheet.DefaultData()
	data[0][0] = sheet.AttendanceRow{
		Date: "01-05-2024", Day: "Fri", Sched: "1",
		TimeIn: "8:00", TimeOut: "12:00", Destination: "OFFICE", Remarks: "DUTY ON CALL",
	}

	signatories := model.Signatories{
		{ID: 1, Name: "Maria Santos", Title: "Supervisor"},
		{ID: 2, Name: "Jose Reyes", Title: "HR Manager"},
	}

	buf, err := RenderSheet("2024-01", data, signatories)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("rendered document is empty")
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open rendered document: %v", err)
	}
	defer f.Close()

	period, err := f.GetCellValue("Attendance", "A2")
	if err != nil || period != "Period: 2024-01" {
		t.Fatalf("period cell = %q, err = %v", period, err)
	}

	date, err := f.GetCellValue("Attendance", "A5")
	if err != nil || date != "01-05-2024" {
		t.Fatalf("first data cell = %q, err = %v", date, err)
	}

	// 40 行数据在表头之后，签核区在其后两行
	name, err := f.GetCellValue("Attendance", "A49")
	if err != nil || name != "Maria Santos" {
		t.Fatalf("signatory cell = %q, err = %v", name, err)
	}
}
