package sheet

import (
	"reflect"
	"testing"
)

func TestRowIsEmpty(t *testing.T) {
	if !(AttendanceRow{}).IsEmpty() {
		t.Fatalf("zero row should be empty")
	}

	fields := []string{"date", "day", "sched", "timeIn", "timeOut", "destination", "remarks", "signature"}
	for _, f := range fields {
		row := AttendanceRow{}
		if !setField(&row, f, "x") {
			t.Fatalf("unknown field %q", f)
		}
		if row.IsEmpty() {
			t.Fatalf("row with %q set should not be empty", f)
		}
	}
}

func TestHasTimeRecords(t *testing.T) {
	tests := []struct {
		name  string
		entry RawLogEntry
		want  bool
	}{
		{"all blank", RawLogEntry{}, false},
		{"whitespace only", RawLogEntry{TimeIn: "  ", TimeOut: "\t"}, false},
		{"time in set", RawLogEntry{TimeIn: "08:00"}, true},
		{"break in set", RawLogEntry{BreakIn: "13:00"}, true},
	}

	for _, tt := range tests {
		if got := HasTimeRecords(tt.entry); got != tt.want {
			t.Errorf("%s: HasTimeRecords = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestProcessLogsWorkedDay(t *testing.T) {
	entries := []RawLogEntry{{
		Date: "2024-01-05", Day: "Fri", Shift: "1",
		TimeIn: "08:00", BreakOut: "12:00", BreakIn: "13:00", TimeOut: "17:00",
	}}

	data := ProcessLogs(entries)

	want := AttendanceGroup{
		{Date: "01-05-2024", Day: "Fri", Sched: "1", TimeIn: "8:00", TimeOut: "12:00", Destination: "OFFICE", Remarks: "DUTY ON CALL"},
		{TimeIn: "1:00", TimeOut: "5:00", Destination: "OFFICE", Remarks: "DUTY ON CALL"},
	}
	if !reflect.DeepEqual(data[0], want) {
		t.Fatalf("worked day group = %+v, want %+v", data[0], want)
	}
}

func TestProcessLogsDayOff(t *testing.T) {
	entries := []RawLogEntry{{
		Date: "2024-01-06", Day: "Sat", Shift: "X", Remarks: "DAY OFF",
	}}

	data := ProcessLogs(entries)

	want := AttendanceGroup{
		{Date: "01-06-2024", Day: "Sat", Sched: "X", Remarks: "DAY OFF"},
	}
	if !reflect.DeepEqual(data[0], want) {
		t.Fatalf("day-off group = %+v, want %+v", data[0], want)
	}
}

func TestProcessLogsDayOffWithPunches(t *testing.T) {
	// 标注休息日但仍有打卡：按工作日的两行分组处理
	entries := []RawLogEntry{{
		Date: "2024-01-07", Day: "Sun", Shift: "X",
		TimeIn: "09:00", TimeOut: "15:00", Remarks: "DAY OFF",
	}}

	data := ProcessLogs(entries)

	if len(data[0]) != 2 {
		t.Fatalf("day-off with punches should emit two rows, got %d", len(data[0]))
	}
	if data[0][0].Remarks != "DAY OFF" {
		t.Fatalf("remarks should be preserved, got %q", data[0][0].Remarks)
	}
}

func TestProcessLogsPadsToForty(t *testing.T) {
	entries := []RawLogEntry{
		{Date: "2024-01-05", Day: "Fri", Shift: "1", TimeIn: "08:00", TimeOut: "17:00"},
		{Date: "2024-01-06", Day: "Sat", Shift: "X", Remarks: "DAY OFF"},
	}

	data := ProcessLogs(entries)

	if got := data.TotalRows(); got != MaxRows {
		t.Fatalf("total rows = %d, want %d", got, MaxRows)
	}
	for i := 2; i < len(data); i++ {
		if len(data[i]) != 1 || !data[i][0].IsEmpty() {
			t.Fatalf("padding group %d should be a single blank row", i)
		}
	}
}

func TestProcessLogsOverCapacity(t *testing.T) {
	// 超过 40 行的输入既不补行也不截断，容量在编辑时强制
	entries := make([]RawLogEntry, 25)
	for i := range entries {
		entries[i] = RawLogEntry{Date: "2024-01-01", Day: "Mon", Shift: "1", TimeIn: "08:00", TimeOut: "17:00"}
	}

	data := ProcessLogs(entries)

	if got := data.TotalRows(); got != 50 {
		t.Fatalf("total rows = %d, want 50", got)
	}
}

func TestTo12Hour(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"08:00", "8:00"},
		{"12:00", "12:00"},
		{"00:30", "12:30"},
		{"17:05", "5:05"},
		{"23:59", "11:59"},
		{"", ""},
		{"1730", "1730"},
	}

	for _, tt := range tests {
		if got := to12Hour(tt.in); got != tt.want {
			t.Errorf("to12Hour(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReformatDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2024-01-05", "01-05-2024"},
		{"", ""},
		{"2024-01", "2024-01"},
		{"garbage", "garbage"},
	}

	for _, tt := range tests {
		if got := reformatDate(tt.in); got != tt.want {
			t.Errorf("reformatDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
