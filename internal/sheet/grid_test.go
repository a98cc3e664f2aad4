package sheet

import (
	"errors"
	"reflect"
	"testing"
)

// workedGroup 两行全部有值的工作日分组
func workedGroup(date string) AttendanceGroup {
	return AttendanceGroup{
		{Date: date, Day: "Mon", Sched: "1", TimeIn: "8:00", TimeOut: "12:00", Destination: "OFFICE", Remarks: "DUTY ON CALL"},
		{TimeIn: "1:00", TimeOut: "5:00", Destination: "OFFICE", Remarks: "DUTY ON CALL"},
	}
}

// almostFullData 39 个非空行加一个末尾空白单行分组，总行数 40
func almostFullData() AttendanceData {
	data := make(AttendanceData, 0, 21)
	for i := 0; i < 19; i++ {
		data = append(data, workedGroup("01-01-2024"))
	}
	data = append(data, AttendanceGroup{
		{Date: "01-20-2024", Day: "Sat", Sched: "X", Remarks: "DAY OFF"},
	})
	data = append(data, AttendanceGroup{{}})
	return data
}

func TestDefaultData(t *testing.T) {
	data := DefaultData()
	if len(data) != MaxRows || data.TotalRows() != MaxRows {
		t.Fatalf("default data should hold 40 single-row groups")
	}
	if data.NonEmptyRows() != 0 {
		t.Fatalf("default data should be all blank")
	}
}

func TestEnableEditingIdempotent(t *testing.T) {
	g := NewGrid(nil)
	g.EnableEditing()
	g.EnableEditing()
	if g.Mode != ModeEditable {
		t.Fatalf("mode = %q, want %q", g.Mode, ModeEditable)
	}
}

func TestUpdateCellRequiresEditMode(t *testing.T) {
	g := NewGrid(nil)
	if err := g.UpdateCell(0, 0, "remarks", "LATE"); !errors.Is(err, ErrNotEditable) {
		t.Fatalf("err = %v, want ErrNotEditable", err)
	}
	if g.Data[0][0].Remarks != "" {
		t.Fatalf("read-only grid must not mutate")
	}
}

func TestUpdateCellCopyOnWrite(t *testing.T) {
	g := NewGrid(nil)
	g.EnableEditing()
	before := g.Data

	if err := g.UpdateCell(3, 0, "timeIn", "8:00"); err != nil {
		t.Fatalf("update cell: %v", err)
	}

	if before[3][0].TimeIn != "" {
		t.Fatalf("previous state mutated, copy-on-write broken")
	}
	if g.Data[3][0].TimeIn != "8:00" {
		t.Fatalf("cell not updated")
	}
}

func TestUpdateCellOutOfRangeIsNoOp(t *testing.T) {
	g := NewGrid(nil)
	g.EnableEditing()
	before := g.Data.Clone()

	cases := []struct {
		gi, ri int
		field  string
	}{
		{-1, 0, "date"},
		{100, 0, "date"},
		{0, 5, "date"},
		{0, 0, "no-such-field"},
	}
	for _, c := range cases {
		if err := g.UpdateCell(c.gi, c.ri, c.field, "x"); err != nil {
			t.Fatalf("UpdateCell(%d,%d,%q): %v", c.gi, c.ri, c.field, err)
		}
	}

	if !reflect.DeepEqual(before, g.Data) {
		t.Fatalf("out-of-range updates must not change the sheet")
	}
}

func TestAddRowToGroup(t *testing.T) {
	g := NewGrid(almostFullData())
	g.EnableEditing()
	groups := len(g.Data)

	snapshot, err := g.AddRowToGroup(0)
	if err != nil {
		t.Fatalf("add row: %v", err)
	}

	if got := g.Data.TotalRows(); got != MaxRows {
		t.Fatalf("total rows = %d, want %d", got, MaxRows)
	}
	if len(g.Data) != groups-1 {
		t.Fatalf("trailing group should have been reclaimed")
	}
	if len(g.Data[0]) != 3 {
		t.Fatalf("group 0 rows = %d, want 3", len(g.Data[0]))
	}
	if !g.Data[0][2].IsEmpty() {
		t.Fatalf("appended row must be blank")
	}
	if snapshot.TotalRows() != MaxRows || len(snapshot[0]) != 2 {
		t.Fatalf("snapshot should capture the pre-mutation state")
	}
}

func TestAddRowRejectsWhenFullyPopulated(t *testing.T) {
	// 40 个非空行，即便仍有末尾空白分组也要拒绝
	data := make(AttendanceData, 0, 21)
	for i := 0; i < 20; i++ {
		data = append(data, workedGroup("01-01-2024"))
	}
	data = append(data, AttendanceGroup{{}})

	g := NewGrid(data)
	g.EnableEditing()
	before := g.Data

	if _, err := g.AddRowToGroup(0); !errors.Is(err, ErrCapacityReached) {
		t.Fatalf("err = %v, want ErrCapacityReached", err)
	}
	if !reflect.DeepEqual(before, g.Data) {
		t.Fatalf("rejected mutation must not change state")
	}
}

func TestAddRowRejectsWithoutTrailingEmptyGroup(t *testing.T) {
	data := make(AttendanceData, 0, 10)
	for i := 0; i < 10; i++ {
		data = append(data, workedGroup("01-01-2024"))
	}

	g := NewGrid(data)
	g.EnableEditing()

	if _, err := g.AddRowToGroup(0); !errors.Is(err, ErrNoEmptyRows) {
		t.Fatalf("err = %v, want ErrNoEmptyRows", err)
	}
}

func TestAddRowRejectsOutsideEditMode(t *testing.T) {
	g := NewGrid(almostFullData())
	if _, err := g.AddRowToGroup(0); !errors.Is(err, ErrNotEditable) {
		t.Fatalf("err = %v, want ErrNotEditable", err)
	}
}

func TestAddRowUndo(t *testing.T) {
	g := NewGrid(almostFullData())
	g.EnableEditing()
	want := g.Data.Clone()

	snapshot, err := g.AddRowToGroup(2)
	if err != nil {
		t.Fatalf("add row: %v", err)
	}
	if reflect.DeepEqual(want, g.Data) {
		t.Fatalf("mutation should have changed the sheet")
	}

	if err := g.Restore(snapshot); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !reflect.DeepEqual(want, g.Data) {
		t.Fatalf("restore should bring back the pre-mutation sheet")
	}
}

func TestSaveStateMachine(t *testing.T) {
	g := NewGrid(nil)

	if err := g.BeginSave(); !errors.Is(err, ErrNotEditable) {
		t.Fatalf("save from read-only: err = %v, want ErrNotEditable", err)
	}

	g.EnableEditing()
	if err := g.BeginSave(); err != nil {
		t.Fatalf("begin save: %v", err)
	}
	if err := g.BeginSave(); !errors.Is(err, ErrSaveInProgress) {
		t.Fatalf("re-entrant save: err = %v, want ErrSaveInProgress", err)
	}

	g.FinishSave(false)
	if g.Mode != ModeEditable {
		t.Fatalf("failed save should return to editable, got %q", g.Mode)
	}

	if err := g.BeginSave(); err != nil {
		t.Fatalf("begin save after failure: %v", err)
	}
	g.FinishSave(true)
	if g.Mode != ModeReadOnly {
		t.Fatalf("successful save should end read-only, got %q", g.Mode)
	}
}
